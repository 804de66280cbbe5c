// ABOUTME: Content policy filter removes results by category denylist
// ABOUTME: Matching is case-sensitive substring containment on the raw label

package policy

import (
	"strings"

	"vodsearch-api/core/domain"
)

// Filter removes every record whose category label contains any denylist
// term. When enabled is false the input is returned unchanged.
func Filter(results []domain.VideoResult, denylist []string, enabled bool) []domain.VideoResult {
	if !enabled || len(denylist) == 0 {
		return results
	}

	filtered := make([]domain.VideoResult, 0, len(results))
	for _, result := range results {
		if !denied(result.TypeName, denylist) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// denied reports whether the category label contains any denylist term.
func denied(typeName string, denylist []string) bool {
	for _, word := range denylist {
		if word != "" && strings.Contains(typeName, word) {
			return true
		}
	}
	return false
}
