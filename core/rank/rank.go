// ABOUTME: Relevance ranker orders aggregated search results against a query
// ABOUTME: Scoring is a deterministic additive heuristic, ties keep input order

package rank

import (
	"sort"
	"strings"
	"unicode/utf8"

	"vodsearch-api/core/domain"
)

// Rank sorts results by descending relevance score against query.
// The sort is stable: records with equal scores keep their incoming
// relative order, so equal inputs always produce equal output.
// An empty or whitespace-only query is a no-op.
func Rank(results []domain.VideoResult, query string) []domain.VideoResult {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return results
	}

	words := strings.Fields(trimmed)

	scores := make([]int, len(results))
	for i := range results {
		scores[i] = score(results[i], trimmed, words)
	}

	// Sort index positions so the score slice stays aligned.
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]domain.VideoResult, len(results))
	for i, idx := range order {
		ranked[i] = results[idx]
	}
	return ranked
}

// score computes the relevance score for one record. trimmed is the
// lowercased trimmed query, words its whitespace tokens.
func score(result domain.VideoResult, trimmed string, words []string) int {
	title := strings.ToLower(result.Title)
	desc := strings.ToLower(result.Description)
	typeName := strings.ToLower(result.TypeName)
	year := strings.ToLower(result.Year)

	total := 0

	// Exact title match scores highest, substring match half of that.
	if title == trimmed {
		total += 1000
	} else if strings.Contains(title, trimmed) {
		total += 500
	}

	allWordsInTitle := true
	someWordsInTitle := false
	for _, word := range words {
		if strings.Contains(title, word) {
			someWordsInTitle = true
		} else {
			allWordsInTitle = false
		}
	}
	if allWordsInTitle {
		total += 300
	} else if someWordsInTitle {
		total += 50
	}

	// Earlier occurrence of the first query word is worth more.
	switch idx := strings.Index(title, words[0]); {
	case idx == 0:
		total += 100
	case idx > 0:
		total += 50
	}

	// Moderate title lengths beat extremely short or long ones.
	if n := utf8.RuneCountInString(title); n >= 2 && n <= 50 {
		total += 20
	}

	if containsAll(desc, words) {
		total += 30
	}

	if containsAll(typeName, words) {
		total += 20
	}

	if strings.Contains(year, trimmed) {
		total += 10
	}

	return total
}

// containsAll reports whether s contains every word.
func containsAll(s string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(s, word) {
			return false
		}
	}
	return true
}
