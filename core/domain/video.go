// ABOUTME: VideoResult domain model is the canonical, source-agnostic search record
// ABOUTME: Created once during provider payload normalization and immutable afterwards

package domain

// VideoResult represents one piece of matched content returned by a source.
// Every record carries the key and display name of the source it came from
// so the aggregate list stays traceable after merging.
type VideoResult struct {
	// ID is the provider-side identifier of the record
	ID string

	// Title is the content title. Always present: records with an empty
	// title are dropped during normalization.
	Title string

	// Poster is the cover image URL
	Poster string

	// Episodes holds the playable episode URLs in provider order
	Episodes []string

	// Source is the originating source key
	Source string

	// SourceName is the originating source display name
	SourceName string

	// TypeName is the provider's category label, used by the policy filter
	TypeName string

	// Year is the release year as reported by the provider
	Year string

	// Description is the plain-text synopsis
	Description string
}
