// ABOUTME: Response DTOs for search-related API endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

// VideoResponse represents a single video record in API responses
type VideoResponse struct {
	ID          string   `json:"id" doc:"Provider-scoped video identifier"`
	Title       string   `json:"title" doc:"Video title"`
	Poster      string   `json:"poster,omitempty" doc:"Poster image URL"`
	Episodes    []string `json:"episodes" doc:"Playable episode URLs"`
	Source      string   `json:"source" doc:"Key of the source that returned this record"`
	SourceName  string   `json:"source_name" doc:"Display name of the source"`
	TypeName    string   `json:"type_name,omitempty" doc:"Category label"`
	Year        string   `json:"year,omitempty" doc:"Release year"`
	Description string   `json:"desc,omitempty" doc:"Plot description"`
}

// SearchResponse represents the batch search response
type SearchResponse struct {
	Results []VideoResponse `json:"results" doc:"Ranked and filtered search results"`
}

// DetailResponse represents a single-video detail lookup response
type DetailResponse struct {
	VideoResponse
}

// Stream event types emitted on the SSE search stream. Every event
// carries a type discriminator and a millisecond Unix timestamp.
const (
	StreamEventStart        = "start"
	StreamEventSourceResult = "source_result"
	StreamEventSourceError  = "source_error"
	StreamEventComplete     = "complete"
)

// StreamStartEvent opens the stream and announces the fan-out size
type StreamStartEvent struct {
	Type         string `json:"type"`
	Query        string `json:"query"`
	TotalSources int    `json:"totalSources"`
	Timestamp    int64  `json:"timestamp"`
}

// StreamSourceResultEvent carries one source's ranked, filtered batch
type StreamSourceResultEvent struct {
	Type       string          `json:"type"`
	Source     string          `json:"source"`
	SourceName string          `json:"sourceName"`
	Results    []VideoResponse `json:"results"`
	Timestamp  int64           `json:"timestamp"`
}

// StreamSourceErrorEvent reports one source's failure without ending the stream
type StreamSourceErrorEvent struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	SourceName string `json:"sourceName"`
	Error      string `json:"error"`
	Timestamp  int64  `json:"timestamp"`
}

// StreamCompleteEvent closes the stream after every source settled
type StreamCompleteEvent struct {
	Type             string `json:"type"`
	TotalResults     int    `json:"totalResults"`
	CompletedSources int    `json:"completedSources"`
	Timestamp        int64  `json:"timestamp"`
}
