// ABOUTME: Search handlers for the Huma API
// ABOUTME: Provides the batch aggregation endpoint over the fan-out coordinator

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vodsearch-api/api/dto/mappers"
	"vodsearch-api/api/dto/responses"
	"vodsearch-api/api/middleware"
	"vodsearch-api/core/aggregate"
	"vodsearch-api/core/domain"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/policy"
	"vodsearch-api/core/rank"
	"github.com/danielgtaylor/huma/v2"
)

// Aggregator interface defines the methods needed from the fan-out coordinator
type Aggregator interface {
	Dispatch(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome
	Stream(ctx context.Context, sources []domain.Source, query string) <-chan aggregate.SourceOutcome
}

// SourceRegistry interface defines the methods needed from the source registry
type SourceRegistry interface {
	AvailableSources(username string) []domain.Source
	SourceByKey(key string) (domain.Source, bool)
	Policy() (denylist []string, enabled bool)
	CacheTime() time.Duration
}

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	aggregator Aggregator
	registry   SourceRegistry
	logger     interfaces.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(aggregator Aggregator, registry SourceRegistry, logger interfaces.Logger) *SearchHandler {
	return &SearchHandler{
		aggregator: aggregator,
		registry:   registry,
		logger:     logger,
	}
}

// RegisterRoutes registers all search-related routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search all sources",
		Description: "Fans the query out to every available source and returns one ranked, filtered list",
		Tags:        []string{"Search"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "searchStream",
		Method:      http.MethodGet,
		Path:        "/api/search/stream",
		Summary:     "Search all sources incrementally",
		Description: "Fans the query out to every available source and streams per-source results over SSE as they arrive",
		Tags:        []string{"Search"},
	}, h.SearchStream)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Query string `query:"q" doc:"Search query"`
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	CacheControl          string `header:"Cache-Control"`
	CDNCacheControl       string `header:"CDN-Cache-Control"`
	VercelCDNCacheControl string `header:"Vercel-CDN-Cache-Control"`
	NetlifyVary           string `header:"Netlify-Vary"`

	Body responses.SearchResponse
}

// Search handles the GET /api/search endpoint
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	output := &SearchOutput{
		Body: responses.SearchResponse{Results: []responses.VideoResponse{}},
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		h.setCacheHeaders(output)
		return output, nil
	}

	username, _ := middleware.UsernameFromContext(ctx)
	sources := h.registry.AvailableSources(username)

	outcomes := h.aggregator.Dispatch(ctx, sources, query)

	// Flatten in registry order so equal-score ties rank deterministically.
	var merged []domain.VideoResult
	for _, src := range sources {
		outcome, ok := outcomes[src.Key]
		if !ok || outcome.Kind != aggregate.OutcomeResults {
			continue
		}
		merged = append(merged, outcome.Results...)
	}

	denylist, enabled := h.registry.Policy()
	final := policy.Filter(rank.Rank(merged, query), denylist, enabled)

	output.Body.Results = mappers.ToVideoResponses(final)
	if len(final) > 0 {
		h.setCacheHeaders(output)
	}

	return output, nil
}

// setCacheHeaders marks the response cacheable for the configured
// duration across the CDNs the deployment fronts.
func (h *SearchHandler) setCacheHeaders(output *SearchOutput) {
	seconds := int(h.registry.CacheTime().Seconds())
	output.CacheControl = fmt.Sprintf("public, max-age=%d", seconds)
	output.CDNCacheControl = fmt.Sprintf("public, s-maxage=%d", seconds)
	output.VercelCDNCacheControl = fmt.Sprintf("public, s-maxage=%d", seconds)
	output.NetlifyVary = "query"
}
