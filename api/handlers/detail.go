// ABOUTME: Detail lookup handler for single-video queries
// ABOUTME: Resolves one record's full episode list from its source

package handlers

import (
	"context"
	"net/http"
	"time"

	"vodsearch-api/api/dto/mappers"
	"vodsearch-api/api/dto/responses"
	"vodsearch-api/core/domain"
	"github.com/danielgtaylor/huma/v2"
)

// DetailProvider interface defines the methods needed from the source client
type DetailProvider interface {
	Detail(ctx context.Context, src domain.Source, id string, cacheTTL time.Duration) (*domain.VideoResult, error)
}

// DetailHandler handles single-video detail requests
type DetailHandler struct {
	provider DetailProvider
	registry SourceRegistry
}

// NewDetailHandler creates a new detail handler
func NewDetailHandler(provider DetailProvider, registry SourceRegistry) *DetailHandler {
	return &DetailHandler{
		provider: provider,
		registry: registry,
	}
}

// RegisterRoutes registers the detail route
func (h *DetailHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "detail",
		Method:      http.MethodGet,
		Path:        "/api/detail",
		Summary:     "Fetch one video's detail",
		Description: "Fetches a single video record with its full episode list from the named source",
		Tags:        []string{"Search"},
	}, h.Detail)
}

// DetailInput defines the input for the Detail operation
type DetailInput struct {
	Source string `query:"source" doc:"Source key"`
	ID     string `query:"id" doc:"Provider-scoped video identifier"`
}

// DetailOutput defines the output for the Detail operation
type DetailOutput struct {
	Body responses.DetailResponse
}

// Detail handles the GET /api/detail endpoint
func (h *DetailHandler) Detail(ctx context.Context, input *DetailInput) (*DetailOutput, error) {
	if input.Source == "" || input.ID == "" {
		return nil, huma.Error400BadRequest("source and id are required")
	}

	src, ok := h.registry.SourceByKey(input.Source)
	if !ok {
		return nil, huma.Error404NotFound("unknown source")
	}

	result, err := h.provider.Detail(ctx, src, input.ID, h.registry.CacheTime())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &DetailOutput{
		Body: responses.DetailResponse{VideoResponse: *mappers.ToVideoResponse(result)},
	}, nil
}
