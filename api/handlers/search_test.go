package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"vodsearch-api/api/dto/responses"
	"vodsearch-api/core/aggregate"
	"vodsearch-api/core/domain"
	"github.com/danielgtaylor/huma/v2/humatest"
)

func TestNewSearchHandler(t *testing.T) {
	handler := NewSearchHandler(&mockAggregator{}, &mockRegistry{}, nil)

	if handler == nil {
		t.Fatal("NewSearchHandler returned nil")
	}
	if handler.aggregator == nil {
		t.Error("SearchHandler.aggregator is nil")
	}
	if handler.registry == nil {
		t.Error("SearchHandler.registry is nil")
	}
}

func TestSearchHandler_RegisterRoutes(t *testing.T) {
	handler := NewSearchHandler(&mockAggregator{}, &mockRegistry{}, nil)

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	openapi := api.OpenAPI()
	if openapi.Paths == nil || openapi.Paths["/api/search"] == nil || openapi.Paths["/api/search"].Get == nil {
		t.Error("GET /api/search endpoint not registered")
	}
	if openapi.Paths["/api/search/stream"] == nil || openapi.Paths["/api/search/stream"].Get == nil {
		t.Error("GET /api/search/stream endpoint not registered")
	}
}

func TestSearchHandler_Search_EmptyQueryReturnsEmptyResults(t *testing.T) {
	registry := &mockRegistry{enabled: true}
	handler := NewSearchHandler(&mockAggregator{}, registry, nil)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/search")

	if resp.Code != 200 {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var body responses.SearchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Results == nil || len(body.Results) != 0 {
		t.Errorf("Results = %v, want empty array", body.Results)
	}

	// Empty query still gets cache headers
	if resp.Header().Get("Cache-Control") != "public, max-age=7200" {
		t.Errorf("Cache-Control = %q, want public, max-age=7200", resp.Header().Get("Cache-Control"))
	}
	if resp.Header().Get("CDN-Cache-Control") != "public, s-maxage=7200" {
		t.Errorf("CDN-Cache-Control = %q", resp.Header().Get("CDN-Cache-Control"))
	}
	if resp.Header().Get("Vercel-CDN-Cache-Control") != "public, s-maxage=7200" {
		t.Errorf("Vercel-CDN-Cache-Control = %q", resp.Header().Get("Vercel-CDN-Cache-Control"))
	}
	if resp.Header().Get("Netlify-Vary") != "query" {
		t.Errorf("Netlify-Vary = %q, want query", resp.Header().Get("Netlify-Vary"))
	}
}

func TestSearchHandler_Search_MergesRanksAndFilters(t *testing.T) {
	sources := []domain.Source{
		{Key: "alpha", Name: "Alpha"},
		{Key: "beta", Name: "Beta"},
		{Key: "gamma", Name: "Gamma"},
	}

	aggregator := &mockAggregator{
		dispatchFunc: func(ctx context.Context, got []domain.Source, query string) map[string]aggregate.Outcome {
			if len(got) != 3 {
				t.Errorf("Dispatch received %d sources, want 3", len(got))
			}
			if query != "Avatar" {
				t.Errorf("Dispatch received query %q, want Avatar", query)
			}
			return map[string]aggregate.Outcome{
				"alpha": {Kind: aggregate.OutcomeResults, Results: []domain.VideoResult{
					{ID: "1", Title: "Avatar: The Way of Water", Source: "alpha", SourceName: "Alpha"},
					{ID: "2", Title: "Avatar", Source: "alpha", SourceName: "Alpha", TypeName: "剧情"},
				}},
				"beta": {Kind: aggregate.OutcomeResults, Results: []domain.VideoResult{
					{ID: "3", Title: "Avatar", Source: "beta", SourceName: "Beta", TypeName: "伦理"},
				}},
				"gamma": {Kind: aggregate.OutcomeError},
			}
		},
	}
	registry := &mockRegistry{
		sources:  sources,
		denylist: []string{"伦理"},
		enabled:  true,
	}

	handler := NewSearchHandler(aggregator, registry, nil)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/search?q=Avatar")

	if resp.Code != 200 {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var body responses.SearchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}

	// Denied category is dropped, exact match ranks first, failed
	// source is absorbed silently.
	if len(body.Results) != 2 {
		t.Fatalf("Results length = %d, want 2", len(body.Results))
	}
	if body.Results[0].ID != "2" {
		t.Errorf("Results[0].ID = %s, want 2 (exact title match first)", body.Results[0].ID)
	}
	if body.Results[1].ID != "1" {
		t.Errorf("Results[1].ID = %s, want 1", body.Results[1].ID)
	}

	if resp.Header().Get("Netlify-Vary") != "query" {
		t.Error("cache headers should be set when results are non-empty")
	}
}

func TestSearchHandler_Search_NoResultsOmitsCacheHeaders(t *testing.T) {
	aggregator := &mockAggregator{
		dispatchFunc: func(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome {
			return map[string]aggregate.Outcome{
				"alpha": {Kind: aggregate.OutcomeEmpty},
			}
		},
	}
	registry := &mockRegistry{
		sources: []domain.Source{{Key: "alpha", Name: "Alpha"}},
		enabled: true,
	}

	handler := NewSearchHandler(aggregator, registry, nil)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/search?q=nothing")

	if resp.Code != 200 {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	for _, header := range []string{"Cache-Control", "CDN-Cache-Control", "Vercel-CDN-Cache-Control", "Netlify-Vary"} {
		if resp.Header().Get(header) != "" {
			t.Errorf("%s = %q, want unset for empty result list", header, resp.Header().Get(header))
		}
	}
}

func TestSearchHandler_Search_WhitespaceQueryShortCircuits(t *testing.T) {
	dispatched := false
	aggregator := &mockAggregator{
		dispatchFunc: func(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome {
			dispatched = true
			return nil
		},
	}
	handler := NewSearchHandler(aggregator, &mockRegistry{enabled: true}, nil)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/search?q=%20%20")

	if resp.Code != 200 {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	if dispatched {
		t.Error("whitespace-only query should not reach the aggregator")
	}
}

func TestSearchHandler_Search_FilterDisabledKeepsDeniedCategories(t *testing.T) {
	aggregator := &mockAggregator{
		dispatchFunc: func(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome {
			return map[string]aggregate.Outcome{
				"alpha": {Kind: aggregate.OutcomeResults, Results: []domain.VideoResult{
					{ID: "1", Title: "Avatar", Source: "alpha", TypeName: "伦理"},
				}},
			}
		},
	}
	registry := &mockRegistry{
		sources:  []domain.Source{{Key: "alpha", Name: "Alpha"}},
		denylist: []string{"伦理"},
		enabled:  false,
	}

	handler := NewSearchHandler(aggregator, registry, nil)
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/api/search?q=Avatar")

	var body responses.SearchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if len(body.Results) != 1 {
		t.Errorf("Results length = %d, want 1 when filter disabled", len(body.Results))
	}
}
