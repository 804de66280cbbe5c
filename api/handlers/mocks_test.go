package handlers

import (
	"context"
	"time"

	"vodsearch-api/core/aggregate"
	"vodsearch-api/core/domain"
)

// mockAggregator is a mock implementation of the fan-out coordinator
type mockAggregator struct {
	dispatchFunc func(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome
	streamFunc   func(ctx context.Context, sources []domain.Source, query string) <-chan aggregate.SourceOutcome
}

func (m *mockAggregator) Dispatch(ctx context.Context, sources []domain.Source, query string) map[string]aggregate.Outcome {
	if m.dispatchFunc != nil {
		return m.dispatchFunc(ctx, sources, query)
	}
	return map[string]aggregate.Outcome{}
}

func (m *mockAggregator) Stream(ctx context.Context, sources []domain.Source, query string) <-chan aggregate.SourceOutcome {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, sources, query)
	}
	out := make(chan aggregate.SourceOutcome)
	close(out)
	return out
}

// mockRegistry is a mock implementation of the source registry
type mockRegistry struct {
	sources      []domain.Source
	denylist     []string
	enabled      bool
	cacheTime    time.Duration
	lastUsername string
}

func (m *mockRegistry) AvailableSources(username string) []domain.Source {
	m.lastUsername = username
	return m.sources
}

func (m *mockRegistry) SourceByKey(key string) (domain.Source, bool) {
	for _, src := range m.sources {
		if src.Key == key {
			return src, true
		}
	}
	return domain.Source{}, false
}

func (m *mockRegistry) Policy() ([]string, bool) {
	return m.denylist, m.enabled
}

func (m *mockRegistry) CacheTime() time.Duration {
	if m.cacheTime == 0 {
		return 2 * time.Hour
	}
	return m.cacheTime
}

// mockDetailProvider is a mock implementation of the detail provider
type mockDetailProvider struct {
	detailFunc func(ctx context.Context, src domain.Source, id string, cacheTTL time.Duration) (*domain.VideoResult, error)
}

func (m *mockDetailProvider) Detail(ctx context.Context, src domain.Source, id string, cacheTTL time.Duration) (*domain.VideoResult, error) {
	if m.detailFunc != nil {
		return m.detailFunc(ctx, src, id, cacheTTL)
	}
	return &domain.VideoResult{}, nil
}
