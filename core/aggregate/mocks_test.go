package aggregate

import (
	"context"
	"sync"

	"vodsearch-api/core/domain"
)

// mockSearcher is a mock implementation of the Searcher interface with
// per-source behavior keyed by source key.
type mockSearcher struct {
	searchFunc func(ctx context.Context, src domain.Source, query string) ([]domain.VideoResult, error)
}

func (m *mockSearcher) Search(ctx context.Context, src domain.Source, query string) ([]domain.VideoResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, src, query)
	}
	return nil, nil
}

// mockLogger records log calls for assertions
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) log(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}
