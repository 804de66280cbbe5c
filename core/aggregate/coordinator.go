// ABOUTME: Fan-out coordinator dispatches one concurrent search per source
// ABOUTME: Every source races a per-source deadline; no outcome can abort the rest

package aggregate

import (
	"context"
	"errors"
	"sync"
	"time"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/interfaces"
)

// SourceTimeout bounds how long any single source may take. One hung
// source costs at most this much wall-clock time, never N times it.
const SourceTimeout = 20 * time.Second

// OutcomeKind discriminates the per-source fan-out result.
type OutcomeKind int

const (
	// OutcomeResults means the source returned at least one record
	OutcomeResults OutcomeKind = iota

	// OutcomeEmpty means the source answered but found nothing
	OutcomeEmpty

	// OutcomeTimeout means the per-source deadline fired first
	OutcomeTimeout

	// OutcomeError means the source call failed
	OutcomeError
)

// Outcome is the transient per-source result of a fan-out attempt.
type Outcome struct {
	Kind    OutcomeKind
	Results []domain.VideoResult
	Err     error
}

// SourceOutcome pairs an outcome with the source that produced it, in
// the order outcomes arrive.
type SourceOutcome struct {
	Source  domain.Source
	Outcome Outcome
}

// Searcher is the uniform contract every source client implements.
type Searcher interface {
	Search(ctx context.Context, src domain.Source, query string) ([]domain.VideoResult, error)
}

// Coordinator fans a query out to all configured sources concurrently.
// It holds no per-request state; one instance serves all requests.
type Coordinator struct {
	searcher Searcher
	logger   interfaces.Logger
	timeout  time.Duration
}

// NewCoordinator creates a coordinator with the standard per-source timeout
func NewCoordinator(searcher Searcher, deps interfaces.Dependencies) *Coordinator {
	return &Coordinator{
		searcher: searcher,
		logger:   deps.Logger,
		timeout:  SourceTimeout,
	}
}

// Dispatch runs the fan-out and blocks until every source has settled,
// returning the outcome per source key. An empty source list returns an
// empty map without contacting anything.
func (c *Coordinator) Dispatch(ctx context.Context, sources []domain.Source, query string) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(sources))
	for settled := range c.Stream(ctx, sources, query) {
		outcomes[settled.Source.Key] = settled.Outcome
	}
	return outcomes
}

// Stream runs the fan-out and delivers each source's outcome the moment
// it settles. Completion order is arrival order, not source order. The
// channel is closed once every source is accounted for.
func (c *Coordinator) Stream(ctx context.Context, sources []domain.Source, query string) <-chan SourceOutcome {
	// Buffer for every source so a slow consumer never blocks a worker.
	out := make(chan SourceOutcome, len(sources))
	if len(sources) == 0 {
		close(out)
		return out
	}

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src domain.Source) {
			defer wg.Done()
			out <- SourceOutcome{Source: src, Outcome: c.searchOne(ctx, src, query)}
		}(src)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// searchOne races one source client call against the per-source
// deadline. Timeout abandons the in-flight call best-effort: the
// context cancellation reaches the HTTP layer, but a late result is
// simply discarded either way.
func (c *Coordinator) searchOne(ctx context.Context, src domain.Source, query string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type searchResult struct {
		results []domain.VideoResult
		err     error
	}

	// Buffered so the worker can finish after a timeout without leaking.
	done := make(chan searchResult, 1)
	go func() {
		results, err := c.searcher.Search(ctx, src, query)
		done <- searchResult{results: results, err: err}
	}()

	select {
	case <-ctx.Done():
		return c.settleFailed(src, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return c.settleFailed(src, r.err)
		}
		if len(r.results) == 0 {
			return Outcome{Kind: OutcomeEmpty}
		}
		return Outcome{Kind: OutcomeResults, Results: r.results}
	}
}

// settleFailed classifies a failed source call. A deadline anywhere in
// the chain counts as a timeout; everything else degrades to an error
// outcome. Neither is ever fatal to the request.
func (c *Coordinator) settleFailed(src domain.Source, err error) Outcome {
	kind := OutcomeError
	if errors.Is(err, context.DeadlineExceeded) {
		kind = OutcomeTimeout
	}

	if c.logger != nil {
		c.logger.Warn("source search failed", map[string]interface{}{
			"source": src.Key,
			"error":  err.Error(),
		})
	}

	return Outcome{Kind: kind, Err: err}
}
