// ABOUTME: SSE streaming handler for incremental search delivery
// ABOUTME: Emits per-source events the moment each source settles

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vodsearch-api/api/dto/mappers"
	"vodsearch-api/api/dto/responses"
	"vodsearch-api/api/middleware"
	"vodsearch-api/core/aggregate"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/policy"
	"vodsearch-api/core/rank"
	"github.com/danielgtaylor/huma/v2"
)

// StreamInput defines the input for the SearchStream operation
type StreamInput struct {
	Query string `query:"q" doc:"Search query"`
}

// SearchStream handles the GET /api/search/stream endpoint
func (h *SearchHandler) SearchStream(ctx context.Context, input *StreamInput) (*huma.StreamResponse, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, huma.Error400BadRequest("missing query")
	}

	username, _ := middleware.UsernameFromContext(ctx)
	sources := h.registry.AvailableSources(username)
	denylist, enabled := h.registry.Policy()

	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			hctx.SetHeader("Content-Type", "text/event-stream")
			hctx.SetHeader("Cache-Control", "no-cache")
			hctx.SetHeader("Connection", "keep-alive")
			hctx.SetHeader("Access-Control-Allow-Origin", "*")

			stream := newEventStream(hctx.BodyWriter(), h.logger)

			stream.send(responses.StreamStartEvent{
				Type:         responses.StreamEventStart,
				Query:        query,
				TotalSources: len(sources),
				Timestamp:    time.Now().UnixMilli(),
			})

			// This loop is the only writer: it alone advances the
			// completion counter and the running total.
			totalResults := 0
			completed := 0
			for settled := range h.aggregator.Stream(hctx.Context(), sources, query) {
				completed++

				switch settled.Outcome.Kind {
				case aggregate.OutcomeResults, aggregate.OutcomeEmpty:
					batch := policy.Filter(rank.Rank(settled.Outcome.Results, query), denylist, enabled)
					totalResults += len(batch)
					stream.send(responses.StreamSourceResultEvent{
						Type:       responses.StreamEventSourceResult,
						Source:     settled.Source.Key,
						SourceName: settled.Source.Name,
						Results:    mappers.ToVideoResponses(batch),
						Timestamp:  time.Now().UnixMilli(),
					})
				default:
					stream.send(responses.StreamSourceErrorEvent{
						Type:       responses.StreamEventSourceError,
						Source:     settled.Source.Key,
						SourceName: settled.Source.Name,
						Error:      outcomeErrorMessage(settled.Outcome),
						Timestamp:  time.Now().UnixMilli(),
					})
				}
			}

			stream.send(responses.StreamCompleteEvent{
				Type:             responses.StreamEventComplete,
				TotalResults:     totalResults,
				CompletedSources: completed,
				Timestamp:        time.Now().UnixMilli(),
			})
		},
	}, nil
}

// outcomeErrorMessage renders a failed outcome for the error event
func outcomeErrorMessage(outcome aggregate.Outcome) string {
	if outcome.Kind == aggregate.OutcomeTimeout {
		return "timeout"
	}
	if outcome.Err != nil {
		return outcome.Err.Error()
	}
	return "source failed"
}

// eventStream writes SSE events to one consumer. The first failed
// write marks the stream closed and suppresses everything after it;
// in-flight sources then finish silently.
type eventStream struct {
	w       io.Writer
	flusher http.Flusher
	logger  interfaces.Logger
	closed  bool
}

func newEventStream(w io.Writer, logger interfaces.Logger) *eventStream {
	stream := &eventStream{w: w, logger: logger}
	if flusher, ok := w.(http.Flusher); ok {
		stream.flusher = flusher
	}
	return stream
}

// send marshals and writes one event as a data frame
func (s *eventStream) send(event interface{}) {
	if s.closed {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.closed = true
		if s.logger != nil {
			s.logger.Error("failed to marshal stream event", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		s.closed = true
		if s.logger != nil {
			s.logger.Debug("stream consumer disconnected", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}
}
