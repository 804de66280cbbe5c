// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"vodsearch-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsUnauthorized(err) {
		return huma.Error401Unauthorized(err.Error())
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsSource(err) {
		// Upstream source errors might be retryable
		if srcErr, ok := err.(*errors.SourceError); ok {
			switch {
			case srcErr.StatusCode >= 500:
				return huma.Error503ServiceUnavailable("Upstream source error", err)
			case srcErr.StatusCode == 429:
				return huma.Error429TooManyRequests("Rate limited by upstream source")
			case srcErr.StatusCode >= 400:
				return huma.Error400BadRequest("Upstream source request error", err)
			default:
				return huma.Error503ServiceUnavailable("Unexpected upstream source response", err)
			}
		}
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
