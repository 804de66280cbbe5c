// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"vodsearch-api/api/dto/responses"
	"vodsearch-api/core/domain"
)

// ToVideoResponse converts a domain VideoResult to a VideoResponse DTO
func ToVideoResponse(result *domain.VideoResult) *responses.VideoResponse {
	if result == nil {
		return nil
	}

	episodes := result.Episodes
	if episodes == nil {
		episodes = []string{}
	}

	return &responses.VideoResponse{
		ID:          result.ID,
		Title:       result.Title,
		Poster:      result.Poster,
		Episodes:    episodes,
		Source:      result.Source,
		SourceName:  result.SourceName,
		TypeName:    result.TypeName,
		Year:        result.Year,
		Description: result.Description,
	}
}

// ToVideoResponses converts multiple domain VideoResults to VideoResponse DTOs
func ToVideoResponses(results []domain.VideoResult) []responses.VideoResponse {
	out := make([]responses.VideoResponse, 0, len(results))

	for i := range results {
		if response := ToVideoResponse(&results[i]); response != nil {
			out = append(out, *response)
		}
	}

	return out
}
