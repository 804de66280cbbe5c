// ABOUTME: Source client performs the search call against one upstream provider
// ABOUTME: Normalizes the provider's proprietary payload into canonical VideoResults

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/errors"
	"vodsearch-api/core/interfaces"
)

// Client talks to upstream VOD providers. One Search call is one
// independent unit of work; retries and ranking belong to other layers.
type Client struct {
	deps interfaces.Dependencies
}

// NewClient creates a new source client instance
func NewClient(deps interfaces.Dependencies) *Client {
	return &Client{
		deps: deps,
	}
}

// apiPayload is the wire shape shared by MacCMS-style provider APIs.
type apiPayload struct {
	Code int       `json:"code"`
	Msg  string    `json:"msg"`
	List []apiItem `json:"list"`
}

// apiItem is one raw record as the provider returns it. Providers are
// inconsistent about numeric vs string IDs, hence json.Number.
type apiItem struct {
	VodID      json.Number `json:"vod_id"`
	VodName    string      `json:"vod_name"`
	VodPic     string      `json:"vod_pic"`
	VodPlayURL string      `json:"vod_play_url"`
	VodYear    string      `json:"vod_year"`
	VodContent string      `json:"vod_content"`
	TypeName   string      `json:"type_name"`
}

// Search queries one source and returns its normalized results.
// A payload recognized as "no matches" yields an empty slice and nil
// error; a broken source yields a SourceError so the coordinator can
// tell "nothing found" from "source is down".
func (c *Client) Search(ctx context.Context, src domain.Source, query string) ([]domain.VideoResult, error) {
	if c.deps.HTTPClient == nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "HTTP client not configured"}
	}

	searchURL := fmt.Sprintf("%s?ac=videolist&wd=%s", src.APIURL, url.QueryEscape(query))

	resp, err := c.deps.HTTPClient.Get(ctx, searchURL)
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &errors.SourceError{
			Source:     src.Key,
			StatusCode: resp.StatusCode(),
			Message:    "non-success status from search endpoint",
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "failed to read response: " + err.Error()}
	}

	payload, err := parsePayload(bodyBytes)
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: err.Error()}
	}

	return c.normalize(payload.List, src), nil
}

// parsePayload decodes a provider response body. A response without a
// recognizable list is malformed, not empty: MacCMS APIs return
// code 1 with an empty list for "no matches".
func parsePayload(body []byte) (*apiPayload, error) {
	var payload apiPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if payload.List == nil {
		if payload.Code != 1 && payload.Msg != "" {
			return nil, fmt.Errorf("provider rejected request: %s", payload.Msg)
		}
		return nil, fmt.Errorf("response has no result list")
	}

	return &payload, nil
}

// normalize converts raw provider records into canonical results,
// dropping records without a title.
func (c *Client) normalize(items []apiItem, src domain.Source) []domain.VideoResult {
	results := make([]domain.VideoResult, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.VodName)
		if title == "" {
			continue
		}

		results = append(results, domain.VideoResult{
			ID:          item.VodID.String(),
			Title:       title,
			Poster:      item.VodPic,
			Episodes:    parseEpisodes(item.VodPlayURL),
			Source:      src.Key,
			SourceName:  src.Name,
			TypeName:    item.TypeName,
			Year:        item.VodYear,
			Description: cleanHTML(item.VodContent),
		})
	}
	return results
}

// parseEpisodes extracts playable episode URLs from a provider's
// vod_play_url field. The field packs play groups separated by "$$$",
// episodes separated by "#", and each episode as "name$url". The m3u8
// group is preferred when several play groups exist.
func parseEpisodes(playURL string) []string {
	if playURL == "" {
		return nil
	}

	groups := strings.Split(playURL, "$$$")
	group := groups[0]
	for _, g := range groups {
		if strings.Contains(g, ".m3u8") {
			group = g
			break
		}
	}

	var episodes []string
	for _, part := range strings.Split(group, "#") {
		// Keep the URL after the last "$"; the prefix is the episode name.
		if idx := strings.LastIndex(part, "$"); idx >= 0 {
			part = part[idx+1:]
		}
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "http://") || strings.HasPrefix(part, "https://") {
			episodes = append(episodes, part)
		}
	}
	return episodes
}

// cleanHTML strips markup from provider descriptions, which frequently
// arrive wrapped in <p> tags with entity-escaped punctuation.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	text := b.String()
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
	)
	return strings.TrimSpace(replacer.Replace(text))
}
