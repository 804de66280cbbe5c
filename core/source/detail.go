// ABOUTME: Detail lookup fetches the full record for one video from its source
// ABOUTME: JSON API sources use ac=videolist&ids=, special sources scrape HTML

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/errors"

	"github.com/PuerkitoBio/goquery"
)

// m3u8LinkPattern matches the "$url" episode encoding special sources
// embed in their detail pages.
var m3u8LinkPattern = regexp.MustCompile(`\$(https?://[^"'\s$#]+?\.m3u8)`)

// Detail fetches one record's full detail from its source. Results are
// cached for cacheTTL since detail pages change rarely; the cache is
// skipped entirely when no backend is configured.
func (c *Client) Detail(ctx context.Context, src domain.Source, id string, cacheTTL time.Duration) (*domain.VideoResult, error) {
	if id == "" {
		return nil, &errors.ValidationError{Field: "id", Message: "cannot be empty"}
	}

	cacheKey := fmt.Sprintf("detail:%s:%s", src.Key, id)
	if c.deps.Cache != nil {
		if data, err := c.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.VideoResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var result *domain.VideoResult
	var err error
	if src.DetailURL != "" {
		result, err = c.scrapeDetail(ctx, src, id)
	} else {
		result, err = c.fetchDetail(ctx, src, id)
	}
	if err != nil {
		return nil, err
	}

	if c.deps.Cache != nil && cacheTTL > 0 {
		if data, err := json.Marshal(result); err == nil {
			_ = c.deps.Cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return result, nil
}

// fetchDetail loads the record through the source's JSON API.
func (c *Client) fetchDetail(ctx context.Context, src domain.Source, id string) (*domain.VideoResult, error) {
	if c.deps.HTTPClient == nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "HTTP client not configured"}
	}

	detailURL := fmt.Sprintf("%s?ac=videolist&ids=%s", src.APIURL, id)

	resp, err := c.deps.HTTPClient.Get(ctx, detailURL)
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &errors.SourceError{
			Source:     src.Key,
			StatusCode: resp.StatusCode(),
			Message:    "non-success status from detail endpoint",
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

	results := c.normalize(payload.List, src)
	if len(results) == 0 {
		return nil, &errors.NotFoundError{Resource: "video", ID: id}
	}

	return &results[0], nil
}

// scrapeDetail extracts the record from a special source's HTML detail
// page. These sources have no JSON detail endpoint, only a site page
// with the episode list embedded in "$url" markers.
func (c *Client) scrapeDetail(ctx context.Context, src domain.Source, id string) (*domain.VideoResult, error) {
	if c.deps.HTTPClient == nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "HTTP client not configured"}
	}

	pageURL := fmt.Sprintf("%s/index.php/vod/detail/id/%s.html", strings.TrimRight(src.DetailURL, "/"), id)

	resp, err := c.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &errors.SourceError{
			Source:     src.Key,
			StatusCode: resp.StatusCode(),
			Message:    "non-success status from detail page",
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "failed to read response: " + err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(bodyBytes)))
	if err != nil {
		return nil, &errors.SourceError{Source: src.Key, Message: "failed to parse detail page: " + err.Error()}
	}

	var episodes []string
	for _, match := range m3u8LinkPattern.FindAllStringSubmatch(string(bodyBytes), -1) {
		episodes = append(episodes, match[1])
	}
	if len(episodes) == 0 {
		return nil, &errors.NotFoundError{Resource: "video", ID: id}
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	poster, _ := doc.Find("meta[property='og:image']").First().Attr("content")
	if poster == "" {
		poster, _ = doc.Find(".vodlist_thumb, .myui-content__thumb img").First().Attr("data-original")
	}

	return &domain.VideoResult{
		ID:         id,
		Title:      title,
		Poster:     poster,
		Episodes:   episodes,
		Source:     src.Key,
		SourceName: src.Name,
	}, nil
}
