// ABOUTME: Source domain model describes one upstream VOD search provider
// ABOUTME: Descriptors are supplied by the registry and are read-only to the core

package domain

// Source identifies one upstream content provider.
// Descriptors are immutable configuration: the aggregation core never
// modifies them, it only uses them to address requests.
type Source struct {
	// Key is the stable identifier for the source (e.g. "dyttzy")
	Key string

	// Name is the human-readable display name (e.g. "电影天堂资源")
	Name string

	// APIURL is the base URL of the source's search/detail JSON API
	APIURL string

	// DetailURL is the site base URL for sources whose detail pages must
	// be scraped from HTML instead of the JSON API. Empty for normal sources.
	DetailURL string
}
