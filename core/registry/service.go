// ABOUTME: Registry service resolves configured sources and policy settings
// ABOUTME: Owns the source list file; the aggregation core only reads from it

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"vodsearch-api/core/domain"
	"vodsearch-api/core/interfaces"
	"vodsearch-api/core/policy"
)

// registryFile is the on-disk configuration shape.
type registryFile struct {
	// CacheTime is the downstream HTTP cache duration in seconds
	CacheTime int `json:"cache_time"`

	// DisablePolicyFilter turns the category denylist off deployment-wide
	DisablePolicyFilter bool `json:"disable_policy_filter"`

	// DenyWords replaces the default denylist when non-empty
	DenyWords []string `json:"deny_words"`

	// Sources is the full provider list
	Sources []sourceEntry `json:"sources"`

	// UserSources restricts users to a subset of source keys. Users not
	// listed here see every non-disabled source.
	UserSources map[string][]string `json:"user_sources"`
}

// sourceEntry is one provider in the registry file.
type sourceEntry struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	API      string `json:"api"`
	Detail   string `json:"detail"`
	Disabled bool   `json:"disabled"`
}

// Service loads the registry file once and answers lookups from memory.
// Reload swaps the whole snapshot under the lock, so readers never see a
// half-applied file.
type Service struct {
	logger interfaces.Logger
	path   string

	mu  sync.RWMutex
	cfg registryFile
}

// NewService creates a registry service and loads the file at path
func NewService(deps interfaces.Dependencies, path string) (*Service, error) {
	s := &Service{
		logger: deps.Logger,
		path:   path,
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload re-reads the registry file and swaps the active snapshot
func (s *Service) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read registry file: %w", err)
	}

	var cfg registryFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse registry file: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("registry loaded", map[string]interface{}{
			"path":    s.path,
			"sources": len(cfg.Sources),
		})
	}

	return nil
}

// AvailableSources returns the sources the given user may search,
// in registry file order. Disabled sources are never returned.
func (s *Service) AvailableSources(username string) []domain.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed map[string]bool
	if keys, ok := s.cfg.UserSources[username]; ok {
		allowed = make(map[string]bool, len(keys))
		for _, key := range keys {
			allowed[key] = true
		}
	}

	sources := make([]domain.Source, 0, len(s.cfg.Sources))
	for _, entry := range s.cfg.Sources {
		if entry.Disabled {
			continue
		}
		if allowed != nil && !allowed[entry.Key] {
			continue
		}
		sources = append(sources, domain.Source{
			Key:       entry.Key,
			Name:      entry.Name,
			APIURL:    entry.API,
			DetailURL: entry.Detail,
		})
	}
	return sources
}

// SourceByKey looks up one source by its stable key
func (s *Service) SourceByKey(key string) (domain.Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.cfg.Sources {
		if entry.Key == key && !entry.Disabled {
			return domain.Source{
				Key:       entry.Key,
				Name:      entry.Name,
				APIURL:    entry.API,
				DetailURL: entry.Detail,
			}, true
		}
	}
	return domain.Source{}, false
}

// Policy returns the active denylist and whether filtering is enabled
func (s *Service) Policy() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	denylist := s.cfg.DenyWords
	if len(denylist) == 0 {
		denylist = policy.DefaultDenylist
	}
	return denylist, !s.cfg.DisablePolicyFilter
}

// CacheTime returns the downstream HTTP cache duration
func (s *Service) CacheTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg.CacheTime <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(s.cfg.CacheTime) * time.Second
}
