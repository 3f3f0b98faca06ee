// Package settings owns the persisted feed list and its file-based
// import/export format.
package settings

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/textfeed/tfeed/internal/debuglog"
	"github.com/textfeed/tfeed/internal/feed"
	"github.com/textfeed/tfeed/internal/validation"
)

const feedURLsKey = "feedUrls"

// KV is the persistence surface the store needs.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// File is the import/export document. The same shape is written on
// export and required on import.
type File struct {
	FeedURLs []feed.FeedConfig `json:"feedUrls"`
}

// Store holds the ordered feed list. The list is only ever replaced as a
// whole; there are no partial edits.
type Store struct {
	kv        KV
	validator *validation.FeedURLValidator
	feeds     []feed.FeedConfig
}

// NewStore loads the persisted list, falling back to defaults when the
// store is empty or its content malformed.
func NewStore(kv KV, validator *validation.FeedURLValidator, defaults []feed.FeedConfig) *Store {
	s := &Store{kv: kv, validator: validator, feeds: defaults}

	raw, err := kv.Get(feedURLsKey)
	if err != nil || raw == "" {
		return s
	}
	var stored []feed.FeedConfig
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		debuglog.Warnf("discarding malformed feed list: %v", err)
		return s
	}
	s.feeds = stored
	return s
}

// Feeds returns the current feed list.
func (s *Store) Feeds() []feed.FeedConfig {
	return append([]feed.FeedConfig(nil), s.feeds...)
}

// Replace installs a new feed list wholesale and persists it.
func (s *Store) Replace(feeds []feed.FeedConfig) error {
	s.feeds = append([]feed.FeedConfig(nil), feeds...)
	return s.persist()
}

// Add validates and appends one feed.
func (s *Store) Add(rawURL, feedType string) error {
	normalized, err := s.validator.ValidateAndNormalize(rawURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}
	for _, fc := range s.feeds {
		if fc.URL == normalized {
			return fmt.Errorf("feed already configured: %s", normalized)
		}
	}
	s.feeds = append(s.feeds, feed.FeedConfig{URL: normalized, Type: feedType})
	return s.persist()
}

// Remove deletes the feed with the given URL. Unknown URLs are no-ops.
func (s *Store) Remove(url string) error {
	kept := s.feeds[:0]
	for _, fc := range s.feeds {
		if fc.URL != url {
			kept = append(kept, fc)
		}
	}
	s.feeds = kept
	return s.persist()
}

func (s *Store) persist() error {
	raw, err := json.Marshal(s.feeds)
	if err != nil {
		return fmt.Errorf("encoding feed list: %w", err)
	}
	if err := s.kv.Set(feedURLsKey, string(raw)); err != nil {
		return fmt.Errorf("persisting feed list: %w", err)
	}
	return nil
}

// Export writes the feed list as a settings file.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(File{FeedURLs: s.feeds}); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}

// Import parses a settings file and replaces the feed list. A malformed
// file, or one without a feedUrls array, is rejected and the existing
// configuration is left untouched.
func (s *Store) Import(r io.Reader) error {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return fmt.Errorf("parsing settings file: %w", err)
	}
	if f.FeedURLs == nil {
		return fmt.Errorf("settings file has no feedUrls array")
	}
	validated := make([]feed.FeedConfig, 0, len(f.FeedURLs))
	for _, fc := range f.FeedURLs {
		normalized, err := s.validator.ValidateAndNormalize(fc.URL)
		if err != nil {
			return fmt.Errorf("invalid feed URL %q: %w", fc.URL, err)
		}
		validated = append(validated, feed.FeedConfig{URL: normalized, Type: fc.Type})
	}
	return s.Replace(validated)
}
