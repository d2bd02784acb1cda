// Package cache keeps timestamped JSON snapshots of remote payloads on disk.
//
// Each key names one file holding {"timestamp": <epoch ms>, "data": <payload>}.
// A snapshot is served only while it is younger than FreshnessWindow; missing,
// unparsable and stale files all read as absent.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// FreshnessWindow is the maximum age of a servable snapshot, shared by all keys
const FreshnessWindow = 5 * time.Minute

// Entry is the on-disk representation of a cached payload
type Entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Store reads and writes cache files under a directory
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir. An empty dir means the working directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// WithClock replaces the store's time source
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Path returns the file path backing key
func (s *Store) Path(key string) string {
	if s.dir == "" {
		return key
	}
	return filepath.Join(s.dir, key)
}

// Write stores payload under key, overwriting any previous snapshot.
// Failures are logged and never returned.
func (s *Store) Write(key string, payload any) {
	if err := s.write(key, payload); err != nil {
		log.Warn().Err(err).Str("file", s.Path(key)).Msg("Failed to write cache")
	}
}

func (s *Store) write(key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	entry, err := json.Marshal(Entry{Timestamp: s.now().UnixMilli(), Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	path := s.Path(key)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, entry, 0o644)
}

// Read decodes the fresh payload stored under key into dst.
// It reports false when the file is missing, unparsable or stale.
func (s *Store) Read(key string, dst any) bool {
	entry, ok := s.load(key)
	if !ok {
		return false
	}
	if s.now().UnixMilli()-entry.Timestamp >= FreshnessWindow.Milliseconds() {
		return false
	}
	if err := json.Unmarshal(entry.Data, dst); err != nil {
		log.Debug().Err(err).Str("file", s.Path(key)).Msg("Unreadable cache payload")
		return false
	}
	return true
}

// Age reports how old the snapshot under key is, regardless of freshness
func (s *Store) Age(key string) (time.Duration, bool) {
	entry, ok := s.load(key)
	if !ok {
		return 0, false
	}
	return s.now().Sub(time.UnixMilli(entry.Timestamp)), true
}

func (s *Store) load(key string) (Entry, bool) {
	raw, err := os.ReadFile(s.Path(key))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		return Entry{}, false
	}
	return entry, true
}
