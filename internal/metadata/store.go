package metadata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Cache is the interface the Resolver reads and writes records through.
// Tests substitute an in-memory fake.
type Cache interface {
	Get(part Partition, key string) (*Record, bool)
	Put(part Partition, key string, rec *Record)
}

// Store is the durable metadata cache: one human-inspectable JSON file per
// partition under dir. Deleting a file forces re-resolution of that
// partition only. A corrupt or unreadable file loads as an empty partition.
type Store struct {
	dir string
	log *slog.Logger

	mu    sync.RWMutex
	parts map[Partition]map[string]*Record
	dirty map[Partition]bool
}

// NewStore loads the cache files under dir, creating the directory if needed.
func NewStore(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	s := &Store{
		dir:   dir,
		log:   log,
		parts: make(map[Partition]map[string]*Record),
		dirty: make(map[Partition]bool),
	}
	for _, p := range Partitions() {
		s.parts[p] = s.loadPartition(p)
	}
	return s, nil
}

// loadPartition reads one cache file, failing open to an empty map.
func (s *Store) loadPartition(p Partition) map[string]*Record {
	data, err := os.ReadFile(s.path(p))
	if err != nil {
		if !os.IsNotExist(err) && s.log != nil {
			s.log.Warn("cache file unreadable, starting empty", "partition", p, "error", err)
		}
		return make(map[string]*Record)
	}

	var m map[string]*Record
	if err := json.Unmarshal(data, &m); err != nil {
		if s.log != nil {
			s.log.Warn("cache file corrupt, starting empty", "partition", p, "error", err)
		}
		return make(map[string]*Record)
	}
	if m == nil {
		m = make(map[string]*Record)
	}
	return m
}

func (s *Store) path(p Partition) string {
	return filepath.Join(s.dir, fmt.Sprintf("tmdb_%s.json", p))
}

// Get returns a copy of the cached record for key, if present.
func (s *Store) Get(part Partition, key string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.parts[part][key]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Put stores a copy of rec under key. Upserts are idempotent; concurrent
// writers for different keys are safe.
func (s *Store) Put(part Partition, key string, rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[part][key] = rec.Clone()
	s.dirty[part] = true
}

// Len returns the number of records in a partition.
func (s *Store) Len(part Partition) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parts[part])
}

// Flush persists dirty partitions. Each partition is written to a temp file
// and renamed into place, so an interrupted flush leaves either the previous
// or the new snapshot, never a torn file.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range Partitions() {
		if !s.dirty[p] {
			continue
		}
		if err := s.writePartition(p); err != nil {
			return fmt.Errorf("flush %s cache: %w", p, err)
		}
		s.dirty[p] = false
	}
	return nil
}

func (s *Store) writePartition(p Partition) error {
	data, err := json.MarshalIndent(s.parts[p], "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, string(p)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path(p)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
