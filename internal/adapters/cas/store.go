// Package cas persists the records of written archives so unchanged outputs are not rewritten.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.PackRecordStore       = (*Store)(nil)
	_ ports.PackRecordStoreOpener = Opener{}
)

// Store implements ports.PackRecordStore using a flat JSON file keyed by output path.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.PackRecord
}

// NewStore creates a new PackRecordStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.PackRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read pack record store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal pack record store"), "path", s.path)
	}

	return nil
}

// save writes the cache to disk. The caller must hold s.mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal pack record store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for pack record store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write pack record store")
	}

	return nil
}

// Get retrieves the record for an output path.
func (s *Store) Get(output string) (*domain.PackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[filepath.Clean(output)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record and persists the store.
func (s *Store) Put(record domain.PackRecord) error {
	if record.Output == "" {
		return zerr.New("pack record has no output")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.Output = filepath.Clean(record.Output)
	s.cache[record.Output] = record
	return s.save()
}

// Opener implements ports.PackRecordStoreOpener.
type Opener struct{}

// Open loads the store at path.
func (Opener) Open(path string) (ports.PackRecordStore, error) {
	s, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
