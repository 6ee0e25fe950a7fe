package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when an ability file does not exist. Callers
// skip the invocation silently: a missing definition is not fatal.
var ErrNotFound = errors.New("ability definition not found")

// Store loads and caches ability definitions by path. Loading is the only
// asynchronous boundary of the engine: definitions are prefetched when an
// ability is acquired, and the per-tick path only ever uses Cached.
type Store struct {
	fsys fs.FS

	mu    sync.RWMutex
	cache map[string]*Definition
	group singleflight.Group
}

// NewStore creates a store reading ability files from fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		cache: make(map[string]*Definition),
	}
}

// Load returns the cached definition for path, reading and parsing the
// file on first use. Concurrent loads of the same path are deduplicated.
func (s *Store) Load(path string) (*Definition, error) {
	if def, ok := s.Cached(path); ok {
		return def, nil
	}

	v, err, _ := s.group.Do(path, func() (any, error) {
		content, err := fs.ReadFile(s.fsys, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, fmt.Errorf("reading ability %s: %w", path, err)
		}

		def, err := ParseDefinition(path, content)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[path] = def
		s.mu.Unlock()

		slog.Debug("loaded ability definition", "path", path, "name", def.Name, "kind", def.Kind)
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Definition), nil
}

// Cached is the synchronous fast path: it returns the definition only if
// it is already in the cache.
func (s *Store) Cached(path string) (*Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.cache[path]
	return def, ok
}

// Preload fetches a batch of ability files concurrently. Missing files are
// logged and skipped; any other failure aborts the batch.
func (s *Store) Preload(ctx context.Context, paths ...string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		g.Go(func() error {
			if _, err := s.Load(path); err != nil {
				if errors.Is(err, ErrNotFound) {
					slog.Warn("skipping missing ability file", "path", path)
					return nil
				}
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Len returns the number of cached definitions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
