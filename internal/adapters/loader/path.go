package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"sync"

	"go.trai.ch/carton/internal/adapters/classfile"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitResolver = (*PathLoader)(nil)

// PathLoader resolves units from archive files on an ordered search path.
// Archives are read from disk when a lookup misses the cache.
type PathLoader struct {
	opts  options
	cache *unitCache

	mu    sync.RWMutex
	paths []string
}

// NewPathLoader creates a loader with an empty search path.
func NewPathLoader(opts ...Option) *PathLoader {
	return &PathLoader{
		opts:  newOptions(opts),
		cache: newUnitCache(),
	}
}

// AddPath appends an archive file to the search path. Re-adding a path is a no-op.
func (l *PathLoader) AddPath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !slices.Contains(l.paths, path) {
		l.paths = append(l.paths, path)
	}
}

// Paths returns the search path in lookup order.
func (l *PathLoader) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.paths)
}

// Resolve returns the unit called name from the first archive on the search path holding it.
func (l *PathLoader) Resolve(ctx context.Context, name domain.UnitName) (*domain.Unit, error) {
	if u, ok := l.cache.get(name); ok {
		return u, nil
	}

	var skipped []error
	for _, path := range l.Paths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		//nolint:gosec // Paths are registered by the materializing loader after validation
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.opts.logger.Warn("archive vanished from search path", "path", path)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to read archive"), "path", path)
		}

		payload, ok, err := l.opts.reader.Lookup(data, name)
		if err != nil {
			if !errors.Is(err, domain.ErrCorruptArchive) {
				return nil, err
			}
			l.opts.logger.Warn("skipping corrupt archive", "path", path, "unit", name.String())
			skipped = append(skipped, zerr.With(err, "path", path))
			continue
		}
		if !ok {
			continue
		}

		unit, err := classfile.Define(name, payload, path)
		if err != nil {
			return nil, err
		}
		l.cache.put(unit)
		return unit, nil
	}

	return resolveParent(ctx, l.opts.parent, name, skipped)
}
