package loader

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"go.trai.ch/carton/internal/adapters/classfile"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

// unitCache maps names to defined units. It never evicts. Concurrent definitions of the same
// name may race; the last writer wins and readers only ever see fully defined units.
type unitCache struct {
	mu    sync.RWMutex
	units map[domain.UnitName]*domain.Unit
}

func newUnitCache() *unitCache {
	return &unitCache{units: make(map[domain.UnitName]*domain.Unit)}
}

func (c *unitCache) get(name domain.UnitName) (*domain.Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.units[name]
	return u, ok
}

func (c *unitCache) put(u *domain.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[u.Name] = u
}

var _ ports.UnitResolver = (*MemoryLoader)(nil)

// MemoryLoader resolves units from archive bytes held in memory.
type MemoryLoader struct {
	archives [][]byte
	opts     options
	cache    *unitCache
}

// NewMemoryLoader creates a loader over archives, consulted in the given order.
// The archive bytes must not be modified afterwards.
func NewMemoryLoader(archives [][]byte, opts ...Option) *MemoryLoader {
	return &MemoryLoader{
		archives: slices.Clone(archives),
		opts:     newOptions(opts),
		cache:    newUnitCache(),
	}
}

// Resolve returns the unit called name. A cached unit is returned without consulting any
// archive. Failures are not cached, so a later call may succeed.
func (l *MemoryLoader) Resolve(ctx context.Context, name domain.UnitName) (*domain.Unit, error) {
	if u, ok := l.cache.get(name); ok {
		return u, nil
	}

	var skipped []error
	for i, data := range l.archives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload, ok, err := l.opts.reader.Lookup(data, name)
		if err != nil {
			if !errors.Is(err, domain.ErrCorruptArchive) {
				return nil, err
			}
			l.opts.logger.Warn("skipping corrupt archive", "archive", i, "unit", name.String())
			skipped = append(skipped, zerr.With(err, "archive", i))
			continue
		}
		if !ok {
			continue
		}

		unit, err := classfile.Define(name, payload, "memory:"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		l.cache.put(unit)
		return unit, nil
	}

	return resolveParent(ctx, l.opts.parent, name, skipped)
}

// resolveParent delegates to parent, if any, after every local source missed.
func resolveParent(ctx context.Context, parent ports.UnitResolver, name domain.UnitName, skipped []error) (*domain.Unit, error) {
	if parent != nil {
		u, err := parent.Resolve(ctx, name)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, domain.ErrUnitNotFound) {
			return nil, err
		}
	}

	notFound := zerr.With(zerr.Wrap(domain.ErrUnitNotFound, "no archive contains unit"), "unit", name.String())
	if len(skipped) == 0 {
		return nil, notFound
	}
	return nil, errors.Join(append([]error{notFound}, skipped...)...)
}
