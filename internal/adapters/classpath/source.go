// Package classpath locates compiled units in class directories and carton archives.
package classpath

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/carton/internal/adapters/archive"
	cfs "go.trai.ch/carton/internal/adapters/fs"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.UnitSource  = (*Source)(nil)
	_ ports.UnitCatalog = (*Source)(nil)
)

// entry is one classpath element: a class directory or an archive file.
type entry struct {
	path      string
	isArchive bool

	once sync.Once
	data []byte
	err  error
}

func (e *entry) archiveBytes() ([]byte, error) {
	e.once.Do(func() {
		//nolint:gosec // Path comes from the resolved classpath
		e.data, e.err = os.ReadFile(e.path)
		if e.err != nil {
			e.err = zerr.With(zerr.Wrap(e.err, "failed to read classpath archive"), "path", e.path)
		}
	})
	return e.data, e.err
}

// Source is an ordered classpath. The first entry holding a unit wins.
type Source struct {
	entries []*entry
	walker  *cfs.Walker
}

// NewSource builds a source over already-resolved paths. Paths ending in .car are archives,
// everything else must be a directory.
func NewSource(walker *cfs.Walker, paths ...string) (*Source, error) {
	s := &Source{walker: walker}
	for _, p := range paths {
		e := &entry{path: p, isArchive: strings.EqualFold(filepath.Ext(p), domain.ArchiveExtension)}
		if !e.isArchive {
			if err := walker.CheckDir(p); err != nil {
				return nil, err
			}
		}
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Paths returns the classpath in search order.
func (s *Source) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.path
	}
	return out
}

// Locate implements ports.UnitSource.
func (s *Source) Locate(ctx context.Context, name domain.UnitName) ([]byte, error) {
	for _, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload, ok, err := s.locateIn(e, name)
		if err != nil {
			return nil, zerr.With(err, "unit", name.String())
		}
		if ok {
			return payload, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnitNotLocated, "unit is not on the classpath"), "unit", name.String())
}

func (s *Source) locateIn(e *entry, name domain.UnitName) ([]byte, bool, error) {
	if e.isArchive {
		data, err := e.archiveBytes()
		if err != nil {
			return nil, false, err
		}
		payload, ok, err := archive.Lookup(data, name)
		if err != nil {
			return nil, false, zerr.With(err, "path", e.path)
		}
		return payload, ok, nil
	}

	path := filepath.Join(e.path, filepath.FromSlash(name.ResourcePath()))
	//nolint:gosec // Path is built from a classpath directory and a validated unit name
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, "failed to read class file"), "path", path)
	}
	return payload, true, nil
}

// Units lists every unit name on the classpath, sorted, with shadowed duplicates removed.
func (s *Source) Units(ctx context.Context) ([]domain.UnitName, error) {
	seen := make(map[domain.UnitName]struct{})
	var out []domain.UnitName
	add := func(n domain.UnitName) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	for _, e := range s.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.isArchive {
			for unit, err := range s.walker.WalkUnits(e.path) {
				if err != nil {
					return nil, err
				}
				add(unit.Name)
			}
			continue
		}
		data, err := e.archiveBytes()
		if err != nil {
			return nil, err
		}
		ix, err := archive.ReadIndex(data)
		if err != nil {
			return nil, zerr.With(err, "path", e.path)
		}
		for _, name := range ix.Names() {
			add(name)
		}
	}

	slices.SortFunc(out, domain.UnitName.Compare)
	return out, nil
}
