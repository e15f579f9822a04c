// Package fs provides file system adapters for walking class directories and resolving
// classpath entries.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkedUnit is a class file found below a walk root.
type WalkedUnit struct {
	Name domain.UnitName
	Path string
}

// WalkUnits yields every class file below root in lexical order. Hidden directories are
// skipped. A directory that cannot be read ends the walk with one final non-nil error.
func (w *Walker) WalkUnits(root string) iter.Seq2[WalkedUnit, error] {
	return func(yield func(WalkedUnit, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to walk class directory"), "path", path)
			}

			if skipAction := w.shouldSkipDir(path, root, d); skipAction != nil {
				return skipAction
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil //nolint:nilerr // unreachable for paths below root
			}
			name, ok := domain.UnitNameFromResource(filepath.ToSlash(rel))
			if !ok {
				return nil
			}

			if !yield(WalkedUnit{Name: name, Path: path}, nil) {
				stopped = true
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil && !stopped {
			yield(WalkedUnit{}, err)
		}
	}
}

// CheckDir reports an error unless root is an existing directory.
func (w *Walker) CheckDir(root string) error {
	info, err := statPath(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("classpath entry is not a directory"), "path", root)
	}
	return nil
}

// shouldSkipDir returns filepath.SkipDir for hidden directories such as .git below root.
func (w *Walker) shouldSkipDir(path, root string, d fs.DirEntry) error {
	if !d.IsDir() || path == root {
		return nil
	}
	if strings.HasPrefix(d.Name(), ".") {
		return filepath.SkipDir
	}
	return nil
}
