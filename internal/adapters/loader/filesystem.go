package loader

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/zerr"
)

// FilesystemLoader writes archives to disk and resolves units through a PathLoader over them.
type FilesystemLoader struct {
	*PathLoader
}

type target struct {
	location string
	path     string
	data     []byte
}

// NewFilesystemLoader validates every location first and writes nothing unless all pass.
// Archives are then written in path order, overwriting existing files, and each path is
// registered for resolution. A write failure stops the pass; files already written stay on
// disk and are listed in the error's "written" metadata.
func NewFilesystemLoader(ctx context.Context, archives map[string][]byte, opts ...Option) (*FilesystemLoader, error) {
	targets, err := validateTargets(archives)
	if err != nil {
		return nil, err
	}

	l := &FilesystemLoader{PathLoader: NewPathLoader(opts...)}
	written := make([]string, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, materializeFailed(t, written, err)
		}
		if err := writeArchive(t); err != nil {
			return nil, materializeFailed(t, written, err)
		}
		written = append(written, t.path)
		l.AddPath(t.path)
		l.opts.logger.Debug("materialized archive", "path", t.path, "bytes", len(t.data))
	}
	return l, nil
}

func materializeFailed(t target, written []string, cause error) error {
	err := zerr.With(zerr.Wrap(domain.ErrMaterializeFailed, "archive materialization stopped"), "location", t.location)
	err = zerr.With(err, "path", t.path)
	err = zerr.With(err, "written", slices.Clone(written))
	return errors.Join(err, cause)
}

func invalidSpec(location, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidArchiveSpec, reason), "location", location)
}

func validateTargets(archives map[string][]byte) ([]target, error) {
	if len(archives) == 0 {
		return nil, zerr.Wrap(domain.ErrInvalidArchiveSpec, "no archives to materialize")
	}

	locations := slices.Sorted(maps.Keys(archives))

	targets := make([]target, 0, len(archives))
	seen := make(map[string]string, len(archives))
	for _, loc := range locations {
		path, err := normalizeLocation(loc)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(filepath.Ext(path), domain.ArchiveExtension) {
			return nil, zerr.With(invalidSpec(loc, "location does not name a "+domain.ArchiveExtension+" file"), "path", path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return nil, zerr.With(invalidSpec(loc, "location is a directory"), "path", path)
		}
		if len(archives[loc]) == 0 {
			return nil, invalidSpec(loc, "archive is empty")
		}
		if other, dup := seen[path]; dup {
			return nil, zerr.With(invalidSpec(loc, "location duplicates another"), "other", other)
		}
		seen[path] = loc
		targets = append(targets, target{location: loc, path: path, data: archives[loc]})
	}

	slices.SortFunc(targets, func(a, b target) int { return strings.Compare(a.path, b.path) })
	return targets, nil
}

// normalizeLocation accepts a plain path or a file: URL and returns a clean absolute path.
func normalizeLocation(loc string) (string, error) {
	raw := strings.TrimSpace(loc)
	if raw == "" {
		return "", invalidSpec(loc, "location is empty")
	}

	if strings.HasPrefix(strings.ToLower(raw), "file:") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", zerr.With(invalidSpec(loc, "location is not a valid URL"), "cause", err.Error())
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", invalidSpec(loc, "location URL names a remote host")
		}
		raw = u.Path
		if raw == "" {
			raw = u.Opaque
		}
		if raw == "" {
			return "", invalidSpec(loc, "location URL has no path")
		}
	}

	path, err := filepath.Abs(filepath.FromSlash(raw))
	if err != nil {
		return "", zerr.With(invalidSpec(loc, "location cannot be made absolute"), "cause", err.Error())
	}
	return path, nil
}

func writeArchive(t target) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create archive directory"), "path", t.path)
	}
	//nolint:gosec // Path was validated and normalized
	if err := os.WriteFile(t.path, t.data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive"), "path", t.path)
	}
	return nil
}
