package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Resolver expands classpath entries into concrete paths.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveEntries expands classpath entries relative to root. Entries keep their order;
// the matches of one glob are sorted. A path seen twice keeps its first position.
func (r *Resolver) ResolveEntries(entries []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	result := make([]string, 0, len(entries))

	for _, entry := range entries {
		path := entry
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, entry)
		}
		path = filepath.Clean(path)

		var matches []string
		if strings.ContainsAny(entry, "*?[") {
			var err error
			matches, err = filepath.Glob(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to glob classpath entry"), "path", path)
			}
			if len(matches) == 0 {
				return nil, zerr.With(zerr.New("classpath entry not found"), "path", path)
			}
			sort.Strings(matches)
		} else {
			if _, err := statPath(path); err != nil {
				return nil, err
			}
			matches = []string{path}
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			result = append(result, match)
		}
	}

	return result, nil
}

func statPath(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(zerr.New("classpath entry not found"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat classpath entry"), "path", path)
	}
	return info, nil
}
