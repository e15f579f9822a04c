// Package config provides the configuration loader for carton.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the configuration file searched for during discovery.
	DefaultFilename = "carton.yaml"

	// StateDir holds carton's own state below the configuration root.
	StateDir = ".carton"

	stateFilename    = "state.json"
	supportedVersion = "1"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader that discovers DefaultFilename.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename, logger: log}
}

// Load reads the configuration for cwd. An explicit path skips discovery and must exist.
// Without one, the nearest carton.yaml in cwd or its parents is used; if there is none the
// defaults rooted at cwd are returned.
func (l *FileConfigLoader) Load(cwd, path string) (*domain.Config, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return Load(path)
	}

	found, ok, err := l.discover(cwd)
	if err != nil {
		return nil, err
	}
	if !ok {
		if l.logger != nil {
			l.logger.Debug("no configuration found, using defaults", "cwd", cwd)
		}
		return withState(domain.DefaultConfig(filepath.Clean(cwd))), nil
	}
	if l.logger != nil {
		l.logger.Debug("loading configuration", "path", found)
	}
	return Load(found)
}

// discover walks up from dir until it finds the configuration file or reaches the root.
func (l *FileConfigLoader) discover(dir string) (string, bool, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, zerr.With(zerr.Wrap(err, "failed to stat config file"), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads a configuration file from the given path. Relative paths inside the file are
// resolved against the file's directory.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Cartonfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != supportedVersion {
		return nil, zerr.With(zerr.New("unsupported config version"), "version", file.Version)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve config directory")
	}

	cfg := domain.DefaultConfig(root)
	for _, entry := range file.Classpath {
		if entry == "" {
			return nil, zerr.With(zerr.New("empty classpath entry"), "path", path)
		}
		cfg.Classpath = append(cfg.Classpath, resolve(root, entry))
	}
	if file.Filter != nil {
		filter, err := domain.NewNameFilter(domain.FilterMode(file.Filter.Mode), file.Filter.Prefixes)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		cfg.Filter = filter
	}
	if file.TolerateMissing != nil {
		cfg.TolerateMissing = *file.TolerateMissing
	}
	if file.Output != "" {
		cfg.Output = resolve(root, file.Output)
	}

	return withState(cfg), nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func withState(cfg *domain.Config) *domain.Config {
	cfg.StateFile = filepath.Join(cfg.Root, StateDir, stateFilename)
	return cfg
}
