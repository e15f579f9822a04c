// Package app implements the application layer for carton.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/carton/internal/engine/closure"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       ports.SourceOpener
	builder      *closure.Builder
	codec        ports.ArchiveCodec
	loaders      ports.LoaderFactory
	stores       ports.PackRecordStoreOpener
	logger       ports.Logger
	telemetry    ports.Telemetry
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	opener ports.SourceOpener,
	builder *closure.Builder,
	codec ports.ArchiveCodec,
	loaders ports.LoaderFactory,
	stores ports.PackRecordStoreOpener,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		builder:      builder,
		codec:        codec,
		loaders:      loaders,
		stores:       stores,
		logger:       logger,
		telemetry:    telemetry,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to timestamp pack records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Options carry the command-line overrides applied on top of the loaded configuration.
type Options struct {
	// WorkDir is where configuration discovery starts. Defaults to the process directory.
	WorkDir string
	// ConfigPath names an explicit configuration file.
	ConfigPath string
	// Classpath replaces the configured classpath when non-empty.
	Classpath []string
	// Include and Exclude replace the configured filter. Include wins when both are set.
	Include []string
	Exclude []string
	// TolerateMissing overrides the configured tolerance when non-nil.
	TolerateMissing *bool
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	cwd := opts.WorkDir
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(opts.Classpath) > 0 {
		cfg.Classpath = make([]string, 0, len(opts.Classpath))
		for _, entry := range opts.Classpath {
			if !filepath.IsAbs(entry) {
				entry = filepath.Join(cwd, entry)
			}
			cfg.Classpath = append(cfg.Classpath, entry)
		}
	}
	if len(cfg.Classpath) == 0 {
		cfg.Classpath = []string{cfg.Root}
	}

	switch {
	case len(opts.Include) > 0:
		cfg.Filter = domain.IncludePrefixes(opts.Include...)
	case len(opts.Exclude) > 0:
		cfg.Filter = domain.ExcludePrefixes(opts.Exclude...)
	}
	if opts.TolerateMissing != nil {
		cfg.TolerateMissing = *opts.TolerateMissing
	}

	return cfg, nil
}

func (a *App) closure(ctx context.Context, cfg *domain.Config, roots []string) (*domain.Closure, error) {
	names, err := domain.ParseUnitNames(roots)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, zerr.Wrap(domain.ErrNoRootsSpecified, "closure needs at least one root")
	}

	source, err := a.opener.Open(cfg.Classpath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open classpath")
	}

	return a.builder.Build(ctx, source, names, closure.Options{
		Filter:          cfg.Filter,
		TolerateMissing: cfg.TolerateMissing,
	})
}

// Closure computes the set of units reachable from roots.
func (a *App) Closure(ctx context.Context, roots []string, opts Options) (*domain.Closure, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return a.closure(ctx, cfg, roots)
}

// Units lists every unit on the configured classpath.
func (a *App) Units(ctx context.Context, opts Options) ([]domain.UnitName, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	source, err := a.opener.Open(cfg.Classpath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open classpath")
	}
	catalog, ok := source.(ports.UnitCatalog)
	if !ok {
		return nil, zerr.New("classpath cannot enumerate its units")
	}
	return catalog.Units(ctx)
}

// WhyResult explains why a unit is part of a closure.
type WhyResult struct {
	// Path is the shortest reference chain from the root to the target, both inclusive.
	Path []domain.UnitName
	// Dependents are every unit of the closure that references the target directly.
	Dependents []domain.UnitName
}

// Why returns the shortest reference chain from root to target and the target's direct
// dependents within the closure.
func (a *App) Why(ctx context.Context, root, target string, opts Options) (*WhyResult, error) {
	to, err := domain.ParseUnitName(target)
	if err != nil {
		return nil, err
	}

	c, err := a.Closure(ctx, []string{root}, opts)
	if err != nil {
		return nil, err
	}
	g := c.Graph()
	path, err := g.PathTo(c.Roots()[0], to)
	if err != nil {
		return nil, err
	}
	return &WhyResult{Path: path, Dependents: g.Dependents(to)}, nil
}

// PackResult describes one pack run.
type PackResult struct {
	Output  string
	Digest  digest.Digest
	Units   int
	Missing []domain.UnitName
	// Skipped is set when the output already held an identical archive.
	Skipped bool
}

// Pack computes the closure of roots and writes it as an archive to output.
// An empty output falls back to the configured one.
func (a *App) Pack(ctx context.Context, roots []string, output string, opts Options) (result *PackResult, err error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	output, err = resolveOutput(cfg, opts, output)
	if err != nil {
		return nil, err
	}

	c, err := a.closure(ctx, cfg, roots)
	if err != nil {
		return nil, err
	}

	ctx, vertex := a.telemetry.Record(ctx, "pack "+filepath.Base(output))
	defer func() { vertex.Complete(err) }()

	data, err := a.codec.Pack(c.Payloads())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to pack closure")
	}

	result = &PackResult{
		Output:  output,
		Digest:  digest.FromBytes(data),
		Units:   c.Len(),
		Missing: c.Missing(),
	}

	store, err := a.stores.Open(cfg.StateFile)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open pack record store")
	}

	unchanged, err := a.unchanged(store, output, result.Digest)
	if err != nil {
		return nil, err
	}
	if unchanged {
		a.logger.Info("archive is up to date", "output", output, "digest", result.Digest.String())
		vertex.Cached()
		result.Skipped = true
		return result, nil
	}

	if err := writeOutput(ctx, output, data); err != nil {
		return nil, err
	}
	vertex.Log(domain.LogLevelInfo, "wrote "+output)

	_, rv := a.telemetry.Record(ctx, "record "+filepath.Base(output), ports.WithInternal())
	err = store.Put(domain.PackRecord{
		Output:    output,
		Roots:     slices.Clone(roots),
		Units:     result.Units,
		Digest:    result.Digest.String(),
		Timestamp: a.now(),
	})
	rv.Complete(err)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to record packed archive")
	}
	return result, nil
}

func resolveOutput(cfg *domain.Config, opts Options, output string) (string, error) {
	if output == "" {
		output = cfg.Output
	}
	if output == "" {
		return "", zerr.New("no output archive given")
	}
	if !filepath.IsAbs(output) {
		base := opts.WorkDir
		if base == "" {
			base = cfg.Root
		}
		output = filepath.Join(base, output)
	}
	if !strings.EqualFold(filepath.Ext(output), domain.ArchiveExtension) {
		return "", zerr.With(zerr.New("output must be a "+domain.ArchiveExtension+" file"), "output", output)
	}
	return filepath.Clean(output), nil
}

// unchanged reports whether output already holds an archive with digest d.
func (a *App) unchanged(store ports.PackRecordStore, output string, d digest.Digest) (bool, error) {
	record, err := store.Get(output)
	if err != nil {
		return false, zerr.Wrap(err, "failed to read pack record")
	}
	if record == nil || record.Digest != d.String() {
		return false, nil
	}

	//nolint:gosec // Output path comes from the user
	existing, err := os.ReadFile(output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to read existing archive"), "output", output)
	}
	return digest.FromBytes(existing) == d, nil
}

func writeOutput(ctx context.Context, output string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "output", output)
	}
	//nolint:gosec // Output path comes from the user
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive"), "output", output)
	}
	return nil
}

// List returns the index of the archive at path. With verify set the entries are checked
// against the index and each entry carries its payload size.
func (a *App) List(path string, verify bool) ([]domain.IndexEntry, error) {
	data, err := readArchive(path)
	if err != nil {
		return nil, err
	}
	entries, err := a.codec.Index(data)
	if err != nil {
		return nil, zerr.With(err, "archive", path)
	}
	if !verify {
		return entries, nil
	}

	units, err := a.codec.Unpack(data)
	if err != nil {
		return nil, zerr.With(err, "archive", path)
	}
	for i := range entries {
		entries[i].Size = len(units[entries[i].Name])
	}
	return entries, nil
}

// Load resolves units from the given archives held in memory.
func (a *App) Load(ctx context.Context, archives, units []string) (_ []*domain.Unit, err error) {
	blobs := make([][]byte, 0, len(archives))
	for _, path := range archives {
		data, err := readArchive(path)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, data)
	}

	ctx, vertex := a.telemetry.Record(ctx, "load "+strings.Join(units, " "))
	defer func() { vertex.Complete(err) }()

	return resolveAll(ctx, a.loaders.NewMemoryLoader(blobs), units)
}

// Materialize writes each archive into dir under its base name and resolves units through the
// written files.
func (a *App) Materialize(ctx context.Context, dir string, archives, units []string) (_ []*domain.Unit, err error) {
	if dir == "" {
		return nil, zerr.Wrap(domain.ErrInvalidArchiveSpec, "no target directory given")
	}

	targets := make(map[string][]byte, len(archives))
	for _, path := range archives {
		data, err := readArchive(path)
		if err != nil {
			return nil, err
		}
		location := filepath.Join(dir, filepath.Base(path))
		if _, dup := targets[location]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArchiveSpec, "archives share a base name"), "location", location)
		}
		targets[location] = data
	}

	ctx, vertex := a.telemetry.Record(ctx, "materialize "+dir)
	defer func() { vertex.Complete(err) }()

	resolver, err := a.loaders.NewFilesystemLoader(ctx, targets)
	if err != nil {
		return nil, err
	}
	vertex.Log(domain.LogLevelInfo, "materialized "+strconv.Itoa(len(targets))+" archives")

	return resolveAll(ctx, resolver, units)
}

// resolveAll resolves names concurrently and returns the units in request order.
func resolveAll(ctx context.Context, resolver ports.UnitResolver, names []string) ([]*domain.Unit, error) {
	parsed, err := domain.ParseUnitNames(names)
	if err != nil {
		return nil, err
	}

	units := make([]*domain.Unit, len(parsed))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range parsed {
		g.Go(func() error {
			u, err := resolver.Resolve(ctx, name)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

func readArchive(path string) ([]byte, error) {
	//nolint:gosec // Archive path comes from the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read archive"), "archive", path)
	}
	return data, nil
}
