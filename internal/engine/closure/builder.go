// Package closure computes the transitive set of units reachable from a set of roots.
package closure

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options control one closure computation.
type Options struct {
	// Filter decides which discovered names are followed. Roots are never filtered.
	Filter domain.NameFilter
	// TolerateMissing drops unlocatable or unparseable units instead of failing.
	TolerateMissing bool
}

// Builder walks reference edges with an explicit worklist. A Builder holds no per-run state,
// so concurrent Build calls are safe.
type Builder struct {
	scanner   ports.SymbolScanner
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewBuilder creates a Builder.
func NewBuilder(scanner ports.SymbolScanner, logger ports.Logger, telemetry ports.Telemetry) *Builder {
	return &Builder{
		scanner:   scanner,
		logger:    logger,
		telemetry: telemetry,
	}
}

// run is the state owned by one Build call.
type run struct {
	source  ports.UnitSource
	opts    Options
	result  *domain.Closure
	visited map[domain.UnitName]bool
	// discoveredBy remembers the first unit that referenced a name, for error reports.
	discoveredBy map[domain.UnitName]domain.UnitName
	stack        []domain.UnitName
}

// Build computes the closure of roots over source.
func (b *Builder) Build(
	ctx context.Context,
	source ports.UnitSource,
	roots []domain.UnitName,
	opts Options,
) (result *domain.Closure, err error) {
	if len(roots) == 0 {
		return nil, zerr.Wrap(domain.ErrNoRootsSpecified, "closure needs at least one root")
	}

	ctx, vertex := b.telemetry.Record(ctx, "closure "+strings.Join(domain.Strings(roots), " "))
	defer func() { vertex.Complete(err) }()

	r := &run{
		source:       source,
		opts:         opts,
		result:       domain.NewClosure(roots),
		visited:      make(map[domain.UnitName]bool),
		discoveredBy: make(map[domain.UnitName]domain.UnitName),
	}
	// Reversed so the first root is visited first.
	for _, root := range slices.Backward(roots) {
		r.stack = append(r.stack, root)
	}

	for len(r.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		if r.visited[name] {
			continue
		}
		r.visited[name] = true

		if err := b.visit(ctx, r, vertex, name); err != nil {
			return nil, err
		}
	}

	vertex.Log(domain.LogLevelInfo, "resolved "+strconv.Itoa(r.result.Len())+" units")
	return r.result, nil
}

func (b *Builder) visit(ctx context.Context, r *run, vertex ports.Vertex, name domain.UnitName) error {
	payload, err := r.source.Locate(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrUnitNotLocated) {
			return err
		}
		if !r.opts.TolerateMissing {
			return r.unresolved(name)
		}
		b.drop(r, vertex, name, err)
		return nil
	}

	refs, err := b.scanner.Scan(payload)
	if err != nil {
		err = zerr.With(err, "unit", name.String())
		if !r.opts.TolerateMissing || !errors.Is(err, domain.ErrParse) {
			return err
		}
		b.drop(r, vertex, name, err)
		return nil
	}

	r.result.Add(name, payload)
	b.logger.Debug("scanned unit", "unit", name.String(), "references", len(refs))

	// Pushed in reverse so references are visited in sorted order.
	for _, ref := range slices.Backward(refs) {
		if !r.opts.Filter.Accept(ref) || r.result.IsMissing(ref) {
			continue
		}
		r.result.Graph().AddEdge(name, ref)
		if r.visited[ref] {
			continue
		}
		if _, ok := r.discoveredBy[ref]; !ok {
			r.discoveredBy[ref] = name
		}
		r.stack = append(r.stack, ref)
	}
	return nil
}

func (b *Builder) drop(r *run, vertex ports.Vertex, name domain.UnitName, cause error) {
	r.result.Drop(name, cause)
	args := []any{"unit", name.String()}
	if parent, ok := r.discoveredBy[name]; ok {
		args = append(args, "referenced_by", parent.String())
	}
	b.logger.Warn("dropping unresolvable unit", append(args, "cause", cause.Error())...)
	vertex.Log(domain.LogLevelWarn, "dropped "+name.String())
}

func (r *run) unresolved(name domain.UnitName) error {
	err := zerr.With(zerr.Wrap(domain.ErrUnresolvedDependency, "unit cannot be located"), "unit", name.String())
	if parent, ok := r.discoveredBy[name]; ok {
		err = zerr.With(err, "referenced_by", parent.String())
	}
	return err
}
