package closure_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/carton/internal/adapters/classfile"
	"go.trai.ch/carton/internal/adapters/logger"
	"go.trai.ch/carton/internal/adapters/telemetry"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports/mocks"
	"go.trai.ch/carton/internal/engine/closure"
	"go.trai.ch/carton/internal/testutil/classgen"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// mapSource serves payloads from memory and counts lookups.
type mapSource struct {
	mu      sync.Mutex
	units   map[string][]byte
	errs    map[string]error
	located map[string]int
}

func newMapSource(units map[string][]byte) *mapSource {
	return &mapSource{units: units, errs: map[string]error{}, located: map[string]int{}}
}

func (s *mapSource) Locate(_ context.Context, name domain.UnitName) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.located[name.String()]++
	if err, ok := s.errs[name.String()]; ok {
		return nil, err
	}
	p, ok := s.units[name.String()]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnitNotLocated, "not in test source"), "unit", name.String())
	}
	return p, nil
}

func (s *mapSource) lookups(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.located[name]
}

func newBuilder(t *testing.T) (*closure.Builder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	return closure.NewBuilder(classfile.NewScanner(), lg, telemetry.NewNoOp()), &buf
}

func names(ss ...string) []domain.UnitName {
	out := make([]domain.UnitName, len(ss))
	for i, s := range ss {
		out[i] = domain.NewUnitName(s)
	}
	return out
}

func TestBuild_ExampleScenario(t *testing.T) {
	t.Parallel()

	src := newMapSource(map[string][]byte{
		"app.Main":   classgen.Class("app.Main", "app.Helper", "lib.Base", "sys.Internal"),
		"app.Helper": classgen.Class("app.Helper"),
		"lib.Base":   classgen.Class("lib.Base"),
	})
	b, _ := newBuilder(t)

	got, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{
		Filter: domain.ExcludePrefixes("sys."),
	})
	require.NoError(t, err)

	want := []string{"app.Helper", "app.Main", "lib.Base"}
	if diff := cmp.Diff(want, domain.Strings(got.Names())); diff != "" {
		t.Errorf("closure mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.Missing())
	assert.Equal(t, 0, src.lookups("sys.Internal"))
	assert.Equal(t, src.units["lib.Base"], mustPayload(t, got, "lib.Base"))
}

func mustPayload(t *testing.T, c *domain.Closure, name string) []byte {
	t.Helper()
	p, ok := c.Payload(domain.NewUnitName(name))
	require.True(t, ok, name)
	return p
}

func TestBuild_FilterPrunesSubtree(t *testing.T) {
	t.Parallel()

	// app.Deep is only reachable through the excluded ext.Bridge.
	src := newMapSource(map[string][]byte{
		"app.Main":   classgen.Class("app.Main", "ext.Bridge", "app.Util"),
		"app.Util":   classgen.Class("app.Util"),
		"ext.Bridge": classgen.Class("ext.Bridge", "app.Deep"),
		"app.Deep":   classgen.Class("app.Deep"),
	})
	b, _ := newBuilder(t)

	got, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{
		Filter: domain.ExcludePrefixes("ext."),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"app.Main", "app.Util"}, domain.Strings(got.Names()))
	assert.Equal(t, 0, src.lookups("ext.Bridge"))
	assert.Equal(t, 0, src.lookups("app.Deep"))
}

func TestBuild_IncludeFilter(t *testing.T) {
	t.Parallel()

	src := newMapSource(map[string][]byte{
		"app.Main": classgen.Class("app.Main", "app.Util", "lib.Base"),
		"app.Util": classgen.Class("app.Util"),
		"lib.Base": classgen.Class("lib.Base"),
	})
	b, _ := newBuilder(t)

	got, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{
		Filter: domain.IncludePrefixes("app."),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.Main", "app.Util"}, domain.Strings(got.Names()))
}

func TestBuild_RootsAreNotFiltered(t *testing.T) {
	t.Parallel()

	src := newMapSource(map[string][]byte{
		"ext.Entry": classgen.Class("ext.Entry", "ext.Other", "app.Util"),
		"app.Util":  classgen.Class("app.Util"),
	})
	b, _ := newBuilder(t)

	got, err := b.Build(context.Background(), src, names("ext.Entry"), closure.Options{
		Filter: domain.ExcludePrefixes("ext."),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.Util", "ext.Entry"}, domain.Strings(got.Names()))
}

func TestBuild_Cycle(t *testing.T) {
	t.Parallel()

	src := newMapSource(map[string][]byte{
		"app.A": classgen.Class("app.A", "app.B"),
		"app.B": classgen.Class("app.B", "app.A"),
	})
	b, _ := newBuilder(t)

	got, err := b.Build(context.Background(), src, names("app.A"), closure.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"app.A", "app.B"}, domain.Strings(got.Names()))
	assert.Equal(t, 1, src.lookups("app.A"))
	assert.Equal(t, 1, src.lookups("app.B"))
	assert.Equal(t, []string{"app.B"}, domain.Strings(got.Graph().Edges(domain.NewUnitName("app.A"))))
	assert.Equal(t, []string{"app.A"}, domain.Strings(got.Graph().Edges(domain.NewUnitName("app.B"))))
}

func TestBuild_MissingDependency(t *testing.T) {
	t.Parallel()

	units := map[string][]byte{
		"app.Main":   classgen.Class("app.Main", "app.Helper", "lib.Gone"),
		"app.Helper": classgen.Class("app.Helper"),
	}

	t.Run("not tolerated", func(t *testing.T) {
		t.Parallel()
		b, _ := newBuilder(t)

		_, err := b.Build(context.Background(), newMapSource(units), names("app.Main"), closure.Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnresolvedDependency)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "lib.Gone", zErr.Metadata()["unit"])
		assert.Equal(t, "app.Main", zErr.Metadata()["referenced_by"])
	})

	t.Run("tolerated", func(t *testing.T) {
		t.Parallel()
		b, logs := newBuilder(t)

		got, err := b.Build(context.Background(), newMapSource(units), names("app.Main"), closure.Options{
			TolerateMissing: true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"app.Helper", "app.Main"}, domain.Strings(got.Names()))
		assert.Equal(t, []string{"lib.Gone"}, domain.Strings(got.Missing()))
		assert.ErrorIs(t, got.MissingCause(domain.NewUnitName("lib.Gone")), domain.ErrUnitNotLocated)
		assert.Empty(t, got.Graph().Dependents(domain.NewUnitName("lib.Gone")))
		assert.Contains(t, logs.String(), "lib.Gone")
	})
}

func TestBuild_MissingRoot(t *testing.T) {
	t.Parallel()

	b, _ := newBuilder(t)
	src := newMapSource(map[string][]byte{})

	_, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{})
	require.ErrorIs(t, err, domain.ErrUnresolvedDependency)

	got, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{TolerateMissing: true})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.True(t, got.IsMissing(domain.NewUnitName("app.Main")))
}

func TestBuild_ParseError(t *testing.T) {
	t.Parallel()

	units := map[string][]byte{
		"app.Main":   classgen.Class("app.Main", "app.Broken"),
		"app.Broken": []byte("not a class"),
	}

	b, _ := newBuilder(t)
	_, err := b.Build(context.Background(), newMapSource(units), names("app.Main"), closure.Options{})
	require.ErrorIs(t, err, domain.ErrParse)

	got, err := b.Build(context.Background(), newMapSource(units), names("app.Main"), closure.Options{TolerateMissing: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.Main"}, domain.Strings(got.Names()))
	assert.Equal(t, []string{"app.Broken"}, domain.Strings(got.Missing()))
}

func TestBuild_SourceErrorAlwaysSurfaces(t *testing.T) {
	t.Parallel()

	src := newMapSource(map[string][]byte{
		"app.Main": classgen.Class("app.Main", "app.Helper"),
	})
	ioErr := errors.New("disk on fire")
	src.errs["app.Helper"] = ioErr

	b, _ := newBuilder(t)
	_, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{TolerateMissing: true})
	require.ErrorIs(t, err, ioErr)
}

func TestBuild_NoRoots(t *testing.T) {
	t.Parallel()

	b, _ := newBuilder(t)
	_, err := b.Build(context.Background(), newMapSource(nil), nil, closure.Options{})
	require.ErrorIs(t, err, domain.ErrNoRootsSpecified)
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	b, _ := newBuilder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, newMapSource(nil), names("app.Main"), closure.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_DeterministicAndConcurrent(t *testing.T) {
	t.Parallel()

	units := map[string][]byte{
		"app.Main": classgen.Class("app.Main", "app.A", "app.B", "lib.C"),
		"app.A":    classgen.Class("app.A", "lib.C", "lib.D"),
		"app.B":    classgen.Class("app.B", "app.A"),
		"lib.C":    classgen.Class("lib.C", "lib.D"),
		"lib.D":    classgen.Class("lib.D", "app.Main"),
	}
	b, _ := newBuilder(t)
	src := newMapSource(units)

	want, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{})
			errs[i] = err
			if c != nil {
				results[i] = domain.Strings(c.Names())
			}
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, domain.Strings(want.Names()), results[i])
	}
}

func TestBuild_ScansEachUnitOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockSymbolScanner(ctrl)

	src := newMapSource(map[string][]byte{
		"app.A": []byte("a"),
		"app.B": []byte("b"),
		"ext.C": []byte("c"),
	})

	scanner.EXPECT().Scan([]byte("a")).Return(names("app.B", "ext.C"), nil).Times(1)
	scanner.EXPECT().Scan([]byte("b")).Return(names("app.A"), nil).Times(1)

	lg := logger.New()
	lg.SetOutput(io.Discard)
	b := closure.NewBuilder(scanner, lg, telemetry.NewNoOp())

	got, err := b.Build(context.Background(), src, names("app.A", "app.B"), closure.Options{
		Filter: domain.ExcludePrefixes("ext."),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.A", "app.B"}, domain.Strings(got.Names()))
}

func TestBuild_RecordsVertex(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	tel.EXPECT().Record(gomock.Any(), "closure app.Main").Return(context.Background(), vertex)
	vertex.EXPECT().Log(domain.LogLevelInfo, "resolved 1 units")
	vertex.EXPECT().Complete(nil)

	lg := logger.New()
	lg.SetOutput(io.Discard)
	b := closure.NewBuilder(classfile.NewScanner(), lg, tel)

	src := newMapSource(map[string][]byte{"app.Main": classgen.Class("app.Main")})
	_, err := b.Build(context.Background(), src, names("app.Main"), closure.Options{})
	require.NoError(t, err)
}
