package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/carton/internal/adapters/telemetry/progrock"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_DistinctVertices(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, first := recorder.Record(ctx, "resolve app.Main")
	_, second := recorder.Record(ctx, "resolve app.Main")

	a, ok := first.(*progrock.Vertex)
	require.True(t, ok)
	b, ok := second.(*progrock.Vertex)
	require.True(t, ok)
	assert.NotEqual(t, a.Digest(), b.Digest())

	first.Complete(nil)
	second.Complete(errors.New("unit not found"))
	require.NoError(t, recorder.Close())
}

func TestRecorder_InternalVertex(t *testing.T) {
	recorder := progrock.New()

	_, vertex := recorder.Record(context.Background(), "cache lookup", ports.WithInternal())
	_, onTape := vertex.(*progrock.Vertex)
	assert.False(t, onTape)

	vertex.Complete(nil)
	require.NoError(t, recorder.Close())
}

func TestRecorder_ContextCarriesVertex(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "pack")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	vertex.Log(domain.LogLevelWarn, "dropped lib.Missing")
	vertex.Cached()
	require.NoError(t, recorder.Close())
}
