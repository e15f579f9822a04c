package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/carton/internal/adapters/classfile"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/testutil/classgen"
)

func TestDefine(t *testing.T) {
	t.Parallel()

	payload := classgen.Build(classgen.Spec{
		Name:       "app.Shape",
		Super:      "app.Base",
		Interfaces: []string{"app.Drawable", "app.Named"},
		References: []string{"lib.Canvas"},
		Access:     classgen.AccPublic | classgen.AccAbstract,
		SourceFile: "Shape.java",
	})

	unit, err := classfile.Define(domain.NewUnitName("app.Shape"), payload, "test.car")
	require.NoError(t, err)

	assert.Equal(t, "app.Shape", unit.Name.String())
	assert.Equal(t, "app.Base", unit.Super.String())
	assert.Equal(t, []string{"app.Drawable", "app.Named"}, domain.Strings(unit.Interfaces))
	assert.Equal(t, uint16(61), unit.MajorVersion)
	assert.Equal(t, "abstract class", unit.Kind())
	assert.Equal(t, "test.car", unit.Source)
	assert.Equal(t, payload, unit.Payload())
	assert.Contains(t, domain.Strings(unit.References), "lib.Canvas")
	assert.Contains(t, domain.Strings(unit.References), "java.lang.Object")
	assert.NotContains(t, domain.Strings(unit.References), "app.Shape")
}

func TestDefine_OwnsPayload(t *testing.T) {
	t.Parallel()

	payload := classgen.Class("app.Main")
	unit, err := classfile.Define(domain.NewUnitName("app.Main"), payload, "")
	require.NoError(t, err)

	payload[0] = 0
	assert.Equal(t, byte(0xCA), unit.Payload()[0])
}

func TestDefine_Interface(t *testing.T) {
	t.Parallel()

	payload := classgen.Build(classgen.Spec{
		Name:   "app.Runnable",
		Access: classgen.AccPublic | classgen.AccInterface | classgen.AccAbstract,
	})

	unit, err := classfile.Define(domain.NewUnitName("app.Runnable"), payload, "")
	require.NoError(t, err)
	assert.Equal(t, "interface", unit.Kind())
}

func TestDefine_NoSuper(t *testing.T) {
	t.Parallel()

	payload := classgen.Build(classgen.Spec{Name: "module-info", NoSuper: true})

	unit, err := classfile.Define(domain.NewUnitName("module-info"), payload, "")
	require.NoError(t, err)
	assert.True(t, unit.Super.IsZero())
}

func TestDefine_NameMismatch(t *testing.T) {
	t.Parallel()

	payload := classgen.Class("app.Other")

	_, err := classfile.Define(domain.NewUnitName("app.Main"), payload, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnitNameMismatch)
}

func TestDefine_Malformed(t *testing.T) {
	t.Parallel()

	_, err := classfile.Define(domain.NewUnitName("app.Main"), []byte("not a class"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestDefine_NonCanonicalReference(t *testing.T) {
	t.Parallel()

	_, err := classfile.Define(domain.NewUnitName("app.Main"), classgen.Class("app.Main", "a..b"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
}
