package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/carton/internal/adapters/archive"
	"go.trai.ch/carton/internal/adapters/loader"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/testutil/classgen"
	"go.trai.ch/zerr"
)

func TestFilesystemLoader_Materialize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	main := pack(t, map[string][]byte{"app.Main": classgen.Class("app.Main", "lib.Util")})
	lib := pack(t, map[string][]byte{"lib.Util": classgen.Class("lib.Util")})

	mainPath := filepath.Join(dir, "out", "main.car")
	libPath := filepath.Join(dir, "lib.car")
	l, err := loader.NewFilesystemLoader(context.Background(), map[string][]byte{
		mainPath:            main,
		"file://" + libPath: lib,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Equal(t, main, got)
	got, err = os.ReadFile(libPath)
	require.NoError(t, err)
	assert.Equal(t, lib, got)

	assert.ElementsMatch(t, []string{mainPath, libPath}, l.Paths())

	u, err := l.Resolve(context.Background(), domain.NewUnitName("lib.Util"))
	require.NoError(t, err)
	assert.Equal(t, libPath, u.Source)

	_, err = l.Resolve(context.Background(), domain.NewUnitName("app.Main"))
	require.NoError(t, err)
}

func TestFilesystemLoader_Overwrites(t *testing.T) {
	t.Parallel()

	path := writeFile(t, filepath.Join(t.TempDir(), "a.car"), []byte("stale"))
	data := pack(t, map[string][]byte{"app.Main": classgen.Class("app.Main")})

	_, err := loader.NewFilesystemLoader(context.Background(), map[string][]byte{path: data})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFilesystemLoader_ValidationWritesNothing(t *testing.T) {
	t.Parallel()

	data := pack(t, map[string][]byte{"app.Main": classgen.Class("app.Main")})

	tests := []struct {
		name    string
		targets func(t *testing.T, dir string) map[string][]byte
	}{
		{
			name: "empty payload",
			targets: func(_ *testing.T, dir string) map[string][]byte {
				return map[string][]byte{
					filepath.Join(dir, "a.car"): data,
					filepath.Join(dir, "b.car"): {},
				}
			},
		},
		{
			name: "wrong extension",
			targets: func(_ *testing.T, dir string) map[string][]byte {
				return map[string][]byte{
					filepath.Join(dir, "a.car"): data,
					filepath.Join(dir, "b.zip"): data,
				}
			},
		},
		{
			name: "directory",
			targets: func(t *testing.T, dir string) map[string][]byte {
				sub := filepath.Join(dir, "dir.car")
				require.NoError(t, os.Mkdir(sub, 0o750))
				return map[string][]byte{
					filepath.Join(dir, "a.car"): data,
					sub:                         data,
				}
			},
		},
		{
			name: "duplicate after normalization",
			targets: func(_ *testing.T, dir string) map[string][]byte {
				return map[string][]byte{
					filepath.Join(dir, "a.car"): data,
					dir + "/x/../a.car":         data,
				}
			},
		},
		{
			name: "remote host",
			targets: func(_ *testing.T, dir string) map[string][]byte {
				return map[string][]byte{
					filepath.Join(dir, "a.car"):    data,
					"file://example.com/tmp/b.car": data,
				}
			},
		},
		{
			name: "blank location",
			targets: func(_ *testing.T, dir string) map[string][]byte {
				return map[string][]byte{
					filepath.Join(dir, "a.car"): data,
					"  ":                        data,
				}
			},
		},
		{
			name:    "no archives",
			targets: func(*testing.T, string) map[string][]byte { return map[string][]byte{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			l, err := loader.NewFilesystemLoader(context.Background(), tt.targets(t, dir))
			require.ErrorIs(t, err, domain.ErrInvalidArchiveSpec)
			assert.Nil(t, l)
			assert.NoFileExists(t, filepath.Join(dir, "a.car"))
		})
	}
}

func TestFilesystemLoader_ErrorNamesLocation(t *testing.T) {
	t.Parallel()

	loc := filepath.Join(t.TempDir(), "b.car")
	_, err := loader.NewFilesystemLoader(context.Background(), map[string][]byte{loc: nil})
	require.ErrorIs(t, err, domain.ErrInvalidArchiveSpec)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, loc, zErr.Metadata()["location"])
}

func TestFilesystemLoader_WriteFailure(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o500))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	data := pack(t, map[string][]byte{"app.Main": classgen.Class("app.Main")})
	first := filepath.Join(dir, "a.car")
	failing := filepath.Join(locked, "b.car")

	l, err := loader.NewFilesystemLoader(context.Background(), map[string][]byte{
		first:   data,
		failing: data,
	})
	require.ErrorIs(t, err, domain.ErrMaterializeFailed)
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Nil(t, l)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, failing, zErr.Metadata()["path"])
	assert.Equal(t, []string{first}, zErr.Metadata()["written"])
	assert.FileExists(t, first)
}

func TestFactory(t *testing.T) {
	t.Parallel()

	data := pack(t, map[string][]byte{"app.Main": classgen.Class("app.Main")})
	f := loader.NewFactory(archive.NewCodec(), nil)

	_, err := f.NewMemoryLoader([][]byte{data}).Resolve(context.Background(), domain.NewUnitName("app.Main"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "a.car")
	r, err := f.NewFilesystemLoader(context.Background(), map[string][]byte{path: data})
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), domain.NewUnitName("app.Main"))
	require.NoError(t, err)

	r, err = f.NewFilesystemLoader(context.Background(), map[string][]byte{})
	require.ErrorIs(t, err, domain.ErrInvalidArchiveSpec)
	assert.True(t, r == nil, "failed materialization must return a nil interface")
}
