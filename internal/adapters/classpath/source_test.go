package classpath_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/carton/internal/adapters/archive"
	"go.trai.ch/carton/internal/adapters/classpath"
	cfs "go.trai.ch/carton/internal/adapters/fs"
	"go.trai.ch/carton/internal/core/domain"
	"go.trai.ch/carton/internal/testutil/classgen"
)

func writeClass(t *testing.T, dir, name string, payload []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(domain.NewUnitName(name).ResourcePath()))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, payload, 0o600))
}

func writeArchive(t *testing.T, path string, units map[string][]byte) {
	t.Helper()
	in := make(map[domain.UnitName][]byte, len(units))
	for n, p := range units {
		in[domain.NewUnitName(n)] = p
	}
	data, err := archive.Pack(in)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func setup(t *testing.T) (string, *classpath.Opener) {
	t.Helper()
	root := t.TempDir()

	classes := filepath.Join(root, "classes")
	writeClass(t, classes, "app.Main", classgen.Class("app.Main", "lib.Base"))
	writeClass(t, classes, "lib.Base", []byte("shadowing"))

	writeArchive(t, filepath.Join(root, "lib.car"), map[string][]byte{
		"lib.Base":   classgen.Class("lib.Base"),
		"lib.Helper": classgen.Class("lib.Helper"),
	})

	return root, classpath.NewOpener(cfs.NewResolver(), cfs.NewWalker(), root)
}

func TestSource_Locate(t *testing.T) {
	_, opener := setup(t)
	src, err := opener.OpenSource([]string{"classes", "*.car"})
	require.NoError(t, err)

	ctx := context.Background()

	payload, err := src.Locate(ctx, domain.NewUnitName("app.Main"))
	require.NoError(t, err)
	assert.Equal(t, classgen.Class("app.Main", "lib.Base"), payload)

	// The directory comes first and shadows the archive.
	payload, err = src.Locate(ctx, domain.NewUnitName("lib.Base"))
	require.NoError(t, err)
	assert.Equal(t, []byte("shadowing"), payload)

	payload, err = src.Locate(ctx, domain.NewUnitName("lib.Helper"))
	require.NoError(t, err)
	assert.Equal(t, classgen.Class("lib.Helper"), payload)

	_, err = src.Locate(ctx, domain.NewUnitName("lib.Missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnitNotLocated)
}

func TestSource_Locate_ArchiveFirst(t *testing.T) {
	_, opener := setup(t)
	src, err := opener.OpenSource([]string{"lib.car", "classes"})
	require.NoError(t, err)

	payload, err := src.Locate(context.Background(), domain.NewUnitName("lib.Base"))
	require.NoError(t, err)
	assert.Equal(t, classgen.Class("lib.Base"), payload)
}

func TestSource_Locate_CorruptArchive(t *testing.T) {
	root, opener := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.car"), []byte("junk"), 0o600))

	src, err := opener.OpenSource([]string{"bad.car"})
	require.NoError(t, err)

	_, err = src.Locate(context.Background(), domain.NewUnitName("app.Main"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorruptArchive)
}

func TestSource_Locate_Canceled(t *testing.T) {
	_, opener := setup(t)
	src, err := opener.OpenSource([]string{"classes"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Locate(ctx, domain.NewUnitName("app.Main"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Units(t *testing.T) {
	_, opener := setup(t)
	src, err := opener.OpenSource([]string{"classes", "lib.car"})
	require.NoError(t, err)

	names, err := src.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app.Main", "lib.Base", "lib.Helper"}, domain.Strings(names))
}

func TestSource_Units_UnreadableDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	root, opener := setup(t)
	locked := filepath.Join(root, "classes", "lib")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	src, err := opener.OpenSource([]string{"classes"})
	require.NoError(t, err)

	names, err := src.Units(context.Background())
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Nil(t, names)
}

func TestOpener_Errors(t *testing.T) {
	root, opener := setup(t)

	_, err := opener.Open([]string{"nope"})
	require.Error(t, err)

	notDir := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o600))
	_, err = opener.Open([]string{notDir})
	require.Error(t, err)
}
