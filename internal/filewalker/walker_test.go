package filewalker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"borr/internal/filewalker"
)

func TestWalk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	for _, name := range []string{"en_GB.borr", "nested/de_DE.LANG", "notes.txt", "nested/fr.ini"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("lang_id = \"x\""), 0o644))
	}

	entries, err := filewalker.NewWalker().Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "en_GB", entries[0].Stem())
	require.Equal(t, ".borr", entries[0].Ext)
	require.Equal(t, "de_DE", entries[1].Stem())
	require.Equal(t, ".lang", entries[1].Ext)
}

func TestWalkSingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("lang_id = \"x\""), 0o644))

	entries, err := filewalker.NewWalker().Walk(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "custom", entries[0].Stem())
}

func TestWalkMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := filewalker.NewWalker().Walk(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
