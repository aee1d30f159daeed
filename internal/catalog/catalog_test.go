package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"borr/internal/catalog"
	"borr/pkg/borr"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "en.borr", "lang_id = \"en_GB\"\n[menu]\nopen = \"Open\"\nclose = \"Close\"")
	writeFile(t, dir, "de.borr", "lang_id = \"de_DE\"\n[menu]\nopen = \"Öffnen\"")
	writeFile(t, dir, "nl.lang", "[menu]\nopen = \"Openen\"")
	writeFile(t, dir, "broken.borr", "\n\n")
	writeFile(t, dir, "readme.md", "# not a language")

	c, err := catalog.Load(context.Background(), dir,
		catalog.WithWorkers(2),
		catalog.WithFallback("en_GB"),
		catalog.WithLanguageOptions(borr.WithRegistry(borr.NewRegistry())),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"de_DE", "en_GB", "nl"}, c.Languages())
	require.Equal(t, filepath.Join(dir, "de.borr"), c.Source("de_DE"))

	value, from, ok := c.String("de_DE", "menu", "open")
	require.True(t, ok)
	require.Equal(t, "Öffnen", value)
	require.Equal(t, "de_DE", from)

	value, from, ok = c.String("de_DE", "menu", "close")
	require.True(t, ok)
	require.Equal(t, "Close", value)
	require.Equal(t, "en_GB", from)

	_, _, ok = c.String("de_DE", "menu", "missing")
	require.False(t, ok)

	value, _, ok = c.String("unknown", "menu", "open")
	require.True(t, ok)
	require.Equal(t, "Open", value)
}

func TestLoadCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "en.borr", "lang_id = \"en\"")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.Load(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	t.Parallel()

	en, err := borr.FromString("lang_id = \"en\"\n[s]\na = \"A\"")
	require.NoError(t, err)

	c := catalog.New("", en)
	require.Equal(t, []string{"en"}, c.Languages())

	l, ok := c.Language("en")
	require.True(t, ok)
	require.Same(t, en, l)

	_, _, ok = c.String("fr", "s", "a")
	require.False(t, ok)
}
