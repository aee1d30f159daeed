package borr_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"borr/pkg/borr"
)

func TestFromStringMetadata(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromString(strings.Join([]string{
		`lang_id = "in"`,
		`lang_desc = "desc"`,
		`lang_ver = "1.2.3"`,
	}, "\n"))
	require.NoError(t, err)

	require.Equal(t, "in", lang.ID())
	require.Equal(t, "desc", lang.Description())
	require.Equal(t, uint64(1), lang.Version().Major())
	require.Equal(t, uint64(2), lang.Version().Minor())
	require.Equal(t, uint64(3), lang.Version().Revision())
	require.Empty(t, lang.Sections())

	id, ok := lang.String(borr.GlobalSection, borr.LangIDField)
	require.True(t, ok)
	require.Equal(t, "in", id)
}

func TestFromStringMalformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "\n", "\n\n\n"} {
		lang, err := borr.FromString(input)
		require.ErrorIs(t, err, borr.ErrMalformedInput)
		require.Nil(t, lang)
	}
}

func TestSingleLineFields(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromString("[page]\n" +
		"a = \"one\"\n" +
		"b=\"two\"\n" +
		"c   =   \"three\"\r\n" +
		"d\t=\t\"four\"\n")
	require.NoError(t, err)

	for field, expected := range map[string]string{"a": "one", "b": "two", "c": "three", "d": "four"} {
		value, ok := lang.RawString("page", field)
		require.True(t, ok, field)
		require.Equal(t, expected, value)
	}
}

func TestMultilineFields(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromString(strings.Join([]string{
		"[about]",
		`text[] = "first"`,
		`title = "About"`,
		`text[] = "second"`,
		`other[] = "x"`,
		`text[] = "third"`,
	}, "\n"))
	require.NoError(t, err)

	text, ok := lang.RawString("about", "text")
	require.True(t, ok)
	require.Equal(t, "first\nsecond\nthird", text)

	title, _ := lang.RawString("about", "title")
	require.Equal(t, "About", title)

	_, ok = lang.RawString("about", "text[]")
	require.False(t, ok)
}

func TestFieldOverwrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{
			name:     "last single line wins",
			lines:    []string{`f = "a"`, `f = "b"`},
			expected: "b",
		},
		{
			name:     "single line is never appended to",
			lines:    []string{`f = "a"`, `f[] = "b"`},
			expected: "b",
		},
		{
			name:     "single line overwrites multiline",
			lines:    []string{`f[] = "a"`, `f[] = "b"`, `f = "c"`},
			expected: "c",
		},
		{
			name:     "multiline restarts after overwrite",
			lines:    []string{`f = "a"`, `f[] = "b"`, `f[] = "c"`},
			expected: "b\nc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lang, err := borr.FromString("[s]\n" + strings.Join(tt.lines, "\n"))
			require.NoError(t, err)

			value, ok := lang.RawString("s", "f")
			require.True(t, ok)
			require.Equal(t, tt.expected, value)
		})
	}
}

func TestSectionTrackingIsPerParse(t *testing.T) {
	t.Parallel()

	first, err := borr.FromString("[first]\nx = \"1\"")
	require.NoError(t, err)
	require.Equal(t, []string{"first"}, first.Sections())

	second, err := borr.FromString("lang_id = \"de\"\ny = \"2\"")
	require.NoError(t, err)
	require.Equal(t, "de", second.ID())
	require.Empty(t, second.Sections())
	_, ok := second.RawString(borr.GlobalSection, "y")
	require.False(t, ok)
}

func TestParserStateAndClear(t *testing.T) {
	t.Parallel()

	lang := borr.New()
	p := borr.NewParser(lang)
	require.Equal(t, borr.GlobalSection, p.CurrentSection())

	p.ParseLine(`lang_id = "fr"`)
	p.ParseLine("[menu] # main menu")
	require.Equal(t, "menu", p.CurrentSection())
	p.ParseLine(`open = "Ouvrir"`)
	p.ParseLine("[9bad]")
	require.Equal(t, "menu", p.CurrentSection())
	p.ParseLine(`close = "Fermer"`)

	require.Equal(t, "fr", lang.ID())
	require.Equal(t, []string{"close", "open"}, lang.Fields("menu"))

	lang.Clear()
	require.Empty(t, lang.ID())
	require.False(t, lang.Version().IsSet())
	require.Empty(t, lang.Sections())
}

func TestAbsence(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromString("[a]\nx = \"1\"")
	require.NoError(t, err)

	value, ok := lang.String("missingSection", "missingField")
	require.False(t, ok)
	require.Empty(t, value)

	_, ok = lang.String("a", "missingField")
	require.False(t, ok)

	sect, ok := lang.Section("missingSection")
	require.False(t, ok)
	require.Nil(t, sect)
}

func TestSectionIsACopy(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromString("[a]\nx = \"${a:y}\"\ny = \"1\"")
	require.NoError(t, err)

	sect, ok := lang.Section("a")
	require.True(t, ok)
	require.Equal(t, borr.Section{"x": "${a:y}", "y": "1"}, sect)

	sect["x"] = "changed"
	value, _ := lang.RawString("a", "x")
	require.Equal(t, "${a:y}", value)
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromFile(filepath.Join("testdata", "en_GB.borr"), borr.WithRegistry(borr.NewRegistry()))
	require.NoError(t, err)

	require.Equal(t, "en_GB", lang.ID())
	require.Equal(t, "British English translations for My Awesome App!", lang.Description())
	require.Equal(t, "v1.0.0", lang.Version().String())
	require.Equal(t, []string{"about_page", "start_page", "variables_tests"}, lang.Sections())

	button, ok := lang.String("start_page", "my_button")
	require.True(t, ok)
	require.Equal(t, "Click me!", button)

	hash, _ := lang.String("variables_tests", "hash_in_value")
	require.Equal(t, "Item # 1", hash)

	about, _ := lang.String("about_page", "about_text")
	lines := strings.Split(about, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, `Code for "Click me!" button copied from StackOverflow`, lines[2])

	still, ok := lang.String("variables_tests", "still_variables")
	require.True(t, ok)
	require.Equal(t, "yes", still)

	_, ok = lang.RawString(borr.GlobalSection, "unknown_global")
	require.False(t, ok)
}

func TestFromFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := borr.FromFile(filepath.Join(dir, "missing.borr"))
	require.ErrorIs(t, err, borr.ErrInvalidFile)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = borr.FromFile(dir)
	require.ErrorIs(t, err, borr.ErrInvalidFile)

	empty := filepath.Join(dir, "empty.borr")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = borr.FromFile(empty)
	require.ErrorIs(t, err, borr.ErrMalformedInput)
}

func TestFromReader(t *testing.T) {
	t.Parallel()

	lang, err := borr.FromReader(strings.NewReader("lang_id = \"nl\"\n[s]\nk = \"v\""))
	require.NoError(t, err)
	require.Equal(t, "nl", lang.ID())
}
