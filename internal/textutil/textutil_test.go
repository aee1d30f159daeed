package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"borr/internal/textutil"
)

func TestTrim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       func(string, string) string
		input    string
		cutset   string
		expected string
	}{
		{name: "trim start default", fn: textutil.TrimStart, input: " \t  THIS IS NOT TRIMMED   ", expected: "THIS IS NOT TRIMMED   "},
		{name: "trim start cutset", fn: textutil.TrimStart, input: "$$$%%%&&&THIS IS NOT TRIMMED", cutset: "$%&", expected: "THIS IS NOT TRIMMED"},
		{name: "trim end default", fn: textutil.TrimEnd, input: " \t  THIS IS NOT TRIMMED   ", expected: " \t  THIS IS NOT TRIMMED"},
		{name: "trim end cutset", fn: textutil.TrimEnd, input: "THIS IS NOT TRIMMED$$$%%%&&&", cutset: "$%&", expected: "THIS IS NOT TRIMMED"},
		{name: "trim both default", fn: textutil.Trim, input: " \t  THIS IS NOT TRIMMED \r", expected: "THIS IS NOT TRIMMED"},
		{name: "trim both cutset", fn: textutil.Trim, input: "///(())==THIS IS NOT TRIMMED$$$%%%&&&", cutset: "/()=$%&", expected: "THIS IS NOT TRIMMED"},
		{name: "trim everything", fn: textutil.Trim, input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tt.fn(tt.input, tt.cutset))
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		delimiters string
		maxTokens  int
		expected   []string
	}{
		{name: "empty input", input: "", delimiters: "\n", expected: nil},
		{name: "only delimiters", input: "\n\n\n", delimiters: "\n", expected: nil},
		{name: "single token", input: "line", delimiters: "\n", expected: []string{"line"}},
		{name: "skips empty tokens", input: "\na\n\nb\n", delimiters: "\n", expected: []string{"a", "b"}},
		{name: "multiple delimiters", input: "a:b;c", delimiters: ":;", expected: []string{"a", "b", "c"}},
		{name: "capped tokens keep remainder", input: "sect:field:extra", delimiters: ":", maxTokens: 2, expected: []string{"sect", "field:extra"}},
		{name: "cap larger than tokens", input: "a:b", delimiters: ":", maxTokens: 5, expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, textutil.Split(tt.input, tt.delimiters, tt.maxTokens))
		})
	}
}

func TestHashAndTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, textutil.Hash("abc"), textutil.Hash("abc"))
	require.NotEqual(t, textutil.Hash("abc"), textutil.Hash("abd"))
	require.Len(t, textutil.Hash(""), 64)

	require.Equal(t, "short", textutil.Truncate("short", 10))
	require.Equal(t, "Übe...", textutil.Truncate("Über alles", 3))
}
