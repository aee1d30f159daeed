package borr

import (
	"regexp"
	"strings"

	"borr/internal/textutil"
)

const (
	commentMarker   = '#'
	multilineMarker = "[]"
)

var (
	sectionPattern     = regexp.MustCompile(`^\[([A-Za-z_][A-Za-z0-9_]*)\]$`)
	translationPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*(?:\[\])?)[ \t]*=[ \t]*"((?:[^"\\]|\\.)*\\?)"$`)
)

// IsEmptyOrComment reports whether a line is blank or starts with '#'.
func IsEmptyOrComment(line string) bool {
	trimmed := textutil.TrimSpace(line)
	return trimmed == "" || trimmed[0] == commentMarker
}

// RemoveInlineComments strips a trailing '#' comment that is outside of a
// quoted value and returns the trimmed remainder.
func RemoveInlineComments(line string) string {
	if idx := commentIndex(line); idx >= 0 {
		line = line[:idx]
	}
	return textutil.TrimSpace(line)
}

// commentIndex returns the position of the first '#' outside double quotes,
// or -1. A backslash escapes a quote unless that quote is the last one on the
// line.
func commentIndex(line string) int {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch ch := line[i]; {
		case ch == '\\' && inQuotes && i+1 < len(line):
			if line[i+1] != '"' || strings.Contains(line[i+2:], `"`) {
				i++
			}
		case ch == '"':
			inQuotes = !inQuotes
		case ch == commentMarker && !inQuotes:
			return i
		}
	}
	return -1
}

// IsSection reports whether line is a section header of the form [name] and
// returns the name. Blanks around the brackets are tolerated, blanks inside
// are not.
func IsSection(line string) (bool, string) {
	m := sectionPattern.FindStringSubmatch(textutil.TrimSpace(line))
	if m == nil {
		return false, ""
	}
	return true, m[1]
}

// IsTranslation reports whether line assigns a quoted value to a field and
// returns the raw field token (including a trailing [] marker) and the value.
func IsTranslation(line string) (ok bool, field, value string) {
	m := translationPattern.FindStringSubmatch(textutil.TrimSpace(line))
	if m == nil {
		return false, "", ""
	}
	return true, m[1], unescapeValue(textutil.TrimSpace(m[2]))
}

// IsMultilineField reports whether a raw field token carries the [] marker.
func IsMultilineField(field string) bool {
	return strings.HasSuffix(field, multilineMarker)
}

// fieldName strips the multiline marker from a raw field token.
func fieldName(field string) string {
	return textutil.Trim(field, multilineMarker)
}

// unescapeValue resolves \" and \\. Other backslashes are kept as written.
func unescapeValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeValue(s string) string {
	return valueEscaper.Replace(s)
}
