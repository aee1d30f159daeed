package borr

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteTo renders the language back into borr text: metadata first, then
// every section with its fields in sorted order. Multi-line values become
// repeated field[] lines.
func (l *Language) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	for _, field := range []string{LangIDField, LangDescField, LangVerField} {
		if value, ok := l.raw(GlobalSection, field); ok {
			writeField(&buf, field, value)
		}
	}

	for _, section := range l.Sections() {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", section)
		for _, field := range l.Fields(section) {
			value, _ := l.raw(section, field)
			writeField(&buf, field, value)
		}
	}

	return buf.WriteTo(w)
}

// Format returns the rendered language as a string.
func (l *Language) Format() string {
	var sb strings.Builder
	_, _ = l.WriteTo(&sb)
	return sb.String()
}

func writeField(buf *bytes.Buffer, field, value string) {
	if !strings.Contains(value, "\n") {
		fmt.Fprintf(buf, "%s = \"%s\"\n", field, escapeValue(value))
		return
	}
	for _, line := range strings.Split(value, "\n") {
		fmt.Fprintf(buf, "%s%s = \"%s\"\n", field, multilineMarker, escapeValue(line))
	}
}
