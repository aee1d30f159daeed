package interpolation

import (
	"regexp"
	"strings"

	"borr/internal/textutil"
)

// RefSeparator separates the section from the field in a cross-reference.
const RefSeparator = ":"

// Placeholder is a single ${...} occurrence inside a value.
type Placeholder struct {
	// Start and End are byte offsets of the whole token in the value.
	Start, End int
	// Name is the trimmed text between the braces.
	Name string
}

// Token returns the raw placeholder text as it appears in value.
func (p Placeholder) Token(value string) string {
	return value[p.Start:p.End]
}

// variablePattern matches ${name} and ${section:field}, tolerating blanks
// just inside the braces.
var variablePattern = regexp.MustCompile(`\$\{[ \t]*([A-Za-z_][A-Za-z0-9_]*(?::[A-Za-z_][A-Za-z0-9_]*)?)[ \t]*\}`)

// First returns the left-most placeholder in value.
func First(value string) (Placeholder, bool) {
	loc := variablePattern.FindStringSubmatchIndex(value)
	if loc == nil {
		return Placeholder{}, false
	}
	return Placeholder{
		Start: loc[0],
		End:   loc[1],
		Name:  textutil.TrimSpace(value[loc[2]:loc[3]]),
	}, true
}

// FindAll returns every placeholder in value in order of appearance.
func FindAll(value string) []Placeholder {
	locs := variablePattern.FindAllStringSubmatchIndex(value, -1)
	if len(locs) == 0 {
		return nil
	}

	placeholders := make([]Placeholder, 0, len(locs))
	for _, loc := range locs {
		placeholders = append(placeholders, Placeholder{
			Start: loc[0],
			End:   loc[1],
			Name:  textutil.TrimSpace(value[loc[2]:loc[3]]),
		})
	}
	return placeholders
}

// Replace substitutes the placeholder p in value with replacement.
func Replace(value string, p Placeholder, replacement string) string {
	return value[:p.Start] + replacement + value[p.End:]
}

// StripAll removes every placeholder from value.
func StripAll(value string) string {
	return variablePattern.ReplaceAllLiteralString(value, "")
}

// SplitRef splits a cross-reference name into its section and field.
func SplitRef(name string) (section, field string, ok bool) {
	if !strings.Contains(name, RefSeparator) {
		return "", "", false
	}

	tokens := textutil.Split(name, RefSeparator, 2)
	if len(tokens) != 2 {
		return "", "", false
	}
	return tokens[0], tokens[1], true
}
