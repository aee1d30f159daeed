package borr

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"borr/internal/textutil"
)

// Reserved field names of the global section.
const (
	LangIDField   = "lang_id"
	LangDescField = "lang_desc"
	LangVerField  = "lang_ver"
)

// GlobalSection is the key of the unnamed top-level section.
const GlobalSection = ""

// DefaultMaxExpansions caps the substitutions per lookup whose replacement
// itself contains a placeholder.
const DefaultMaxExpansions = 64

// Section maps field names to their raw values.
type Section map[string]string

// Language is a parsed language file: metadata plus a translation table of
// section -> field -> value.
type Language struct {
	table         map[string]Section
	registry      *Registry
	logger        zerolog.Logger
	id            string
	description   string
	version       Version
	maxExpansions int
}

// Option configures a Language before parsing.
type Option func(*Language)

// WithRegistry makes the language resolve variables through r instead of
// DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(l *Language) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithMaxExpansions overrides DefaultMaxExpansions. Values below one are
// ignored.
func WithMaxExpansions(n int) Option {
	return func(l *Language) {
		if n > 0 {
			l.maxExpansions = n
		}
	}
}

// WithLogger sets the logger used for expansion diagnostics. Languages log
// nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Language) {
		l.logger = logger
	}
}

// New creates an empty language.
func New(opts ...Option) *Language {
	l := &Language{
		table:         make(map[string]Section),
		registry:      DefaultRegistry,
		logger:        zerolog.Nop(),
		version:       UnsetVersion(),
		maxExpansions: DefaultMaxExpansions,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromString parses the contents of a language file.
func FromString(contents string, opts ...Option) (*Language, error) {
	lines := textutil.Split(contents, "\n", 0)
	if len(lines) == 0 {
		return nil, ErrMalformedInput
	}

	l := New(opts...)
	p := NewParser(l)
	for _, line := range lines {
		p.ParseLine(line)
	}

	return l, nil
}

// FromReader reads r to the end and parses its contents.
func FromReader(r io.Reader, opts ...Option) (*Language, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read language: %w", err)
	}
	return FromString(string(data), opts...)
}

// FromFile reads and parses the language file at path. Missing and
// non-regular files fail with ErrInvalidFile.
func FromFile(path string, opts ...Option) (*Language, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFile, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q is not a regular file", ErrInvalidFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language file %q: %w", path, err)
	}

	l, err := FromString(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return l, nil
}

// ID returns the lang_id metadata field.
func (l *Language) ID() string { return l.id }

// Description returns the lang_desc metadata field.
func (l *Language) Description() string { return l.description }

// Version returns the parsed lang_ver metadata field.
func (l *Language) Version() Version { return l.version }

// Clear drops all metadata and translations.
func (l *Language) Clear() {
	l.id = ""
	l.description = ""
	l.version = UnsetVersion()
	l.table = make(map[string]Section)
}

// Section returns a copy of a whole section. Variables are not expanded.
func (l *Language) Section(name string) (Section, bool) {
	sect, ok := l.table[name]
	if !ok {
		return nil, false
	}
	return maps.Clone(sect), true
}

// Sections returns the sorted names of all non-global sections.
func (l *Language) Sections() []string {
	names := make([]string, 0, len(l.table))
	for name := range l.table {
		if name == GlobalSection {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Fields returns the sorted field names of a section.
func (l *Language) Fields(section string) []string {
	return slices.Sorted(maps.Keys(l.table[section]))
}

// String returns a translation with all variables expanded.
func (l *Language) String(section, field string) (string, bool) {
	return l.Lookup(section, field, true)
}

// RawString returns a translation exactly as stored.
func (l *Language) RawString(section, field string) (string, bool) {
	return l.Lookup(section, field, false)
}

// Lookup returns the value of section/field, expanding variables when
// expand is true. Missing entries report false.
func (l *Language) Lookup(section, field string, expand bool) (string, bool) {
	value, ok := l.raw(section, field)
	if !ok {
		return "", false
	}
	if !expand {
		return value, true
	}
	return l.expand(value, []string{refKey(section, field)}), true
}

func (l *Language) raw(section, field string) (string, bool) {
	sect, ok := l.table[section]
	if !ok {
		return "", false
	}
	value, ok := sect[field]
	return value, ok
}
