package borr

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"borr/internal/interpolation"
)

// Library identification used by the built-in expanders.
const (
	LibName    = "borr"
	LibVersion = "0.1.0"
)

// LibURL is returned by the liburl expander. Builds may override it with
// -ldflags "-X borr/pkg/borr.LibURL=...".
var LibURL = "https://github.com/borr-lang/borr"

// Expander maps a variable name to its replacement text.
type Expander func(name string) string

// Registry resolves variable names to expanders. User callbacks take
// precedence over the built-in defaults. A Registry is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	custom   map[string]Expander
	defaults map[string]Expander
}

// DefaultRegistry is the process-wide registry used by languages created
// without WithRegistry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding only the built-in expanders.
func NewRegistry() *Registry {
	return &Registry{
		custom: make(map[string]Expander),
		defaults: map[string]Expander{
			"date":   dateExpander,
			"time":   timeExpander,
			"lib":    libExpander,
			"os":     osExpander,
			"liburl": liburlExpander,
		},
	}
}

// Register adds a callback for name. It reports false, leaving the existing
// callback in place, when one is already registered.
func (r *Registry) Register(name string, fn Expander) bool {
	if fn == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.custom[name]; exists {
		return false
	}
	r.custom[name] = fn
	return true
}

// Unregister removes the callback for name. Built-in expanders cannot be
// removed.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.custom, name)
	r.mu.Unlock()
}

// Lookup returns the expander for name, preferring user callbacks.
func (r *Registry) Lookup(name string) (Expander, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.custom[name]; ok {
		return fn, true
	}
	fn, ok := r.defaults[name]
	return fn, ok
}

// Register adds a callback to DefaultRegistry.
func Register(name string, fn Expander) bool {
	return DefaultRegistry.Register(name, fn)
}

// Unregister removes a callback from DefaultRegistry.
func Unregister(name string) {
	DefaultRegistry.Unregister(name)
}

// ContainsVariable reports whether value holds a placeholder and returns the
// name of the first one.
func ContainsVariable(value string) (bool, string) {
	p, ok := interpolation.First(value)
	if !ok {
		return false, ""
	}
	return true, p.Name
}

// ExpandVariable resolves a single variable name against this language.
func (l *Language) ExpandVariable(name string) string {
	return l.expandVariable(name, nil)
}

// References returns the section:field cross-references in a raw value,
// in order of appearance.
func (l *Language) References(section, field string) []string {
	value, ok := l.raw(section, field)
	if !ok {
		return nil
	}

	var refs []string
	for _, p := range interpolation.FindAll(value) {
		if _, _, ok := interpolation.SplitRef(p.Name); ok {
			refs = append(refs, p.Name)
		}
	}
	return refs
}

// expand substitutes placeholders until none remain. stack holds the
// cross-references being resolved so cycles collapse to empty strings.
// Only substitutions that introduce new placeholders count towards the
// limit.
func (l *Language) expand(value string, stack []string) string {
	limit := l.maxExpansions
	if limit <= 0 {
		limit = DefaultMaxExpansions
	}

	nested := 0
	for {
		p, ok := interpolation.First(value)
		if !ok {
			return value
		}

		replacement := l.expandVariable(p.Name, stack)
		if _, grows := interpolation.First(replacement); grows {
			if nested >= limit {
				l.logger.Debug().Int("limit", limit).Str("variable", p.Name).Msg("Expansion limit reached")
				return interpolation.StripAll(value)
			}
			nested++
		}
		value = interpolation.Replace(value, p, replacement)
	}
}

func (l *Language) expandVariable(name string, stack []string) string {
	registry := l.registry
	if registry == nil {
		registry = DefaultRegistry
	}
	if fn, ok := registry.Lookup(name); ok {
		return fn(name)
	}

	section, field, ok := interpolation.SplitRef(name)
	if !ok {
		return ""
	}

	key := refKey(section, field)
	if slices.Contains(stack, key) {
		l.logger.Debug().Strs("chain", stack).Str("variable", key).Msg("Cyclic cross-reference")
		return ""
	}

	value, ok := l.raw(section, field)
	if !ok {
		return ""
	}
	return l.expand(value, append(stack[:len(stack):len(stack)], key))
}

func refKey(section, field string) string {
	return section + interpolation.RefSeparator + field
}

func dateExpander(string) string {
	return time.Now().Format(time.DateOnly)
}

func timeExpander(string) string {
	return time.Now().Format(time.TimeOnly)
}

func libExpander(string) string {
	return LibName + " v" + LibVersion
}

func liburlExpander(string) string {
	return LibURL
}

var osNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "macOS",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
	"android": "Android",
	"ios":     "iOS",
}

func osExpander(string) string {
	if name, ok := osNames[runtime.GOOS]; ok {
		return name
	}
	return runtime.GOOS
}
