package catalog

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"borr/internal/filewalker"
	"borr/internal/worker"
	"borr/pkg/borr"
)

// Catalog indexes parsed languages by language id.
type Catalog struct {
	languages map[string]*borr.Language
	sources   map[string]string
	fallback  string
}

// Option configures Load.
type Option func(*options)

type options struct {
	langOpts []borr.Option
	fallback string
	workers  int
}

// WithWorkers sets how many files are parsed concurrently.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithFallback sets the language consulted when a lookup misses.
func WithFallback(langID string) Option {
	return func(o *options) { o.fallback = langID }
}

// WithLanguageOptions passes options to every parsed language.
func WithLanguageOptions(opts ...borr.Option) Option {
	return func(o *options) { o.langOpts = append(o.langOpts, opts...) }
}

// Load parses every language file under root. Files that fail to parse are
// logged and skipped; a later file with an already loaded id replaces the
// earlier one.
func Load(ctx context.Context, root string, opts ...Option) (*Catalog, error) {
	o := options{workers: 4}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := filewalker.NewWalker().Walk(root)
	if err != nil {
		return nil, fmt.Errorf("discover language files: %w", err)
	}

	pool := worker.NewPool(o.workers, func(ctx context.Context, entry filewalker.FileEntry) (*borr.Language, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return borr.FromFile(entry.Path, o.langOpts...)
	})

	c := &Catalog{
		languages: make(map[string]*borr.Language),
		sources:   make(map[string]string),
		fallback:  o.fallback,
	}

	for _, task := range pool.Execute(ctx, entries) {
		if task.Err != nil {
			log.Warn().Err(task.Err).Str("file", task.Input.Path).Msg("Skipping language file")
			continue
		}

		id := task.Result.ID()
		if id == "" {
			id = task.Input.Stem()
		}
		if prev, exists := c.sources[id]; exists {
			log.Warn().Str("lang", id).Str("previous", prev).Str("file", task.Input.Path).Msg("Duplicate language id")
		}
		c.languages[id] = task.Result
		c.sources[id] = task.Input.Path
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Int("files", len(entries)).Int("languages", len(c.languages)).Msg("Loaded language catalog")
	return c, nil
}

// New builds a catalog from already parsed languages.
func New(fallback string, langs ...*borr.Language) *Catalog {
	c := &Catalog{
		languages: make(map[string]*borr.Language, len(langs)),
		sources:   make(map[string]string, len(langs)),
		fallback:  fallback,
	}
	for _, l := range langs {
		c.languages[l.ID()] = l
	}
	return c
}

// Languages returns the sorted language ids.
func (c *Catalog) Languages() []string {
	return slices.Sorted(maps.Keys(c.languages))
}

// Language returns a language by id.
func (c *Catalog) Language(id string) (*borr.Language, bool) {
	l, ok := c.languages[id]
	return l, ok
}

// Source returns the file a language was loaded from.
func (c *Catalog) Source(id string) string {
	return c.sources[id]
}

// Fallback returns the fallback language id.
func (c *Catalog) Fallback() string { return c.fallback }

// String looks up an expanded translation in lang, then in the fallback
// language. The returned id names the language that answered.
func (c *Catalog) String(lang, section, field string) (value, from string, ok bool) {
	if l, exists := c.languages[lang]; exists {
		if v, found := l.String(section, field); found {
			return v, lang, true
		}
	}

	if c.fallback == "" || c.fallback == lang {
		return "", "", false
	}

	if l, exists := c.languages[c.fallback]; exists {
		if v, found := l.String(section, field); found {
			return v, c.fallback, true
		}
	}
	return "", "", false
}
