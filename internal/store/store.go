package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"borr/internal/textutil"
	"borr/internal/worker"
	"borr/pkg/borr"
)

// ErrNotFound is returned when a language is not stored.
var ErrNotFound = errors.New("store: language not found")

// ErrMissingID is returned when a language is saved without an id.
var ErrMissingID = errors.New("store: missing language id")

const schema = `
CREATE TABLE IF NOT EXISTS borr_languages (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	version     TEXT NOT NULL,
	source      TEXT NOT NULL,
	content     TEXT NOT NULL,
	checksum    TEXT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS borr_entries (
	lang    TEXT NOT NULL REFERENCES borr_languages (id) ON DELETE CASCADE,
	section TEXT NOT NULL,
	field   TEXT NOT NULL,
	value   TEXT NOT NULL,
	hash    TEXT NOT NULL,
	PRIMARY KEY (lang, section, field)
);
`

// Entry is one stored translation.
type Entry struct {
	Section string
	Field   string
	Value   string
	Hash    string
}

// LanguageInfo describes a stored language.
type LanguageInfo struct {
	ID          string
	Description string
	Version     string
	Source      string
	Checksum    string
	Entries     int
}

// Store persists parsed languages in PostgreSQL. Each language is kept both
// as rendered borr text, which Load parses back, and as one row per field
// for direct SQL lookups.
type Store struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewStore creates a store that inserts entries in batches of batchSize.
func NewStore(pool *pgxpool.Pool, batchSize int) *Store {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Store{pool: pool, batchSize: batchSize}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save replaces the stored copy of lang under id. It reports false when the
// stored checksum already matches and nothing was written.
func (s *Store) Save(ctx context.Context, id string, lang *borr.Language, source string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("save language from %q: %w", source, ErrMissingID)
	}

	content := lang.Format()
	checksum := textutil.Hash(content)

	var stored string
	err := s.pool.QueryRow(ctx, `SELECT checksum FROM borr_languages WHERE id = $1`, id).Scan(&stored)
	switch {
	case err == nil && stored == checksum:
		log.Debug().Str("lang", id).Msg("Language unchanged")
		return false, nil
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("read checksum: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO borr_languages (id, description, version, source, content, checksum, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE
		SET description = EXCLUDED.description,
		    version = EXCLUDED.version,
		    source = EXCLUDED.source,
		    content = EXCLUDED.content,
		    checksum = EXCLUDED.checksum,
		    updated_at = now()
	`, id, lang.Description(), lang.Version().String(), source, content, checksum)
	if err != nil {
		return false, fmt.Errorf("upsert language: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM borr_entries WHERE lang = $1`, id); err != nil {
		return false, fmt.Errorf("clear entries: %w", err)
	}

	entries := Entries(lang)
	for _, chunk := range worker.Batch(entries, s.batchSize) {
		batch := &pgx.Batch{}
		for _, e := range chunk {
			batch.Queue(`
				INSERT INTO borr_entries (lang, section, field, value, hash)
				VALUES ($1, $2, $3, $4, $5)
			`, id, e.Section, e.Field, e.Value, e.Hash)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return false, fmt.Errorf("insert entries: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	log.Info().Str("lang", id).Int("entries", len(entries)).Msg("Stored language")
	return true, nil
}

// Load parses the stored copy of a language.
func (s *Store) Load(ctx context.Context, langID string, opts ...borr.Option) (*borr.Language, error) {
	var content string
	err := s.pool.QueryRow(ctx, `SELECT content FROM borr_languages WHERE id = $1`, langID).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, langID)
	}
	if err != nil {
		return nil, fmt.Errorf("load language: %w", err)
	}

	lang, err := borr.FromString(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse stored language %s: %w", langID, err)
	}
	return lang, nil
}

// Lookup returns a raw stored value without parsing the whole language.
func (s *Store) Lookup(ctx context.Context, langID, section, field string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM borr_entries
		WHERE lang = $1 AND section = $2 AND field = $3
	`, langID, section, field).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup entry: %w", err)
	}
	return value, true, nil
}

// List returns every stored language ordered by id.
func (s *Store) List(ctx context.Context) ([]LanguageInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.id, l.description, l.version, l.source, l.checksum, count(e.field)
		FROM borr_languages l
		LEFT JOIN borr_entries e ON e.lang = l.id
		GROUP BY l.id
		ORDER BY l.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var infos []LanguageInfo
	for rows.Next() {
		var info LanguageInfo
		if err := rows.Scan(&info.ID, &info.Description, &info.Version, &info.Source, &info.Checksum, &info.Entries); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return infos, nil
}

// Entries flattens the non-global sections of lang into rows ordered by
// section and field. Values are stored raw.
func Entries(lang *borr.Language) []Entry {
	var entries []Entry
	for _, section := range lang.Sections() {
		for _, field := range lang.Fields(section) {
			value, _ := lang.RawString(section, field)
			entries = append(entries, Entry{
				Section: section,
				Field:   field,
				Value:   value,
				Hash:    textutil.Hash(section + "\x00" + field + "\x00" + value),
			})
		}
	}
	return entries
}
