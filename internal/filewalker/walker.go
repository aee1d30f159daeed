package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists the language file extensions.
var SupportedExtensions = map[string]bool{
	".borr": true,
	".lang": true,
}

// FileEntry is a discovered language file.
type FileEntry struct {
	Path string
	Ext  string
}

// Stem returns the file name without directory and extension.
func (e FileEntry) Stem() string {
	return strings.TrimSuffix(filepath.Base(e.Path), filepath.Ext(e.Path))
}

// Walker discovers language files.
type Walker struct {
	extensions map[string]bool
}

// NewWalker creates a Walker for SupportedExtensions.
func NewWalker() *Walker {
	return &Walker{extensions: SupportedExtensions}
}

// Supports reports whether a path has a language file extension.
func (w *Walker) Supports(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// Walk returns all language files under root, sorted by path. A root that
// is a regular file is returned as the only entry regardless of extension.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if info.Mode().IsRegular() {
		return []FileEntry{{Path: root, Ext: strings.ToLower(filepath.Ext(root))}}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is neither a file nor a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() || !w.Supports(path) {
			return nil
		}

		entries = append(entries, FileEntry{
			Path: path,
			Ext:  strings.ToLower(filepath.Ext(path)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered language files")
	return entries, nil
}
