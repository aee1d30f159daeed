package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultCutset is the set of characters trimmed when no cutset is given.
const DefaultCutset = " \t\r"

// TrimStart removes leading characters contained in cutset.
// An empty cutset falls back to DefaultCutset.
func TrimStart(s, cutset string) string {
	if cutset == "" {
		cutset = DefaultCutset
	}
	return strings.TrimLeft(s, cutset)
}

// TrimEnd removes trailing characters contained in cutset.
func TrimEnd(s, cutset string) string {
	if cutset == "" {
		cutset = DefaultCutset
	}
	return strings.TrimRight(s, cutset)
}

// Trim removes leading and trailing characters contained in cutset.
func Trim(s, cutset string) string {
	return TrimStart(TrimEnd(s, cutset), cutset)
}

// TrimSpace trims blanks, tabs and carriage returns.
func TrimSpace(s string) string {
	return Trim(s, DefaultCutset)
}

// Split tokenizes s on any of the characters in delimiters. Runs of
// delimiters never produce empty tokens. When maxTokens is positive, at most
// that many tokens are returned and the last one holds the unsplit remainder.
func Split(s, delimiters string, maxTokens int) []string {
	var tokens []string

	rest := s
	for rest != "" {
		rest = strings.TrimLeft(rest, delimiters)
		if rest == "" {
			break
		}

		if maxTokens > 0 && len(tokens) == maxTokens-1 {
			tokens = append(tokens, rest)
			break
		}

		end := strings.IndexAny(rest, delimiters)
		if end < 0 {
			tokens = append(tokens, rest)
			break
		}

		tokens = append(tokens, rest[:end])
		rest = rest[end:]
	}

	return tokens
}

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
