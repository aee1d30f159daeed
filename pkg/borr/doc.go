// Package borr parses borr language files and serves translated strings with
// runtime variable substitution.
//
// A borr file is an ini-like text file. The global scope carries three
// metadata fields, sections group translation fields, and values may contain
// ${...} placeholders:
//
//	# British English
//	lang_id = "en_GB"
//	lang_desc = "English (United Kingdom)"
//	lang_ver = "v1.0.0"
//
//	[about_page]
//	page_title = "About ${app_name}" # inline comments are allowed
//	about_text[] = "This is my awesome app,"
//	about_text[] = "© ${date} ${start_page:my_button}"
//
// Fields marked with [] are multi-line: successive occurrences are joined
// with a newline. Lines that match no rule are ignored.
//
// # Loading
//
//	lang, err := borr.FromFile("languages/en_GB.borr")
//	if err != nil {
//		return err
//	}
//
//	title, ok := lang.String("about_page", "page_title")
//
// # Variables
//
// Placeholders resolve through a Registry: user callbacks first, then the
// built-in expanders (date, time, lib, os, liburl), then ${section:field}
// cross-references into the same language. Anything else expands to an empty
// string. The package-level DefaultRegistry is shared by every Language that
// is not given its own registry with WithRegistry.
//
//	borr.Register("app_name", func(string) string { return "My App" })
//
// Languages log nothing unless given a zerolog logger with WithLogger; they
// then report cyclic cross-references and the expansion limit at Debug level.
//
// A Language is not safe for concurrent parsing; once parsed it may be
// queried from multiple goroutines.
package borr
