package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"borr/internal/filewalker"
	"borr/internal/graph"
	"borr/pkg/borr"
)

// Issue is a problem found in a language file.
type Issue struct {
	File    string
	Line    int
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.File, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate language files: ignored lines, metadata, references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := filewalker.NewWalker().Walk(args[0])
			if err != nil {
				return err
			}

			total := 0
			for _, entry := range entries {
				issues, err := checkFile(entry.Path)
				if err != nil {
					return err
				}
				printIssues(cmd.OutOrStdout(), issues)
				total += len(issues)
			}

			log.Info().Int("files", len(entries)).Int("issues", total).Msg("Check complete")
			if total > 0 {
				return fmt.Errorf("%d issue(s) found", total)
			}
			return nil
		},
	}
}

func printIssues(w io.Writer, issues []Issue) {
	for _, issue := range issues {
		fmt.Fprintln(w, issue)
	}
}

func checkFile(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	lang, err := borr.FromString(string(data), langOptions()...)
	if err != nil {
		return []Issue{{File: path, Message: err.Error()}}, nil
	}

	return checkLanguage(path, string(data), lang), nil
}

func checkLanguage(path, contents string, lang *borr.Language) []Issue {
	var issues []Issue

	for _, n := range ignoredLines(contents) {
		issues = append(issues, Issue{File: path, Line: n, Message: "line ignored: not a comment, section or translation"})
	}

	for _, field := range []string{borr.LangIDField, borr.LangDescField, borr.LangVerField} {
		if _, ok := lang.RawString(borr.GlobalSection, field); !ok {
			issues = append(issues, Issue{File: path, Message: "missing required field " + field})
		}
	}
	if raw, ok := lang.RawString(borr.GlobalSection, borr.LangVerField); ok && !lang.Version().IsSet() {
		issues = append(issues, Issue{File: path, Message: fmt.Sprintf("%s %q is not MAJOR.MINOR.REVISION", borr.LangVerField, raw)})
	}

	g := graph.Build(lang)
	for _, e := range g.Dangling() {
		issues = append(issues, Issue{File: path, Message: fmt.Sprintf("%s references missing field %s", e.From.Key(), e.To.Key())})
	}
	for _, cycle := range g.Cycles() {
		chain := append(cycle, cycle[0])
		issues = append(issues, Issue{File: path, Message: "cyclic reference " + strings.Join(chain, " -> ")})
	}

	return issues
}

// ignoredLines returns the 1-based numbers of lines the parser skips
// although they are neither blank nor comments.
func ignoredLines(contents string) []int {
	var lines []int
	for i, line := range strings.Split(contents, "\n") {
		if borr.IsEmptyOrComment(line) {
			continue
		}
		stripped := borr.RemoveInlineComments(line)
		if ok, _ := borr.IsSection(stripped); ok {
			continue
		}
		if ok, _, _ := borr.IsTranslation(stripped); ok {
			continue
		}
		lines = append(lines, i+1)
	}
	return lines
}
