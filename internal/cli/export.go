package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"borr/pkg/borr"
)

// exportDocument is the JSON shape of an exported language.
type exportDocument struct {
	ID          string                       `json:"lang_id"`
	Description string                       `json:"lang_desc"`
	Version     string                       `json:"lang_ver"`
	Sections    map[string]map[string]string `json:"sections"`
}

func exportCmd() *cobra.Command {
	var (
		format string
		output string
		expand bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a language file as TSV, JSON or normalised borr text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := borr.FromFile(args[0], langOptions()...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "tsv":
				err = exportTSV(w, lang, expand)
			case "json":
				err = exportJSON(w, lang, expand)
			case "borr":
				_, err = lang.WriteTo(w)
			default:
				return fmt.Errorf("unknown export format %q", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if output != "" {
				log.Info().Str("path", output).Str("format", format).Msg("Exported language")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "tsv", "Export format: tsv, json or borr")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default stdout)")
	cmd.Flags().BoolVar(&expand, "expand", false, "Expand variables in exported values")

	return cmd
}

func exportTSV(w io.Writer, lang *borr.Language, expand bool) error {
	if _, err := fmt.Fprintln(w, "section\tfield\tvalue"); err != nil {
		return err
	}
	for _, section := range lang.Sections() {
		for _, field := range lang.Fields(section) {
			value, _ := lang.Lookup(section, field, expand)
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", section, field, escapeTSV(value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportJSON(w io.Writer, lang *borr.Language, expand bool) error {
	doc := exportDocument{
		ID:          lang.ID(),
		Description: lang.Description(),
		Version:     lang.Version().String(),
		Sections:    make(map[string]map[string]string),
	}
	for _, section := range lang.Sections() {
		fields := make(map[string]string)
		for _, field := range lang.Fields(section) {
			fields[field], _ = lang.Lookup(section, field, expand)
		}
		doc.Sections[section] = fields
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
