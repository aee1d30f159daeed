package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"borr/internal/catalog"
	"borr/internal/config"
	"borr/pkg/borr"
)

func showCmd() *cobra.Command {
	var (
		langFile string
		section  string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a language file's metadata and expanded translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := borr.FromFile(langFile, langOptions()...)
			if err != nil {
				return fmt.Errorf("failed to parse language file: %w", err)
			}
			return printLanguage(cmd.OutOrStdout(), lang, section)
		},
	}

	cmd.Flags().StringVarP(&langFile, "lang", "l", "", "Language file to parse")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Only print this section")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func printLanguage(w io.Writer, lang *borr.Language, only string) error {
	fmt.Fprintf(w, "Selected language: %s\n", lang.ID())
	fmt.Fprintf(w, "Language description: %s\n", lang.Description())
	fmt.Fprintf(w, "Language version: %s\n", lang.Version())

	sections := lang.Sections()
	if only != "" {
		if _, ok := lang.Section(only); !ok {
			return fmt.Errorf("section %q not found", only)
		}
		sections = []string{only}
	}

	for _, section := range sections {
		fmt.Fprintf(w, "\n[%s]\n", section)
		for _, field := range lang.Fields(section) {
			value, _ := lang.String(section, field)
			fmt.Fprintf(w, "%s: %s\n", field, value)
		}
	}
	return nil
}

func getCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get <file> <section> <field>",
		Short: "Print a single translation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := borr.FromFile(args[0], langOptions()...)
			if err != nil {
				return err
			}

			value, ok := lang.Lookup(args[1], args[2], !raw)
			if !ok {
				return fmt.Errorf("translation %s:%s not found", args[1], args[2])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Do not expand variables")

	return cmd
}

func lookupCmd() *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "lookup <directory> <lang-id> <section> <field>",
		Short: "Look up a translation across a directory of languages with fallback",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			cfg := config.Load()
			if fallback == "" {
				fallback = cfg.FallbackLang
			}

			c, err := catalog.Load(ctx, args[0],
				catalog.WithWorkers(cfg.WorkerCount),
				catalog.WithFallback(fallback),
				catalog.WithLanguageOptions(langOptions()...),
			)
			if err != nil {
				return err
			}

			value, from, ok := c.String(args[1], args[2], args[3])
			if !ok {
				return fmt.Errorf("translation %s:%s not found for %s", args[2], args[3], args[1])
			}
			if from != args[1] {
				fmt.Fprintf(cmd.ErrOrStderr(), "using fallback language %s\n", from)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "Fallback language id; defaults to BORR_FALLBACK_LANG")

	return cmd
}
