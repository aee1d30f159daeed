package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"borr/internal/catalog"
	"borr/internal/config"
	"borr/internal/graph"
	"borr/internal/interpolation"
	"borr/internal/store"
	"borr/pkg/borr"
)

func pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <path>",
		Short: "Store every language file under path in PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx, cancel := setupContext()
			defer cancel()

			cat, err := catalog.Load(ctx, args[0],
				catalog.WithWorkers(cfg.WorkerCount),
				catalog.WithLanguageOptions(langOptions()...),
			)
			if err != nil {
				return err
			}

			pool, err := connectPostgres(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			s := store.NewStore(pool, cfg.BatchSize)
			if err := s.EnsureSchema(ctx); err != nil {
				return err
			}

			written, err := pushCatalog(ctx, s, cat)
			if err != nil {
				return err
			}

			log.Info().Int("languages", len(cat.Languages())).Int("written", written).Msg("Push complete")
			return nil
		},
	}
}

// languageSaver persists a parsed language under an id.
type languageSaver interface {
	Save(ctx context.Context, id string, lang *borr.Language, source string) (bool, error)
}

// pushCatalog saves every catalog language under its catalog id, so files
// without lang_id are stored under their file name stem. It returns how many
// languages changed.
func pushCatalog(ctx context.Context, saver languageSaver, cat *catalog.Catalog) (int, error) {
	written := 0
	for _, id := range cat.Languages() {
		lang, _ := cat.Language(id)
		changed, err := saver.Save(ctx, id, lang, cat.Source(id))
		if err != nil {
			return written, fmt.Errorf("push %s: %w", id, err)
		}
		if changed {
			written++
		}
	}
	return written, nil
}

func pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <lang-id>",
		Short: "Print a stored language as borr text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx, cancel := setupContext()
			defer cancel()

			pool, err := connectPostgres(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			lang, err := store.NewStore(pool, cfg.BatchSize).Load(ctx, args[0], langOptions()...)
			if err != nil {
				return err
			}

			_, err = lang.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func graphCmd() *cobra.Command {
	var impact string

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Export a language's cross-reference graph to Neo4j",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target graph.Node
			if impact != "" {
				section, field, ok := interpolation.SplitRef(impact)
				if !ok {
					return fmt.Errorf("--impact wants section:field, got %q", impact)
				}
				target = graph.Node{Section: section, Field: field}
			}

			lang, err := borr.FromFile(args[0], langOptions()...)
			if err != nil {
				return err
			}
			if lang.ID() == "" {
				return fmt.Errorf("%s: missing %s", args[0], borr.LangIDField)
			}

			cfg := config.Load()
			ctx, cancel := setupContext()
			defer cancel()

			driver, err := connectNeo4j(ctx, cfg)
			if err != nil {
				return err
			}
			defer driver.Close(ctx)

			gb := graph.NewGraphBuilder(driver)
			if err := gb.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := gb.Export(ctx, lang.ID(), graph.Build(lang)); err != nil {
				return err
			}

			if impact == "" {
				return nil
			}

			deps, err := graph.NewGraphQuerier(driver).Dependents(ctx, lang.ID(), target)
			if err != nil {
				return err
			}
			for _, n := range deps {
				fmt.Fprintln(cmd.OutOrStdout(), n.Key())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&impact, "impact", "", "List fields depending on section:field")

	return cmd
}
