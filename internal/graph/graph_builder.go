package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphBuilder mirrors language reference graphs into Neo4j.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (f:Field) REQUIRE f.id IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (l:Language) REQUIRE l.id IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Export replaces the stored graph of langID with g: one Field node per
// field linked to its Language, and REFERENCES edges for cross-references.
// Referenced fields that do not exist are stored with missing = true.
func (gb *GraphBuilder) Export(ctx context.Context, langID string, g *Graph) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `
		MATCH (f:Field {lang: $lang})
		DETACH DELETE f
	`, map[string]any{"lang": langID}); err != nil {
		return fmt.Errorf("clear fields of %s: %w", langID, err)
	}

	if _, err := session.Run(ctx, `
		MERGE (l:Language {id: $lang})
	`, map[string]any{"lang": langID}); err != nil {
		return fmt.Errorf("upsert language %s: %w", langID, err)
	}

	for _, n := range g.Nodes() {
		_, err := session.Run(ctx, `
			MATCH (l:Language {id: $lang})
			MERGE (f:Field {id: $id})
			SET f.lang = $lang,
			    f.section = $section,
			    f.name = $field,
			    f.missing = false
			MERGE (f)-[:BELONGS_TO]->(l)
		`, fieldParams(langID, n))
		if err != nil {
			return fmt.Errorf("upsert field %s: %w", n.Key(), err)
		}
	}

	for _, e := range g.Edges() {
		params := fieldParams(langID, e.To)
		params["from"] = fieldID(langID, e.From)

		_, err := session.Run(ctx, `
			MATCH (a:Field {id: $from})
			MERGE (b:Field {id: $id})
			ON CREATE SET b.lang = $lang,
			              b.section = $section,
			              b.name = $field,
			              b.missing = true
			MERGE (a)-[:REFERENCES]->(b)
		`, params)
		if err != nil {
			log.Warn().Err(err).
				Str("from", e.From.Key()).
				Str("to", e.To.Key()).
				Msg("Failed to create reference")
		}
	}

	log.Info().
		Str("lang", langID).
		Int("fields", len(g.Nodes())).
		Int("references", len(g.Edges())).
		Msg("Exported reference graph")
	return nil
}

func fieldID(langID string, n Node) string {
	return langID + "/" + n.Key()
}

func fieldParams(langID string, n Node) map[string]any {
	return map[string]any{
		"id":      fieldID(langID, n),
		"lang":    langID,
		"section": n.Section,
		"field":   n.Field,
	}
}
