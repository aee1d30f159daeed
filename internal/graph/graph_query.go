package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphQuerier answers impact questions against the exported graph.
type GraphQuerier struct {
	driver neo4j.DriverWithContext
}

// NewGraphQuerier creates a new graph querier.
func NewGraphQuerier(driver neo4j.DriverWithContext) *GraphQuerier {
	return &GraphQuerier{driver: driver}
}

// Dependents returns every field of langID whose expanded value depends,
// directly or transitively, on target.
func (gq *GraphQuerier) Dependents(ctx context.Context, langID string, target Node) ([]Node, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (dep:Field)-[:REFERENCES*1..]->(t:Field {id: $id})
		WHERE dep.id <> t.id
		RETURN DISTINCT dep.section AS section, dep.name AS field
		ORDER BY section, field
	`, map[string]any{"id": fieldID(langID, target)})
	if err != nil {
		return nil, fmt.Errorf("query dependents: %w", err)
	}

	var nodes []Node
	for result.Next(ctx) {
		record := result.Record()
		section, _ := record.Get("section")
		field, _ := record.Get("field")

		nodes = append(nodes, Node{
			Section: fmt.Sprintf("%v", section),
			Field:   fmt.Sprintf("%v", field),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read dependents: %w", err)
	}

	log.Debug().Str("target", target.Key()).Int("dependents", len(nodes)).Msg("Graph query complete")
	return nodes, nil
}
