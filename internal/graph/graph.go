package graph

import (
	"slices"
	"strings"

	"borr/internal/interpolation"
	"borr/pkg/borr"
)

// Node is a field addressed as section:field.
type Node struct {
	Section string
	Field   string
}

// Key renders the node the way cross-references spell it.
func (n Node) Key() string {
	return n.Section + interpolation.RefSeparator + n.Field
}

// Edge is a ${section:field} reference from one field to another.
type Edge struct {
	From Node
	To   Node
}

// Graph holds the cross-reference edges of one language.
type Graph struct {
	lang  *borr.Language
	nodes []Node
	edges []Edge
	out   map[Node][]Node
}

// Build collects every field and cross-reference of lang.
func Build(lang *borr.Language) *Graph {
	g := &Graph{
		lang: lang,
		out:  make(map[Node][]Node),
	}

	for _, section := range lang.Sections() {
		for _, field := range lang.Fields(section) {
			from := Node{Section: section, Field: field}
			g.nodes = append(g.nodes, from)

			for _, ref := range lang.References(section, field) {
				sect, fld, ok := interpolation.SplitRef(ref)
				if !ok {
					continue
				}
				to := Node{Section: sect, Field: fld}
				g.edges = append(g.edges, Edge{From: from, To: to})
				g.out[from] = append(g.out[from], to)
			}
		}
	}

	return g
}

// Nodes returns every field, ordered by section then field.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns every reference in field order.
func (g *Graph) Edges() []Edge { return g.edges }

// Dangling returns references whose target field does not exist.
func (g *Graph) Dangling() []Edge {
	var dangling []Edge
	for _, e := range g.edges {
		if _, ok := g.lang.RawString(e.To.Section, e.To.Field); !ok {
			dangling = append(dangling, e)
		}
	}
	return dangling
}

// Cycles returns each reference cycle once, as the chain of keys starting
// at its smallest key.
func (g *Graph) Cycles() [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[Node]int, len(g.nodes))
	seen := make(map[string]bool)
	var cycles [][]string
	var stack []Node

	var visit func(n Node)
	visit = func(n Node) {
		color[n] = gray
		stack = append(stack, n)

		for _, next := range g.out[n] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				start := slices.Index(stack, next)
				cycle := canonical(stack[start:])
				if id := strings.Join(cycle, " -> "); !seen[id] {
					seen[id] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[n] = black
	}

	for _, n := range g.nodes {
		if color[n] == white {
			visit(n)
		}
	}
	return cycles
}

// canonical rotates a cycle so it starts at its smallest key.
func canonical(nodes []Node) []string {
	keys := make([]string, len(nodes))
	minIdx := 0
	for i, n := range nodes {
		keys[i] = n.Key()
		if keys[i] < keys[minIdx] {
			minIdx = i
		}
	}
	return append(keys[minIdx:], keys[:minIdx]...)
}
