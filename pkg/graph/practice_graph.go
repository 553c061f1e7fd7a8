package graph

import (
	"github.com/ritzau/practice-graph/pkg/model"
	"gonum.org/v1/gonum/graph/simple"
)

// PracticeGraph is the adjacency representation of a practice catalog's
// dependency edges. It keeps its own insertion-ordered adjacency lists so
// traversal results are deterministic, and mirrors the structure into a
// gonum directed graph for algorithms that want one (duplicate-edge
// queries, topological ordering).
type PracticeGraph struct {
	graph  *simple.DirectedGraph
	order  []string         // node IDs in first-mention order
	adj    map[string][]string
	ids    map[string]int64 // practice ID -> gonum node ID
	byID   map[int64]string // gonum node ID -> practice ID
	nextID int64
}

// New creates an empty practice graph.
func New() *PracticeGraph {
	return &PracticeGraph{
		graph: simple.NewDirectedGraph(),
		adj:   make(map[string][]string),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
	}
}

// Build constructs the adjacency graph from a flat list of validated
// dependency edges. The input slice is not modified. An empty input yields
// an empty graph; a practice with no outgoing edges has no adjacency entry,
// which callers must treat the same as an empty list.
func Build(dependencies []model.Dependency) *PracticeGraph {
	pg := New()
	for _, dep := range dependencies {
		pg.AddDependency(dep.PracticeID, dep.DependsOnID)
	}
	return pg
}

// AddNode registers a practice ID without adding any edge. Adding the same
// ID twice is a no-op.
func (pg *PracticeGraph) AddNode(id string) {
	if _, exists := pg.ids[id]; exists {
		return
	}
	pg.ids[id] = pg.nextID
	pg.byID[pg.nextID] = id
	pg.order = append(pg.order, id)
	pg.graph.AddNode(simple.Node(pg.nextID))
	pg.nextID++
}

// AddDependency adds the edge from -> to, creating either node as needed.
// A duplicate edge is ignored, as is a self-loop (both are rejected by the
// schema validator before a graph is built).
func (pg *PracticeGraph) AddDependency(from, to string) {
	if from == to {
		return
	}
	pg.AddNode(from)
	pg.AddNode(to)

	fromID, toID := pg.ids[from], pg.ids[to]
	if pg.graph.HasEdgeFromTo(fromID, toID) {
		return
	}
	pg.graph.SetEdge(pg.graph.NewEdge(pg.graph.Node(fromID), pg.graph.Node(toID)))
	pg.adj[from] = append(pg.adj[from], to)
}

// Has reports whether a practice ID is mentioned by any edge.
func (pg *PracticeGraph) Has(id string) bool {
	_, ok := pg.ids[id]
	return ok
}

// HasEdge reports whether the edge from -> to is present.
func (pg *PracticeGraph) HasEdge(from, to string) bool {
	fromID, okFrom := pg.ids[from]
	toID, okTo := pg.ids[to]
	return okFrom && okTo && pg.graph.HasEdgeFromTo(fromID, toID)
}

// Dependencies returns the direct dependencies of a practice in edge
// insertion order. Unknown IDs and practices without outgoing edges both
// yield nil. The returned slice is shared; callers must not modify it.
func (pg *PracticeGraph) Dependencies(id string) []string {
	return pg.adj[id]
}

// Nodes returns every practice ID mentioned by any edge, in first-mention
// order.
func (pg *PracticeGraph) Nodes() []string {
	nodes := make([]string, len(pg.order))
	copy(nodes, pg.order)
	return nodes
}

// Len returns the number of nodes in the graph.
func (pg *PracticeGraph) Len() int {
	return len(pg.order)
}

// Edges returns all edges as [from, to] pairs in insertion order.
func (pg *PracticeGraph) Edges() [][2]string {
	var edges [][2]string
	for _, from := range pg.order {
		for _, to := range pg.adj[from] {
			edges = append(edges, [2]string{from, to})
		}
	}
	return edges
}

// Directed exposes the underlying gonum graph.
func (pg *PracticeGraph) Directed() *simple.DirectedGraph {
	return pg.graph
}

// PracticeID maps a gonum node ID back to its practice ID.
func (pg *PracticeGraph) PracticeID(id int64) (string, bool) {
	s, ok := pg.byID[id]
	return s, ok
}
