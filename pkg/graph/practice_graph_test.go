package graph

import (
	"reflect"
	"testing"

	"github.com/ritzau/practice-graph/pkg/model"
)

func TestBuild_Empty(t *testing.T) {
	pg := Build(nil)
	if pg.Len() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", pg.Len())
	}
	if deps := pg.Dependencies("anything"); deps != nil {
		t.Errorf("Expected nil dependencies for unknown node, got %v", deps)
	}
}

func TestBuild_AdjacencyOrder(t *testing.T) {
	pg := Build([]model.Dependency{
		{PracticeID: "cd", DependsOnID: "ci"},
		{PracticeID: "cd", DependsOnID: "tbd"},
		{PracticeID: "ci", DependsOnID: "tbd"},
		{PracticeID: "tbd", DependsOnID: "vc"},
	})

	if got := pg.Dependencies("cd"); !reflect.DeepEqual(got, []string{"ci", "tbd"}) {
		t.Errorf("Expected insertion order [ci tbd], got %v", got)
	}
	if got := pg.Nodes(); !reflect.DeepEqual(got, []string{"cd", "ci", "tbd", "vc"}) {
		t.Errorf("Expected first-mention node order, got %v", got)
	}
}

func TestBuild_LeafHasNoEntry(t *testing.T) {
	pg := Build([]model.Dependency{{PracticeID: "a", DependsOnID: "b"}})

	if !pg.Has("b") {
		t.Error("Leaf node should exist in the graph")
	}
	if deps := pg.Dependencies("b"); len(deps) != 0 {
		t.Errorf("Leaf node must have no dependencies, got %v", deps)
	}
}

func TestAddDependency_IgnoresDuplicatesAndSelfLoops(t *testing.T) {
	pg := New()
	pg.AddDependency("a", "b")
	pg.AddDependency("a", "b")
	pg.AddDependency("a", "a")

	if got := pg.Dependencies("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Expected single edge a->b, got %v", got)
	}
	if len(pg.Edges()) != 1 {
		t.Errorf("Expected 1 edge, got %v", pg.Edges())
	}
}

func TestHasEdge(t *testing.T) {
	pg := Build([]model.Dependency{{PracticeID: "a", DependsOnID: "b"}})

	if !pg.HasEdge("a", "b") {
		t.Error("Expected edge a->b")
	}
	if pg.HasEdge("b", "a") {
		t.Error("Edges are directed; b->a must not exist")
	}
	if pg.HasEdge("a", "ghost") {
		t.Error("Unknown endpoint must not report an edge")
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	deps := []model.Dependency{
		{PracticeID: "a", DependsOnID: "b"},
		{PracticeID: "b", DependsOnID: "c"},
	}
	snapshot := append([]model.Dependency{}, deps...)

	Build(deps)

	if !reflect.DeepEqual(deps, snapshot) {
		t.Error("Build mutated its input")
	}
}

func TestPracticeID_RoundTrip(t *testing.T) {
	pg := Build([]model.Dependency{{PracticeID: "a", DependsOnID: "b"}})

	nodes := pg.Directed().Nodes()
	seen := 0
	for nodes.Next() {
		id, ok := pg.PracticeID(nodes.Node().ID())
		if !ok {
			t.Errorf("No practice ID for gonum node %d", nodes.Node().ID())
		}
		if id != "a" && id != "b" {
			t.Errorf("Unexpected practice ID %q", id)
		}
		seen++
	}
	if seen != 2 {
		t.Errorf("Expected 2 gonum nodes, got %d", seen)
	}
}
