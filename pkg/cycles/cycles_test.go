package cycles

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/ritzau/practice-graph/pkg/graph"
)

func buildGraph(edges [][2]string) *graph.PracticeGraph {
	pg := graph.New()
	for _, e := range edges {
		pg.AddDependency(e[0], e[1])
	}
	return pg
}

func TestFind_Empty(t *testing.T) {
	if cycles := Find(graph.New()); len(cycles) != 0 {
		t.Errorf("Expected no cycles in empty graph, got %v", cycles)
	}
}

func TestFind_Acyclic(t *testing.T) {
	pg := buildGraph([][2]string{
		{"a", "b"}, {"b", "c"}, {"a", "c"},
	})
	if cycles := Find(pg); len(cycles) != 0 {
		t.Errorf("Expected no cycles, got %v", cycles)
	}
}

func TestFind_SimpleCycle(t *testing.T) {
	pg := buildGraph([][2]string{
		{"a", "b"}, {"b", "a"},
	})

	cycles := Find(pg)
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d", len(cycles))
	}
	if !reflect.DeepEqual(cycles[0], []string{"a", "b"}) {
		t.Errorf("Expected cycle path [a b] in discovery order, got %v", cycles[0])
	}
}

func TestFind_ThreeNodeCycle(t *testing.T) {
	pg := buildGraph([][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
	})

	cycles := Find(pg)
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d", len(cycles))
	}
	if !reflect.DeepEqual(cycles[0], []string{"a", "b", "c"}) {
		t.Errorf("Expected cycle path [a b c], got %v", cycles[0])
	}
}

func TestFind_MultipleDisjointCycles(t *testing.T) {
	pg := buildGraph([][2]string{
		{"a", "b"}, {"b", "a"},
		{"c", "d"}, {"d", "e"}, {"e", "c"},
	})

	cycles := Find(pg)
	if len(cycles) != 2 {
		t.Fatalf("Expected 2 cycles, got %d: %v", len(cycles), cycles)
	}

	sizes := map[int]int{}
	for _, cycle := range cycles {
		sizes[len(cycle)]++
	}
	if sizes[2] != 1 || sizes[3] != 1 {
		t.Errorf("Expected one 2-node and one 3-node cycle, got %v", cycles)
	}
}

func TestFind_CycleDeepInAcyclicGraph(t *testing.T) {
	// The cycle starts two hops below the traversal root.
	pg := buildGraph([][2]string{
		{"root", "a"}, {"a", "b"},
		{"b", "c"}, {"c", "d"}, {"d", "b"},
	})

	cycles := Find(pg)
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if !reflect.DeepEqual(cycles[0], []string{"b", "c", "d"}) {
		t.Errorf("Expected cycle [b c d], got %v", cycles[0])
	}
}

func TestFind_Deterministic(t *testing.T) {
	build := func() *graph.PracticeGraph {
		return buildGraph([][2]string{
			{"a", "b"}, {"b", "a"},
			{"x", "y"}, {"y", "z"}, {"z", "x"},
		})
	}

	first := Find(build())
	second := Find(build())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Cycle detection is not deterministic: %v vs %v", first, second)
	}
}

func TestFind_DeepChainDoesNotOverflow(t *testing.T) {
	// A 100k-node chain closed into one huge cycle; the explicit-stack DFS
	// must handle it without recursion depth limits.
	pg := graph.New()
	const n = 100_000
	for i := 0; i < n; i++ {
		pg.AddDependency("n"+strconv.Itoa(i), "n"+strconv.Itoa(i+1))
	}
	pg.AddDependency("n"+strconv.Itoa(n), "n0")

	cycles := Find(pg)
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d", len(cycles))
	}
	if len(cycles[0]) != n+1 {
		t.Errorf("Expected cycle of length %d, got %d", n+1, len(cycles[0]))
	}
}
