// Package query answers traversal questions over a practice graph that the
// schema validator has already certified acyclic and referentially intact.
// Every function is read-only; none modifies the graph or its arguments.
package query

import (
	"fmt"

	"github.com/ritzau/practice-graph/pkg/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// DirectCount returns the number of immediate dependencies of a practice.
// Unknown IDs count as zero.
func DirectCount(pg *graph.PracticeGraph, id string) int {
	return len(pg.Dependencies(id))
}

// Reachable returns every practice reachable from id by following dependency
// edges any number of hops, each distinct node once, in depth-first
// discovery order. The starting node itself is not included.
func Reachable(pg *graph.PracticeGraph, id string) []string {
	var reached []string
	seen := map[string]bool{id: true}

	stack := []string{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Push children in reverse so they pop in edge insertion order.
		deps := pg.Dependencies(current)
		for i := len(deps) - 1; i >= 0; i-- {
			child := deps[i]
			if seen[child] {
				continue
			}
			seen[child] = true
			reached = append(reached, child)
			stack = append(stack, child)
		}
	}
	return reached
}

// TransitiveCount returns the size of the reachability closure of id. It is
// always at least DirectCount, with equality exactly when none of the direct
// dependencies have dependencies of their own.
func TransitiveCount(pg *graph.PracticeGraph, id string) int {
	return len(Reachable(pg, id))
}

// Descend is the drill-down navigation transition: given the ancestor chain
// accumulated so far and the node the user is currently on, it returns the
// chain for the practice the user selected among current's dependencies.
// A DAG node can be reached along several paths, so the correct chain is
// whichever path was actually navigated; this is session state threaded
// through a pure function, not a graph search. The input slice is never
// modified.
func Descend(chain []string, current string) []string {
	next := make([]string, len(chain)+1)
	copy(next, chain)
	next[len(chain)] = current
	return next
}

// Ascend undoes one drill-down step, returning the shortened chain and the
// node that becomes current again. Returns ok=false on an empty chain.
func Ascend(chain []string) (shorter []string, current string, ok bool) {
	if len(chain) == 0 {
		return nil, "", false
	}
	shorter = make([]string, len(chain)-1)
	copy(shorter, chain[:len(chain)-1])
	return shorter, chain[len(chain)-1], true
}

// DepthLevels assigns each node reachable from root its shortest distance in
// edges from the root: level 0 is the root alone, level k every node whose
// shortest path has length k. A node reachable by both a 2-hop and a 4-hop
// path sits at level 2. Unreachable nodes are absent from the result.
func DepthLevels(pg *graph.PracticeGraph, root string) map[string]int {
	levels := map[string]int{root: 0}

	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range pg.Dependencies(current) {
			if _, visited := levels[child]; visited {
				continue
			}
			levels[child] = levels[current] + 1
			queue = append(queue, child)
		}
	}
	return levels
}

// Level is one horizontal row of the deduplicated full-tree view.
type Level struct {
	Depth     int      `json:"depth"`
	Practices []string `json:"practices"`
}

// FullTree projects the subgraph reachable from root into rows where every
// node appears exactly once, at the *deepest* level it occurs at across all
// root-to-node paths. This is deliberately the opposite tie-break from
// DepthLevels: a practice needed both directly and far downstream is shown
// at its most downstream position. Within a row, practices keep the graph's
// node insertion order, which is stable for a fixed edge list.
//
// Depths are longest path lengths from the root, computed by relaxing edges
// in topological order. The acyclicity precondition is checked cheaply via
// the topological sort itself; a cyclic graph yields an error rather than a
// bogus projection.
func FullTree(pg *graph.PracticeGraph, root string) ([]Level, error) {
	sorted, err := topo.Sort(pg.Directed())
	if err != nil {
		return nil, fmt.Errorf("graph is not a DAG: %w", err)
	}

	reachable := map[string]bool{root: true}
	for _, id := range Reachable(pg, root) {
		reachable[id] = true
	}

	// Edges point from dependent to dependency, so topological order visits
	// every node after all of its dependents; one pass suffices.
	depth := map[string]int{root: 0}
	maxDepth := 0
	for _, node := range sorted {
		id, ok := pg.PracticeID(node.ID())
		if !ok || !reachable[id] {
			continue
		}
		d, ok := depth[id]
		if !ok {
			continue
		}
		for _, child := range pg.Dependencies(id) {
			if d+1 > depth[child] {
				depth[child] = d + 1
				if d+1 > maxDepth {
					maxDepth = d + 1
				}
			}
		}
	}

	levels := make([]Level, maxDepth+1)
	for i := range levels {
		levels[i].Depth = i
	}
	ordered := pg.Nodes()
	if !pg.Has(root) {
		// A root without any dependency edge is still a one-row tree.
		ordered = append([]string{root}, ordered...)
	}
	for _, id := range ordered {
		if !reachable[id] {
			continue
		}
		levels[depth[id]].Practices = append(levels[depth[id]].Practices, id)
	}
	return levels, nil
}
