// Package cycles enumerates directed cycles in a practice dependency graph.
package cycles

import (
	"github.com/ritzau/practice-graph/pkg/graph"
)

// frame is one level of the explicit DFS stack. next indexes the child edge
// to explore on the following iteration.
type frame struct {
	id   string
	next int
}

// Find returns every directed cycle reachable in the graph as the node path
// from the cycle's first-visited member back around to the node that closes
// it. Disjoint cycles are each reported once; an acyclic or empty graph
// yields nil.
//
// The traversal is an iterative depth-first search with an explicit stack,
// so pathological input depth cannot overflow the goroutine stack. Given the
// same edge insertion order the result is identical across runs.
func Find(pg *graph.PracticeGraph) [][]string {
	var cycles [][]string

	visited := make(map[string]bool)  // fully explored
	onPath := make(map[string]int)    // node -> position in path
	var path []string
	var stack []frame

	push := func(id string) {
		onPath[id] = len(path)
		path = append(path, id)
		stack = append(stack, frame{id: id})
	}

	for _, start := range pg.Nodes() {
		if visited[start] {
			continue
		}
		push(start)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := pg.Dependencies(top.id)

			if top.next < len(deps) {
				child := deps[top.next]
				top.next++

				if pos, ok := onPath[child]; ok {
					// The sub-path from the child's first occurrence to the
					// current node is one cycle.
					cycle := make([]string, len(path)-pos)
					copy(cycle, path[pos:])
					cycles = append(cycles, cycle)
					continue
				}
				if !visited[child] {
					push(child)
				}
				continue
			}

			visited[top.id] = true
			delete(onPath, top.id)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return cycles
}
