// Package adoption computes adoption percentages from an externally owned
// set of adopted practice IDs. The set is an opaque input: these functions
// never modify it and hold no state between calls.
package adoption

import (
	"math"

	"github.com/ritzau/practice-graph/pkg/graph"
)

// Set is a collection of adopted practice IDs. Ownership stays with the
// persistence layer; the engine only reads it.
type Set map[string]bool

// NewSet builds a Set from a list of practice IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Filter returns the intersection of adopted with the known catalog IDs,
// dropping adopted IDs that no longer exist in the catalog (stale URL or
// import data). Both inputs are left untouched.
func Filter(adopted Set, known Set) Set {
	out := make(Set)
	for id := range adopted {
		if known[id] {
			out[id] = true
		}
	}
	return out
}

// DependencyPercent returns the share of a practice's direct dependencies
// that are adopted, as a percentage rounded to the nearest integer. With
// includeSelf the practice itself joins both numerator (when adopted) and
// denominator. A zero denominator yields 0, never NaN; callers should use
// DirectCount to decide whether a percentage is worth displaying at all.
func DependencyPercent(pg *graph.PracticeGraph, id string, adopted Set, includeSelf bool) int {
	numerator, denominator := 0, 0
	for _, dep := range pg.Dependencies(id) {
		denominator++
		if adopted[dep] {
			numerator++
		}
	}
	if includeSelf {
		denominator++
		if adopted[id] {
			numerator++
		}
	}
	return percent(numerator, denominator)
}

// CatalogPercent returns the adopted share of the whole catalog, rounded to
// the nearest integer. Zero practices yields 0.
func CatalogPercent(adopted Set, totalPractices int) int {
	return percent(len(adopted), totalPractices)
}

func percent(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(100 * float64(numerator) / float64(denominator)))
}
