package validate

import (
	"fmt"

	"github.com/ritzau/practice-graph/pkg/cycles"
	"github.com/ritzau/practice-graph/pkg/graph"
	"github.com/ritzau/practice-graph/pkg/model"
)

// RootPolicy decides whether a catalog without any root practice fails
// validation or only draws a warning. Deployments differ on this, so it is
// configuration rather than a hardcoded rule.
type RootPolicy string

const (
	RootPolicyError RootPolicy = "error"
	RootPolicyWarn  RootPolicy = "warn"
)

// Options tunes schema validation. The zero value applies RootPolicyError.
type Options struct {
	RootPolicy RootPolicy
}

func (o Options) rootPolicy() RootPolicy {
	if o.RootPolicy == RootPolicyWarn {
		return RootPolicyWarn
	}
	return RootPolicyError
}

// Structure checks the top-level shape of a catalog document: practices
// must be a non-empty array, dependencies an array (possibly empty), and
// metadata an object. All three are checked independently.
func Structure(candidate any) model.FieldErrors {
	errs := model.FieldErrors{}

	obj, ok := asObject(candidate)
	if !ok {
		errs["schema"] = "catalog document must be an object"
		return errs
	}

	if practices, ok := asArray(obj["practices"]); !ok {
		errs["practices"] = "must be an array"
	} else if len(practices) == 0 {
		errs["practices"] = "must not be empty"
	}
	if _, ok := asArray(obj["dependencies"]); !ok {
		errs["dependencies"] = "must be an array"
	}
	if _, ok := asObject(obj["metadata"]); !ok {
		errs["metadata"] = "must be an object"
	}
	return errs
}

// DuplicatePracticeIDs returns every practice ID that occurs more than once,
// each reported a single time in first-occurrence order.
func DuplicatePracticeIDs(practices []model.Practice) []string {
	ids := make([]string, len(practices))
	for i, p := range practices {
		ids[i] = p.ID
	}
	return duplicateIDs(ids)
}

func duplicateIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

// CrossReferences checks that every edge endpoint names an existing
// practice. Each violation is reported with the offending ID; violations
// accumulate rather than short-circuiting.
func CrossReferences(deps []model.Dependency, practices []model.Practice) []string {
	known := make(map[string]bool, len(practices))
	for _, p := range practices {
		known[p.ID] = true
	}
	return crossReferences(deps, known)
}

func crossReferences(deps []model.Dependency, known map[string]bool) []string {
	var violations []string
	for _, d := range deps {
		if !known[d.PracticeID] {
			violations = append(violations,
				fmt.Sprintf("dependency %q -> %q: practice_id %q does not exist", d.PracticeID, d.DependsOnID, d.PracticeID))
		}
		if !known[d.DependsOnID] {
			violations = append(violations,
				fmt.Sprintf("dependency %q -> %q: depends_on_id %q does not exist", d.PracticeID, d.DependsOnID, d.DependsOnID))
		}
	}
	return violations
}

// duplicateDependencies reports each (practice_id, depends_on_id) pair that
// occurs more than once, once per pair.
func duplicateDependencies(deps []model.Dependency) []string {
	seen := make(map[string]int, len(deps))
	var dups []string
	for _, d := range deps {
		key := d.PracticeID + " -> " + d.DependsOnID
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, key)
		}
	}
	return dups
}

// Schema certifies an entire catalog document. Every check below runs
// regardless of earlier failures and all results are merged, so a single
// report names every problem at once:
//
//	structure -> per-practice -> duplicate IDs -> per-dependency ->
//	cross-references -> duplicate edges -> cycle detection -> metadata ->
//	root-practice rule
//
// The report's Catalog field carries the typed data only when the document
// is fully valid. Malformed input of any shape degrades to reported errors,
// never a panic.
func Schema(candidate any, opts Options) *model.ValidationReport {
	report := &model.ValidationReport{}

	if errs := Structure(candidate); len(errs) > 0 {
		report.Errors.Schema = errs
	}

	obj, _ := asObject(candidate)

	// Per-practice validation. IDs are harvested from every entry that at
	// least has a usable id string, valid or not, so duplicate detection and
	// cross-referencing stay meaningful for partially broken catalogs.
	var (
		practices []model.Practice
		rawIDs    []string
		knownIDs  = make(map[string]bool)
	)
	if rawPractices, ok := asArray(obj["practices"]); ok {
		for i, entry := range rawPractices {
			result := Practice(entry)
			if result.IsValid {
				practices = append(practices, result.Practice)
			} else {
				if report.Errors.Practices == nil {
					report.Errors.Practices = make(map[string]model.FieldErrors)
				}
				report.Errors.Practices[practiceKey(entry, i)] = result.Errors
			}
			if id, ok := rawPracticeID(entry); ok {
				rawIDs = append(rawIDs, id)
				knownIDs[id] = true
			}
		}
	}

	report.Errors.DuplicatePractices = duplicateIDs(rawIDs)

	// Per-dependency validation.
	var deps []model.Dependency
	if rawDeps, ok := asArray(obj["dependencies"]); ok {
		for i, entry := range rawDeps {
			result := Dependency(entry)
			if result.IsValid {
				deps = append(deps, result.Dependency)
				continue
			}
			if report.Errors.Dependencies == nil {
				report.Errors.Dependencies = make(map[string]model.FieldErrors)
			}
			report.Errors.Dependencies[fmt.Sprintf("dependencies[%d]", i)] = result.Errors
		}
	}

	report.Errors.CrossReferences = crossReferences(deps, knownIDs)
	report.Errors.DuplicateDependencies = duplicateDependencies(deps)
	report.Errors.CircularDependencies = cycles.Find(graph.Build(deps))

	var md model.Metadata
	if obj != nil {
		result := Metadata(obj["metadata"])
		if result.IsValid {
			md = result.Metadata
		} else {
			report.Errors.Metadata = result.Errors
		}
	}

	// Business rule: the catalog needs at least one root practice.
	hasRoot := false
	for _, p := range practices {
		if p.Type == model.TypeRoot {
			hasRoot = true
			break
		}
	}
	if !hasRoot {
		msg := "catalog has no practice with type \"root\""
		if opts.rootPolicy() == RootPolicyError {
			report.Errors.RootPractice = msg
		} else {
			report.Warnings = append(report.Warnings, msg)
		}
	}

	report.IsValid = report.Errors.Empty()
	if report.IsValid {
		report.Catalog = &model.Catalog{
			Practices:    practices,
			Dependencies: deps,
			Metadata:     md,
		}
	}
	return report
}

// FullSchema runs Schema and attaches aggregate counts. The summary is
// derived from the raw document so it is available even for invalid input.
func FullSchema(candidate any, opts Options) *model.ValidationReport {
	report := Schema(candidate, opts)
	report.Summary = summarize(candidate)
	return report
}

func summarize(candidate any) *model.Summary {
	summary := &model.Summary{
		PracticesByType:     make(map[string]int),
		PracticesByCategory: make(map[string]int),
	}

	obj, _ := asObject(candidate)
	if rawPractices, ok := asArray(obj["practices"]); ok {
		summary.TotalPractices = len(rawPractices)
		for _, entry := range rawPractices {
			p, ok := asObject(entry)
			if !ok {
				continue
			}
			if t, ok := p["type"].(string); ok && !isBlank(t) {
				summary.PracticesByType[t]++
			}
			if c, ok := p["category"].(string); ok && !isBlank(c) {
				summary.PracticesByCategory[c]++
			}
		}
	}
	if rawDeps, ok := asArray(obj["dependencies"]); ok {
		summary.TotalDependencies = len(rawDeps)
	}
	return summary
}

// practiceKey labels an invalid practice in the report, preferring its id
// when one is readable.
func practiceKey(entry any, index int) string {
	if id, ok := rawPracticeID(entry); ok {
		return id
	}
	return fmt.Sprintf("practices[%d]", index)
}

func rawPracticeID(entry any) (string, bool) {
	obj, ok := asObject(entry)
	if !ok {
		return "", false
	}
	id, ok := obj["id"].(string)
	if !ok || isBlank(id) {
		return "", false
	}
	return id, true
}
