package validate

import (
	"github.com/ritzau/practice-graph/pkg/model"
)

// DependencyResult is the outcome of validating a single dependency edge.
type DependencyResult struct {
	IsValid    bool
	Errors     model.FieldErrors
	Dependency model.Dependency
}

// Dependency validates one directed edge candidate. Presence and type
// problems are reported per field; a self-referencing edge whose endpoints
// are otherwise well-formed gets a dedicated selfReference error so callers
// can tell "malformed" apart from "structurally fine but logically invalid".
func Dependency(candidate any) DependencyResult {
	errs := model.FieldErrors{}

	obj, ok := asObject(candidate)
	if !ok {
		errs["dependency"] = "must be an object"
		return DependencyResult{Errors: errs}
	}

	from, fromOK := requireString(obj, "practice_id", errs)
	to, toOK := requireString(obj, "depends_on_id", errs)

	if fromOK && toOK && from == to {
		errs["selfReference"] = "a practice cannot depend on itself"
	}

	if len(errs) > 0 {
		return DependencyResult{Errors: errs}
	}
	return DependencyResult{
		IsValid:    true,
		Errors:     errs,
		Dependency: model.Dependency{PracticeID: from, DependsOnID: to},
	}
}
