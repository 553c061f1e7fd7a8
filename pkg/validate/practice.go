package validate

import (
	"fmt"

	"github.com/ritzau/practice-graph/pkg/model"
)

// PracticeResult is the outcome of validating a single practice candidate.
// Practice is meaningful only when IsValid is true.
type PracticeResult struct {
	IsValid  bool
	Errors   model.FieldErrors
	Practice model.Practice
}

// Practice validates one catalog entry. Every violated field is reported;
// validation does not stop at the first problem, so an entry with a bad
// type, a blank name, and empty benefits yields three errors at once.
func Practice(candidate any) PracticeResult {
	errs := model.FieldErrors{}

	obj, ok := asObject(candidate)
	if !ok {
		errs["practice"] = "must be an object"
		return PracticeResult{Errors: errs}
	}

	var p model.Practice
	if id, ok := requireString(obj, "id", errs); ok {
		p.ID = id
	}
	if name, ok := requireString(obj, "name", errs); ok {
		p.Name = name
	}
	if desc, ok := requireString(obj, "description", errs); ok {
		p.Description = desc
	}

	if t, ok := requireString(obj, "type", errs); ok {
		switch model.PracticeType(t) {
		case model.TypePractice, model.TypeRoot:
			p.Type = model.PracticeType(t)
		default:
			errs["type"] = fmt.Sprintf("must be one of %q or %q", model.TypePractice, model.TypeRoot)
		}
	}

	if c, ok := requireString(obj, "category", errs); ok {
		if validCategory(model.Category(c)) {
			p.Category = model.Category(c)
		} else {
			errs["category"] = fmt.Sprintf("%q is not an allowed category", c)
		}
	}

	if list, ok := requireStringList(obj, "requirements", errs); ok {
		p.Requirements = list
	}
	if list, ok := requireStringList(obj, "benefits", errs); ok {
		p.Benefits = list
	}

	if len(errs) > 0 {
		return PracticeResult{Errors: errs}
	}
	return PracticeResult{IsValid: true, Errors: errs, Practice: p}
}

func validCategory(c model.Category) bool {
	for _, allowed := range model.Categories {
		if c == allowed {
			return true
		}
	}
	return false
}

// requireStringList validates a required non-empty list of non-blank
// strings. The returned slice is a fresh copy, detached from the input.
func requireStringList(obj map[string]any, field string, errs model.FieldErrors) ([]string, bool) {
	raw, present := obj[field]
	if !present {
		errs[field] = "is required and must be a non-empty array of strings"
		return nil, false
	}
	list, ok := stringSlice(raw)
	if !ok {
		errs[field] = "must be an array of strings"
		return nil, false
	}
	if len(list) == 0 {
		errs[field] = "must not be empty"
		return nil, false
	}
	for i, s := range list {
		if isBlank(s) {
			errs[field] = fmt.Sprintf("entry %d must not be empty or whitespace-only", i)
			return nil, false
		}
	}
	return list, true
}
