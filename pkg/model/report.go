package model

// FieldErrors maps a field (or rule) name to a human-readable message.
// A practice that fails three field checks carries three entries; callers
// can render each one independently.
type FieldErrors map[string]string

// ReportErrors groups every validation failure by category so a UI can
// render a precise diagnostic per class of problem.
type ReportErrors struct {
	Schema                FieldErrors            `json:"schema,omitempty"`
	Practices             map[string]FieldErrors `json:"practices,omitempty"`
	Dependencies          map[string]FieldErrors `json:"dependencies,omitempty"`
	Metadata              FieldErrors            `json:"metadata,omitempty"`
	DuplicatePractices    []string               `json:"duplicatePractices,omitempty"`
	DuplicateDependencies []string               `json:"duplicateDependencies,omitempty"`
	CrossReferences       []string               `json:"crossReferences,omitempty"`
	CircularDependencies  [][]string             `json:"circularDependencies,omitempty"`
	RootPractice          string                 `json:"rootPractice,omitempty"`
}

// Empty reports whether no error of any category was recorded.
func (e *ReportErrors) Empty() bool {
	return len(e.Schema) == 0 &&
		len(e.Practices) == 0 &&
		len(e.Dependencies) == 0 &&
		len(e.Metadata) == 0 &&
		len(e.DuplicatePractices) == 0 &&
		len(e.DuplicateDependencies) == 0 &&
		len(e.CrossReferences) == 0 &&
		len(e.CircularDependencies) == 0 &&
		e.RootPractice == ""
}

// Summary holds aggregate counts over the catalog, computed even for
// invalid input to aid diagnosis.
type Summary struct {
	TotalPractices      int            `json:"totalPractices"`
	TotalDependencies   int            `json:"totalDependencies"`
	PracticesByType     map[string]int `json:"practicesByType"`
	PracticesByCategory map[string]int `json:"practicesByCategory"`
}

// ValidationReport is the structured outcome of a full schema validation.
// It is produced fresh per call and never mutated after return. Catalog is
// non-nil only when IsValid is true.
type ValidationReport struct {
	IsValid  bool         `json:"isValid"`
	Errors   ReportErrors `json:"errors"`
	Warnings []string     `json:"warnings,omitempty"`
	Summary  *Summary     `json:"summary,omitempty"`
	Catalog  *Catalog     `json:"-"`
}
