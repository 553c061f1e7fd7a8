package model

// PracticeType distinguishes the semantic root(s) of the catalog from
// ordinary practices.
type PracticeType string

const (
	TypePractice PracticeType = "practice"
	TypeRoot     PracticeType = "root"
)

// Category classifies a practice by the kind of capability it describes.
type Category string

const (
	CategoryAutomation                Category = "automation"
	CategoryBehavior                  Category = "behavior"
	CategoryBehaviorEnabledAutomation Category = "behavior-enabled-automation"
	CategoryCore                      Category = "core"
)

// Categories lists every allowed practice category.
var Categories = []Category{
	CategoryAutomation,
	CategoryBehavior,
	CategoryBehaviorEnabledAutomation,
	CategoryCore,
}

// Practice is a single catalog entry. Practices are loaded once per catalog
// and treated as immutable values; the engine never modifies one.
type Practice struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         PracticeType `json:"type"`
	Category     Category     `json:"category"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Benefits     []string     `json:"benefits"`
}

// Dependency is a directed edge meaning "PracticeID requires DependsOnID".
type Dependency struct {
	PracticeID  string `json:"practice_id"`
	DependsOnID string `json:"depends_on_id"`
}

// Metadata carries catalog provenance. Changelog, Source, and Description
// are optional; empty means absent.
type Metadata struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Changelog   string `json:"changelog,omitempty"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
}

// Catalog is the typed form of a validated practice dataset. The schema
// validator is the only producer of Catalog values.
type Catalog struct {
	Practices    []Practice   `json:"practices"`
	Dependencies []Dependency `json:"dependencies"`
	Metadata     Metadata     `json:"metadata"`
}

// Practice looks up a practice by ID. Returns false when the ID is unknown.
func (c *Catalog) Practice(id string) (Practice, bool) {
	for _, p := range c.Practices {
		if p.ID == id {
			return p, true
		}
	}
	return Practice{}, false
}

// Roots returns the IDs of all practices marked as roots, in catalog order.
func (c *Catalog) Roots() []string {
	var roots []string
	for _, p := range c.Practices {
		if p.Type == TypeRoot {
			roots = append(roots, p.ID)
		}
	}
	return roots
}
