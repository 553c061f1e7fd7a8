package validate

import "testing"

func TestDependency_Valid(t *testing.T) {
	result := Dependency(map[string]any{
		"practice_id":   "continuous-integration",
		"depends_on_id": "version-control",
	})

	if !result.IsValid {
		t.Fatalf("Expected valid dependency, got errors: %v", result.Errors)
	}
	if result.Dependency.PracticeID != "continuous-integration" {
		t.Errorf("Unexpected practice_id %q", result.Dependency.PracticeID)
	}
	if result.Dependency.DependsOnID != "version-control" {
		t.Errorf("Unexpected depends_on_id %q", result.Dependency.DependsOnID)
	}
}

func TestDependency_NotAnObject(t *testing.T) {
	result := Dependency("a -> b")
	if result.IsValid {
		t.Fatal("Expected invalid dependency")
	}
	if _, ok := result.Errors["dependency"]; !ok {
		t.Errorf("Expected a dependency-level error, got %v", result.Errors)
	}
}

func TestDependency_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		candidate map[string]any
		field     string
	}{
		{"missing practice_id", map[string]any{"depends_on_id": "b"}, "practice_id"},
		{"missing depends_on_id", map[string]any{"practice_id": "a"}, "depends_on_id"},
		{"non-string practice_id", map[string]any{"practice_id": 1, "depends_on_id": "b"}, "practice_id"},
		{"blank depends_on_id", map[string]any{"practice_id": "a", "depends_on_id": " "}, "depends_on_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Dependency(tt.candidate)
			if result.IsValid {
				t.Fatal("Expected invalid dependency")
			}
			if _, ok := result.Errors[tt.field]; !ok {
				t.Errorf("Expected error on %q, got %v", tt.field, result.Errors)
			}
		})
	}
}

func TestDependency_SelfReference(t *testing.T) {
	// Unicode IDs hit the same rule as ASCII ones.
	for _, id := range []string{"x", "continuous-delivery", "практика"} {
		result := Dependency(map[string]any{
			"practice_id":   id,
			"depends_on_id": id,
		})
		if result.IsValid {
			t.Fatalf("Expected self-reference %q to be invalid", id)
		}
		if _, ok := result.Errors["selfReference"]; !ok {
			t.Errorf("Expected selfReference error for %q, got %v", id, result.Errors)
		}
	}
}

func TestDependency_EmptyStringsHitPresenceNotSelfReference(t *testing.T) {
	result := Dependency(map[string]any{
		"practice_id":   "",
		"depends_on_id": "",
	})
	if result.IsValid {
		t.Fatal("Expected invalid dependency")
	}
	if _, ok := result.Errors["selfReference"]; ok {
		t.Errorf("Empty IDs must report presence errors, not selfReference: %v", result.Errors)
	}
	if _, ok := result.Errors["practice_id"]; !ok {
		t.Errorf("Expected practice_id error, got %v", result.Errors)
	}
	if _, ok := result.Errors["depends_on_id"]; !ok {
		t.Errorf("Expected depends_on_id error, got %v", result.Errors)
	}
}
