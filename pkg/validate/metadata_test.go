package validate

import (
	"strings"
	"testing"
)

func TestMetadata_Valid(t *testing.T) {
	result := Metadata(map[string]any{
		"version":     "1.0.0",
		"lastUpdated": "2025-01-01",
	})
	if !result.IsValid {
		t.Fatalf("Expected valid metadata, got errors: %v", result.Errors)
	}
	if result.Metadata.Version != "1.0.0" {
		t.Errorf("Unexpected version %q", result.Metadata.Version)
	}
}

func TestMetadata_VersionFormats(t *testing.T) {
	valid := []string{"0.1.0", "1.2.3", "10.20.30", "1.0.0-alpha", "1.0.0-alpha.1", "2.0.0+build.7", "1.0.0-rc.1+sha.5114f85"}
	for _, v := range valid {
		result := Metadata(map[string]any{"version": v, "lastUpdated": "2025-01-01"})
		if !result.IsValid {
			t.Errorf("Expected version %q to be valid, got %v", v, result.Errors)
		}
	}

	invalid := []string{"1.0", "1", "01.0.0", "1.02.0", "1.0.0.0", "v1.0.0", "1.0.0-", "one.two.three"}
	for _, v := range invalid {
		result := Metadata(map[string]any{"version": v, "lastUpdated": "2025-01-01"})
		if result.IsValid {
			t.Errorf("Expected version %q to be invalid", v)
			continue
		}
		if msg, ok := result.Errors["version"]; !ok {
			t.Errorf("Expected version error for %q, got %v", v, result.Errors)
		} else if !strings.Contains(msg, "semantic version") {
			t.Errorf("Version error for %q should mention semantic version: %q", v, msg)
		}
	}
}

func TestMetadata_LastUpdated(t *testing.T) {
	invalid := []string{
		"2025-02-29", // 2025 is not a leap year
		"2025-13-01",
		"2025-04-31",
		"1900-01-01", // before the accepted range
		"20250101",
		"01-01-2025",
	}
	for _, d := range invalid {
		result := Metadata(map[string]any{"version": "1.0.0", "lastUpdated": d})
		if result.IsValid {
			t.Errorf("Expected lastUpdated %q to be invalid", d)
			continue
		}
		if _, ok := result.Errors["lastUpdated"]; !ok {
			t.Errorf("Expected lastUpdated error for %q, got %v", d, result.Errors)
		}
	}

	// 2024-02-29 is a real date: leap year.
	result := Metadata(map[string]any{"version": "1.0.0", "lastUpdated": "2024-02-29"})
	if !result.IsValid {
		t.Errorf("Expected leap-day date to be valid, got %v", result.Errors)
	}
}

func TestMetadata_OptionalFields(t *testing.T) {
	// Absent optional fields are fine.
	result := Metadata(map[string]any{"version": "1.0.0", "lastUpdated": "2025-01-01"})
	if !result.IsValid {
		t.Fatalf("Expected valid metadata, got %v", result.Errors)
	}

	// Present optional fields must not be blank.
	result = Metadata(map[string]any{
		"version":     "1.0.0",
		"lastUpdated": "2025-01-01",
		"changelog":   "  ",
		"source":      "https://minimumcd.org",
	})
	if result.IsValid {
		t.Fatal("Expected blank changelog to be invalid")
	}
	if _, ok := result.Errors["changelog"]; !ok {
		t.Errorf("Expected changelog error, got %v", result.Errors)
	}
	if _, ok := result.Errors["source"]; ok {
		t.Errorf("source was valid and must not be reported: %v", result.Errors)
	}
}

func TestMetadata_NotAnObject(t *testing.T) {
	result := Metadata([]any{"not", "metadata"})
	if result.IsValid {
		t.Fatal("Expected invalid metadata")
	}
	if _, ok := result.Errors["metadata"]; !ok {
		t.Errorf("Expected metadata-level error, got %v", result.Errors)
	}
}
