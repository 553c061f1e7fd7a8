package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ritzau/practice-graph/pkg/model"
)

// semverPattern is the strict semantic version grammar: numeric components
// without leading zeros, optional -prerelease and +build suffixes.
var semverPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Accepted year range for lastUpdated. The catalog predates neither the
// practice literature it documents nor the far future.
const earliestCatalogYear = 2000

// optionalMetadataFields may be absent, but must not be blank when present.
var optionalMetadataFields = []string{"changelog", "source", "description"}

// MetadataResult is the outcome of validating catalog metadata.
type MetadataResult struct {
	IsValid  bool
	Errors   model.FieldErrors
	Metadata model.Metadata
}

// Metadata validates catalog provenance: a strict semantic version, a
// calendar-valid YYYY-MM-DD lastUpdated date within the accepted range, and
// optional non-blank annotation fields.
func Metadata(candidate any) MetadataResult {
	errs := model.FieldErrors{}

	obj, ok := asObject(candidate)
	if !ok {
		errs["metadata"] = "must be an object"
		return MetadataResult{Errors: errs}
	}

	var md model.Metadata
	if v, ok := requireString(obj, "version", errs); ok {
		if semverPattern.MatchString(v) {
			md.Version = v
		} else {
			errs["version"] = fmt.Sprintf("%q is not a valid semantic version (major.minor.patch)", v)
		}
	}

	if d, ok := requireString(obj, "lastUpdated", errs); ok {
		if err := validDate(d); err != nil {
			errs["lastUpdated"] = err.Error()
		} else {
			md.LastUpdated = d
		}
	}

	for _, field := range optionalMetadataFields {
		raw, present := obj[field]
		if !present {
			continue
		}
		s, ok := raw.(string)
		if !ok || isBlank(s) {
			errs[field] = "must be a non-empty string when present"
			continue
		}
		switch field {
		case "changelog":
			md.Changelog = s
		case "source":
			md.Source = s
		case "description":
			md.Description = s
		}
	}

	if len(errs) > 0 {
		return MetadataResult{Errors: errs}
	}
	return MetadataResult{IsValid: true, Errors: errs, Metadata: md}
}

// validDate checks a YYYY-MM-DD string for calendar validity (leap years and
// days-per-month honored by time.Parse) and a plausible year range.
func validDate(s string) error {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("%q is not a valid YYYY-MM-DD date", s)
	}
	year := t.Year()
	if year < earliestCatalogYear || year > time.Now().Year()+1 {
		return fmt.Errorf("year %d is outside the accepted range", year)
	}
	return nil
}
