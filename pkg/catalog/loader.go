// Package catalog loads the persisted practice dataset. The on-disk format
// is a single JSON document with top-level practices, dependencies, and
// metadata keys; the loader decodes it into untyped values and leaves all
// trust decisions to the validator.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ritzau/practice-graph/pkg/logging"
	"github.com/ritzau/practice-graph/pkg/model"
	"github.com/ritzau/practice-graph/pkg/validate"
)

// Load reads and decodes a catalog document from disk. The result is the
// raw, unvalidated document; pass it to Validate before building a graph.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Decode(data)
}

// Decode parses catalog JSON into an untyped document.
func Decode(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog JSON: %w", err)
	}
	return doc, nil
}

// Validate runs full schema validation over a raw document and logs the
// outcome. It is a convenience wrapper for the load path; the validator
// itself lives in pkg/validate.
func Validate(doc any, opts validate.Options) *model.ValidationReport {
	report := validate.FullSchema(doc, opts)
	if report.IsValid {
		logging.Info("catalog validated",
			"practices", report.Summary.TotalPractices,
			"dependencies", report.Summary.TotalDependencies)
	} else {
		logging.Warn("catalog failed validation",
			"practices", report.Summary.TotalPractices,
			"dependencies", report.Summary.TotalDependencies)
	}
	return report
}
