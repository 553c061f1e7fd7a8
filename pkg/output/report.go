package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/practice-graph/pkg/model"
)

// PrintValidationReport renders a validation report to the console with
// colors, one section per error category.
func PrintValidationReport(catalogPath string, report *model.ValidationReport) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("Practice Graph - Validation Report")
	bold.Println("==================================")
	fmt.Printf("Catalog: %s\n", catalogPath)

	if report.Summary != nil {
		fmt.Printf("Practices: %d\n", report.Summary.TotalPractices)
		fmt.Printf("Dependencies: %d\n", report.Summary.TotalDependencies)
		printHistogram(cyan, "By type", report.Summary.PracticesByType)
		printHistogram(cyan, "By category", report.Summary.PracticesByCategory)
	}
	fmt.Println()

	errs := &report.Errors
	printFieldErrors(red, "SCHEMA ERRORS", errs.Schema)
	printEntityErrors(red, "INVALID PRACTICES", errs.Practices)
	printEntityErrors(red, "INVALID DEPENDENCIES", errs.Dependencies)
	printFieldErrors(red, "METADATA ERRORS", errs.Metadata)
	printList(red, "DUPLICATE PRACTICE IDS", errs.DuplicatePractices)
	printList(red, "DUPLICATE DEPENDENCIES", errs.DuplicateDependencies)
	printList(red, "UNRESOLVED REFERENCES", errs.CrossReferences)
	if len(errs.CircularDependencies) > 0 {
		red.Println("CIRCULAR DEPENDENCIES:")
		for _, cycle := range errs.CircularDependencies {
			yellow.Printf("  %s -> %s\n", strings.Join(cycle, " -> "), cycle[0])
		}
		fmt.Println()
	}
	if errs.RootPractice != "" {
		red.Println("ROOT PRACTICE:")
		yellow.Printf("  %s\n", errs.RootPractice)
		fmt.Println()
	}

	for _, w := range report.Warnings {
		yellow.Printf("Warning: %s\n", w)
	}

	if report.IsValid {
		green.Println("✓ Catalog is valid")
	} else {
		red.Println("✗ Catalog is invalid")
	}
}

func printHistogram(c *color.Color, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	c.Printf("%s: %s\n", label, strings.Join(parts, " "))
}

func printFieldErrors(c *color.Color, heading string, errs model.FieldErrors) {
	if len(errs) == 0 {
		return
	}
	c.Printf("%s:\n", heading)
	for _, field := range sortedKeys(errs) {
		fmt.Printf("  %s: %s\n", field, errs[field])
	}
	fmt.Println()
}

func printEntityErrors(c *color.Color, heading string, entities map[string]model.FieldErrors) {
	if len(entities) == 0 {
		return
	}
	c.Printf("%s:\n", heading)
	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %s:\n", key)
		fieldErrs := entities[key]
		for _, field := range sortedKeys(fieldErrs) {
			fmt.Printf("    %s: %s\n", field, fieldErrs[field])
		}
	}
	fmt.Println()
}

func printList(c *color.Color, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	c.Printf("%s:\n", heading)
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func sortedKeys(m model.FieldErrors) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
