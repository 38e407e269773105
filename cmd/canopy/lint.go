package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"arbor-hq/canopy/pkg/cli"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
	"arbor-hq/canopy/pkg/gdl/parser"
	"arbor-hq/canopy/pkg/gdl/validator"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate grammar description files",
	Long: `Validate grammar description files for syntax, structural, and
semantic errors.

The lint command parses description files and performs full validation:
  - JSON/YAML syntax validation
  - Rule structure validation (type discriminators, fields, members)
  - Semantic validation (symbol references, duplicate rule names)
  - Reachability warnings for rules the start rule never reaches

Examples:
  # Lint a single file
  canopy lint --file grammar.json

  # Lint a directory
  canopy lint --dir grammars/

  # Strict mode (warnings as errors)
  canopy lint --file grammar.json --strict

  # JSON output for CI
  canopy lint --file grammar.json --format json`,
	RunE: lintGrammars,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "grammar description file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of grammar description files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintGrammars(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list grammar files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no grammar description files found")
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateGrammarFile(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results, lintFlags.strict)
}

// ValidationResult is the validation outcome for one description file.
type ValidationResult struct {
	File     string            `json:"file"`
	Grammar  string            `json:"grammar,omitempty"`
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// ValidationError is a single finding.
type ValidationError struct {
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func validateGrammarFile(path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	p := parser.NewParser()
	grammar, err := p.Parse(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, findingsFrom(err)...)
		return result
	}
	result.Grammar = grammar.Name

	v := validator.NewValidator()
	if err := v.Validate(grammar); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, findingsFrom(err)...)
		return result
	}

	for _, warn := range v.Warnings(grammar) {
		result.Warnings = append(result.Warnings, ValidationError{
			Path:       warn.Path,
			Message:    warn.Message,
			Severity:   "warning",
			Type:       string(warn.Type),
			Suggestion: warn.Suggestion,
		})
	}

	return result
}

// findingsFrom flattens a validation failure into findings, handling
// both single errors and accumulated lists.
func findingsFrom(err error) []ValidationError {
	if errList, ok := err.(*gdlerrors.ErrorList); ok {
		findings := make([]ValidationError, 0, errList.Count())
		for _, e := range errList.Errors {
			findings = append(findings, findingFrom(e))
		}
		return findings
	}
	if gdlErr, ok := err.(*gdlerrors.Error); ok {
		return []ValidationError{findingFrom(gdlErr)}
	}
	return []ValidationError{{
		Message:  err.Error(),
		Severity: "error",
	}}
}

func findingFrom(e *gdlerrors.Error) ValidationError {
	return ValidationError{
		Path:       e.Path,
		Message:    e.Message,
		Severity:   "error",
		Type:       string(e.Type),
		Suggestion: e.Suggestion,
	}
}

func outputText(results []ValidationResult, strict bool) error {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Println("✓ Syntax valid")
			fmt.Println("✓ All rules resolve")
		}

		for _, err := range result.Errors {
			fmt.Printf("✗ Error: %s", err.Message)
			if err.Path != "" {
				fmt.Printf(" (at %s)", err.Path)
			}
			if err.Type != "" {
				fmt.Printf(" [%s]", err.Type)
			}
			fmt.Println()
			if err.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", err.Suggestion)
			}
			totalErrors++
		}

		for _, warn := range result.Warnings {
			fmt.Printf("⚠  Warning: %s", warn.Message)
			if warn.Path != "" {
				fmt.Printf(" (at %s)", warn.Path)
			}
			fmt.Println()
			totalWarnings++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)

	if totalErrors > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	if strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputJSON(results []ValidationResult) error {
	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, results); err != nil {
		return err
	}

	for _, result := range results {
		if !result.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
		if lintFlags.strict && len(result.Warnings) > 0 {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}
