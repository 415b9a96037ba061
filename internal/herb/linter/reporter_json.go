package linter

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter outputs offenses in JSON format for CI integration.
type JSONReporter struct {
	// ShowTiming fills in the timing object.
	ShowTiming bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

type jsonOutput struct {
	Offenses  []Offense    `json:"offenses"`
	Summary   *jsonSummary `json:"summary"`
	Timing    *jsonTiming  `json:"timing"`
	Completed bool         `json:"completed"`
	Clean     *bool        `json:"clean"`
	Message   *string      `json:"message"`

	Faults     map[string][]Fault `json:"faults,omitempty"`
	FileErrors []jsonFileError    `json:"fileErrors,omitempty"`
}

type jsonSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesWithOffenses int `json:"filesWithOffenses"`
	TotalErrors       int `json:"totalErrors"`
	TotalWarnings     int `json:"totalWarnings"`
	TotalOffenses     int `json:"totalOffenses"`
	RuleCount         int `json:"ruleCount"`
}

type jsonTiming struct {
	StartTime string `json:"startTime"`
	// Duration is in milliseconds.
	Duration int64 `json:"duration"`
}

type jsonFileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report implements the Reporter interface for JSON output.
func (r *JSONReporter) Report(w io.Writer, result *RunResult) error {
	errors := result.ErrorCount()
	warnings := result.WarningCount()
	clean := errors == 0 && warnings == 0

	out := jsonOutput{
		Offenses: result.Offenses(),
		Summary: &jsonSummary{
			FilesChecked:      len(result.Files) + len(result.Errors),
			FilesWithOffenses: result.FilesWithOffenses(),
			TotalErrors:       errors,
			TotalWarnings:     warnings,
			TotalOffenses:     errors + warnings,
			RuleCount:         result.RuleCount,
		},
		Timing:    r.timing(result.StartTime, result.Duration),
		Completed: true,
		Clean:     &clean,
	}
	if faults := result.Faults(); len(faults) > 0 {
		out.Faults = faults
	}
	for _, e := range result.Errors {
		out.FileErrors = append(out.FileErrors, jsonFileError{Path: e.Path, Message: e.Err.Error()})
	}
	return encode(w, out)
}

// ReportMessage writes an incomplete run carrying only a message, for
// example when no files matched.
func (r *JSONReporter) ReportMessage(w io.Writer, message string, start time.Time) error {
	return encode(w, jsonOutput{
		Offenses: []Offense{},
		Summary:  &jsonSummary{},
		Timing:   r.timing(start, time.Since(start)),
		Message:  &message,
	})
}

func (r *JSONReporter) timing(start time.Time, d time.Duration) *jsonTiming {
	if !r.ShowTiming {
		return nil
	}
	return &jsonTiming{
		StartTime: start.UTC().Format(time.RFC3339Nano),
		Duration:  d.Milliseconds(),
	}
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
