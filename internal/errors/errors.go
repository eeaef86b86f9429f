// Package errors defines the error and warning taxonomy of the ETL pipeline.
//
// Only two conditions are fatal: a missing required input column
// (SchemaError) and an unexpected stage failure (PipelineError). Everything
// else (parse failures, quality-gate violations, unresolved foreign keys)
// degrades to a counted warning and never aborts a run.
package errors

import (
	"fmt"
)

// Kind classifies a pipeline error.
type Kind string

const (
	KindSchema    Kind = "schema"
	KindLoad      Kind = "load"
	KindExecution Kind = "execution"
	KindExport    Kind = "export"
)

// SchemaError reports required input columns that are absent from the raw
// record shape. It is raised once for the whole batch, before any per-row
// processing, and always aborts the run.
type SchemaError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("raw input is missing required columns: %v", e.Missing)
}

// NewSchemaError creates a SchemaError for the given missing columns.
func NewSchemaError(missing []string) *SchemaError {
	return &SchemaError{Missing: missing}
}

// PipelineError wraps a fatal failure with the stage it occurred in.
type PipelineError struct {
	Kind  Kind
	Stage string
	Cause error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] stage %s: %v", e.Kind, e.Stage, e.Cause)
	}
	return fmt.Sprintf("[%s] %v", e.Kind, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewPipelineError wraps cause as a fatal failure of the named stage.
func NewPipelineError(kind Kind, stage string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Cause: cause}
}

// Violation is a non-fatal quality-gate finding: the name of the failed
// check and how many rows failed it.
type Violation struct {
	Check string `json:"check"`
	Count int    `json:"count"`
}

// ReferentialReport counts fact rows whose natural key found no match in a
// dimension. Customer lookups never appear here: a missing customer ID is a
// valid guest resolution, not a miss.
type ReferentialReport struct {
	UnresolvedProduct   int `json:"unresolved_product"`
	UnresolvedGeography int `json:"unresolved_geography"`
	UnresolvedDate      int `json:"unresolved_date"`
}

// HasUnresolved reports whether any lookup failed.
func (r ReferentialReport) HasUnresolved() bool {
	return r.UnresolvedProduct > 0 || r.UnresolvedGeography > 0 || r.UnresolvedDate > 0
}
