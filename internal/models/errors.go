package models

import "fmt"

// LoadError indicates the dataset source could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsTransient returns false as load errors are permanent for a given source
func (e *LoadError) IsTransient() bool {
	return false
}

// SchemaError indicates a required column is absent from the source.
type SchemaError struct {
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("required column missing: %s", e.Column)
}

// IsTransient returns false as schema errors are permanent
func (e *SchemaError) IsTransient() bool {
	return false
}

// NoDataError indicates an aggregate was requested over an empty set.
type NoDataError struct {
	Operation string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data available for %s", e.Operation)
}

// IsTransient returns false; the caller must widen its filters instead
func (e *NoDataError) IsTransient() bool {
	return false
}
