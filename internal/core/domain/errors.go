package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyResult indicates a run collected zero records.
	// The snapshot is left untouched so prior good data survives.
	ErrEmptyResult = errors.New("no repositories collected")

	// ErrQuotaExhausted indicates the search quota did not recover
	// within the allowed number of waits.
	ErrQuotaExhausted = errors.New("search quota exhausted")

	// ErrAuthRequired indicates no API credential is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthFailed indicates the API rejected the configured credential.
	ErrAuthFailed = errors.New("authentication failed")
)

// RateCheckError indicates the quota probe failed or the quota never
// became safe to consume. Fatal to a run.
type RateCheckError struct {
	Err error
}

func (e *RateCheckError) Error() string {
	return fmt.Sprintf("rate check: %v", e.Err)
}

func (e *RateCheckError) Unwrap() error {
	return e.Err
}

// QueryExecutionError indicates a search expression failed outright.
// Runs treat it as fatal rather than silently under-collecting.
type QueryExecutionError struct {
	Query string
	Page  int
	Err   error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query %q page %d: %v", e.Query, e.Page, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// RecordNormalizationError indicates a single search hit could not be
// turned into a RepositoryRecord. Recovered locally by skipping the hit.
type RecordNormalizationError struct {
	Identity string
	Field    string
	Err      error
}

func (e *RecordNormalizationError) Error() string {
	name := e.Identity
	if name == "" {
		name = "<unknown>"
	}
	return fmt.Sprintf("normalize %s: field %s: %v", name, e.Field, e.Err)
}

func (e *RecordNormalizationError) Unwrap() error {
	return e.Err
}

// PersistenceError indicates the snapshot could not be written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist snapshot %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err only affects a single record.
// Every other error aborts the run.
func IsRecoverable(err error) bool {
	var normErr *RecordNormalizationError
	return errors.As(err, &normErr)
}
