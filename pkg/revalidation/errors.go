package revalidation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingApproval indicates a form carries no approval timestamp.
	ErrMissingApproval = errors.New("approval timestamp missing")
	// ErrInvalidApproval indicates a form's approval timestamp is not a valid point in time.
	ErrInvalidApproval = errors.New("approval timestamp invalid")
)

// InvalidRecordError reports a single form excluded from classification.
type InvalidRecordError struct {
	ID    int64  `json:"id"`
	Field string `json:"field"`
	Err   error  `json:"-"`
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record %d: %s: %v", e.ID, e.Field, e.Err)
}

func (e *InvalidRecordError) Unwrap() error {
	return e.Err
}

// Reason returns the underlying cause as text.
func (e *InvalidRecordError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// InvalidCriteriaError reports a filter option with an unrecognized value.
type InvalidCriteriaError struct {
	Option string
	Value  string
}

func (e *InvalidCriteriaError) Error() string {
	return fmt.Sprintf("invalid %s filter: %q", e.Option, e.Value)
}
