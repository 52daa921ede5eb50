package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)

// Workflow rejection reasons. A rejection is reported as a *RejectionError
// whose Reason is one of these values. ErrEmptyLabels and ErrEmptyChange are
// caller mistakes and therefore also match ErrValidation.
var (
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrDescriptionMissing = errors.New("cannot complete: description missing")
	ErrAlreadyStarted     = errors.New("workflow already started")
	ErrEmptyLabels        = fmt.Errorf("no existing or new labels given: %w", ErrValidation)
	ErrEmptyChange        = fmt.Errorf("no detail fields given: %w", ErrValidation)
)

// Validation messages shared by entity and request validation.
const (
	MsgRequired     = "is required"
	MsgMustNotEmpty = "must not be empty"
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// RejectionError is the typed rejection returned when a driving command is
// refused by the workflow. The workflow state is left untouched whenever a
// RejectionError is returned.
//
// Use errors.As(err, &rerr) to inspect the stage the workflow was in, and
// errors.Is(err, ErrDescriptionMissing) (or any other reason) to branch on
// the cause.
type RejectionError struct {
	ProcessID string
	Command   string
	Stage     string
	Reason    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected for workflow %s in stage %s: %v", e.Command, e.ProcessID, e.Stage, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// Reject builds a *RejectionError for the given command and reason.
func Reject(processID, command, stage string, reason error) *RejectionError {
	return &RejectionError{ProcessID: processID, Command: command, Stage: stage, Reason: reason}
}
