package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidTransition   = errors.New("invalid photo state transition")
	ErrPartialFailure      = errors.New("partial failure")
	ErrPersistence         = errors.New("persistence failure")
	ErrBlobStore           = errors.New("blob store failure")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrBootstrapAlready    = errors.New("system already bootstrapped")
	ErrBootstrapDenied     = errors.New("unauthorized bootstrap attempt")
)

// ValidationError reports rejected input. Details maps field names to
// messages and may be empty.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed: " + e.Message
	}
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s (%s)", e.Message, strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Message: field + " " + msg, Details: map[string]string{field: msg}}
}

// ReconcileStage names the half of a role reconciliation that failed.
type ReconcileStage string

const (
	// StageAdd: the additions failed and the role set is unchanged.
	StageAdd ReconcileStage = "add"
	// StageRemove: the additions in Added were committed, the removals were not.
	StageRemove ReconcileStage = "remove"
)

// PartialFailureError is returned by RoleService.Reconcile when one of its
// two transactions fails. Retrying the same reconciliation is safe.
type PartialFailureError struct {
	Stage ReconcileStage
	Added []string
	Err   error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("role reconciliation failed at %s stage: %v", e.Stage, e.Err)
}

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

func (e *PartialFailureError) Unwrap() error { return e.Err }
