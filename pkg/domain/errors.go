package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned when a node is defined without an ID.
	ErrEmptyID = errors.New("empty id")

	// ErrDuplicateID is returned when two nodes, or two choices, share an ID.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrMissingRoot is returned when the graph has no root or the root is not defined.
	ErrMissingRoot = errors.New("missing root node")

	// ErrDanglingTarget is returned when a choice points at a node that does not exist.
	ErrDanglingTarget = errors.New("dangling choice target")

	// ErrUnknownChoice is returned when a choice is not offered by the current node.
	ErrUnknownChoice = errors.New("unknown choice")

	// ErrNodeNotFound is returned when a node ID cannot be resolved.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSessionNotFound is returned when a session ID cannot be found.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError represents a single graph construction failure.
type ValidationError struct {
	Key    string // Node or choice ID the failure is about
	Reason string // Human-readable reason
	Err    error  // Sentinel classifying the failure
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%q: %v: %s", e.Key, e.Err, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
