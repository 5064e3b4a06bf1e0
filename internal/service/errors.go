package service

import (
	"errors"
	"fmt"
)

// ErrNoItems is returned when a meal save is attempted with no food items.
var ErrNoItems = errors.New("meal must contain at least one food item")

// CredentialError means the model provider rejected the API key.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return "invalid API key or API access not enabled: " + e.Err.Error()
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ParseError means the model's response was not a valid JSON array of food
// items after stripping code fences. Excerpt carries a truncated slice of
// the raw response for diagnosis.
type ParseError struct {
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v (raw: %s...)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamError covers any other failure of the model call: network errors,
// quota exhaustion, malformed multimodal payloads.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "model call failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError means a store write failed. Reads never produce it; the
// read path degrades to an empty collection instead.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
