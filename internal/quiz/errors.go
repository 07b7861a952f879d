// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error taxonomy shared by the command engine and the stores.
//
// Every command catches these at its boundary and reports a single line
// per error (one line per message for ValidationError).

package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// INPUT ERRORS
// =============================================================================

// MissingParameterError is returned when a required argument was not given.
type MissingParameterError struct {
	Param string // Parameter name without brackets (e.g., "id")
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Missing parameter <%s>.", e.Param)
}

// NotANumberError is returned when an argument has no integer prefix.
type NotANumberError struct {
	Param string
	Value string
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("The value of parameter <%s> is not a number: %q.", e.Param, e.Value)
}

// =============================================================================
// LOOKUP ERRORS
// =============================================================================

// NotFoundError is returned when no quiz exists for an id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("There is no quiz with id=%d.", e.ID)
}

// =============================================================================
// STORE ERRORS
// =============================================================================

// ValidationError carries one or more field-level messages from a rejected
// create or update.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "The quiz is invalid."
	}
	return "The quiz is invalid: " + strings.Join(e.Messages, " ")
}

// RepositoryError wraps any other failure of the underlying store.
type RepositoryError struct {
	Op  string // Operation that failed (e.g., "create", "find all")
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("quiz store %s failed", e.Op)
	}
	return fmt.Sprintf("quiz store %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewRepositoryError wraps err for op. Returns nil when err is nil and
// leaves taxonomy errors untouched.
func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		repoErr       *RepositoryError
	)
	if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) || errors.As(err, &repoErr) {
		return err
	}
	return &RepositoryError{Op: op, Err: err}
}

// ValidateFields checks the text of a quiz about to be stored.
// Returns a *ValidationError listing every blank field, or nil.
func ValidateFields(question, answer string) error {
	var msgs []string
	if strings.TrimSpace(question) == "" {
		msgs = append(msgs, "Question must not be empty.")
	}
	if strings.TrimSpace(answer) == "" {
		msgs = append(msgs, "Answer must not be empty.")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// Lines returns the report lines for err: one per validation message,
// otherwise the single error text.
func Lines(err error) []string {
	if err == nil {
		return nil
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Messages) > 0 {
		lines := make([]string, 0, len(validationErr.Messages)+1)
		lines = append(lines, "The quiz is invalid:")
		lines = append(lines, validationErr.Messages...)
		return lines
	}
	return []string{err.Error()}
}
