// errors.go - Error types and exit codes for the quizrun process.
//
// ERROR HANDLING: Errors must not be silently ignored
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates a normal quit
	ExitSuccess = 0
	// ExitGeneralError indicates a startup failure (config, storage, terminal)
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command-line usage
	ExitUsageError = 2
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError represents invalid command-line flags.
type UsageError struct {
	Flag   string // Flag that was rejected, if any
	Reason string
}

func (e *UsageError) Error() string {
	if e.Flag != "" {
		return fmt.Sprintf("invalid flag --%s: %s", e.Flag, e.Reason)
	}
	return e.Reason
}

// StartupError wraps a failure while preparing the session.
type StartupError struct {
	Stage string // e.g., "config", "storage"
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	return ExitGeneralError
}
