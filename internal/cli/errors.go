// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes for CLI commands.
//
// Every handler returns its error to the dispatcher, which prints it
// once and maps it to a stable exit code so scripts can branch on the
// failure category.
package cli

import (
	"errors"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/config"
)

const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitGeneralError indicates a general error.
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments.
	ExitUsageError = 2
	// ExitConfigError indicates a configuration error.
	ExitConfigError = 3
	// ExitNetworkError indicates the backend could not be reached.
	ExitNetworkError = 5
	// ExitNotFoundError indicates a conversation was not found.
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out.
	ExitTimeoutError = 8
)

// UsageError is returned when a command is invoked with bad arguments.
type UsageError struct {
	Message string
	Usage   string
}

func (e *UsageError) Error() string {
	if e.Usage != "" {
		return e.Message + "\nUsage: " + e.Usage
	}
	return e.Message
}

// NewUsageError creates a usage error with an example invocation.
func NewUsageError(message, usage string) error {
	return &UsageError{Message: message, Usage: usage}
}

// NotFoundError is returned when a named conversation does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "conversation not found: " + e.ID
}

// GetExitCode maps an error to its exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFoundError
	}

	var validationErrs config.ValidateErrors
	if errors.As(err, &validationErrs) {
		return ExitConfigError
	}

	switch {
	case backend.IsTimeout(err):
		return ExitTimeoutError
	case backend.IsDirectoryUnavailable(err),
		backend.IsHistoryUnavailable(err),
		backend.IsCreateFailed(err),
		backend.IsSendFailed(err),
		backend.IsStreamUnsupported(err):
		return ExitNetworkError
	}

	return ExitGeneralError
}
