// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the StudyBuddy API.
package backend

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the StudyBuddy client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeDirectory
	ErrTypeHistory
	ErrTypeCreate
	ErrTypeDelete
	ErrTypeSend
	ErrTypeStreamUnsupported
	ErrTypeTimeout
)

// Sentinel errors for easy checking.
var (
	ErrDirectoryUnavailable = &ClientError{Type: ErrTypeDirectory, Message: "conversation list unavailable"}
	ErrHistoryUnavailable   = &ClientError{Type: ErrTypeHistory, Message: "conversation history unavailable"}
	ErrCreateFailed         = &ClientError{Type: ErrTypeCreate, Message: "conversation create failed"}
	ErrDeleteFailed         = &ClientError{Type: ErrTypeDelete, Message: "conversation delete failed"}
	ErrSendFailed           = &ClientError{Type: ErrTypeSend, Message: "send failed"}
	ErrStreamUnsupported    = &ClientError{Type: ErrTypeStreamUnsupported, Message: "response body is not streamable"}
	ErrTimeout              = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// errType extracts the ErrorType from an error chain.
func errType(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

// IsDirectoryUnavailable checks if an error is a directory load failure.
func IsDirectoryUnavailable(err error) bool {
	return errType(err) == ErrTypeDirectory
}

// IsHistoryUnavailable checks if an error is a history load failure.
func IsHistoryUnavailable(err error) bool {
	return errType(err) == ErrTypeHistory
}

// IsCreateFailed checks if an error is a conversation create failure.
func IsCreateFailed(err error) bool {
	return errType(err) == ErrTypeCreate
}

// IsDeleteFailed checks if an error is a conversation delete failure.
func IsDeleteFailed(err error) bool {
	return errType(err) == ErrTypeDelete
}

// IsSendFailed checks if an error is a send failure.
func IsSendFailed(err error) bool {
	return errType(err) == ErrTypeSend
}

// IsStreamUnsupported checks if an error means the transport cannot stream.
func IsStreamUnsupported(err error) bool {
	return errType(err) == ErrTypeStreamUnsupported
}

// IsTimeout checks if an error is a timeout.
func IsTimeout(err error) bool {
	return errType(err) == ErrTypeTimeout
}
