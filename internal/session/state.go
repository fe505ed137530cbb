// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// =============================================================================
// CONTROLLER STATES
// =============================================================================

// State is the controller's position in the command cycle. Exactly one
// command runs at a time; every state other than Idle and Failed rejects
// new commands with ErrBusy.
type State int

const (
	// StateIdle accepts new commands.
	StateIdle State = iota

	// StateSending covers the window between submitting a question and the
	// backend accepting the answer stream.
	StateSending

	// StateStreaming means answer chunks are arriving and the live preview
	// is growing.
	StateStreaming

	// StateReconciling means the controller is refetching authoritative
	// state from the backend (after a stream, a selection, or a delete).
	StateReconciling

	// StateFailed marks the last command as failed. The error stays visible
	// until acknowledged or until the next command starts; new commands are
	// accepted as from Idle.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateStreaming:
		return "streaming"
	case StateReconciling:
		return "reconciling"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether the state rejects new commands.
func (s State) Busy() bool {
	return s == StateSending || s == StateStreaming || s == StateReconciling
}
