// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

// =============================================================================
// COMMAND ERRORS
// =============================================================================

var (
	// ErrBusy means another command is still in flight. The caller should
	// retry once the controller is idle again.
	ErrBusy = errors.New("session: a command is already in flight")

	// ErrEmptyMessage means the question text was empty after trimming.
	ErrEmptyMessage = errors.New("session: message text is empty")

	// ErrNoActiveConversation means a send was attempted with no
	// conversation selected.
	ErrNoActiveConversation = errors.New("session: no active conversation")

	// ErrUnknownConversation means the requested id is not in the directory.
	ErrUnknownConversation = errors.New("session: conversation not in directory")

	// ErrTitleRequired means the create dialog submitted a blank title.
	ErrTitleRequired = errors.New("session: conversation title is required")

	// ErrSubjectRequired means the create dialog submitted no subject.
	ErrSubjectRequired = errors.New("session: subject is required")
)
