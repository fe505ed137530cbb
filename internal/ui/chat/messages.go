// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat interface.
package chat

import (
	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionChangedMsg signals that the controller's observable state changed
// and the view should re-render. Delivered through the notification channel,
// coalesced: many controller updates may collapse into one message.
type SessionChangedMsg struct{}

// DirectoryLoadedMsg reports a finished directory load.
type DirectoryLoadedMsg struct {
	Err error
}

// SelectDoneMsg reports a finished conversation switch.
type SelectDoneMsg struct {
	ID  string
	Err error
}

// SendDoneMsg reports a finished send cycle (stream plus reconciliation).
type SendDoneMsg struct {
	Err error
}

// CreateDoneMsg reports a finished conversation create.
type CreateDoneMsg struct {
	Conversation model.Conversation
	Err          error
}

// DeleteDoneMsg reports a finished delete plus directory reload.
type DeleteDoneMsg struct {
	Err error
}
