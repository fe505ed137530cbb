// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"github.com/jeranaias/studybuddy-tui/internal/util"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a titled, subject-tagged thread of messages.
//
// Identity is the backend-assigned ID, set at creation and immutable from
// the client's view. Title and subject edits are not supported; a
// conversation is created whole and destroyed whole.
type Conversation struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

// NewConversation creates a conversation from backend-reported data.
func NewConversation(id, title, subject string) Conversation {
	return Conversation{
		ID:      id,
		Title:   title,
		Subject: subject,
	}
}

// DisplayTitle returns the title truncated for sidebar display.
func (c Conversation) DisplayTitle(maxWidth int) string {
	title := c.Title
	if title == "" {
		title = "Untitled"
	}
	return util.TruncateWidth(title, maxWidth)
}

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is the full backend-reported state of one conversation: its
// metadata plus the ordered message list. It replaces any cached history
// wholesale; the client never merges histories.
type History struct {
	Conversation
	Messages []Message
}

// MessageCount returns the number of messages in the history.
func (h History) MessageCount() int {
	return len(h.Messages)
}

// IsEmpty returns true if the history holds no messages.
func (h History) IsEmpty() bool {
	return len(h.Messages) == 0
}
