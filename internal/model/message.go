// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"github.com/google/uuid"

	"github.com/jeranaias/studybuddy-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "StudyBuddy"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// Persisted messages carry the backend-assigned ID and are never edited or
// reordered. The two transient variants (optimistic user message, streaming
// assistant placeholder) carry synthetic local ids and are flagged Local.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Local marks a message that exists only on the client: the optimistic
	// user entry or the in-flight assistant placeholder. Local messages are
	// discarded wholesale when the canonical history is refetched.
	Local bool `json:"-"`
}

// NewPersistedMessage creates a message from backend-reported data.
func NewPersistedMessage(id string, role Role, content string) Message {
	return Message{
		ID:      id,
		Role:    role,
		Content: content,
	}
}

// NewOptimisticMessage creates the client-local user message shown before
// the backend confirms the send. It is never reconciled against a backend
// id; the backend persists the user message independently.
func NewOptimisticMessage(content string) Message {
	return Message{
		ID:      NewLocalID(),
		Role:    RoleUser,
		Content: content,
		Local:   true,
	}
}

// NewPlaceholderMessage creates the empty assistant message that receives
// streamed snapshots. Exactly one placeholder exists per in-flight send.
func NewPlaceholderMessage() Message {
	return Message{
		ID:    NewLocalID(),
		Role:  RoleAssistant,
		Local: true,
	}
}

// NewLocalID mints a synthetic, locally-unique message id.
func NewLocalID() string {
	return "local-" + uuid.NewString()
}

// Preview returns a truncated one-line preview of the message content.
func (m Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.FirstLine(m.Content), maxRunes)
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
