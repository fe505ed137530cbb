// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the StudyBuddy API.
package backend

import (
	"encoding/json"
	"io"

	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// The backend assigns integer ids but the client treats every id as an
// opaque string, so id fields decode through json.Number.

// conversationSummary is one element of the GET /historys/ response.
type conversationSummary struct {
	ConversationID json.Number `json:"conversation_id"`
	Title          string      `json:"title"`
	Subject        string      `json:"subject"`
}

// historyResponse is the GET /history/{id} response. The backend signals
// "conversation not found" with an error payload instead of a status code.
type historyResponse struct {
	ConversationID json.Number   `json:"conversation_id"`
	Title          string        `json:"title"`
	Subject        string        `json:"subject"`
	Messages       []wireMessage `json:"messages"`
	Error          string        `json:"error,omitempty"`
}

// wireMessage is one message inside a history response.
type wireMessage struct {
	MessageID json.Number `json:"message_id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
}

// createResponse is the POST /create response.
type createResponse struct {
	ConversationID json.Number `json:"conversation_id"`
}

// =============================================================================
// UPLOAD TYPE
// =============================================================================

// File is one attachment submitted with a create request. The reader is
// consumed exactly once while building the multipart body.
type File struct {
	Name   string
	Reader io.Reader
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (s conversationSummary) toModel() model.Conversation {
	return model.NewConversation(s.ConversationID.String(), s.Title, s.Subject)
}

func (h historyResponse) toModel() model.History {
	hist := model.History{
		Conversation: model.NewConversation(h.ConversationID.String(), h.Title, h.Subject),
		Messages:     make([]model.Message, 0, len(h.Messages)),
	}
	for _, m := range h.Messages {
		hist.Messages = append(hist.Messages, model.NewPersistedMessage(
			m.MessageID.String(), model.Role(m.Role), m.Content))
	}
	return hist
}
