// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRoleDisplayName(t *testing.T) {
	if got := RoleUser.DisplayName(); got != "You" {
		t.Errorf("expected 'You', got %q", got)
	}
	if got := RoleAssistant.DisplayName(); got != "StudyBuddy" {
		t.Errorf("expected 'StudyBuddy', got %q", got)
	}
	if got := Role("other").DisplayName(); got != "other" {
		t.Errorf("expected passthrough for unknown role, got %q", got)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewOptimisticMessage(t *testing.T) {
	msg := NewOptimisticMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("expected user role, got %s", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("expected content 'hello', got %q", msg.Content)
	}
	if !msg.Local {
		t.Error("optimistic message must be flagged Local")
	}
	if !strings.HasPrefix(msg.ID, "local-") {
		t.Errorf("expected synthetic id, got %q", msg.ID)
	}
}

func TestNewPlaceholderMessage(t *testing.T) {
	msg := NewPlaceholderMessage()

	if msg.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %s", msg.Role)
	}
	if !msg.Local {
		t.Error("placeholder must be flagged Local")
	}
	if !msg.IsEmpty() {
		t.Error("placeholder must start empty")
	}
}

func TestLocalIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewLocalID()
		if seen[id] {
			t.Fatalf("duplicate local id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewPersistedMessage(t *testing.T) {
	msg := NewPersistedMessage("42", RoleAssistant, "answer")

	if msg.Local {
		t.Error("persisted message must not be flagged Local")
	}
	if msg.ID != "42" {
		t.Errorf("expected backend id preserved, got %q", msg.ID)
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewPersistedMessage("1", RoleAssistant, "\n\nfirst line of a fairly long answer\nmore")
	got := msg.Preview(20)
	if got != "first line of a f..." {
		t.Errorf("unexpected preview: %q", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationDisplayTitle(t *testing.T) {
	c := NewConversation("7", "", "DBMS")
	if got := c.DisplayTitle(20); got != "Untitled" {
		t.Errorf("expected 'Untitled' fallback, got %q", got)
	}

	c = NewConversation("7", "Normalization notes and questions", "DBMS")
	if got := c.DisplayTitle(10); len([]rune(got)) > 10 {
		t.Errorf("title not truncated: %q", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := History{Conversation: NewConversation("1", "t", "s")}
	if !h.IsEmpty() {
		t.Error("expected empty history")
	}
	h.Messages = append(h.Messages, NewPersistedMessage("1", RoleUser, "q"))
	if h.IsEmpty() || h.MessageCount() != 1 {
		t.Error("expected one message")
	}
}
