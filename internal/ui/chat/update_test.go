// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/config"
	"github.com/jeranaias/studybuddy-tui/internal/session"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

func newTestModel() *Model {
	ctrl := session.NewController(backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: "http://127.0.0.1:1"}))
	m := New(ctrl, config.Default(), styles.NewTheme())
	m.width = 100
	m.height = 30
	m.layout()
	return m
}

func TestNotifyCoalesces(t *testing.T) {
	m := newTestModel()

	m.Notify()
	m.Notify()
	m.Notify()

	if len(m.updates) != 1 {
		t.Errorf("expected coalesced notification, channel holds %d", len(m.updates))
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if !m.quitting {
		t.Error("quitting flag not set")
	}
}

func TestSendWithoutConversationShowsNotice(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("what is a heap?")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("send should not dispatch without an active conversation")
	}
	if m.notice == "" {
		t.Error("expected a user-facing notice")
	}
	if m.input.Value() != "what is a heap?" {
		t.Error("input should keep its text when the send is rejected")
	}
}

func TestSendIgnoresBlankInput(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank input should not dispatch a send")
	}
	if m.notice != "" {
		t.Errorf("blank input should be silently ignored, got notice %q", m.notice)
	}
}

func TestCreateFailureKeepsDialogOpen(t *testing.T) {
	m := newTestModel()
	m.showDialog = true

	m.handleCreateDone(CreateDoneMsg{Err: session.ErrTitleRequired})

	if !m.showDialog {
		t.Error("dialog should stay open after a failed create")
	}
}

func TestNewChatKeyOpensDialog(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if !m.showDialog {
		t.Error("ctrl+n should open the create dialog")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showDialog {
		t.Error("esc should close the create dialog")
	}
}

func TestLayoutSurvivesTinyWindow(t *testing.T) {
	m := newTestModel()

	m.width = 10
	m.height = 5
	m.layout()

	if m.viewport.Width < 20 || m.viewport.Height < 3 {
		t.Errorf("layout produced unusable viewport %dx%d", m.viewport.Width, m.viewport.Height)
	}
}

func TestSidebarToggleChangesLayout(t *testing.T) {
	m := newTestModel()
	wide := m.viewport.Width

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.sidebar.Open() == config.Default().UI.ShowSidebar {
		t.Error("toggle did not flip sidebar state")
	}
	if m.sidebar.Open() == false && m.viewport.Width <= wide {
		t.Error("collapsing the sidebar should widen the chat pane")
	}
}
