// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studybuddy-tui/internal/model"
	"github.com/jeranaias/studybuddy-tui/internal/session"
	"github.com/jeranaias/studybuddy-tui/internal/ui/components"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update routes Bubble Tea messages. Controller commands always run inside
// tea.Cmd goroutines; this loop itself never blocks on the network.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SessionChangedMsg:
		m.refreshViewport()
		return m, m.listenCmd()

	case DirectoryLoadedMsg, SelectDoneMsg, DeleteDoneMsg, SendDoneMsg:
		m.syncSidebarCursor()
		m.refreshViewport()
		return m, nil

	case CreateDoneMsg:
		return m, m.handleCreateDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

// handleCreateDone closes the dialog on success and keeps it open, fields
// intact, on failure.
func (m *Model) handleCreateDone(msg CreateDoneMsg) tea.Cmd {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, session.ErrTitleRequired):
			m.dialog.SetNotice("give the conversation a title")
		case errors.Is(msg.Err, session.ErrSubjectRequired):
			m.dialog.SetNotice("pick a subject")
		default:
			m.dialog.SetNotice(components.FriendlyError(msg.Err))
		}
		return nil
	}

	m.dialog.Reset()
	m.showDialog = false
	m.syncSidebarCursor()
	m.refreshViewport()
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showDialog {
		return m.handleDialogKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.notice = ""
		m.ctrl.AcknowledgeError()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebar.Toggle()
		m.layout()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.showDialog = true
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == paneInput && m.sidebar.Open() {
			m.focus = paneSidebar
			m.input.Blur()
			return m, nil
		}
		m.focus = paneInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == paneSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Field values survive so reopening resumes where the user left off.
		m.showDialog = false
		return m, nil
	case "ctrl+s":
		if m.ctrl.State().Busy() {
			m.dialog.SetNotice("still working, try again in a moment")
			return m, nil
		}
		return m, m.createCmd(m.dialog.Title(), m.dialog.Subject())
	}

	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.ctrl.View()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.CursorUp(len(v.Directory))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.sidebar.CursorDown(len(v.Directory))
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if conv, ok := m.cursorConversation(v.Directory); ok {
			return m, m.selectCmd(conv)
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteChat):
		if conv, ok := m.cursorConversation(v.Directory); ok {
			return m, m.deleteCmd(conv)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		if m.ctrl.State().Busy() {
			m.notice = "an answer is still arriving"
			return m, nil
		}
		if _, ok := m.ctrl.View().Active(); !ok {
			m.notice = "create a conversation first (ctrl+n)"
			return m, nil
		}
		m.notice = ""
		m.input.Reset()
		return m, m.sendCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateFocused forwards non-key messages to the focused sub-components.
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) cursorConversation(directory []model.Conversation) (string, bool) {
	i := m.sidebar.Cursor()
	if i < 0 || i >= len(directory) {
		return "", false
	}
	return directory[i].ID, true
}

// syncSidebarCursor moves the cursor to the active conversation.
func (m *Model) syncSidebarCursor() {
	v := m.ctrl.View()
	for i, conv := range v.Directory {
		if conv.ID == v.ActiveID {
			m.sidebar.SetCursor(i, len(v.Directory))
			return
		}
	}
	m.sidebar.SetCursor(0, len(v.Directory))
}

// layout recomputes component sizes from the window size.
func (m *Model) layout() {
	chatWidth := m.width - m.sidebar.Width()
	if chatWidth < 20 {
		chatWidth = 20
	}

	// Header, input box, status bar.
	chromeHeight := 7
	vpHeight := m.height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = chatWidth
	m.viewport.Height = vpHeight
	m.sidebar.SetHeight(m.height - 2)
	m.input.SetWidth(chatWidth)
	m.dialog.SetWidth(min(m.width-4, 64))
}

// refreshViewport re-renders the message list and follows the stream.
func (m *Model) refreshViewport() {
	v := m.ctrl.View()

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(components.RenderConversation(v.Messages, m.theme, m.viewport.Width))

	// Follow output while an answer streams in, and stick to the bottom
	// when the user was already there.
	if atBottom || v.State == session.StateStreaming || v.State == session.StateSending {
		m.viewport.GotoBottom()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
