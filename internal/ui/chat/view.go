// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studybuddy-tui/internal/session"
	"github.com/jeranaias/studybuddy-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full interface.
func (m *Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.showDialog {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.View())
	}

	v := m.ctrl.View()

	header := m.renderHeader(v)
	body := m.renderBody(v)
	status := m.renderStatusBar(v)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m *Model) renderHeader(v session.View) string {
	title := "StudyBuddy"
	if conv, ok := v.Active(); ok {
		title = conv.Title
		if conv.Subject != "" {
			title += " " + m.theme.HeaderSubtitle.Render("("+conv.Subject+")")
		}
	}
	return m.theme.Header.Width(m.width).Render(m.theme.HeaderTitle.Render(title))
}

func (m *Model) renderBody(v session.View) string {
	var chatParts []string

	if v.LastError != nil {
		chatParts = append(chatParts, components.RenderError(v.LastError, m.theme, m.viewport.Width))
	}

	chatParts = append(chatParts, m.viewport.View())
	chatParts = append(chatParts, m.input.View())

	chatPane := lipgloss.JoinVertical(lipgloss.Left, chatParts...)

	if !m.sidebar.Open() {
		return chatPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(v.Directory, v.ActiveID),
		chatPane,
	)
}

func (m *Model) renderStatusBar(v session.View) string {
	var left string
	switch v.State {
	case session.StateSending:
		left = m.spin.View() + m.theme.ThinkingText.Render(" sending...")
	case session.StateStreaming:
		left = m.spin.View() + m.theme.ThinkingText.Render(" answering...")
	case session.StateReconciling:
		left = m.spin.View() + m.theme.ThinkingText.Render(" syncing...")
	default:
		left = m.renderShortcuts()
	}

	if m.notice != "" {
		left = m.theme.ErrorTitle.Render(m.notice)
	}

	return m.theme.StatusBar.Width(m.width).Render(left)
}

func (m *Model) renderShortcuts() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		help := b.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(help.Key)+" "+m.theme.ShortcutDesc.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}
