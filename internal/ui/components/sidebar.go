// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/studybuddy-tui/internal/model"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// Sidebar lists all conversations with the active one highlighted. The
// cursor moves independently of the active conversation so the user can
// browse without triggering history loads.
type Sidebar struct {
	theme  *styles.Theme
	width  int
	height int
	cursor int
	open   bool
}

// NewSidebar creates a sidebar component.
func NewSidebar(theme *styles.Theme, open bool) *Sidebar {
	return &Sidebar{
		theme:  theme,
		width:  28,
		height: 20,
		open:   open,
	}
}

// Toggle flips the sidebar open or collapsed.
func (s *Sidebar) Toggle() {
	s.open = !s.open
}

// Open reports whether the sidebar is visible.
func (s *Sidebar) Open() bool {
	return s.open
}

// Width returns the rendered width, 0 when collapsed.
func (s *Sidebar) Width() int {
	if !s.open {
		return 0
	}
	return s.width
}

// SetHeight sets the available height.
func (s *Sidebar) SetHeight(h int) {
	s.height = h
}

// CursorUp moves the selection cursor up.
func (s *Sidebar) CursorUp(n int) {
	s.cursor--
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.clamp(n)
}

// CursorDown moves the selection cursor down.
func (s *Sidebar) CursorDown(n int) {
	s.cursor++
	s.clamp(n)
}

// Cursor returns the current cursor index.
func (s *Sidebar) Cursor() int {
	return s.cursor
}

// SetCursor positions the cursor, clamped to n entries.
func (s *Sidebar) SetCursor(i, n int) {
	s.cursor = i
	s.clamp(n)
}

func (s *Sidebar) clamp(n int) {
	if n == 0 {
		s.cursor = 0
		return
	}
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// View renders the sidebar for the given directory.
func (s *Sidebar) View(directory []model.Conversation, activeID string) string {
	if !s.open {
		return ""
	}

	titleWidth := s.width - 4

	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(directory) == 0 {
		b.WriteString(s.theme.SidebarEmpty.Render("(none yet)"))
	}

	for i, conv := range directory {
		line := conv.DisplayTitle(titleWidth)
		marker := "  "
		if conv.ID == activeID {
			marker = "* "
		}

		style := s.theme.SidebarItem
		if i == s.cursor {
			style = s.theme.SidebarItemActive
		}
		b.WriteString(style.Width(s.width - 2).Render(marker + line))
		b.WriteString("\n")
		if conv.Subject != "" {
			b.WriteString(s.theme.SidebarMeta.Render(conv.Subject))
			b.WriteString("\n")
		}
	}

	return s.theme.Sidebar.
		Width(s.width).
		Height(s.height).
		Render(b.String())
}
