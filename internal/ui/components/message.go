// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studybuddy-tui/internal/model"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// RenderMessage renders one chat message as a role-labeled bubble. Assistant
// content runs through the markup transformer; user content stays verbatim.
func RenderMessage(msg model.Message, theme *styles.Theme, width int) string {
	bubbleWidth := width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	switch msg.Role {
	case model.RoleUser:
		label := theme.RoleUser.Render(msg.Role.DisplayName())
		bubble := theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	default:
		label := theme.RoleAssistant.Render(msg.Role.DisplayName())
		content := msg.Content
		if msg.IsEmpty() {
			content = theme.StreamingText.Render("...")
		} else {
			content = RenderAssistant(content, theme, bubbleWidth)
		}
		bubble := theme.AssistantBubble.MaxWidth(bubbleWidth).Render(content)
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
	}
}

// RenderConversation renders a full message list, oldest first.
func RenderConversation(msgs []model.Message, theme *styles.Theme, width int) string {
	if len(msgs) == 0 {
		return theme.EmptyState.Width(width).Render("No messages yet. Ask your first question!")
	}

	var parts []string
	for _, m := range msgs {
		parts = append(parts, RenderMessage(m, theme, width))
	}
	return strings.Join(parts, "\n\n")
}
