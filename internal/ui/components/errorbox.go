// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// ERROR NOTICE
// =============================================================================

// FriendlyError maps backend failures to short user-facing text. The raw
// error stays in the log; the UI shows something actionable.
func FriendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case backend.IsTimeout(err):
		return "The answer took too long. Try asking again."
	case backend.IsStreamUnsupported(err):
		return "The server did not stream an answer. Check that the backend is up to date."
	case backend.IsDirectoryUnavailable(err):
		return "Could not reach the server to list conversations."
	case backend.IsHistoryUnavailable(err):
		return "Could not load this conversation's messages."
	case backend.IsCreateFailed(err):
		return "Could not create the conversation. Your input is kept; fix the connection and retry."
	case backend.IsSendFailed(err):
		return "Sending the question failed. The conversation may be out of sync until the next reload."
	default:
		return err.Error()
	}
}

// RenderError renders a dismissible error notice.
func RenderError(err error, theme *styles.Theme, width int) string {
	if err == nil {
		return ""
	}

	title := theme.ErrorTitle.Render("Something went wrong")
	body := theme.ErrorMessage.Render(FriendlyError(err))
	hint := theme.DialogHint.Render("press esc to dismiss")

	return theme.ErrorBox.
		MaxWidth(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body, hint))
}
