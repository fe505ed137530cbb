// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the studybuddy TUI.

This package contains styled, interactive components built on top of the
Bubble Tea and Lip Gloss libraries.

# Components

InputArea (input.go) - The question input with focus-aware border.
Sidebar (sidebar.go) - Conversation directory with cursor and active marker.
CreateDialog (createdialog.go) - Title, subject, and PDF attachment form.
RenderMessage/RenderConversation (message.go) - Chat message bubbles.
RenderAssistant/RenderHTML (markupview.go) - Terminal rendering of the
markup transformer's output.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.
RenderError (errorbox.go) - User-facing error notices.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	sidebar := components.NewSidebar(theme, true)
	view := sidebar.View(directory, activeID)
*/
package components
