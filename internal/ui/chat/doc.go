// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main Bubble Tea model for the studybuddy TUI.
//
// The chat model is a thin shell over session.Controller: every key press
// that needs the backend dispatches a tea.Cmd that runs one blocking
// controller command off the UI goroutine, and every controller state change
// arrives back as a SessionChangedMsg. Rendering always pulls a fresh
// controller View, so the UI never holds conversation state of its own.
package chat
