// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/studybuddy-tui/internal/config"
	"github.com/jeranaias/studybuddy-tui/internal/session"
	"github.com/jeranaias/studybuddy-tui/internal/ui/components"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// pane focus targets.
const (
	paneInput = iota
	paneSidebar
)

// Model is the root Bubble Tea model of the studybuddy TUI.
type Model struct {
	ctrl  *session.Controller
	cfg   *config.Config
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	input    *components.InputArea
	sidebar  *components.Sidebar
	dialog   *components.CreateDialog
	spin     spinner.Model

	// updates carries controller change notifications into the update loop.
	updates chan struct{}

	width      int
	height     int
	focus      int
	showDialog bool
	notice     string
	quitting   bool
}

// New creates the chat model. Wire the returned model's Notify method into
// the controller before starting the program.
func New(ctrl *session.Controller, cfg *config.Config, theme *styles.Theme) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	m := &Model{
		ctrl:     ctrl,
		cfg:      cfg,
		theme:    theme,
		keys:     DefaultKeyMap(),
		viewport: vp,
		input:    components.NewInputArea(theme),
		sidebar:  components.NewSidebar(theme, cfg.UI.ShowSidebar),
		dialog:   components.NewCreateDialog(theme, cfg.Study.Subjects),
		spin:     sp,
		updates:  make(chan struct{}, 1),
		width:    80,
		height:   24,
		focus:    paneInput,
	}
	return m
}

// Notify is the controller's change callback. Coalescing send: a pending
// notification absorbs later ones until the update loop drains the channel.
func (m *Model) Notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Init starts the notification listener and the initial directory load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		m.listenCmd(),
		m.loadDirectoryCmd(),
		m.spin.Tick,
	)
}

// =============================================================================
// COMMANDS
// =============================================================================

// listenCmd blocks until the controller reports a change. Re-armed by the
// update loop after every SessionChangedMsg.
func (m *Model) listenCmd() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return SessionChangedMsg{}
	}
}

func (m *Model) loadDirectoryCmd() tea.Cmd {
	return func() tea.Msg {
		return DirectoryLoadedMsg{Err: m.ctrl.LoadDirectory(context.Background())}
	}
}

func (m *Model) selectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return SelectDoneMsg{ID: id, Err: m.ctrl.Select(context.Background(), id)}
	}
}

func (m *Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return SendDoneMsg{Err: m.ctrl.Send(context.Background(), text)}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return DeleteDoneMsg{Err: m.ctrl.Delete(context.Background(), id)}
	}
}

// createCmd opens the dialog's pending attachments and submits the create.
// File handles are closed as soon as the request finishes; the pending set
// survives untouched so a failed create can be retried as-is.
func (m *Model) createCmd(title, subject string) tea.Cmd {
	uploads := m.dialog.Uploads()
	return func() tea.Msg {
		files, closeAll, err := uploads.Open()
		if err != nil {
			return CreateDoneMsg{Err: err}
		}
		defer closeAll()

		conv, err := m.ctrl.Create(context.Background(), title, subject, files)
		return CreateDoneMsg{Conversation: conv, Err: err}
	}
}
