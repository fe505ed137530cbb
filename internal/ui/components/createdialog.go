// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jeranaias/studybuddy-tui/internal/upload"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// CREATE CONVERSATION DIALOG
// =============================================================================

// dialog focus targets, cycled with tab.
const (
	focusTitle = iota
	focusSubject
	focusFiles
	focusCount
)

// CreateDialog collects a title, a subject, and up to upload.MaxFiles PDF
// attachments for a new conversation. Field values survive a failed submit
// so the user never retypes after a network error.
type CreateDialog struct {
	theme *styles.Theme

	title      textinput.Model
	filePath   textinput.Model
	subjects   []string
	subjectIdx int
	uploads    *upload.PendingSet

	focus  int
	notice string
	width  int
}

// NewCreateDialog creates the dialog with the configured subject list.
func NewCreateDialog(theme *styles.Theme, subjects []string) *CreateDialog {
	title := textinput.New()
	title.Placeholder = "Conversation title"
	title.CharLimit = 200
	title.Prompt = ""
	title.Focus()

	filePath := textinput.New()
	filePath.Placeholder = "Path to a PDF, enter to attach"
	filePath.Prompt = ""

	return &CreateDialog{
		theme:    theme,
		title:    title,
		filePath: filePath,
		subjects: subjects,
		uploads:  upload.NewPendingSet(),
		width:    60,
	}
}

// SetWidth sets the dialog width.
func (d *CreateDialog) SetWidth(w int) {
	d.width = w
	inner := w - 8
	if inner < 20 {
		inner = 20
	}
	d.title.Width = inner
	d.filePath.Width = inner
}

// Title returns the entered title.
func (d *CreateDialog) Title() string {
	return d.title.Value()
}

// Subject returns the selected subject.
func (d *CreateDialog) Subject() string {
	if len(d.subjects) == 0 {
		return ""
	}
	return d.subjects[d.subjectIdx]
}

// Uploads returns the pending attachment set.
func (d *CreateDialog) Uploads() *upload.PendingSet {
	return d.uploads
}

// Reset clears all fields for the next use. Only called after a successful
// create.
func (d *CreateDialog) Reset() {
	d.title.Reset()
	d.filePath.Reset()
	d.subjectIdx = 0
	d.uploads.Clear()
	d.notice = ""
	d.setFocus(focusTitle)
}

// SetNotice shows a one-line status below the fields (validation errors,
// skipped attachments).
func (d *CreateDialog) SetNotice(notice string) {
	d.notice = notice
}

func (d *CreateDialog) setFocus(target int) {
	d.focus = target
	d.title.Blur()
	d.filePath.Blur()
	switch target {
	case focusTitle:
		d.title.Focus()
	case focusFiles:
		d.filePath.Focus()
	}
}

// Update handles dialog key events. Enter on the file field attaches the
// typed path; enter elsewhere is left to the caller to treat as submit.
func (d *CreateDialog) Update(msg tea.Msg) (*CreateDialog, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			d.setFocus((d.focus + 1) % focusCount)
			return d, nil
		case "shift+tab":
			d.setFocus((d.focus + focusCount - 1) % focusCount)
			return d, nil
		case "up":
			if d.focus == focusSubject && d.subjectIdx > 0 {
				d.subjectIdx--
				return d, nil
			}
		case "down":
			if d.focus == focusSubject && d.subjectIdx < len(d.subjects)-1 {
				d.subjectIdx++
				return d, nil
			}
		case "enter":
			if d.focus == focusFiles {
				d.attachTyped()
				return d, nil
			}
		case "backspace":
			if d.focus == focusFiles && d.filePath.Value() == "" && d.uploads.Len() > 0 {
				d.uploads.Remove(d.uploads.Len() - 1)
				return d, nil
			}
		}
	}

	var cmd tea.Cmd
	switch d.focus {
	case focusTitle:
		d.title, cmd = d.title.Update(msg)
	case focusFiles:
		d.filePath, cmd = d.filePath.Update(msg)
	}
	return d, cmd
}

// attachTyped adds the typed path to the pending set and reports skips.
func (d *CreateDialog) attachTyped() {
	path := strings.TrimSpace(d.filePath.Value())
	if path == "" {
		return
	}

	result := d.uploads.Add(path)
	switch {
	case result.SkippedType > 0:
		d.notice = "only PDF files can be attached"
	case result.LimitHit():
		d.notice = fmt.Sprintf("at most %d files per conversation", upload.MaxFiles)
	default:
		d.notice = ""
		d.filePath.Reset()
	}
}

// View renders the dialog.
func (d *CreateDialog) View() string {
	var b strings.Builder

	b.WriteString(d.theme.DialogTitle.Render("New conversation"))
	b.WriteString("\n\n")

	b.WriteString(d.theme.DialogLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(d.title.View())
	b.WriteString("\n\n")

	b.WriteString(d.theme.DialogLabel.Render("Subject"))
	b.WriteString("\n")
	for i, subject := range d.subjects {
		style := d.theme.SubjectOption
		cursor := "  "
		if i == d.subjectIdx {
			style = d.theme.SubjectSelected
			if d.focus == focusSubject {
				cursor = "> "
			} else {
				cursor = "* "
			}
		}
		b.WriteString(style.Render(cursor + subject))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(d.theme.DialogLabel.Render(
		fmt.Sprintf("Attachments (%d/%d, PDF only)", d.uploads.Len(), upload.MaxFiles)))
	b.WriteString("\n")
	for _, name := range d.uploads.Names() {
		b.WriteString(d.theme.AttachmentItem.Render("  + " + name))
		b.WriteString("\n")
	}
	if d.uploads.IsFull() {
		b.WriteString(d.theme.AttachmentWarning.Render("  attachment limit reached"))
		b.WriteString("\n")
	} else {
		b.WriteString(d.filePath.View())
		b.WriteString("\n")
	}

	if d.notice != "" {
		b.WriteString("\n")
		b.WriteString(d.theme.AttachmentWarning.Render(d.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.theme.DialogHint.Render("tab: next field - ctrl+s: create - esc: cancel"))

	return d.theme.DialogBox.
		Width(d.width).
		Render(lipgloss.NewStyle().Render(b.String()))
}
