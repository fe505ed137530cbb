// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

func newTestDialog() *CreateDialog {
	return NewCreateDialog(styles.NewTheme(), []string{"math", "biology"})
}

func TestAttachTypedRejectsNonPDF(t *testing.T) {
	d := newTestDialog()

	d.filePath.SetValue("notes.txt")
	d.attachTyped()

	if d.uploads.Len() != 0 {
		t.Errorf("non-PDF attached, len = %d", d.uploads.Len())
	}
	if !strings.Contains(d.notice, "PDF") {
		t.Errorf("expected PDF notice, got %q", d.notice)
	}
	if d.filePath.Value() != "notes.txt" {
		t.Errorf("rejected path cleared: %q", d.filePath.Value())
	}
}

func TestAttachTypedAcceptsPDFAndClears(t *testing.T) {
	d := newTestDialog()

	d.filePath.SetValue("chapter1.pdf")
	d.attachTyped()

	if d.uploads.Len() != 1 {
		t.Fatalf("expected 1 pending file, got %d", d.uploads.Len())
	}
	if d.notice != "" {
		t.Errorf("unexpected notice: %q", d.notice)
	}
	if d.filePath.Value() != "" {
		t.Errorf("input not cleared after attach: %q", d.filePath.Value())
	}
}

func TestAttachTypedReportsCapacity(t *testing.T) {
	d := newTestDialog()

	for i := 0; i < 5; i++ {
		d.filePath.SetValue(fmt.Sprintf("doc%d.pdf", i))
		d.attachTyped()
	}
	if d.uploads.Len() != 5 {
		t.Fatalf("expected full set, got %d", d.uploads.Len())
	}

	d.filePath.SetValue("doc5.pdf")
	d.attachTyped()

	if d.uploads.Len() != 5 {
		t.Errorf("capacity exceeded, len = %d", d.uploads.Len())
	}
	if !strings.Contains(d.notice, "at most") {
		t.Errorf("expected capacity notice, got %q", d.notice)
	}
}
