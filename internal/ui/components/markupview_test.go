// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// Color profiles are disabled under test, so styled output degrades to the
// underlying text and assertions can compare content directly.

func TestRenderHTMLInlineTags(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderHTML("<strong>bold</strong> and <em>slanted</em>", theme, 80)
	if !strings.Contains(out, "bold") || !strings.Contains(out, "slanted") {
		t.Errorf("inline content lost: %q", out)
	}
	if strings.Contains(out, "<strong>") || strings.Contains(out, "<em>") {
		t.Errorf("tags leaked into output: %q", out)
	}
}

func TestRenderHTMLList(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderHTML("<ul><li>first</li><li>second</li></ul>", theme, 80)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per item, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "• first") || !strings.Contains(lines[1], "• second") {
		t.Errorf("bullets wrong: %q", out)
	}
}

func TestRenderHTMLLineBreaks(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderHTML("one<br/>two", theme, 80)
	if out != "one\ntwo" {
		t.Errorf("breaks not converted: %q", out)
	}
}

func TestRenderHTMLCodeBlock(t *testing.T) {
	theme := styles.NewTheme()

	html := `<pre><code class="language-python">print("hi")
x = 1</code></pre>`
	out := RenderHTML(html, theme, 80)

	if strings.Contains(out, "<pre>") || strings.Contains(out, "</code>") {
		t.Errorf("code tags leaked: %q", out)
	}
	// The highlighter interleaves color codes between tokens, so assert on
	// the individual fragments rather than the contiguous source line.
	for _, frag := range []string{"print", `"hi"`} {
		if !strings.Contains(out, frag) {
			t.Errorf("code fragment %q lost: %q", frag, out)
		}
	}
	if !strings.Contains(out, "python") {
		t.Errorf("language badge missing: %q", out)
	}
}

func TestRenderHTMLHeadings(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderHTML("<h1>Top</h1><br/><h3>Sub</h3>", theme, 80)
	if !strings.Contains(out, "Top") || !strings.Contains(out, "Sub") {
		t.Errorf("heading content lost: %q", out)
	}
	if strings.Contains(out, "<h1>") || strings.Contains(out, "<h3>") {
		t.Errorf("heading tags leaked: %q", out)
	}
}

func TestRenderAssistantEndToEnd(t *testing.T) {
	theme := styles.NewTheme()

	out := RenderAssistant("**Stacks** are *LIFO*", theme, 80)
	if !strings.Contains(out, "Stacks") || !strings.Contains(out, "LIFO") {
		t.Errorf("content lost in pipeline: %q", out)
	}
	if strings.Contains(out, "**") || strings.Contains(out, "<strong>") {
		t.Errorf("markup not fully transformed: %q", out)
	}
}
