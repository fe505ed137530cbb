// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"
	"testing"
)

// =============================================================================
// EMPHASIS TESTS
// =============================================================================

func TestRenderBoldAndItalic(t *testing.T) {
	got := Render("**bold** and *italic* and `code`")

	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("missing bold element: %q", got)
	}
	if !strings.Contains(got, "<em>italic</em>") {
		t.Errorf("missing italic element: %q", got)
	}
	if !strings.Contains(got, "<code>code</code>") {
		t.Errorf("missing inline code element: %q", got)
	}
}

func TestRenderBoldBeforeItalic(t *testing.T) {
	// Adjacent bold and italic must not mis-pair asterisks.
	got := Render("**a** *b*")

	if got != "<strong>a</strong> <em>b</em>" {
		t.Errorf("asterisks mis-paired: %q", got)
	}
}

func TestRenderItalicDoesNotCrossLines(t *testing.T) {
	got := Render("*open\nclose*")
	if strings.Contains(got, "<em>") {
		t.Errorf("italic must not span lines: %q", got)
	}
}

// =============================================================================
// CODE TESTS
// =============================================================================

func TestRenderFencedCodeBlock(t *testing.T) {
	got := Render("```go\nfmt.Println(\"hi\")\n```")

	if !strings.Contains(got, `<pre><code class="language-go">`) {
		t.Errorf("missing code block with language tag: %q", got)
	}
	if !strings.Contains(got, `fmt.Println("hi")`) {
		t.Errorf("code body mangled: %q", got)
	}
}

func TestRenderFencedCodeWithoutLanguage(t *testing.T) {
	got := Render("```\nplain\n```")
	if !strings.Contains(got, "<pre><code>plain") {
		t.Errorf("missing bare code block: %q", got)
	}
}

func TestRenderCodeProtectedFromEmphasis(t *testing.T) {
	// Markup characters inside code spans must not be re-interpreted.
	got := Render("use `**argv` here")
	if !strings.Contains(got, "<code>**argv</code>") {
		t.Errorf("inline code content re-interpreted: %q", got)
	}

	got = Render("```\na := *p * **q\n```")
	if strings.Contains(got, "<strong>") || strings.Contains(got, "<em>") {
		t.Errorf("fenced code content re-interpreted: %q", got)
	}
}

func TestRenderCodeBlockKeepsNewlines(t *testing.T) {
	got := Render("```\nline1\nline2\n```")
	if !strings.Contains(got, "line1\nline2") {
		t.Errorf("newlines inside code must survive: %q", got)
	}
}

// =============================================================================
// STRUCTURE TESTS
// =============================================================================

func TestRenderHeadings(t *testing.T) {
	got := Render("# One\n## Two\n### Three")

	for _, want := range []string{"<h1>One</h1>", "<h2>Two</h2>", "<h3>Three</h3>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %q", want, got)
		}
	}
}

func TestRenderBulletRun(t *testing.T) {
	got := Render("intro\n* first\n* second\noutro")

	if strings.Count(got, "<ul>") != 1 {
		t.Errorf("contiguous bullets must share one list: %q", got)
	}
	if !strings.Contains(got, "<ul><li>first</li><li>second</li></ul>") {
		t.Errorf("bullet run not wrapped: %q", got)
	}
}

func TestRenderSeparateBulletRuns(t *testing.T) {
	got := Render("* a\n\n* b")
	if strings.Count(got, "<ul>") != 2 {
		t.Errorf("separated bullets must get separate lists: %q", got)
	}
}

func TestRenderLineBreaks(t *testing.T) {
	got := Render("one\ntwo")
	if got != "one<br/>two" {
		t.Errorf("expected explicit break, got %q", got)
	}
}

// =============================================================================
// POLICY TESTS
// =============================================================================

func TestRenderDoesNotEscapeHTML(t *testing.T) {
	// Content is trusted from the backend; escaping is deliberately absent.
	got := Render("a <b> c")
	if got != "a <b> c" {
		t.Errorf("content must pass through unescaped: %q", got)
	}
}

func TestRenderPlainTextUnchanged(t *testing.T) {
	got := Render("no trigger characters here")
	if got != "no trigger characters here" {
		t.Errorf("plain text must be unchanged: %q", got)
	}
}
