// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jeranaias/studybuddy-tui/internal/markup"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// =============================================================================
// MARKUP VIEW - terminal rendering of transformed assistant output
// =============================================================================

// The markup package turns assistant text into a small, fixed HTML subset.
// MarkupView translates that subset to ANSI for the terminal: inline tags map
// to text styles, block tags to styled lines, fenced code to a chroma
// highlighted CodeBlock.

var (
	preCodeRegex = regexp.MustCompile(`(?s)<pre><code(?: class="language-([^"]*)")?>(.*?)</code></pre>`)
	inlineRegex  = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	strongRegex  = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)
	emRegex      = regexp.MustCompile(`(?s)<em>(.*?)</em>`)
	h1Regex      = regexp.MustCompile(`<h1>(.*?)</h1>`)
	h2Regex      = regexp.MustCompile(`<h2>(.*?)</h2>`)
	h3Regex      = regexp.MustCompile(`<h3>(.*?)</h3>`)
	listRegex    = regexp.MustCompile(`(?s)<ul>(.*?)</ul>`)
	itemRegex    = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
)

// blockMark parks rendered code blocks while text-level styling runs.
const blockMark = "\x01"

// RenderAssistant transforms raw assistant text and renders it for the
// terminal at the given width.
func RenderAssistant(text string, theme *styles.Theme, width int) string {
	return RenderHTML(markup.Render(text), theme, width)
}

// RenderHTML renders the transformer's HTML subset to ANSI-styled text.
// Unknown tags pass through untouched.
func RenderHTML(html string, theme *styles.Theme, width int) string {
	var blocks []string

	// Fenced code first. The rendered block is multi-line and must not be
	// touched by the line-level replacements below.
	out := preCodeRegex.ReplaceAllStringFunc(html, func(match string) string {
		sub := preCodeRegex.FindStringSubmatch(match)
		cb := NewCodeBlock(sub[1], sub[2])
		cb.SetMaxWidth(width)
		blocks = append(blocks, "\n"+cb.Render()+"\n")
		return blockMark + strconv.Itoa(len(blocks)-1) + blockMark
	})

	out = inlineRegex.ReplaceAllStringFunc(out, func(match string) string {
		sub := inlineRegex.FindStringSubmatch(match)
		return theme.InlineCode.Render(sub[1])
	})

	out = strongRegex.ReplaceAllStringFunc(out, func(match string) string {
		sub := strongRegex.FindStringSubmatch(match)
		return theme.Strong.Render(sub[1])
	})

	out = emRegex.ReplaceAllStringFunc(out, func(match string) string {
		sub := emRegex.FindStringSubmatch(match)
		return theme.Emphasis.Render(sub[1])
	})

	out = h1Regex.ReplaceAllStringFunc(out, func(match string) string {
		sub := h1Regex.FindStringSubmatch(match)
		return theme.Heading1.Render(sub[1])
	})
	out = h2Regex.ReplaceAllStringFunc(out, func(match string) string {
		sub := h2Regex.FindStringSubmatch(match)
		return theme.Heading2.Render(sub[1])
	})
	out = h3Regex.ReplaceAllStringFunc(out, func(match string) string {
		sub := h3Regex.FindStringSubmatch(match)
		return theme.Heading3.Render(sub[1])
	})

	out = listRegex.ReplaceAllStringFunc(out, func(match string) string {
		sub := listRegex.FindStringSubmatch(match)
		var items []string
		for _, item := range itemRegex.FindAllStringSubmatch(sub[1], -1) {
			items = append(items, theme.Bullet.Render("  • "+item[1]))
		}
		return strings.Join(items, "\n")
	})

	out = strings.ReplaceAll(out, "<br/>", "\n")

	for i, block := range blocks {
		out = strings.Replace(out, blockMark+strconv.Itoa(i)+blockMark, block, 1)
	}

	return out
}
