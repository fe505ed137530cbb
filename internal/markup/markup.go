// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup renders the backend's constrained markup subset to HTML.
package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// PERFORMANCE: Pre-compiled regex (compiled once at startup)
// =============================================================================

var (
	fencedCodeRegex = regexp.MustCompile("(?s)```(\\w+)?\\n(.+?)```")
	inlineCodeRegex = regexp.MustCompile("`([^`\n]+?)`")
	boldRegex       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRegex     = regexp.MustCompile(`\*([^*\n]+?)\*`)
	heading3Regex   = regexp.MustCompile(`(?m)^### (.+)$`)
	heading2Regex   = regexp.MustCompile(`(?m)^## (.+)$`)
	heading1Regex   = regexp.MustCompile(`(?m)^# (.+)$`)
	bulletRegex     = regexp.MustCompile(`^\* (.+)$`)
)

// Placeholder sentinels. NUL cannot appear in well-formed assistant output,
// so extracted code spans are parked between NUL markers while the
// emphasis and structure rules run.
const placeholderMark = "\x00"

// =============================================================================
// RENDER
// =============================================================================

// Render converts text in the supported markup subset to HTML.
//
// The function is pure and stateless. It performs no HTML escaping (see the
// package documentation for the trust policy). Output is only idempotent
// when it contains none of the trigger characters; Render is meant to run
// once over raw backend text, not over its own output.
func Render(text string) string {
	var code []string

	// 1. Fenced code blocks out first so nothing inside is re-interpreted.
	text = fencedCodeRegex.ReplaceAllStringFunc(text, func(match string) string {
		sub := fencedCodeRegex.FindStringSubmatch(match)
		lang, body := sub[1], sub[2]

		var b strings.Builder
		b.WriteString("<pre><code")
		if lang != "" {
			b.WriteString(` class="language-` + lang + `"`)
		}
		b.WriteString(">")
		b.WriteString(body)
		b.WriteString("</code></pre>")

		code = append(code, b.String())
		return placeholder(len(code) - 1)
	})

	// 2. Inline code, same protection.
	text = inlineCodeRegex.ReplaceAllStringFunc(text, func(match string) string {
		sub := inlineCodeRegex.FindStringSubmatch(match)
		code = append(code, "<code>"+sub[1]+"</code>")
		return placeholder(len(code) - 1)
	})

	// 3. Bold before italic: the single-asterisk pattern would otherwise
	// consume the double-asterisk markers.
	text = boldRegex.ReplaceAllString(text, "<strong>$1</strong>")

	// 4. Italic.
	text = italicRegex.ReplaceAllString(text, "<em>$1</em>")

	// 5. Headings, most specific prefix first.
	text = heading3Regex.ReplaceAllString(text, "<h3>$1</h3>")
	text = heading2Regex.ReplaceAllString(text, "<h2>$1</h2>")
	text = heading1Regex.ReplaceAllString(text, "<h1>$1</h1>")

	// 6. Bullet lines, contiguous runs wrapped in a single <ul>.
	text = wrapBulletRuns(text)

	// 7. Remaining newlines become explicit breaks.
	text = strings.ReplaceAll(text, "\n", "<br/>")

	// Park the code spans back.
	for i, span := range code {
		text = strings.Replace(text, placeholder(i), span, 1)
	}

	return text
}

func placeholder(i int) string {
	return placeholderMark + strconv.Itoa(i) + placeholderMark
}

// wrapBulletRuns converts "* item" lines to <li> elements and wraps each
// contiguous run of them in one unordered list. The run collapses to a
// single line so no stray breaks are injected between items.
func wrapBulletRuns(text string) string {
	lines := strings.Split(text, "\n")

	var out []string
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(run, "")+"</ul>")
		run = nil
	}

	for _, line := range lines {
		if sub := bulletRegex.FindStringSubmatch(line); sub != nil {
			run = append(run, "<li>"+sub[1]+"</li>")
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}
