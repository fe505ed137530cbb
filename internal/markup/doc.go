// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup renders the backend's constrained markup subset to HTML.
//
// This is deliberately not a markdown implementation. The backend emits a
// small, fixed subset (fenced code, inline code, bold, italic, headings
// 1-3, bullet lists, line breaks) and this package renders exactly that
// subset, in a fixed rule order, and nothing more.
//
// # Rule Order
//
// Rules are regex-order-dependent and must run in this sequence:
//
//  1. Fenced code blocks (extracted to placeholders)
//  2. Inline code (extracted to placeholders)
//  3. Bold (**...**)
//  4. Italic (*...*)
//  5. Headings (#, ##, ###)
//  6. Bullet lines (* ...), contiguous runs wrapped in one <ul>
//  7. Remaining newlines -> <br/>
//
// Code spans are lifted out before the emphasis rules so that markup
// characters inside code are never re-interpreted, and bold runs before
// italic so the single-asterisk pattern cannot consume bold markers.
//
// # Escaping Policy
//
// Render performs no HTML escaping. Content is trusted to originate from
// the assistant backend; routing untrusted input through this package
// requires adding an explicit escaping step first.
package markup
