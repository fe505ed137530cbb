// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the one-shot command surface of studybuddy.
//
// The default invocation starts the TUI; everything else here is a
// non-interactive command that talks to the StudyBuddy backend once and
// exits: ask, list, config, version, help. Output is TTY-aware so piped
// invocations get plain text and --json gets a machine-readable envelope.
package cli
