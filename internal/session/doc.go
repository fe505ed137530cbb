// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns all client-side conversation state and is the only
// component that talks to the backend.
//
// A Controller holds the conversation directory, the active conversation's
// history cache, and the live answer preview, and runs the command state
// machine (Idle, Sending, Streaming, Reconciling). Commands are blocking and
// meant to run off the UI goroutine; the UI renders from View(), which
// returns a consistent copy of everything under one lock so a frame never
// mixes state from two different updates.
//
// While a command is in flight every other command is rejected with ErrBusy.
// The backend persists user and assistant messages server-side during the
// answer stream, so the streamed text is only provisional: after a stream
// completes the controller refetches history and the authoritative copy
// replaces all optimistic entries.
package session
