// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the StudyBuddy API.
//
// The backend owns conversation CRUD, document ingestion, and answer
// generation; this package only speaks its wire contract:
//
//	GET    /historys/             list conversations
//	GET    /history/{id}          full history for one conversation
//	POST   /create                multipart create (title, subject, <=5 PDFs)
//	DELETE /{id}/delete           delete a conversation
//	GET    /{id}/get?query=...    streamed raw-text answer
//
// The answer stream is plain chunked text with no framing; AskStream
// accumulates chunks and reports a full-buffer snapshot after each one.
// The backend persists the final assistant message server-side before or
// as the stream ends, so callers reconcile by refetching history rather
// than trusting the streamed text.
//
// Errors follow a small taxonomy (ErrDirectoryUnavailable,
// ErrHistoryUnavailable, ErrCreateFailed, ErrDeleteFailed, ErrSendFailed,
// ErrStreamUnsupported) with Is* helpers for classification.
package backend
