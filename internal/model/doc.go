// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing subject-scoped conversations and their messages as the
// backend reports them, plus the transient client-local message variants
// used while a send is in flight.
//
// # Key Types
//
//   - Conversation: A titled, subject-tagged thread identified by a
//     backend-assigned id
//   - Message: Single message with role and content; persisted messages
//     carry backend ids, transient ones carry synthetic local ids
//   - Role: Message role enumeration (user, assistant)
//
// # Identity
//
// Backend-assigned ids are opaque strings and immutable. The client mints
// synthetic ids (model.NewLocalID) for exactly two transient cases: the
// optimistic user message appended before the backend confirms a send, and
// the placeholder assistant message that holds streamed text until
// reconciliation replaces it with the canonical history.
package model
