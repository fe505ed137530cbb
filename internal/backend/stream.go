// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the StudyBuddy API.
package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// =============================================================================
// SNAPSHOT CALLBACK
// =============================================================================

// SnapshotFunc receives the full accumulated answer text after every chunk.
// Snapshots always grow; each call fully supersedes the previous one, which
// sidesteps any incremental-merge logic downstream. Granularity is whatever
// the transport delivers, not per-token.
type SnapshotFunc func(snapshot string)

// StreamHandler receives lifecycle events from one answer stream. Either
// field may be nil. Events fire on the goroutine driving the stream, in
// order: Start once, then Snapshot per chunk.
type StreamHandler struct {
	// Start runs once the backend has accepted the request and a readable
	// body is confirmed, before any chunk is read.
	Start func()

	// Snapshot receives the full accumulated text after every chunk.
	Snapshot SnapshotFunc
}

// =============================================================================
// STREAM READER
// =============================================================================

// readBufSize is the per-read buffer for answer streams. The backend sends
// small text chunks, so this mostly maps one read to one generation burst.
const readBufSize = 4096

// StreamReader accumulates a raw-text answer stream chunk by chunk.
//
// The stream has no framing or delimiters: bytes are concatenated as they
// arrive. A reader is single-use and not restartable; a new send creates a
// new reader.
type StreamReader struct {
	reader io.Reader
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	chunkCount  int
}

// NewStreamReader creates a stream reader over a response body.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{reader: r}
}

// Process reads the stream to completion, invoking the snapshot callback
// with the full accumulated text after every chunk. Callbacks run in read
// order on the calling goroutine. Returns nil on clean end of stream.
func (s *StreamReader) Process(ctx context.Context, onSnapshot SnapshotFunc) error {
	buf := make([]byte, readBufSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := s.reader.Read(buf)
		if n > 0 {
			s.accumulator.Write(buf[:n])
			s.chunkCount++
			if onSnapshot != nil {
				onSnapshot(s.accumulator.String())
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Accumulated returns all content read so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// ChunkCount returns the number of chunks delivered.
func (s *StreamReader) ChunkCount() int {
	return s.chunkCount
}

// =============================================================================
// STREAMING ASK
// =============================================================================

// AskStream sends a question to a conversation and consumes the streamed
// answer. The backend persists both the user message and the final
// assistant message server-side; the returned text is only provisional and
// callers must refetch history for the canonical message.
//
// Fails fast with ErrStreamUnsupported if the response carries no readable
// body. Non-success statuses read the error text the backend sends in the
// body, matching its plain-text failure mode.
func (c *Client) AskStream(ctx context.Context, conversationID, query string, h StreamHandler) (string, error) {
	askURL := c.config.BaseURL + "/" + url.PathEscape(conversationID) + "/get?query=" + url.QueryEscape(query)

	ctx, cancel := context.WithTimeout(ctx, c.config.StreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, askURL, nil)
	if err != nil {
		return "", &ClientError{Type: ErrTypeSend, Message: "failed to create request", Cause: err}
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeSend, Message: "send request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(text))
		if msg == "" {
			msg = "send request failed: " + resp.Status
		}
		return "", &ClientError{Type: ErrTypeSend, Message: msg}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return "", ErrStreamUnsupported
	}

	if h.Start != nil {
		h.Start()
	}

	reader := NewStreamReader(resp.Body)
	if err := reader.Process(ctx, h.Snapshot); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return reader.Accumulated(), ErrTimeout
		}
		return reader.Accumulated(), &ClientError{Type: ErrTypeSend, Message: "answer stream interrupted", Cause: err}
	}

	return reader.Accumulated(), nil
}
