// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the StudyBuddy API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// MaxUploadFiles is the hard cap on reference documents per conversation,
// enforced here at submit time in addition to the selection-time cap in
// the upload package.
const MaxUploadFiles = 5

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the StudyBuddy client.
type ClientConfig struct {
	// BaseURL is the StudyBuddy API base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// StreamTimeout bounds the total lifetime of one answer stream,
	// including generation time (default: 5m)
	StreamTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       30 * time.Second,
		StreamTimeout: 5 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the StudyBuddy API.
// It is safe for concurrent use, though the session controller serializes
// all calls in practice.
//
// Example:
//
//	client := backend.NewClient()
//	convs, err := client.ListConversations(ctx)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// streamClient carries no Timeout because generation can far exceed
	// the request timeout; AskStream bounds its lifetime with ctx instead.
	streamClient *http.Client
}

// NewClient creates a new StudyBuddy client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new StudyBuddy client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.StreamTimeout == 0 {
		config.StreamTimeout = 5 * time.Minute
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		streamClient: &http.Client{},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CONVERSATION DIRECTORY
// =============================================================================

// ListConversations fetches the full conversation list from the backend.
// Order is exactly the backend's response order; the client never sorts,
// filters, or paginates.
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/historys/", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeDirectory, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeDirectory, Message: "conversation list request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeDirectory,
			Message: "conversation list request failed: " + resp.Status,
		}
	}

	var summaries []conversationSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return nil, &ClientError{Type: ErrTypeDirectory, Message: "failed to decode conversation list", Cause: err}
	}

	conversations := make([]model.Conversation, 0, len(summaries))
	for _, s := range summaries {
		conversations = append(conversations, s.toModel())
	}

	return conversations, nil
}

// =============================================================================
// HISTORY
// =============================================================================

// GetHistory fetches the full message history for one conversation.
// The backend reports "not found" as an error payload with a 200 status;
// both that and transport failures surface as ErrHistoryUnavailable.
func (c *Client) GetHistory(ctx context.Context, conversationID string) (*model.History, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/history/"+url.PathEscape(conversationID), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeHistory, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeHistory, Message: "history request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeHistory,
			Message: "history request failed: " + resp.Status,
		}
	}

	var result historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeHistory, Message: "failed to decode history", Cause: err}
	}

	if result.Error != "" {
		return nil, &ClientError{Type: ErrTypeHistory, Message: result.Error}
	}

	hist := result.toModel()
	return &hist, nil
}

// =============================================================================
// CREATE
// =============================================================================

// CreateConversation submits a multipart create request with the title,
// subject, and up to MaxUploadFiles reference documents. Extra files are
// dropped here even if a caller slipped past the selection-time cap.
func (c *Client) CreateConversation(ctx context.Context, title, subject string, files []File) (model.Conversation, error) {
	var none model.Conversation

	if strings.TrimSpace(title) == "" {
		return none, &ClientError{Type: ErrTypeCreate, Message: "title is required"}
	}
	if strings.TrimSpace(subject) == "" {
		return none, &ClientError{Type: ErrTypeCreate, Message: "subject is required"}
	}
	if len(files) > MaxUploadFiles {
		files = files[:MaxUploadFiles]
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("title", title); err != nil {
		return none, &ClientError{Type: ErrTypeCreate, Message: "failed to encode form", Cause: err}
	}
	if err := writer.WriteField("subject", subject); err != nil {
		return none, &ClientError{Type: ErrTypeCreate, Message: "failed to encode form", Cause: err}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return none, &ClientError{Type: ErrTypeCreate, Message: "failed to encode file " + f.Name, Cause: err}
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return none, &ClientError{Type: ErrTypeCreate, Message: "failed to read file " + f.Name, Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return none, &ClientError{Type: ErrTypeCreate, Message: "failed to finalize form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/create", strings.NewReader(body.String()))
	if err != nil {
		return none, &ClientError{Type: ErrTypeCreate, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return none, ErrTimeout
		}
		return none, &ClientError{Type: ErrTypeCreate, Message: "create request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return none, &ClientError{
			Type:    ErrTypeCreate,
			Message: "create request failed: " + resp.Status,
		}
	}

	var result createResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return none, &ClientError{Type: ErrTypeCreate, Message: "failed to decode create response", Cause: err}
	}

	return model.NewConversation(result.ConversationID.String(), title, subject), nil
}

// =============================================================================
// DELETE
// =============================================================================

// DeleteConversation deletes a conversation and its messages. Errors here
// are non-fatal to the caller's flow: the unconditional directory reload
// that follows is the real consistency mechanism.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.config.BaseURL+"/"+url.PathEscape(conversationID)+"/delete", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeDelete, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeDelete, Message: "delete request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeDelete,
			Message: "delete request failed: " + resp.Status,
		}
	}

	// No required body; drain it so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}
