// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// NotifyFunc is invoked, outside the controller lock, whenever observable
// state changed. The UI uses it to schedule a re-render; it must not block.
type NotifyFunc func()

// Controller is the synchronization controller. All fields behind mu; the
// command methods block on network I/O and must be called off the UI
// goroutine. View() is the only read surface the UI needs.
type Controller struct {
	client *backend.Client
	logger *log.Logger
	notify NotifyFunc

	mu        sync.Mutex
	state     State
	directory []model.Conversation
	activeID  string
	messages  []model.Message

	// Streaming bookkeeping. placeholderAt indexes messages while a stream
	// is live, -1 otherwise. sendSeq increments per accepted send; events
	// carrying an older seq belong to an abandoned stream and are dropped.
	livePreview   string
	placeholderAt int
	sendSeq       uint64

	lastErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithNotify sets the change notification callback.
func WithNotify(fn NotifyFunc) Option {
	return func(c *Controller) { c.notify = fn }
}

// NewController creates a controller backed by the given client.
func NewController(client *backend.Client, opts ...Option) *Controller {
	c := &Controller{
		client:        client,
		logger:        log.New(io.Discard, "", 0),
		notify:        func() {},
		state:         StateIdle,
		placeholderAt: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// VIEW
// =============================================================================

// View is a consistent copy of everything the UI renders. Slices are copies;
// mutating them does not affect the controller.
type View struct {
	State       State
	Directory   []model.Conversation
	ActiveID    string
	Messages    []model.Message
	LivePreview string
	LastError   error
}

// Active returns the active conversation's directory entry, or false when
// nothing is selected.
func (v View) Active() (model.Conversation, bool) {
	for _, conv := range v.Directory {
		if conv.ID == v.ActiveID {
			return conv, true
		}
	}
	return model.Conversation{}, false
}

// View returns a snapshot of the controller's observable state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		State:       c.state,
		Directory:   append([]model.Conversation(nil), c.directory...),
		ActiveID:    c.activeID,
		Messages:    append([]model.Message(nil), c.messages...),
		LivePreview: c.livePreview,
		LastError:   c.lastErr,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AcknowledgeError clears a Failed state back to Idle. No-op otherwise.
func (c *Controller) AcknowledgeError() {
	c.mu.Lock()
	if c.state == StateFailed {
		c.state = StateIdle
		c.lastErr = nil
	}
	c.mu.Unlock()
	c.notify()
}

// begin transitions into a busy state if the controller accepts commands.
// Starting a new command discards any lingering failure notice.
func (c *Controller) begin(s State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy() {
		return ErrBusy
	}
	c.state = s
	c.lastErr = nil
	return nil
}

// finish returns to Idle, or to Failed when err is non-nil. Returns err.
func (c *Controller) finish(err error) error {
	c.mu.Lock()
	if err != nil {
		c.state = StateFailed
		c.lastErr = err
	} else {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.notify()
	return err
}

// =============================================================================
// DIRECTORY COMMANDS
// =============================================================================

// LoadDirectory replaces the conversation directory from the backend, then
// activates the first entry and loads its history. With an empty directory
// the active conversation and history are cleared. On fetch failure the
// directory falls back to empty rather than keeping stale entries.
func (c *Controller) LoadDirectory(ctx context.Context) error {
	if err := c.begin(StateReconciling); err != nil {
		return err
	}

	list, err := c.client.ListConversations(ctx)
	if err != nil {
		c.logger.Printf("session: directory load failed: %v", err)
		c.mu.Lock()
		c.directory = nil
		c.activeID = ""
		c.resetHistoryLocked()
		c.mu.Unlock()
		return c.finish(err)
	}

	c.mu.Lock()
	c.directory = list
	if len(list) == 0 {
		c.activeID = ""
		c.resetHistoryLocked()
		c.mu.Unlock()
		return c.finish(nil)
	}
	c.activeID = list[0].ID
	c.resetHistoryLocked()
	id := c.activeID
	c.mu.Unlock()
	c.notify()

	return c.finish(c.loadHistory(ctx, id))
}

// Select makes id the active conversation and loads its history. The cache
// is cleared before the fetch so a slow load shows an empty conversation,
// never the previous one's messages.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.inDirectoryLocked(id) {
		c.mu.Unlock()
		return ErrUnknownConversation
	}
	c.state = StateReconciling
	c.lastErr = nil
	c.activeID = id
	c.resetHistoryLocked()
	c.mu.Unlock()
	c.notify()

	return c.finish(c.loadHistory(ctx, id))
}

// inDirectoryLocked reports whether id is a known conversation. Caller holds mu.
func (c *Controller) inDirectoryLocked(id string) bool {
	for _, conv := range c.directory {
		if conv.ID == id {
			return true
		}
	}
	return false
}

// resetHistoryLocked clears the history cache and any stream leftovers.
// Caller holds mu.
func (c *Controller) resetHistoryLocked() {
	c.messages = nil
	c.livePreview = ""
	c.placeholderAt = -1
}

// loadHistory fetches the authoritative history for id and installs it if id
// is still active. On failure the cache stays empty; a cleared conversation
// beats a stale one.
func (c *Controller) loadHistory(ctx context.Context, id string) error {
	history, err := c.client.GetHistory(ctx, id)

	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		c.notify()
	}()

	if c.activeID != id {
		return nil
	}
	if err != nil {
		c.logger.Printf("session: history load failed for %s: %v", id, err)
		c.resetHistoryLocked()
		return err
	}
	c.messages = history.Messages
	c.livePreview = ""
	c.placeholderAt = -1
	return nil
}

// =============================================================================
// CREATE / DELETE
// =============================================================================

// Create makes a new conversation with up to backend.MaxUploadFiles PDF
// attachments, prepends it to the directory, and activates it. Validation
// and backend errors leave the directory untouched so the caller's dialog
// can keep its field values and retry.
func (c *Controller) Create(ctx context.Context, title, subject string, files []backend.File) (model.Conversation, error) {
	if strings.TrimSpace(title) == "" {
		return model.Conversation{}, ErrTitleRequired
	}
	if strings.TrimSpace(subject) == "" {
		return model.Conversation{}, ErrSubjectRequired
	}
	if err := c.begin(StateReconciling); err != nil {
		return model.Conversation{}, err
	}

	conv, err := c.client.CreateConversation(ctx, title, subject, files)
	if err != nil {
		c.logger.Printf("session: create failed: %v", err)
		return model.Conversation{}, c.finish(err)
	}

	c.mu.Lock()
	c.directory = append([]model.Conversation{conv}, c.directory...)
	c.activeID = conv.ID
	c.resetHistoryLocked()
	c.mu.Unlock()
	c.notify()

	// A fresh conversation has no messages yet, but fetch anyway so the
	// cache reflects whatever the backend actually recorded.
	return conv, c.finish(c.loadHistory(ctx, conv.ID))
}

// Delete removes a conversation, then reloads the directory and activates
// whichever conversation is now first. Backend delete failures are logged
// and otherwise ignored; the reload runs regardless, so the directory always
// reflects what the backend still has.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.begin(StateReconciling); err != nil {
		return err
	}

	if err := c.client.DeleteConversation(ctx, id); err != nil {
		c.logger.Printf("session: delete of %s failed (continuing): %v", id, err)
	}

	list, err := c.client.ListConversations(ctx)
	if err != nil {
		c.logger.Printf("session: directory reload after delete failed: %v", err)
		c.mu.Lock()
		c.directory = nil
		c.activeID = ""
		c.resetHistoryLocked()
		c.mu.Unlock()
		return c.finish(err)
	}

	c.mu.Lock()
	c.directory = list
	if len(list) == 0 {
		c.activeID = ""
		c.resetHistoryLocked()
		c.mu.Unlock()
		return c.finish(nil)
	}
	c.activeID = list[0].ID
	c.resetHistoryLocked()
	next := c.activeID
	c.mu.Unlock()
	c.notify()

	return c.finish(c.loadHistory(ctx, next))
}

// =============================================================================
// SEND
// =============================================================================

// Send submits a question on the active conversation and consumes the
// streamed answer. The user message appears optimistically at once; a
// placeholder assistant message appears when the backend accepts the stream
// and tracks the full accumulated text chunk by chunk, together with the
// live preview. After a clean stream the history is refetched and the
// authoritative copy replaces every optimistic entry.
//
// On failure the optimistic entries stay in the cache (possibly orphaned,
// since the backend may or may not have persisted them) and the error is
// surfaced; the next successful reconciliation sweeps them away.
func (c *Controller) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.activeID == "" {
		c.mu.Unlock()
		return ErrNoActiveConversation
	}
	c.state = StateSending
	c.lastErr = nil
	c.sendSeq++
	seq := c.sendSeq
	id := c.activeID
	c.messages = append(c.messages, model.NewOptimisticMessage(text))
	c.mu.Unlock()
	c.notify()

	_, err := c.client.AskStream(ctx, id, text, backend.StreamHandler{
		Start:    func() { c.streamStarted(seq) },
		Snapshot: func(snapshot string) { c.streamSnapshot(seq, snapshot) },
	})
	if err != nil {
		c.logger.Printf("session: send failed: %v", err)
		c.mu.Lock()
		if seq == c.sendSeq {
			// Optimistic entries stay, including any partial placeholder
			// text; no refetch on failure.
			c.livePreview = ""
			c.placeholderAt = -1
			c.state = StateFailed
			c.lastErr = err
		}
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.mu.Lock()
	if seq != c.sendSeq {
		c.mu.Unlock()
		return nil
	}
	c.state = StateReconciling
	c.livePreview = ""
	c.placeholderAt = -1
	c.mu.Unlock()
	c.notify()

	return c.finish(c.loadHistory(ctx, id))
}

// streamStarted installs the placeholder assistant message once the backend
// accepts the stream. Dropped if the send was abandoned.
func (c *Controller) streamStarted(seq uint64) {
	c.mu.Lock()
	if seq != c.sendSeq {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, model.NewPlaceholderMessage())
	c.placeholderAt = len(c.messages) - 1
	c.state = StateStreaming
	c.mu.Unlock()
	c.notify()
}

// streamSnapshot applies one full-buffer snapshot: placeholder content and
// live preview change in the same update, so the UI can never render one
// without the other.
func (c *Controller) streamSnapshot(seq uint64, snapshot string) {
	c.mu.Lock()
	if seq != c.sendSeq || c.placeholderAt < 0 || c.placeholderAt >= len(c.messages) {
		c.mu.Unlock()
		return
	}
	c.messages[c.placeholderAt].Content = snapshot
	c.livePreview = snapshot
	c.mu.Unlock()
	c.notify()
}
