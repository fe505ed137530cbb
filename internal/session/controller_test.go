// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// =============================================================================
// FAKE BACKEND
// =============================================================================

type fakeMessage struct {
	id      int
	role    string
	content string
}

type fakeConversation struct {
	id       int
	title    string
	subject  string
	messages []fakeMessage
}

// fakeBackend speaks the studybuddy wire contract. Streams persist the user
// question and the final answer server-side, like the real backend.
type fakeBackend struct {
	mu     sync.Mutex
	convs  []fakeConversation
	nextID int

	chunks      []string      // answer stream chunks
	streamGate  chan struct{} // when non-nil, the stream blocks here after the first chunk
	failHistory bool
	failStream  bool
}

func newFakeBackend(convs ...fakeConversation) *fakeBackend {
	nextID := 1
	for _, c := range convs {
		if c.id >= nextID {
			nextID = c.id + 1
		}
	}
	return &fakeBackend{convs: convs, nextID: nextID, chunks: []string{"Hel", "lo"}}
}

func (f *fakeBackend) find(id string) *fakeConversation {
	for i := range f.convs {
		if fmt.Sprint(f.convs[i].id) == id {
			return &f.convs[i]
		}
	}
	return nil
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/historys/":
			f.serveDirectory(w)
		case strings.HasPrefix(r.URL.Path, "/history/"):
			f.serveHistory(w, strings.TrimPrefix(r.URL.Path, "/history/"))
		case r.URL.Path == "/create":
			f.serveCreate(w, r)
		case strings.HasSuffix(r.URL.Path, "/delete"):
			f.serveDelete(w, strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/delete"))
		case strings.HasSuffix(r.URL.Path, "/get"):
			f.serveAsk(w, r, strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/get"))
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeBackend) serveDirectory(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []string
	for _, c := range f.convs {
		entries = append(entries, fmt.Sprintf(
			`{"conversation_id":%d,"title":%q,"subject":%q}`, c.id, c.title, c.subject))
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, "[%s]", strings.Join(entries, ","))
}

func (f *fakeBackend) serveHistory(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if f.failHistory {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	c := f.find(id)
	if c == nil {
		fmt.Fprint(w, `{"error":"conversation not found"}`)
		return
	}
	var msgs []string
	for _, m := range c.messages {
		msgs = append(msgs, fmt.Sprintf(
			`{"message_id":%d,"role":%q,"content":%q}`, m.id, m.role, m.content))
	}
	fmt.Fprintf(w, `{"conversation_id":%d,"title":%q,"subject":%q,"messages":[%s]}`,
		c.id, c.title, c.subject, strings.Join(msgs, ","))
}

func (f *fakeBackend) serveCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.convs = append(f.convs, fakeConversation{
		id:      id,
		title:   r.FormValue("title"),
		subject: r.FormValue("subject"),
	})
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"conversation_id":%d}`, id)
}

func (f *fakeBackend) serveDelete(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.convs {
		if fmt.Sprint(f.convs[i].id) == id {
			f.convs = append(f.convs[:i], f.convs[i+1:]...)
			break
		}
	}
	fmt.Fprint(w, `{"status":"deleted"}`)
}

func (f *fakeBackend) serveAsk(w http.ResponseWriter, r *http.Request, id string) {
	if f.failStream {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "model unavailable")
		return
	}

	flusher := w.(http.Flusher)
	full := strings.Builder{}
	for i, chunk := range f.chunks {
		fmt.Fprint(w, chunk)
		flusher.Flush()
		full.WriteString(chunk)
		if i == 0 && f.streamGate != nil {
			<-f.streamGate
		}
		// Keep chunks in separate reads on the client side.
		time.Sleep(10 * time.Millisecond)
	}

	// Persist both sides server-side, as the real backend does.
	f.mu.Lock()
	if c := f.find(id); c != nil {
		c.messages = append(c.messages,
			fakeMessage{id: len(c.messages) + 1, role: "user", content: r.URL.Query().Get("query")},
			fakeMessage{id: len(c.messages) + 2, role: "assistant", content: full.String()},
		)
	}
	f.mu.Unlock()
}

func newTestController(t *testing.T, f *fakeBackend) (*Controller, func()) {
	t.Helper()
	server := httptest.NewServer(f.handler())
	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		StreamTimeout: 5 * time.Second,
	})
	return NewController(client), server.Close
}

// =============================================================================
// DIRECTORY TESTS
// =============================================================================

func TestLoadDirectorySelectsFirst(t *testing.T) {
	f := newFakeBackend(
		fakeConversation{id: 1, title: "Graphs", subject: "Data Structures",
			messages: []fakeMessage{{1, "user", "hi"}, {2, "assistant", "hello"}}},
		fakeConversation{id: 2, title: "Pumping lemma", subject: "Theory of Computation"},
	)
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}

	v := ctrl.View()
	if v.State != StateIdle {
		t.Errorf("state = %v, want idle", v.State)
	}
	if len(v.Directory) != 2 {
		t.Fatalf("directory size = %d", len(v.Directory))
	}
	if v.ActiveID != "1" {
		t.Errorf("active = %q, want first conversation", v.ActiveID)
	}
	if len(v.Messages) != 2 {
		t.Errorf("history not loaded: %d messages", len(v.Messages))
	}
}

func TestLoadDirectoryEmpty(t *testing.T) {
	ctrl, done := newTestController(t, newFakeBackend())
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}

	v := ctrl.View()
	if len(v.Directory) != 0 || v.ActiveID != "" || len(v.Messages) != 0 {
		t.Errorf("empty backend should yield empty view, got %+v", v)
	}
}

func TestSelectSwitchesHistory(t *testing.T) {
	f := newFakeBackend(
		fakeConversation{id: 1, title: "A", subject: "DBMS",
			messages: []fakeMessage{{1, "user", "only in A"}}},
		fakeConversation{id: 2, title: "B", subject: "IOT"},
	)
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Select(context.Background(), "2"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	v := ctrl.View()
	if v.ActiveID != "2" {
		t.Errorf("active = %q", v.ActiveID)
	}
	// B has no messages; nothing from A may bleed through.
	if len(v.Messages) != 0 {
		t.Errorf("messages from previous conversation leaked: %v", v.Messages)
	}
}

func TestSelectUnknownConversation(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "A", subject: "DBMS"})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Select(context.Background(), "99"); !errors.Is(err, ErrUnknownConversation) {
		t.Errorf("expected ErrUnknownConversation, got %v", err)
	}
}

func TestHistoryLoadFailureClearsCache(t *testing.T) {
	f := newFakeBackend(
		fakeConversation{id: 1, title: "A", subject: "DBMS",
			messages: []fakeMessage{{1, "user", "old"}}},
		fakeConversation{id: 2, title: "B", subject: "IOT"},
	)
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.mu.Lock()
	f.failHistory = true
	f.mu.Unlock()

	if err := ctrl.Select(context.Background(), "2"); err == nil {
		t.Fatal("expected history load error")
	}

	v := ctrl.View()
	if len(v.Messages) != 0 {
		t.Errorf("cache should be cleared on load failure, got %v", v.Messages)
	}
	if v.State != StateFailed {
		t.Errorf("state = %v, want failed", v.State)
	}

	// Failed accepts the next command.
	f.mu.Lock()
	f.failHistory = false
	f.mu.Unlock()
	if err := ctrl.Select(context.Background(), "1"); err != nil {
		t.Errorf("select after failure rejected: %v", err)
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSendFullCycle(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "A", subject: "DBMS"})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var previews []string
	ctrl.notify = func() {
		mu.Lock()
		defer mu.Unlock()
		if v := ctrl.View(); v.LivePreview != "" {
			if len(previews) == 0 || previews[len(previews)-1] != v.LivePreview {
				previews = append(previews, v.LivePreview)
			}
		}
	}

	if err := ctrl.Send(context.Background(), "what is a B-tree?"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	mu.Lock()
	gotPreviews := append([]string(nil), previews...)
	mu.Unlock()
	if len(gotPreviews) != 2 || gotPreviews[0] != "Hel" || gotPreviews[1] != "Hello" {
		t.Errorf("live previews = %v, want [Hel Hello]", gotPreviews)
	}

	v := ctrl.View()
	if v.State != StateIdle {
		t.Errorf("state = %v, want idle", v.State)
	}
	if v.LivePreview != "" {
		t.Errorf("live preview not cleared: %q", v.LivePreview)
	}
	// Reconciled history is authoritative: user question plus final answer,
	// no local entries left.
	if len(v.Messages) != 2 {
		t.Fatalf("reconciled history = %d messages, want 2", len(v.Messages))
	}
	for _, m := range v.Messages {
		if m.Local {
			t.Errorf("optimistic message survived reconciliation: %+v", m)
		}
	}
	if v.Messages[1].Role != model.RoleAssistant || v.Messages[1].Content != "Hello" {
		t.Errorf("final answer wrong: %+v", v.Messages[1])
	}
}

func TestSendOptimisticAppendAndPlaceholder(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "A", subject: "DBMS"})
	f.streamGate = make(chan struct{})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- ctrl.Send(context.Background(), "hello?") }()

	waitForState(t, ctrl, StateStreaming)

	v := ctrl.View()
	if len(v.Messages) != 2 {
		t.Fatalf("mid-stream messages = %d, want optimistic user + placeholder", len(v.Messages))
	}
	if !v.Messages[0].Local || v.Messages[0].Role != model.RoleUser {
		t.Errorf("first message should be optimistic user entry: %+v", v.Messages[0])
	}
	if !v.Messages[1].Local || v.Messages[1].Role != model.RoleAssistant {
		t.Errorf("second message should be the placeholder: %+v", v.Messages[1])
	}
	if v.Messages[1].Content != "Hel" {
		t.Errorf("placeholder content = %q, want first snapshot", v.Messages[1].Content)
	}
	if v.LivePreview != "Hel" {
		t.Errorf("live preview = %q, want to match placeholder", v.LivePreview)
	}

	// Concurrent commands are rejected while streaming.
	if err := ctrl.Send(context.Background(), "again"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if err := ctrl.Select(context.Background(), "1"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for select, got %v", err)
	}

	close(f.streamGate)
	if err := <-errCh; err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after cycle = %v", got)
	}
}

func TestSendValidation(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "A", subject: "DBMS"})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	// Directory never loaded: nothing active.
	if err := ctrl.Send(context.Background(), "question"); !errors.Is(err, ErrNoActiveConversation) {
		t.Errorf("expected ErrNoActiveConversation, got %v", err)
	}
}

func TestSendStreamFailureKeepsOptimistic(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "A", subject: "DBMS"})
	f.failStream = true
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Send(context.Background(), "doomed question"); err == nil {
		t.Fatal("expected send failure")
	}

	v := ctrl.View()
	if v.State != StateFailed {
		t.Errorf("state = %v, want failed", v.State)
	}
	if v.LastError == nil {
		t.Error("failure not recorded")
	}
	if len(v.Messages) != 1 || !v.Messages[0].Local {
		t.Errorf("optimistic user message should remain: %v", v.Messages)
	}

	ctrl.AcknowledgeError()
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state after acknowledge = %v", got)
	}
	if ctrl.View().LastError != nil {
		t.Error("error not cleared")
	}
}

// =============================================================================
// CREATE / DELETE TESTS
// =============================================================================

func TestCreateActivatesNewConversation(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "Old", subject: "DBMS"})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}

	conv, err := ctrl.Create(context.Background(), "Sorting", "Data Structures", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v := ctrl.View()
	if v.ActiveID != conv.ID {
		t.Errorf("new conversation not active: %q vs %q", v.ActiveID, conv.ID)
	}
	if len(v.Directory) != 2 || v.Directory[0].ID != conv.ID {
		t.Errorf("new conversation should lead the directory: %v", v.Directory)
	}
	if len(v.Messages) != 0 {
		t.Errorf("fresh conversation should have no messages: %v", v.Messages)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFakeBackend()
	ctrl, done := newTestController(t, f)
	defer done()

	if _, err := ctrl.Create(context.Background(), "  ", "DBMS", nil); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := ctrl.Create(context.Background(), "Title", "", nil); !errors.Is(err, ErrSubjectRequired) {
		t.Errorf("expected ErrSubjectRequired, got %v", err)
	}
	// Validation failures never leave the idle state.
	if got := ctrl.State(); got != StateIdle {
		t.Errorf("state = %v after rejected create", got)
	}
}

func TestDeleteLastConversationEmptiesView(t *testing.T) {
	f := newFakeBackend(fakeConversation{id: 1, title: "Only", subject: "IOT",
		messages: []fakeMessage{{1, "user", "x"}}})
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	v := ctrl.View()
	if len(v.Directory) != 0 || v.ActiveID != "" || len(v.Messages) != 0 {
		t.Errorf("deleting the only conversation should empty the view: %+v", v)
	}
}

func TestDeleteSelectsNextFirst(t *testing.T) {
	f := newFakeBackend(
		fakeConversation{id: 1, title: "A", subject: "DBMS"},
		fakeConversation{id: 2, title: "B", subject: "IOT",
			messages: []fakeMessage{{1, "user", "in B"}}},
	)
	ctrl, done := newTestController(t, f)
	defer done()

	if err := ctrl.LoadDirectory(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	v := ctrl.View()
	if v.ActiveID != "2" {
		t.Errorf("active after delete = %q, want 2", v.ActiveID)
	}
	if len(v.Messages) != 1 {
		t.Errorf("history of newly active conversation not loaded: %v", v.Messages)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func waitForState(t *testing.T, ctrl *Controller, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %v (now %v)", want, ctrl.State())
}
