// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the studybuddy CLI.
//
// Handles "studybuddy ask", which sends one question into a conversation
// and streams the answer to stdout.
//
// Command: ask [question]
//
// Examples:
//   studybuddy ask "What is a red-black tree?"
//   studybuddy ask -c 42 "And the deletion case?"
//   studybuddy ask --title "Graphs" --subject "Data Structures" "Define DAG"
//   studybuddy ask --title "Notes" -f chapter3.pdf "Summarize this chapter"
//   studybuddy ask --json "Explain hashing" | jq .data.answer
//
// The answer streams as plain text while it arrives. On a TTY the final
// server-side copy of the answer is fetched afterwards and re-rendered
// as markdown, replacing the raw stream on screen.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/config"
	"github.com/jeranaias/studybuddy-tui/internal/model"
	"github.com/jeranaias/studybuddy-tui/internal/upload"
)

// markdownRenderer is the glamour renderer for final answers.
// Left nil when initialization fails; output then stays plain.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// newBackendClient builds a backend client from config plus flags.
func newBackendClient(args Args) (*backend.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if args.ServerURL != "" {
		cfg.Server.URL = args.ServerURL
	}
	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:       cfg.Server.URL,
		Timeout:       cfg.Timeout(),
		StreamTimeout: cfg.StreamTimeout(),
	})
	return client, cfg, nil
}

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	question := strings.TrimSpace(args.Query)
	if question == "" {
		err := NewUsageError("no question provided", `studybuddy ask "your question"`)
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	if len(args.Files) > 0 && args.Title == "" {
		err := NewUsageError(
			"attachments require a new conversation",
			`studybuddy ask --title "My notes" -f notes.pdf "question"`)
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	client, cfg, err := newBackendClient(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	conv, err := resolveConversation(ctx, client, cfg, args)
	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	if !args.Quiet && !args.JSON {
		fmt.Fprintf(os.Stderr, "%s %s %s\n\n",
			DimStyle.Render("Conversation:"),
			conv.Title,
			SubjectStyle.Render("["+conv.Subject+"]"))
	}

	// Render markdown only for interactive terminals. Piped output gets
	// the raw streamed text so it can be processed by other tools.
	useMarkdown := IsStdoutTTY() && !args.JSON

	start := time.Now()

	// Snapshots carry the full answer so far; print only the suffix that
	// is new since the previous snapshot.
	var printed int
	answer, err := client.AskStream(ctx, conv.ID, question, backend.StreamHandler{
		Snapshot: func(snapshot string) {
			if args.JSON || useMarkdown {
				return
			}
			if len(snapshot) > printed {
				fmt.Print(snapshot[printed:])
				printed = len(snapshot)
			}
		},
	})
	if err != nil {
		// A partial answer may already be on screen; move past it before
		// the dispatcher prints the error.
		if printed > 0 {
			fmt.Println()
		}
		if args.JSON {
			NewJSONErrorResponse("ask", err).Print()
		}
		return err
	}

	duration := time.Since(start)

	// Prefer the server-side copy of the answer. The backend persists the
	// exchange when the stream completes, so the last assistant message is
	// the canonical text.
	if canonical := fetchCanonicalAnswer(ctx, client, conv.ID); canonical != "" {
		answer = canonical
	}

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			ConversationID: conv.ID,
			Question:       question,
			Answer:         answer,
			DurationMs:     duration.Milliseconds(),
		}).Print()
	}

	if useMarkdown {
		fmt.Print(renderMarkdown(answer))
	}
	fmt.Println()

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, RenderSeparator(45))
		fmt.Fprintf(os.Stderr, "%s %s\n",
			DimStyle.Render("Answered in"),
			duration.Round(time.Millisecond))
	}

	return nil
}

// resolveConversation picks the conversation to ask in: an explicit -c
// ID, a freshly created one when --title is given, or the first entry in
// the directory.
func resolveConversation(ctx context.Context, client *backend.Client, cfg *config.Config, args Args) (model.Conversation, error) {
	if args.Title != "" {
		return createConversation(ctx, client, cfg, args)
	}

	convs, err := client.ListConversations(ctx)
	if err != nil {
		return model.Conversation{}, err
	}

	if args.ConversationID != "" {
		for _, conv := range convs {
			if conv.ID == args.ConversationID {
				return conv, nil
			}
		}
		return model.Conversation{}, &NotFoundError{ID: args.ConversationID}
	}

	if len(convs) == 0 {
		return model.Conversation{}, NewUsageError(
			"no conversations yet",
			`studybuddy ask --title "My first chat" "your question"`)
	}
	return convs[0], nil
}

// createConversation creates a new conversation for --title, attaching
// any -f files. Attachment rules match the TUI: PDF only, at most five.
func createConversation(ctx context.Context, client *backend.Client, cfg *config.Config, args Args) (model.Conversation, error) {
	subject := args.Subject
	if subject == "" && len(cfg.Study.Subjects) > 0 {
		subject = cfg.Study.Subjects[0]
	}

	pending := upload.NewPendingSet()
	result := pending.Add(args.Files...)
	if result.SkippedType > 0 {
		return model.Conversation{}, NewUsageError(
			"only PDF files can be attached",
			`studybuddy ask --title "Notes" -f notes.pdf "question"`)
	}
	if result.SkippedFull > 0 {
		return model.Conversation{}, NewUsageError(
			fmt.Sprintf("at most %d files per conversation", upload.MaxFiles),
			`studybuddy ask --title "Notes" -f a.pdf -f b.pdf "question"`)
	}

	files, closeAll, err := pending.Open()
	if err != nil {
		return model.Conversation{}, err
	}
	defer closeAll()

	if !args.Quiet && !args.JSON {
		if pending.Len() > 0 {
			fmt.Fprintf(os.Stderr, "%s %q (%s, %d files)\n",
				DimStyle.Render("Creating conversation"),
				args.Title, subject, pending.Len())
		} else {
			fmt.Fprintf(os.Stderr, "%s %q (%s)\n",
				DimStyle.Render("Creating conversation"),
				args.Title, subject)
		}
	}

	return client.CreateConversation(ctx, args.Title, subject, files)
}

// fetchCanonicalAnswer returns the last assistant message of the
// conversation, or "" when history cannot be fetched. The streamed text
// is already a usable answer, so failures here are not fatal.
func fetchCanonicalAnswer(ctx context.Context, client *backend.Client, conversationID string) string {
	history, err := client.GetHistory(ctx, conversationID)
	if err != nil {
		return ""
	}
	for i := len(history.Messages) - 1; i >= 0; i-- {
		if history.Messages[i].Role == model.RoleAssistant {
			return history.Messages[i].Content
		}
	}
	return ""
}
