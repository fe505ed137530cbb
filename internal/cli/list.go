// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// list.go - Conversation directory listing for the studybuddy CLI.
//
// Command: list (alias: ls)
//
// Examples:
//   studybuddy list
//   studybuddy list --json | jq -r '.data[].id'
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/studybuddy-tui/internal/model"
)

// HandleListCommand handles the "list" command.
func HandleListCommand(args Args) error {
	client, _, err := newBackendClient(args)
	if err != nil {
		return err
	}

	convs, err := client.ListConversations(context.Background())
	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("list", err).Print()
		}
		return err
	}

	if args.JSON {
		data := make([]ConversationData, 0, len(convs))
		for _, conv := range convs {
			data = append(data, ConversationData{
				ID:      conv.ID,
				Title:   conv.Title,
				Subject: conv.Subject,
			})
		}
		return NewJSONResponse("list", data).Print()
	}

	renderDirectory(os.Stdout, convs)
	return nil
}

// renderDirectory writes the human-readable conversation listing.
// Directory order is preserved; the backend returns newest first.
func renderDirectory(w io.Writer, convs []model.Conversation) {
	if len(convs) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No conversations yet."))
		fmt.Fprintln(w, DimStyle.Render(`Start one with: studybuddy ask --title "My first chat" "your question"`))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Conversations"))
	for _, conv := range convs {
		fmt.Fprintf(w, "  %s  %s %s\n",
			ValueStyle.Render(conv.ID),
			conv.DisplayTitle(48),
			SubjectStyle.Render("["+conv.Subject+"]"))
	}
	fmt.Fprintf(w, "\n%s\n", DimStyle.Render(fmt.Sprintf("%d conversation(s)", len(convs))))
}
