// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Argument parsing and command dispatch for studybuddy.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdList
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet     bool
	JSON      bool
	ServerURL string // --server overrides the configured backend URL

	// Ask command
	Query          string
	ConversationID string   // -c/--conversation: send into an existing thread
	Title          string   // --title: create a new conversation first
	Subject        string   // --subject: subject for a new conversation
	Files          []string // -f/--file: PDF attachments for a new conversation

	// Config command
	Subcommand string
	ConfigKey  string
	ConfigVal  string
}

const usageText = `studybuddy - study assistant chat client

StudyBuddy keeps subject-tagged conversations on a backend server and
streams answers from it. Running with no command starts the TUI.

Usage:
  studybuddy                     Start TUI (default)
  studybuddy ask "question"      Ask a single question and exit
  studybuddy list, ls            List conversations
  studybuddy config [show|set|path]  Configuration
  studybuddy version             Show version
  studybuddy help                Show this help

Ask command:
  studybuddy ask "question"                 Ask in the most recent conversation
  studybuddy ask -c ID "question"           Ask in a specific conversation
  studybuddy ask --title "Graphs" "question"
                                            Create a conversation, then ask
    --subject NAME        Subject for the new conversation
    -f, --file FILE.pdf   Attach a PDF (new conversations only, up to 5)

Config commands:
  studybuddy config show                    Show current configuration
  studybuddy config path                    Print the config file path
  studybuddy config set KEY VALUE           Set and save a value

  Keys: server_url, timeout_secs, stream_timeout_secs, theme

Global flags:
  --server URL    Override the backend URL for this invocation
  --json          Machine-readable output
  -q, --quiet     Suppress progress messages on stderr

Examples:
  studybuddy ask "What is a B-tree?"
  studybuddy ask --title "Sorting" --subject "Data Structures" \
      -f notes.pdf "Summarize chapter 3"
  studybuddy list --json
  studybuddy config set server_url http://192.168.1.20:8000

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("studybuddy version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse so
// tests do not have to mutate os.Args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		parseAskArgs(&args, remaining)
		return CmdAsk, args

	case "list", "ls":
		return CmdList, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole line as an ask query. This lets
		// `studybuddy "quick question"` work without the ask keyword.
		parseAskArgs(&args, append([]string{cmd}, remaining...))
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts global flags and returns the remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "--json":
			args.JSON = true
		case arg == "--server":
			if i+1 < len(argv) {
				i++
				args.ServerURL = argv[i]
			}
		case strings.HasPrefix(arg, "--server="):
			args.ServerURL = strings.TrimPrefix(arg, "--server=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, args
}

// parseAskArgs parses ask command specific arguments. Positional words
// are joined into the query.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch {
		case arg == "-c" || arg == "--conversation":
			if i+1 < len(remaining) {
				i++
				args.ConversationID = remaining[i]
			}
		case strings.HasPrefix(arg, "--conversation="):
			args.ConversationID = strings.TrimPrefix(arg, "--conversation=")
		case arg == "--title":
			if i+1 < len(remaining) {
				i++
				args.Title = remaining[i]
			}
		case strings.HasPrefix(arg, "--title="):
			args.Title = strings.TrimPrefix(arg, "--title=")
		case arg == "--subject":
			if i+1 < len(remaining) {
				i++
				args.Subject = remaining[i]
			}
		case strings.HasPrefix(arg, "--subject="):
			args.Subject = strings.TrimPrefix(arg, "--subject=")
		case arg == "-f" || arg == "--file":
			if i+1 < len(remaining) {
				i++
				args.Files = append(args.Files, remaining[i])
			}
		case strings.HasPrefix(arg, "--file="):
			args.Files = append(args.Files, strings.TrimPrefix(arg, "--file="))
		case strings.HasPrefix(arg, "-"):
			// Unknown flag, skip it rather than folding it into the query.
		default:
			query = append(query, arg)
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
	}
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = remaining[2]
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleAsk handles the "ask" command and exits on failure.
func HandleAsk(args Args) {
	if err := HandleAskCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleList handles the "list" command and exits on failure.
func HandleList(args Args) {
	if err := HandleListCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleConfig handles the "config" command and exits on failure.
func HandleConfig(args Args) {
	if err := HandleConfigCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		resp := NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
		})
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
