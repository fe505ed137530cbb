// studybuddy TUI - A terminal chat client for the StudyBuddy backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studybuddy-tui/internal/backend"
	"github.com/jeranaias/studybuddy-tui/internal/cli"
	"github.com/jeranaias/studybuddy-tui/internal/config"
	"github.com/jeranaias/studybuddy-tui/internal/session"
	"github.com/jeranaias/studybuddy-tui/internal/ui/chat"
	"github.com/jeranaias/studybuddy-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdList:
		cli.HandleList(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// runTUI starts the interactive chat interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	if args.ServerURL != "" {
		cfg.Server.URL = args.ServerURL
	}

	// Honor the configured theme; the terminal background query is
	// unreliable inside some multiplexers.
	styles.ForceBackground(cfg.UI.Theme)
	theme := styles.NewTheme()

	logger, closeLog := openLogger()
	defer closeLog()

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:       cfg.Server.URL,
		Timeout:       cfg.Timeout(),
		StreamTimeout: cfg.StreamTimeout(),
	})

	// The controller is built before the model it notifies, so the
	// notify hook indirects through the model pointer.
	var m *chat.Model
	ctrl := session.NewController(client,
		session.WithLogger(logger),
		session.WithNotify(func() {
			if m != nil {
				m.Notify()
			}
		}),
	)
	m = chat.New(ctrl, cfg, theme)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running studybuddy: %v\n", err)
		os.Exit(1)
	}
}

// openLogger opens the session log file under the config directory.
// The TUI owns the terminal, so structured diagnostics go to a file
// instead of stderr. Falls back to a discard logger on any failure.
func openLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard, "", 0)

	if err := config.EnsureConfigDir(); err != nil {
		return discard, func() {}
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return discard, func() {}
	}

	path := filepath.Join(dir, "studybuddy.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return discard, func() {}
	}

	logger := log.New(f, "", log.LstdFlags)
	logger.Printf("studybuddy %s starting", Version)
	return logger, func() { f.Close() }
}
