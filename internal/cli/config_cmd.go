// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command handlers for the studybuddy CLI.
//
// Command: config [show|set|path]
//
// Examples:
//   studybuddy config show
//   studybuddy config path
//   studybuddy config set server_url http://192.168.1.20:8000
//   studybuddy config set stream_timeout_secs 600
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jeranaias/studybuddy-tui/internal/config"
)

// configKeys lists the keys accepted by `config set`.
var configKeys = []string{"server_url", "timeout_secs", "stream_timeout_secs", "theme"}

// HandleConfigCommand handles the "config" command.
func HandleConfigCommand(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args)
	case "path":
		return handleConfigPath(args)
	case "set":
		return handleConfigSet(args)
	default:
		return NewUsageError(
			"unknown config subcommand: "+args.Subcommand,
			"studybuddy config [show|set|path]")
	}
}

func handleConfigShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	path, _ := config.ConfigPath()
	renderConfig(os.Stdout, cfg, path)
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config", map[string]string{"path": path}).Print()
	}
	fmt.Println(path)
	return nil
}

func handleConfigSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return NewUsageError(
			"config set requires a key and a value",
			"studybuddy config set server_url http://127.0.0.1:8000")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := applyConfigValue(cfg, args.ConfigKey, args.ConfigVal); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]string{
			"key":   args.ConfigKey,
			"value": args.ConfigVal,
		}).Print()
	}

	fmt.Printf("%s %s = %s\n",
		SuccessStyle.Render("Saved:"),
		args.ConfigKey,
		args.ConfigVal)
	return nil
}

// applyConfigValue sets one key on the config, converting the value.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "server_url":
		cfg.Server.URL = value
	case "timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return NewUsageError("timeout_secs must be a number", "studybuddy config set timeout_secs 30")
		}
		cfg.Server.TimeoutSecs = n
	case "stream_timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return NewUsageError("stream_timeout_secs must be a number", "studybuddy config set stream_timeout_secs 300")
		}
		cfg.Server.StreamTimeoutSecs = n
	case "theme":
		cfg.UI.Theme = value
	default:
		return NewUsageError(
			"unknown config key: "+key,
			"keys: "+strings.Join(configKeys, ", "))
	}
	return nil
}

// renderConfig writes the human-readable configuration listing.
func renderConfig(w io.Writer, cfg *config.Config, path string) {
	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("File:"), DimStyle.Render(path))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("server_url:"), ValueStyle.Render(cfg.Server.URL))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("timeout_secs:"), ValueStyle.Render(strconv.Itoa(cfg.Server.TimeoutSecs)))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("stream_timeout_secs:"), ValueStyle.Render(strconv.Itoa(cfg.Server.StreamTimeoutSecs)))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("theme:"), ValueStyle.Render(cfg.UI.Theme))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("subjects:"), ValueStyle.Render(strings.Join(cfg.Study.Subjects, ", ")))
}
