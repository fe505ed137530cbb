// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/studybuddy-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete studybuddy configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Study configuration
	Study StudyConfig `toml:"study"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// ServerConfig describes how to reach the studybuddy backend.
type ServerConfig struct {
	// URL is the base URL of the backend, no trailing slash.
	URL string `toml:"url"`
	// TimeoutSecs bounds ordinary requests (directory, history, create, delete).
	TimeoutSecs int `toml:"timeout_secs"`
	// StreamTimeoutSecs bounds a full answer stream. Generation can take
	// minutes, so this is deliberately much larger than TimeoutSecs.
	StreamTimeoutSecs int `toml:"stream_timeout_secs"`
}

// StudyConfig contains study-domain settings.
type StudyConfig struct {
	// Subjects offered when creating a conversation. The first entry is the
	// default selection in the create dialog.
	Subjects []string `toml:"subjects"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is the color theme: "dark" or "light"
	Theme string `toml:"theme"`
	// ShowSidebar controls whether the conversation sidebar starts open.
	ShowSidebar bool `toml:"show_sidebar"`
	// CompactMode reduces padding around messages.
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultSubjects is the built-in subject list, used until the user
// customizes study.subjects.
var DefaultSubjects = []string{
	"Mathematics 2",
	"Theory of Computation",
	"Data Structures",
	"IOT",
	"DBMS",
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               "http://127.0.0.1:8000",
			TimeoutSecs:       30,
			StreamTimeoutSecs: 300,
		},
		Study: StudyConfig{
			Subjects: append([]string(nil), DefaultSubjects...),
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowSidebar: true,
			CompactMode: false,
		},
	}
}

// Timeout returns the ordinary request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// StreamTimeout returns the answer stream timeout as a duration.
func (c *Config) StreamTimeout() time.Duration {
	return time.Duration(c.Server.StreamTimeoutSecs) * time.Second
}

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// ConfigDir returns the studybuddy configuration directory (~/.studybuddy).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".studybuddy"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads configuration from ~/.studybuddy/config.toml, falling back to
// built-in defaults when the file is missing. Environment overrides are
// applied after the file, validation after everything.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Used by tests and the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults patches zero values left by a partial config file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.URL == "" {
		c.Server.URL = def.Server.URL
	}
	if c.Server.TimeoutSecs == 0 {
		c.Server.TimeoutSecs = def.Server.TimeoutSecs
	}
	if c.Server.StreamTimeoutSecs == 0 {
		c.Server.StreamTimeoutSecs = def.Server.StreamTimeoutSecs
	}
	if len(c.Study.Subjects) == 0 {
		c.Study.Subjects = append([]string(nil), DefaultSubjects...)
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over the config file.
func (c *Config) ApplyEnvOverrides() {
	// STUDYBUDDY_SERVER_URL
	if serverURL := os.Getenv("STUDYBUDDY_SERVER_URL"); serverURL != "" {
		c.Server.URL = serverURL
	}

	// STUDYBUDDY_TIMEOUT_SECS
	if secs := os.Getenv("STUDYBUDDY_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Server.TimeoutSecs = n
		}
	}

	// STUDYBUDDY_STREAM_TIMEOUT_SECS
	if secs := os.Getenv("STUDYBUDDY_STREAM_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Server.StreamTimeoutSecs = n
		}
	}

	// STUDYBUDDY_THEME
	if theme := os.Getenv("STUDYBUDDY_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save saves the configuration to the default TOML file.
// Creates config files with 0600 permissions (owner read/write only).
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file at path. The write is
// atomic so an interrupted save never leaves a half-written config.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# studybuddy configuration file")
	fmt.Fprintln(&buf, "# Generated by studybuddy - edit with care")
	fmt.Fprintln(&buf, "")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "server.url",
				Message: fmt.Sprintf("invalid URL: %s (must be http:// or https://)", c.Server.URL),
			})
		}
	}

	if c.Server.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: "must not be negative",
		})
	}

	if c.Server.StreamTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.stream_timeout_secs",
			Message: "must not be negative",
		})
	}

	for i, subject := range c.Study.Subjects {
		if strings.TrimSpace(subject) == "" {
			errs = append(errs, ValidationError{
				Field:   "study.subjects",
				Message: fmt.Sprintf("entry %d is blank", i),
			})
		}
	}

	if c.UI.Theme != "" && c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme: %s (valid: dark, light)", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
