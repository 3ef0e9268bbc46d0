package tui

import "github.com/pablasso/tasktracker/internal/config"

// Options configures TUI startup behavior.
type Options struct {
	// ConfigPath is an explicit config file; empty uses the default location.
	ConfigPath string
	config.Overrides
}
