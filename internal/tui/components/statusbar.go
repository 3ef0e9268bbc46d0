package components

import (
	"strings"

	"github.com/pablasso/tasktracker/internal/tui/styles"
)

// KeyHelp is one "key action" hint in the status bar.
type KeyHelp struct {
	Key    string
	Action string
}

// StatusBar renders the bottom line of key hints.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render joins the hints with " • " and pads the line to width. Hints that
// do not fit are dropped from the end.
func (s StatusBar) Render(width int, items []KeyHelp) string {
	parts := make([]string, 0, len(items))
	used := 0
	for _, item := range items {
		part := item.Key + " " + item.Action
		extra := len([]rune(part))
		if len(parts) > 0 {
			extra += 3
		}
		if width > 0 && used+extra > width && len(parts) > 0 {
			break
		}
		parts = append(parts, part)
		used += extra
	}
	return styles.StatusBarStyle.Width(width).Render(strings.Join(parts, " • "))
}
