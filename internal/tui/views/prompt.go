package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/tasktracker/internal/tui/components"
	"github.com/pablasso/tasktracker/internal/tui/msgs"
	"github.com/pablasso/tasktracker/internal/tui/styles"
)

// DefaultExportFile is the file name suggested for exports.
const DefaultExportFile = "tasks-export.json"

// PromptModel asks for a file path to import from or export to.
type PromptModel struct {
	kind  msgs.PromptKind
	input textinput.Model

	width  int
	height int
}

// NewPromptModel creates a focused path prompt.
func NewPromptModel(kind msgs.PromptKind) PromptModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/tasks.json"
	ti.CharLimit = 1024
	ti.Width = 60
	if kind == msgs.PromptExport {
		ti.SetValue(DefaultExportFile)
		ti.CursorEnd()
	}
	ti.Focus()

	return PromptModel{kind: kind, input: ti}
}

// Init implements tea.Model.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return msgs.GoToListMsg{} }
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			kind := m.kind
			return m, func() tea.Msg { return msgs.PromptSubmittedMsg{Kind: kind, Value: path} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PromptModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	heading := "Import tasks"
	hint := "Replaces every task with the JSON array in this file. Undo restores the old list."
	if m.kind == msgs.PromptExport {
		heading = "Export tasks"
		hint = "Writes all tasks as pretty-printed JSON."
	}

	body := styles.TitleStyle.Render(heading) + "\n\n" +
		m.input.View() + "\n\n" +
		styles.SubtleStyle.Render(hint)
	box := styles.BoxStyle.Width(min(80, max(40, m.width-4))).Render(body)

	lines := strings.Count(box, "\n") + 1
	padding := strings.Repeat("\n", max(0, m.height-lines-1))
	items := []components.KeyHelp{{Key: "enter", Action: "Confirm"}, {Key: "esc", Action: "Cancel"}}
	return box + padding + "\n" + components.NewStatusBar().Render(m.width, items)
}

// SetSize updates the model dimensions.
func (m *PromptModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(20, min(70, width-10))
}

// Kind returns what the prompt is for.
func (m PromptModel) Kind() msgs.PromptKind {
	return m.kind
}

// Value returns the current input.
func (m PromptModel) Value() string {
	return m.input.Value()
}
