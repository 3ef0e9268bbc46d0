package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/tasktracker/internal/task"
	"github.com/pablasso/tasktracker/internal/tui/components"
	"github.com/pablasso/tasktracker/internal/tui/msgs"
	"github.com/pablasso/tasktracker/internal/tui/styles"
)

// Form fields in focus order.
const (
	fieldTitle = iota
	fieldPriority
	fieldCategory
	fieldTags
	fieldCount
)

// FormModel edits the fields of a new or existing task.
type FormModel struct {
	taskID   string
	title    textinput.Model
	category textinput.Model
	tags     textinput.Model
	priority task.Priority
	focus    int
	errorMsg string

	width  int
	height int
}

// NewFormModel creates an empty form for adding a task.
func NewFormModel() FormModel {
	m := FormModel{
		title:    newInput("e.g. Finish the quarterly report", 200),
		category: newInput("e.g. Work, Personal", 80),
		tags:     newInput("comma separated e.g. home, errands", 200),
		priority: task.PriorityMedium,
	}
	m.title.Focus()
	return m
}

// NewEditFormModel creates a form prefilled from t.
func NewEditFormModel(t task.Task) FormModel {
	m := NewFormModel()
	m.taskID = t.ID
	m.title.SetValue(t.Title)
	m.category.SetValue(t.Category)
	m.tags.SetValue(strings.Join(t.Tags, ", "))
	m.priority = t.Priority
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	return ti
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return msgs.GoToListMsg{} }
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.focus == fieldCount-1 {
				return m.submit()
			}
			return m.setFocus(m.focus + 1)
		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}

		if m.focus == fieldPriority {
			switch msg.String() {
			case "left", "h":
				m.priority = next(reversed(task.Priorities), m.priority)
			case "right", "l", " ":
				m.priority = next(task.Priorities, m.priority)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldCategory:
		m.category, cmd = m.category.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	}
	return m, cmd
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" && m.taskID == "" {
		m.errorMsg = "Title is required."
		return m.setFocus(fieldTitle)
	}
	m.errorMsg = ""
	out := msgs.FormSubmittedMsg{
		TaskID:   m.taskID,
		Title:    title,
		Priority: string(m.priority),
		Category: m.category.Value(),
		Tags:     m.tags.Value(),
	}
	return m, func() tea.Msg { return out }
}

func (m FormModel) setFocus(field int) (FormModel, tea.Cmd) {
	m.focus = field
	m.title.Blur()
	m.category.Blur()
	m.tags.Blur()

	switch field {
	case fieldTitle:
		return m, m.title.Focus()
	case fieldCategory:
		return m, m.category.Focus()
	case fieldTags:
		return m, m.tags.Focus()
	}
	return m, nil
}

func reversed[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	heading := "New task"
	if m.Editing() {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(m.renderField(fieldTitle, "Title", m.title.View()))
	b.WriteString(m.renderField(fieldPriority, "Priority", m.renderPriority()))
	b.WriteString(m.renderField(fieldCategory, "Category", m.category.View()))
	b.WriteString(m.renderField(fieldTags, "Tags", m.tags.View()))

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	}
	if m.Editing() {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render("Clearing the title deletes the task."))
		b.WriteString("\n")
	}

	form := styles.BoxStyle.Width(min(70, max(40, m.width-4))).Render(b.String())
	lines := strings.Count(form, "\n") + 1
	padding := strings.Repeat("\n", max(0, m.height-lines-1))

	items := []components.KeyHelp{
		{Key: "tab", Action: "Next field"},
		{Key: "←/→", Action: "Priority"},
		{Key: "ctrl+s", Action: "Save"},
		{Key: "esc", Action: "Cancel"},
	}
	return form + padding + "\n" + components.NewStatusBar().Render(m.width, items)
}

func (m FormModel) renderField(field int, label, value string) string {
	marker := "  "
	if m.focus == field {
		marker = styles.SelectedStyle.Render("> ")
	}
	return marker + styles.LabelStyle.Render(label) + value + "\n"
}

func (m FormModel) renderPriority() string {
	opts := make([]string, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		if p == m.priority {
			opts = append(opts, "["+styles.Priority(string(p))+"]")
		} else {
			opts = append(opts, " "+styles.SubtleStyle.Render(string(p))+" ")
		}
	}
	return strings.Join(opts, " ")
}

// SetSize updates the model dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := max(20, min(50, width-20))
	m.title.Width = w
	m.category.Width = w
	m.tags.Width = w
}

// Editing reports whether the form edits an existing task.
func (m FormModel) Editing() bool {
	return m.taskID != ""
}

// Focus returns the focused field index.
func (m FormModel) Focus() int {
	return m.focus
}

// Priority returns the selected priority.
func (m FormModel) Priority() task.Priority {
	return m.priority
}

// Error returns the validation message, if any.
func (m FormModel) Error() string {
	return m.errorMsg
}
