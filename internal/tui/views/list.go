package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/tasktracker/internal/store"
	"github.com/pablasso/tasktracker/internal/task"
	"github.com/pablasso/tasktracker/internal/tui/components"
	"github.com/pablasso/tasktracker/internal/tui/msgs"
	"github.com/pablasso/tasktracker/internal/tui/styles"
)

// Lines used by everything except the task rows: title, stats, filters,
// blank, status line, status bar.
const listChromeHeight = 6

// priorityCycle is the order the priority filter steps through.
var priorityCycle = []string{store.AllValues, string(task.PriorityHigh), string(task.PriorityMedium), string(task.PriorityLow)}

// ListModel shows the visible tasks and dispatches list commands.
type ListModel struct {
	store *store.TaskStore

	cursor    int
	searching bool
	search    textinput.Model
	status    string
	statusErr bool

	width  int
	height int
}

// NewListModel creates a list view over s.
func NewListModel(s *store.TaskStore) ListModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title, category or tags"
	ti.CharLimit = 120

	return ListModel{store: s, search: ti}
}

// Init implements tea.Model.
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	s := m.store
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(s.Visible())-1 {
			m.cursor++
		}
	case "a":
		return m, func() tea.Msg { return msgs.OpenFormMsg{} }
	case "e", "enter":
		if t, ok := m.Selected(); ok {
			id := t.ID
			return m, func() tea.Msg { return msgs.OpenFormMsg{TaskID: id} }
		}
	case " ", "x":
		if t, ok := m.Selected(); ok {
			s.ToggleTask(t.ID)
		}
	case "d":
		if t, ok := m.Selected(); ok {
			s.DeleteTask(t.ID)
		}
	case "K", "shift+up":
		m.moveSelected(-1)
	case "J", "shift+down":
		m.moveSelected(1)
	case "u", "ctrl+z":
		if !s.Undo() {
			m.SetStatus("Nothing to undo", false)
		}
	case "r", "ctrl+r":
		if !s.Redo() {
			m.SetStatus("Nothing to redo", false)
		}
	case "f":
		st := s.State()
		s.SetFilter(next(store.Filters, st.Filter))
		m.cursor = 0
	case "c":
		st := s.State()
		s.SetCategoryFilter(next(append([]string{store.AllValues}, s.Categories()...), st.CategoryFilter))
		m.cursor = 0
	case "p":
		st := s.State()
		s.SetPriorityFilter(next(priorityCycle, st.PriorityFilter))
		m.cursor = 0
	case "t":
		st := s.State()
		s.SetTagFilter(next(append([]string{""}, s.Tags()...), st.TagFilter))
		m.cursor = 0
	case "C":
		s.ClearAdvancedFilters()
		m.cursor = 0
	case "/":
		m.searching = true
		m.search.SetValue(s.State().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "i":
		return m, func() tea.Msg { return msgs.OpenPromptMsg{Kind: msgs.PromptImport} }
	case "o":
		return m, func() tea.Msg { return msgs.OpenPromptMsg{Kind: msgs.PromptExport} }
	case "y":
		return m, func() tea.Msg { return msgs.CopyRequestMsg{} }
	case "esc":
		if s.Error() != "" {
			s.ClearError()
		} else if s.State().Search != "" {
			s.SetSearch("")
			m.cursor = 0
		}
	}
	m.clampCursor()
	return m, nil
}

func (m ListModel) updateSearch(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearch("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearch(m.search.Value())
	m.cursor = 0
	return m, cmd
}

// moveSelected swaps the selected task with its visible neighbour in
// direction dir and keeps the cursor on it.
func (m *ListModel) moveSelected(dir int) {
	visible := m.store.Visible()
	target := m.cursor + dir
	if m.cursor >= len(visible) || target < 0 || target >= len(visible) {
		return
	}
	if m.store.ReorderTasks(visible[m.cursor].ID, visible[target].ID) {
		m.cursor = target
	}
}

func (m *ListModel) clampCursor() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// next returns the element after cur in values, wrapping around. A value
// not in the list restarts the cycle.
func next[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// View implements tea.Model.
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	st := m.store.State()
	visible := m.store.Visible()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilters(st))
	b.WriteString("\n")

	used := listChromeHeight
	if st.Error != "" {
		banner := styles.ErrorBannerStyle.Render(st.Error + "  " + styles.SubtleStyle.Render("(esc to dismiss)"))
		b.WriteString(banner)
		b.WriteString("\n")
		used++
	}
	b.WriteString("\n")

	rows := max(1, m.height-used)
	b.WriteString(m.renderRows(st, visible, rows))

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, m.helpItems(st)))
	return b.String()
}

func (m ListModel) renderHeader() string {
	stats := m.store.Stats()
	title := styles.TitleStyle.Render("Tasks")
	summary := styles.SubtleStyle.Render(fmt.Sprintf("%d total • %d active • %d done", stats.Total, stats.Active, stats.Completed))
	bar := components.NewProgress(stats.Percent, 10).View()
	return title + "  " + summary + "  " + bar
}

func (m ListModel) renderFilters(st store.State) string {
	tag := st.TagFilter
	if tag == "" {
		tag = "any"
	}
	parts := []string{
		"filter: " + string(st.Filter),
		"category: " + st.CategoryFilter,
		"priority: " + st.PriorityFilter,
		"tag: " + tag,
	}
	line := styles.SubtleStyle.Render(strings.Join(parts, "  "))
	if m.searching {
		return line + "  " + m.search.View()
	}
	if st.Search != "" {
		line += "  " + styles.SubtleStyle.Render(fmt.Sprintf("search: %q", st.Search))
	}
	return line
}

func (m ListModel) renderRows(st store.State, visible []task.Task, rows int) string {
	if len(visible) == 0 {
		msg := "No tasks yet. Press a to add one."
		if len(st.List) > 0 {
			msg = "No tasks match the current filters."
		}
		return styles.SubtleStyle.Render(msg) + strings.Repeat("\n", rows-1)
	}

	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(len(visible), start+rows)

	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(visible[i], i == m.cursor))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m ListModel) renderRow(t task.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	title := t.Title
	switch {
	case selected:
		title = styles.SelectedStyle.Render(title)
	case t.Completed:
		title = styles.CompletedStyle.Render(title)
	}

	cursor := "  "
	if selected {
		cursor = styles.SelectedStyle.Render("> ")
	}

	parts := []string{cursor + check, title, styles.Priority(string(t.Priority))}
	if t.Category != "" {
		parts = append(parts, styles.SubtleStyle.Render(t.Category))
	}
	for _, tag := range t.Tags {
		parts = append(parts, styles.TagStyle.Render("#"+tag))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, " "))
}

func (m ListModel) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styles.ErrorStyle.Render(m.status)
	}
	return styles.SuccessStyle.Render(m.status)
}

func (m ListModel) helpItems(st store.State) []components.KeyHelp {
	if m.searching {
		return []components.KeyHelp{{Key: "enter", Action: "Keep search"}, {Key: "esc", Action: "Clear search"}}
	}
	items := []components.KeyHelp{
		{Key: "a", Action: "Add"},
		{Key: "e", Action: "Edit"},
		{Key: "space", Action: "Toggle"},
		{Key: "d", Action: "Delete"},
		{Key: "K/J", Action: "Move"},
	}
	if st.PastLen > 0 {
		items = append(items, components.KeyHelp{Key: "u", Action: "Undo"})
	}
	if st.FutureLen > 0 {
		items = append(items, components.KeyHelp{Key: "r", Action: "Redo"})
	}
	items = append(items,
		components.KeyHelp{Key: "/", Action: "Search"},
		components.KeyHelp{Key: "f/c/p/t", Action: "Filter"},
		components.KeyHelp{Key: "C", Action: "Clear filters"},
		components.KeyHelp{Key: "i/o", Action: "Import/Export"},
		components.KeyHelp{Key: "y", Action: "Copy JSON"},
		components.KeyHelp{Key: "q", Action: "Quit"},
	)
	return items
}

// SetSize updates the model dimensions.
func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(10, width/3)
}

// SetStatus shows a one-line message under the list.
func (m *ListModel) SetStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// ClearStatus removes the status message.
func (m *ListModel) ClearStatus() {
	m.status = ""
	m.statusErr = false
}

// Status returns the current status message.
func (m ListModel) Status() string {
	return m.status
}

// Cursor returns the current cursor position.
func (m ListModel) Cursor() int {
	return m.cursor
}

// Searching reports whether the search input has focus.
func (m ListModel) Searching() bool {
	return m.searching
}

// Selected returns the task under the cursor.
func (m ListModel) Selected() (task.Task, bool) {
	visible := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

// Refresh keeps the cursor in range after the list changed elsewhere.
func (m *ListModel) Refresh() {
	m.clampCursor()
}
