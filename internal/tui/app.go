package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/pablasso/tasktracker/internal/blob"
	"github.com/pablasso/tasktracker/internal/config"
	"github.com/pablasso/tasktracker/internal/logging"
	"github.com/pablasso/tasktracker/internal/persist"
	"github.com/pablasso/tasktracker/internal/store"
	"github.com/pablasso/tasktracker/internal/task"
	"github.com/pablasso/tasktracker/internal/tui/msgs"
	"github.com/pablasso/tasktracker/internal/tui/styles"
	"github.com/pablasso/tasktracker/internal/tui/views"
)

// Minimum terminal dimensions for the layout to fit.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

const statusTimeout = 3 * time.Second

// View represents the different screens in the TUI.
type View int

const (
	ViewList View = iota
	ViewForm
	ViewPrompt
)

// clearStatusMsg expires the status line set with sequence number seq.
type clearStatusMsg struct{ seq int }

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	list   views.ListModel
	form   views.FormModel
	prompt views.PromptModel

	store     *store.TaskStore
	log       logrus.FieldLogger
	statusSeq int

	// copyText writes to the system clipboard; replaced in tests.
	copyText func(string) error
}

// Run starts the TUI application.
func Run(opts Options) error {
	cfg, err := config.LoadWith(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	log, logFile, err := logging.OpenFile(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	if cfg.Storage.Backend == config.BackendFile || cfg.Storage.Backend == config.BackendSQLite {
		lock := blob.NewSessionLock(cfg.DataDir)
		if err := lock.Acquire(); err != nil {
			return err
		}
		defer lock.Release()
	}

	sess, err := persist.Open(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.WithFields(logrus.Fields{
		"backend": cfg.Storage.Backend,
		"tasks":   len(sess.Store.List()),
	}).Info("Session started")

	p := tea.NewProgram(
		NewModel(sess.Store, log),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

// NewModel creates the root model over s.
func NewModel(s *store.TaskStore, log logrus.FieldLogger) Model {
	return Model{
		currentView: ViewList,
		list:        views.NewListModel(s),
		store:       s,
		log:         log,
		copyText:    clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		m.prompt.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case msgs.GoToListMsg:
		m.currentView = ViewList
		m.list.Refresh()
		return m, nil

	case msgs.OpenFormMsg:
		if msg.TaskID == "" {
			m.form = views.NewFormModel()
		} else {
			t, ok := m.store.Find(msg.TaskID)
			if !ok {
				return m, nil
			}
			m.form = views.NewEditFormModel(t)
		}
		m.form.SetSize(m.width, m.height)
		m.currentView = ViewForm
		return m, m.form.Init()

	case msgs.FormSubmittedMsg:
		m.applyForm(msg)
		m.currentView = ViewList
		m.list.Refresh()
		return m, nil

	case msgs.OpenPromptMsg:
		m.prompt = views.NewPromptModel(msg.Kind)
		m.prompt.SetSize(m.width, m.height)
		m.currentView = ViewPrompt
		return m, m.prompt.Init()

	case msgs.PromptSubmittedMsg:
		m.currentView = ViewList
		path := expandHome(msg.Value)
		if msg.Kind == msgs.PromptImport {
			return m, readImportFile(path)
		}
		text, err := m.store.Export()
		if err != nil {
			return m, m.setStatus("Export failed: "+err.Error(), true)
		}
		return m, writeExportFile(path, text, len(m.store.List()))

	case msgs.ImportReadMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).WithField("path", msg.Path).Warn("Failed to read import file")
			return m, m.setStatus(fmt.Sprintf("Could not read %s", msg.Path), true)
		}
		if err := m.store.ImportTasksFromJSONText(msg.Text); err != nil {
			// The store shows the message in its error banner.
			return m, nil
		}
		m.list.Refresh()
		return m, m.setStatus(fmt.Sprintf("Imported %d tasks from %s", len(m.store.List()), msg.Path), false)

	case msgs.ExportDoneMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).WithField("path", msg.Path).Warn("Failed to write export file")
			return m, m.setStatus(fmt.Sprintf("Could not write %s", msg.Path), true)
		}
		return m, m.setStatus(fmt.Sprintf("Exported %d tasks to %s", msg.Count, msg.Path), false)

	case msgs.CopyRequestMsg:
		text, err := m.store.Export()
		if err != nil {
			return m, m.setStatus("Copy failed: "+err.Error(), true)
		}
		return m, copyToClipboard(m.copyText, text, len(m.store.List()))

	case msgs.CopiedMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("Clipboard copy failed")
			return m, m.setStatus("Could not access the clipboard. Try export instead.", true)
		}
		return m, m.setStatus(fmt.Sprintf("Copied %d tasks as JSON", msg.Count), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.list.ClearStatus()
		}
		return m, nil
	}

	return m.updateCurrentView(msg)
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

// applyForm turns submitted form values into an add or an update.
func (m *Model) applyForm(msg msgs.FormSubmittedMsg) {
	if msg.TaskID == "" {
		m.store.AddTask(task.Record{
			"title":    msg.Title,
			"priority": msg.Priority,
			"category": msg.Category,
			"tags":     msg.Tags,
		})
		return
	}
	m.store.UpdateTask(msg.TaskID, task.Changes{
		Title:    task.Ptr(msg.Title),
		Priority: task.Ptr(msg.Priority),
		Category: task.Ptr(msg.Category),
		Tags:     task.Ptr(task.ParseTags(msg.Tags)),
	})
}

// setStatus shows text under the list and schedules it to disappear.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.list.SetStatus(text, isErr)
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func readImportFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return msgs.ImportReadMsg{Path: path, Text: string(data), Err: err}
	}
}

func writeExportFile(path, text string, count int) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(text), 0644)
		return msgs.ExportDoneMsg{Path: path, Count: count, Err: err}
	}
}

func copyToClipboard(write func(string) error, text string, count int) tea.Cmd {
	return func() tea.Msg {
		if write == nil {
			return msgs.CopiedMsg{Err: errors.New("no clipboard")}
		}
		return msgs.CopiedMsg{Count: count, Err: write(text)}
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTooSmall()
	}

	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewPrompt:
		return m.prompt.View()
	default:
		return m.list.View()
	}
}

func (m Model) renderTooSmall() string {
	msg := strings.Join([]string{
		styles.ErrorStyle.Render("Terminal too small"),
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	}, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
