// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/tracker"
)

// Run starts the task browser on a loaded tracker. Every change made in
// the browser is saved immediately through the tracker.
func Run(ctx context.Context, tr *tracker.Tracker) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newTUIModel(tr), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

type tuiModel struct {
	tracker  *tracker.Tracker
	filter   task.Status // empty shows all tasks
	cursor   int
	message  string
	saveErr  error
	showHelp bool
}

func newTUIModel(tr *tracker.Tracker) *tuiModel {
	return &tuiModel{tracker: tr}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "0":
		m.setFilter("")
	case "1":
		m.setFilter(task.StatusTodo)
	case "2":
		m.setFilter(task.StatusInProgress)
	case "3":
		m.setFilter(task.StatusDone)
	case "t":
		return m.mark(task.StatusTodo)
	case "p":
		return m.mark(task.StatusInProgress)
	case "d":
		return m.mark(task.StatusDone)
	case "x":
		return m.deleteSelected()
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.tracker.Store())
	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	tasks := m.visible()
	if len(tasks) == 0 {
		b.WriteString("  " + m.listing().Message + "\n\n")
	} else {
		for i, t := range tasks {
			pointer := " "
			if i == m.cursor {
				pointer = ">"
			}
			b.WriteString(pointer + " " + tracker.FormatTask(t) + "\n")
		}
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func (m *tuiModel) listing() tracker.Outcome {
	if m.filter == "" {
		return m.tracker.List()
	}
	return m.tracker.ListByStatus(string(m.filter))
}

func (m *tuiModel) visible() []task.Task {
	return m.listing().Tasks
}

func (m *tuiModel) selected() (task.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) setFilter(status task.Status) {
	m.filter = status
	m.cursor = 0
}

func (m *tuiModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) mark(status task.Status) (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	return m.apply(m.tracker.SetStatus(t.ID, status))
}

func (m *tuiModel) deleteSelected() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	return m.apply(m.tracker.Delete(t.ID))
}

func (m *tuiModel) apply(out tracker.Outcome, err error) (tea.Model, tea.Cmd) {
	m.message = out.Message
	if err != nil {
		m.saveErr = err
		return m, tea.Quit
	}
	m.clampCursor()
	return m, nil
}

func writeTitle(b *strings.Builder) {
	title := "Task Tracker"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, store *task.Store) {
	fmt.Fprintf(b, "  Todo: %d  In progress: %d  Done: %d\n\n",
		len(store.Filter(task.StatusTodo)),
		len(store.Filter(task.StatusInProgress)),
		len(store.Filter(task.StatusDone)),
	)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  up/k down/j  Move selection\n")
	b.WriteString("  t            Mark selected todo\n")
	b.WriteString("  p            Mark selected in-progress\n")
	b.WriteString("  d            Mark selected done\n")
	b.WriteString("  x            Delete selected\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  0            Clear filter\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
