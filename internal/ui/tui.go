// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker/internal/report"
	"github.com/nibzard/tasker/internal/store"
	"github.com/nibzard/tasker/internal/todo"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Layout selects how tasks are listed.
type Layout int

const (
	LayoutNumber Layout = iota
	LayoutPriority
)

func (l Layout) String() string {
	if l == LayoutPriority {
		return "by priority"
	}
	return "by number"
}

// RunTUI shows the named task file until the user quits.
func RunTUI(ctx context.Context, st *store.Store, file string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(NewModel(st, file), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model for the task viewer.
type Model struct {
	store     *store.Store
	file      string
	list      *todo.List
	loadErr   error
	missing   bool
	layout    Layout
	query     string
	searching bool
	input     textinput.Model
	showHelp  bool
}

// NewModel returns a viewer for the named task file.
func NewModel(st *store.Store, file string) *Model {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search notes and tags"
	input.CharLimit = 200

	return &Model{
		store: st,
		file:  file,
		list:  todo.NewList(),
		input: input,
	}
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.query = strings.TrimSpace(m.input.Value())
			m.stopSearch()
			return m, nil
		case "esc":
			m.stopSearch()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "n":
		m.layout = LayoutNumber
	case "p":
		m.layout = LayoutPriority
	case "/":
		m.searching = true
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "0":
		m.query = ""
	case "r", "f5":
		m.refresh()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) stopSearch() {
	m.searching = false
	m.input.Blur()
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b, m.store.Path(m.file))

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.searching {
		b.WriteString(m.input.View() + "\n\n")
	} else if m.query != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Search: %q (0 to clear)", m.query)) + "\n\n")
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}
	if m.missing {
		b.WriteString(dimStyle.Render("The file does not exist yet.") + "\n\n")
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Tasks (%s)", m.layout)) + "\n\n")
	m.writeTasks(&b)
	b.WriteString("\n")
	writeFooter(&b)
	return b.String()
}

func (m *Model) writeTasks(b *strings.Builder) {
	tasks := m.list.Tasks()
	if m.query != "" {
		tasks = m.list.Search(m.query)
		if len(tasks) == 0 {
			b.WriteString(report.NoMatches(m.query) + "\n")
			return
		}
	}
	if m.layout == LayoutPriority {
		_ = report.WriteByPriority(b, todo.GroupByPriority(tasks))
		return
	}
	_ = report.WriteTasks(b, tasks)
}

// refresh reloads the task file. A missing file shows an empty list.
func (m *Model) refresh() {
	if _, ok := m.store.Exists(m.file); !ok {
		m.loadErr = nil
		m.missing = true
		m.list.Replace(nil)
		return
	}
	tasks, err := m.store.Load(m.file)
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.missing = false
	m.list.Replace(tasks)
}

func writeTitle(b *strings.Builder, path string) {
	b.WriteString(titleStyle.Render("tasker") + "  " + dimStyle.Render(path) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(labelStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  n            List by number\n")
	b.WriteString("  p            List by priority\n")
	b.WriteString("  /            Search notes and tags (enter applies, esc cancels)\n")
	b.WriteString("  0            Clear search\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(dimStyle.Render("Press h for help | q to quit") + "\n")
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
