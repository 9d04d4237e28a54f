// Package menu implements the numbered text menu front end.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/logging"
	"github.com/nibzard/tasker/internal/report"
	"github.com/nibzard/tasker/internal/store"
	"github.com/nibzard/tasker/internal/todo"
)

const menuText = `
Task List Menu:

1.  Load Tasks
2.  Save Tasks
3.  Show Tasks by Number
4.  Show Tasks by Priority
5.  Search Tasks
6.  Add Task
7.  Delete Task
8.  Modify Task
9.  Display this menu
10. Quit
11. Delete Task File
`

// errQuit stops the loop without an error.
var errQuit = errors.New("quit")

type inputLine struct {
	text string
	err  error
}

// Menu reads choices from in and writes results to out.
type Menu struct {
	list    *todo.List
	store   *store.Store
	journal *logging.Journal
	logger  *log.Logger
	in      *bufio.Scanner
	lines   chan inputLine
	ctx     context.Context
	out     io.Writer
	current string
	actions map[string]func() error
}

// Option configures a Menu.
type Option func(*Menu)

// WithJournal records task changes in j.
func WithJournal(j *logging.Journal) Option {
	return func(m *Menu) {
		m.journal = j
	}
}

// WithLogger sets the console logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithList starts the menu with an existing list, loaded from file.
func WithList(list *todo.List, file string) Option {
	return func(m *Menu) {
		if list != nil {
			m.list = list
			m.current = file
		}
	}
}

// New returns a Menu backed by st.
func New(st *store.Store, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		list:   todo.NewList(),
		store:  st,
		logger: logging.DiscardLogger(),
		in:     bufio.NewScanner(in),
		ctx:    context.Background(),
		out:    out,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.actions = map[string]func() error{
		"1":  m.load,
		"2":  m.save,
		"3":  m.showTasks,
		"4":  m.showByPriority,
		"5":  m.search,
		"6":  m.add,
		"7":  m.delete,
		"8":  m.modify,
		"9":  m.showMenu,
		"10": m.quit,
		"11": m.deleteFile,
	}
	return m
}

// List returns the task list the menu operates on.
func (m *Menu) List() *todo.List {
	return m.list
}

// Run shows the menu and handles choices until the user quits, input
// ends, or ctx is cancelled. A Menu runs once.
func (m *Menu) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.ctx = ctx
	m.lines = make(chan inputLine)
	go m.readLines(ctx, m.lines)

	if err := m.showMenu(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := m.prompt("\nEnter an option (\"9\" will re-display the menu): ")
		if err != nil {
			return endOfInput(err)
		}
		action, ok := m.actions[choice]
		if !ok {
			m.printf("\n%s is not a valid option!\n", choice)
			continue
		}
		if err := action(); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readLines feeds input lines to prompt so a blocked read never keeps
// Run from noticing cancellation. The channel is closed at end of input.
func (m *Menu) readLines(ctx context.Context, lines chan<- inputLine) {
	defer close(lines)
	for m.in.Scan() {
		select {
		case lines <- inputLine{text: m.in.Text()}:
		case <-ctx.Done():
			return
		}
	}
	if err := m.in.Err(); err != nil {
		select {
		case lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}
}

// prompt writes text and reads one trimmed line. It returns io.EOF when
// input is exhausted and ctx.Err() once the context is cancelled.
func (m *Menu) prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)
	select {
	case <-m.ctx.Done():
		fmt.Fprintln(m.out)
		return "", m.ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			fmt.Fprintln(m.out)
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

// promptText is prompt for free text stored in a task. It asks again
// until the input is valid UTF-8.
func (m *Menu) promptText(text string) (string, error) {
	for {
		input, err := m.prompt(text)
		if err != nil {
			return "", err
		}
		if err := todo.ValidateText("text", input); err != nil {
			m.printf("The text is not valid UTF-8, please enter it again.\n")
			continue
		}
		return input, nil
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) record(event logging.Event) {
	if err := m.journal.Record(event); err != nil {
		m.logger.Warn("journal write failed", "err", err)
	}
}

// reportError prints a recoverable error and keeps the loop running.
func (m *Menu) reportError(err error, file string) {
	m.printf("\nError: %v\n", err)
	m.record(logging.Event{Type: logging.EventError, File: file, Error: err.Error()})
}

func (m *Menu) showMenu() error {
	fmt.Fprint(m.out, menuText)
	return nil
}

func (m *Menu) quit() error {
	return errQuit
}

func (m *Menu) load() error {
	name, err := m.prompt("Enter the name of the file containing your tasks (\".tsk\" will be added): ")
	if err != nil {
		return err
	}
	if name == "" {
		m.printf("A file name is required.\n")
		return nil
	}
	tasks, err := m.store.Load(name)
	if err != nil {
		m.reportError(err, m.store.Path(name))
		return nil
	}
	m.list.Replace(tasks)
	m.current = name
	m.logger.Info("loaded tasks", "file", m.store.Path(name), "count", len(tasks))
	m.record(logging.Event{Type: logging.EventLoad, File: m.store.Path(name)})
	m.printf("Loaded %d tasks from %s\n", len(tasks), m.store.Path(name))
	return nil
}

func (m *Menu) save() error {
	text := "Enter a file name for saving your tasks in (\".tsk\" will be added): "
	if m.current != "" {
		text = fmt.Sprintf("Enter a file name for saving your tasks in (\".tsk\" will be added) [%s]: ", store.ResolveName(m.current))
	}
	name, err := m.prompt(text)
	if err != nil {
		return err
	}
	if name == "" {
		name = m.current
	}
	if name == "" {
		m.printf("A file name is required.\n")
		return nil
	}
	if err := m.store.Save(name, m.list.Tasks()); err != nil {
		m.reportError(err, m.store.Path(name))
		return nil
	}
	m.current = name
	m.logger.Info("saved tasks", "file", m.store.Path(name), "count", m.list.Len())
	m.record(logging.Event{Type: logging.EventSave, File: m.store.Path(name)})
	m.printf("Saved %d tasks to %s\n", m.list.Len(), m.store.Path(name))
	return nil
}

func (m *Menu) showTasks() error {
	m.printf("\n")
	return report.WriteTasks(m.out, m.list.Tasks())
}

func (m *Menu) showByPriority() error {
	m.printf("\n")
	return report.WriteByPriority(m.out, m.list.ByPriority())
}

func (m *Menu) search() error {
	query, err := m.prompt("Enter the text you wish to search for: ")
	if err != nil {
		return err
	}
	if query == "" {
		m.printf("Search text must not be empty.\n")
		return nil
	}
	matches := m.list.Search(query)
	if len(matches) == 0 {
		m.printf("\n%s\n", report.NoMatches(query))
		return nil
	}
	m.printf("\n")
	return report.WriteTasks(m.out, matches)
}

func (m *Menu) add() error {
	note, err := m.promptText("Enter a task: ")
	if err != nil {
		return err
	}
	priority, err := m.readPriority()
	if err != nil {
		return err
	}
	tags, err := m.promptText("Enter the tag(s) for your task: ")
	if err != nil {
		return err
	}
	task := m.list.Add(note, priority, tags)
	m.logger.Debug("added task", "id", task.ID, "priority", task.Priority)
	m.record(logging.Event{Type: logging.EventAdd, TaskID: task.ID, Note: task.Note})
	m.printf("Added task %d.\n", task.ID)
	return nil
}

func (m *Menu) delete() error {
	id, ok, err := m.readID("delete: ")
	if err != nil || !ok {
		return err
	}
	if err := m.list.Delete(id); err != nil {
		m.reportError(err, "")
		return nil
	}
	m.logger.Debug("deleted task", "id", id, "remaining", m.list.Len())
	m.record(logging.Event{Type: logging.EventDelete, TaskID: id})
	m.printf("The task was deleted.\n")
	return nil
}

func (m *Menu) modify() error {
	id, ok, err := m.readID("modify: ")
	if err != nil || !ok {
		return err
	}

	var field string
	for field == "" {
		choice, err := m.prompt("What do you wish to modify? (T)ask, (P)riority or T(a)gs: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "t", "task":
			field = "note"
		case "p", "priority":
			field = "priority"
		case "a", "tags":
			field = "tags"
		default:
			m.printf("%s is not a valid choice.\n", choice)
		}
	}

	var updater func(*todo.Task)
	switch field {
	case "note":
		note, err := m.promptText("Enter a task: ")
		if err != nil {
			return err
		}
		updater = func(t *todo.Task) { t.Note = note }
	case "priority":
		priority, err := m.readPriority()
		if err != nil {
			return err
		}
		updater = func(t *todo.Task) { t.Priority = priority }
	case "tags":
		tags, err := m.promptText("Enter the tag(s) for your task: ")
		if err != nil {
			return err
		}
		updater = func(t *todo.Task) { t.Tags = tags }
	}

	if err := m.list.Update(id, updater); err != nil {
		m.reportError(err, "")
		return nil
	}
	task, _ := m.list.Find(id)
	m.logger.Debug("modified task", "id", id, "field", field)
	m.record(logging.Event{Type: logging.EventModify, TaskID: id, Note: task.Note})
	m.printf("The task was modified.\n")
	return nil
}

func (m *Menu) deleteFile() error {
	name, err := m.prompt("Enter the name of the task file to delete (\".tsk\" will be added): ")
	if err != nil {
		return err
	}
	if name == "" {
		m.printf("A file name is required.\n")
		return nil
	}
	path := m.store.Path(name)
	if err := m.store.Remove(name); err != nil {
		m.reportError(err, path)
		return nil
	}
	if m.current != "" && m.store.Path(m.current) == path {
		m.current = ""
	}
	m.record(logging.Event{Type: logging.EventDeleteFile, File: path})
	m.printf("Deleted %s\n", path)
	return nil
}

// readPriority prompts until a valid priority is entered.
func (m *Menu) readPriority() (todo.Priority, error) {
	for {
		input, err := m.prompt("Enter a priority for the task - (valid options are (L)ow, (M)edium and (H)igh): ")
		if err != nil {
			return "", err
		}
		p, err := todo.ParsePriority(input)
		if err == nil {
			return p, nil
		}
		m.printf("%s is not a valid option\n", input)
	}
}

// readID prompts for a task number. ok is false when the input does not
// name an existing task; the reason has already been printed.
func (m *Menu) readID(action string) (id int, ok bool, err error) {
	input, err := m.prompt("Enter the Number of the Task you wish to " + action)
	if err != nil {
		return 0, false, err
	}
	id, err = todo.ParseID(input, m.list.Len())
	if err != nil {
		m.printf("%s is not an existing task!\n", input)
		return 0, false, nil
	}
	return id, true, nil
}
