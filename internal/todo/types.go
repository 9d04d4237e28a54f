package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Priority represents a task priority.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the priorities in display order (highest first).
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority parses user input into a Priority.
// Accepts the full names and their first letters, in any case.
func ParsePriority(input string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "l", "low":
		return PriorityLow, nil
	case "m", "medium":
		return PriorityMedium, nil
	case "h", "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("%q is not a valid priority, must be one of: (L)ow, (M)edium, (H)igh", input)
}

// Task represents a single task in the list.
type Task struct {
	ID       int      `json:"id" yaml:"id"`
	Note     string   `json:"note" yaml:"note"`
	Priority Priority `json:"priority" yaml:"priority"`
	Tags     string   `json:"tags" yaml:"tags"`
}

// List is an ordered collection of tasks.
//
// IDs are assigned by the list and always form the range 1..Len() after
// Add, Delete and Renumber. A List is not safe for concurrent use.
type List struct {
	tasks  []Task
	lastID int
}

// ValidateText rejects text that is not valid UTF-8. Such text would not
// survive a JSON round trip unchanged.
func ValidateText(field, text string) error {
	if !utf8.ValidString(text) {
		return &ValidationError{Path: field, Err: errors.New("not valid UTF-8")}
	}
	return nil
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// NewListFrom returns a list holding a copy of tasks, as loaded from a file.
func NewListFrom(tasks []Task) *List {
	l := &List{}
	l.Replace(tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in list order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Replace swaps the whole task sequence and renumbers it, so ids run
// 1..Len() in the given order. A file accepted by Unmarshal already has
// those ids.
func (l *List) Replace(tasks []Task) {
	l.tasks = make([]Task, len(tasks))
	copy(l.tasks, tasks)
	l.Renumber()
}

// Add appends a new task and returns it.
func (l *List) Add(note string, priority Priority, tags string) Task {
	l.lastID++
	task := Task{
		ID:       l.lastID,
		Note:     note,
		Priority: priority,
		Tags:     tags,
	}
	l.tasks = append(l.tasks, task)
	return task
}

func (l *List) index(id int) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func (l *List) Find(id int) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, &NotFoundError{ID: id}
	}
	return l.tasks[i], nil
}

// Update applies updater to the task with the given id in place.
// The id itself cannot be changed by updater.
func (l *List) Update(id int, updater func(*Task)) error {
	i := l.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	updater(&l.tasks[i])
	l.tasks[i].ID = id
	return nil
}

// Delete removes the task with the given id and renumbers the rest.
// The list is left untouched when no task carries id.
func (l *List) Delete(id int) error {
	i := l.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	l.Renumber()
	return nil
}

// Renumber assigns id = position+1 to every task in list order.
func (l *List) Renumber() {
	for i := range l.tasks {
		l.tasks[i].ID = i + 1
	}
	l.lastID = len(l.tasks)
}

// Search returns the tasks whose note or tags contain query, ignoring case.
// An empty query matches every task.
func (l *List) Search(query string) []Task {
	q := strings.ToLower(query)
	matches := make([]Task, 0)
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Note), q) || strings.Contains(strings.ToLower(t.Tags), q) {
			matches = append(matches, t)
		}
	}
	return matches
}

// ByPriority groups the current tasks by priority.
func (l *List) ByPriority() []Group {
	return GroupByPriority(l.tasks)
}

// ParseID validates user input naming a task in a list of count tasks.
// The input must be a plain decimal number between 1 and count.
func ParseID(input string, count int) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("%q is not an existing task: %w", input, ErrNotFound)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 || id > count {
		return 0, fmt.Errorf("%q is not an existing task: %w", input, ErrNotFound)
	}
	return id, nil
}
