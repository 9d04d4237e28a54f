// Package report renders task lists as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasker/internal/todo"
)

// NoTasks is written when there is nothing to show.
const NoTasks = "There are no tasks to display!"

const rule = "--------------------"

// WriteTasks writes tasks in list order with their priority and tags.
func WriteTasks(w io.Writer, tasks []todo.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, NoTasks)
		return err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintf(w, "%d: %s\n\tPriority: %s\n\tTags: %s\n", t.ID, t.Note, t.Priority, t.Tags); err != nil {
			return err
		}
	}
	return nil
}

// WriteByPriority writes each group under a header, High first.
// Empty groups get a placeholder line.
func WriteByPriority(w io.Writer, groups []todo.Group) error {
	total := 0
	for _, g := range groups {
		total += len(g.Tasks)
	}
	if total == 0 {
		_, err := fmt.Fprintln(w, NoTasks)
		return err
	}

	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", g.Priority, rule); err != nil {
			return err
		}
		if len(g.Tasks) == 0 {
			if _, err := fmt.Fprintf(w, "There are no %s priority tasks\n", strings.ToLower(string(g.Priority))); err != nil {
				return err
			}
			continue
		}
		for _, t := range g.Tasks {
			if _, err := fmt.Fprintf(w, "%d: %s\n\tTags: %s\n", t.ID, t.Note, t.Tags); err != nil {
				return err
			}
		}
	}
	return nil
}

// NoMatches returns the message shown when a search finds nothing.
func NoMatches(query string) string {
	return fmt.Sprintf("There were no tasks containing %q.", query)
}
