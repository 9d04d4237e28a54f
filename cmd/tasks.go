package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/logging"
	"github.com/nibzard/tasker/internal/report"
	"github.com/nibzard/tasker/internal/todo"
)

// lsCommand lists tasks by number, or grouped by priority.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker ls", flag.ContinueOnError)
	byPriority := fs.Bool("priority", false, "Group tasks by priority")
	fs.BoolVar(byPriority, "p", false, "Group tasks by priority")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s := newSession(cfg, false)
	defer s.close()

	name, err := s.fileArg(fs.Args())
	if err != nil {
		return err
	}
	list, err := s.loadList(name)
	if err != nil {
		return err
	}

	if *byPriority {
		return report.WriteByPriority(os.Stdout, list.ByPriority())
	}
	return report.WriteTasks(os.Stdout, list.Tasks())
}

// searchCommand prints the tasks whose note or tags contain the query.
func searchCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker search", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("search requires the text to look for")
	}
	query := remaining[0]

	s := newSession(cfg, false)
	defer s.close()

	name, err := s.fileArg(remaining[1:])
	if err != nil {
		return err
	}
	list, err := s.loadList(name)
	if err != nil {
		return err
	}

	matches := list.Search(query)
	s.logger.Debug("search", "query", query, "matches", len(matches))
	if len(matches) == 0 {
		fmt.Println(report.NoMatches(query))
		return nil
	}
	return report.WriteTasks(os.Stdout, matches)
}

// addCommand appends a task and saves the file.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker add", flag.ContinueOnError)
	priorityArg := fs.String("priority", "medium", "Priority: low, medium or high")
	fs.StringVar(priorityArg, "p", "medium", "Priority: low, medium or high")
	tags := fs.String("tags", "", "Tags for the task")
	fs.StringVar(tags, "t", "", "Tags for the task")

	if err := fs.Parse(args); err != nil {
		return err
	}

	note := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if note == "" {
		return fmt.Errorf("add requires a note")
	}
	priority, err := todo.ParsePriority(*priorityArg)
	if err != nil {
		return err
	}
	if err := todo.ValidateText("note", note); err != nil {
		return err
	}
	if err := todo.ValidateText("tags", *tags); err != nil {
		return err
	}

	s := newSession(cfg, true)
	defer s.close()

	name := cfg.TaskFile
	list, err := s.loadList(name)
	if err != nil {
		return err
	}

	task := list.Add(note, priority, *tags)
	if err := s.saveList(name, list); err != nil {
		return err
	}
	s.record(logging.Event{Type: logging.EventAdd, TaskID: task.ID, Note: task.Note, File: s.store.Path(name)})
	fmt.Printf("Added task %d to %s\n", task.ID, s.store.Path(name))
	return nil
}

// rmCommand deletes a task, renumbers the rest and saves the file.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker rm", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("rm requires exactly one task id")
	}

	s := newSession(cfg, true)
	defer s.close()

	name := cfg.TaskFile
	list, err := s.loadList(name)
	if err != nil {
		return err
	}

	id, err := todo.ParseID(fs.Arg(0), list.Len())
	if err != nil {
		return err
	}
	if err := list.Delete(id); err != nil {
		return err
	}
	if err := s.saveList(name, list); err != nil {
		return err
	}
	s.record(logging.Event{Type: logging.EventDelete, TaskID: id, File: s.store.Path(name)})
	fmt.Println("The task was deleted.")
	return nil
}

// editCommand changes fields of one task and saves the file.
func editCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker edit", flag.ContinueOnError)
	note := fs.String("note", "", "New note")
	priorityArg := fs.String("priority", "", "New priority: low, medium or high")
	tags := fs.String("tags", "", "New tags")

	// Accept the id before or after the flags.
	var idArg string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		idArg, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if idArg == "" && len(rest) > 0 {
		idArg, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}
	if idArg == "" {
		return fmt.Errorf("edit requires a task id")
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if len(set) == 0 {
		return fmt.Errorf("edit requires at least one of -note, -priority or -tags")
	}

	var priority todo.Priority
	if set["priority"] {
		p, err := todo.ParsePriority(*priorityArg)
		if err != nil {
			return err
		}
		priority = p
	}
	if err := todo.ValidateText("note", *note); err != nil {
		return err
	}
	if err := todo.ValidateText("tags", *tags); err != nil {
		return err
	}

	s := newSession(cfg, true)
	defer s.close()

	name := cfg.TaskFile
	list, err := s.loadList(name)
	if err != nil {
		return err
	}
	id, err := todo.ParseID(idArg, list.Len())
	if err != nil {
		return err
	}

	err = list.Update(id, func(t *todo.Task) {
		if set["note"] {
			t.Note = *note
		}
		if set["priority"] {
			t.Priority = priority
		}
		if set["tags"] {
			t.Tags = *tags
		}
	})
	if err != nil {
		return err
	}
	if err := s.saveList(name, list); err != nil {
		return err
	}
	task, _ := list.Find(id)
	s.record(logging.Event{Type: logging.EventModify, TaskID: id, Note: task.Note, File: s.store.Path(name)})
	return report.WriteTasks(os.Stdout, []todo.Task{task})
}
