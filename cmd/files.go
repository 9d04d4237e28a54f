package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/logging"
)

// filesCommand lists the task files in the data directory.
func filesCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker files", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s := newSession(cfg, false)
	defer s.close()

	names, err := s.store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("No task files in %s\n", s.store.Dir())
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// deleteFileCommand removes a task file.
func deleteFileCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker delete-file", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("delete-file requires exactly one file name")
	}

	s := newSession(cfg, true)
	defer s.close()

	name := fs.Arg(0)
	path := s.store.Path(name)
	if err := s.store.Remove(name); err != nil {
		return err
	}
	s.record(logging.Event{Type: logging.EventDeleteFile, File: path})
	fmt.Printf("Deleted %s\n", path)
	return nil
}
