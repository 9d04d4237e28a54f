// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/logging"
	"github.com/nibzard/tasker/internal/menu"
	"github.com/nibzard/tasker/internal/store"
	"github.com/nibzard/tasker/internal/todo"
	"github.com/nibzard/tasker/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasker CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "search":
		return searchCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "rm":
		return rmCommand(cfg, remainingArgs)
	case "edit":
		return editCommand(cfg, remainingArgs)
	case "files":
		return filesCommand(cfg, remainingArgs)
	case "delete-file":
		return deleteFileCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// An existing task file opens the menu on it
		if strings.HasSuffix(subcommand, store.Ext) {
			if _, ok := store.New(cfg.DataDir).Exists(subcommand); ok {
				return menuCommand(ctx, cfg, append([]string{subcommand}, remainingArgs...))
			}
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// session bundles what commands need to work on task files.
type session struct {
	cfg     *config.Config
	store   *store.Store
	logger  *log.Logger
	journal *logging.Journal
}

// newSession sets up logging and the store. The journal is opened only
// when withJournal is set and journaling is enabled.
func newSession(cfg *config.Config, withJournal bool) *session {
	logger := logging.NewConsoleLoggerFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	format, err := todo.ParseFormat(cfg.Format)
	if err != nil {
		format = todo.FormatJSON
	}
	s := &session{
		cfg:    cfg,
		store:  store.New(cfg.DataDir, store.WithFormat(format), store.WithLogger(logger)),
		logger: logger,
	}
	if withJournal && cfg.Journal {
		j, err := logging.NewJournal(cfg.JournalDir, cfg.ProjectRoot)
		if err != nil {
			logger.Warn("journal disabled", "err", err)
		} else {
			s.journal = j
			logger.Debug("journal opened", "path", j.LogPath)
		}
	}
	return s
}

func (s *session) close() {
	if err := s.journal.Close(); err != nil {
		s.logger.Warn("closing journal", "err", err)
	}
}

func (s *session) record(event logging.Event) {
	if err := s.journal.Record(event); err != nil {
		s.logger.Warn("journal write failed", "err", err)
	}
}

// fileArg returns the task file named by args, or the configured default.
func (s *session) fileArg(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return s.cfg.TaskFile, nil
}

// loadList loads the named task file. A file that does not exist yet
// yields an empty list.
func (s *session) loadList(name string) (*todo.List, error) {
	if _, ok := s.store.Exists(name); !ok {
		s.logger.Debug("task file not found, starting empty", "path", s.store.Path(name))
		return todo.NewList(), nil
	}
	tasks, err := s.store.Load(name)
	if err != nil {
		s.record(logging.Event{Type: logging.EventError, File: s.store.Path(name), Error: err.Error()})
		return nil, err
	}
	s.record(logging.Event{Type: logging.EventLoad, File: s.store.Path(name)})
	return todo.NewListFrom(tasks), nil
}

func (s *session) saveList(name string, list *todo.List) error {
	if err := s.store.Save(name, list.Tasks()); err != nil {
		s.record(logging.Event{Type: logging.EventError, File: s.store.Path(name), Error: err.Error()})
		return err
	}
	s.record(logging.Event{Type: logging.EventSave, File: s.store.Path(name)})
	return nil
}

// menuCommand runs the numbered text menu on stdin and stdout.
func menuCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker menu", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := newSession(cfg, true)
	defer s.close()

	opts := []menu.Option{menu.WithJournal(s.journal), menu.WithLogger(s.logger)}

	// Only an explicitly named file is loaded up front.
	if fs.NArg() > 0 {
		name, err := s.fileArg(fs.Args())
		if err != nil {
			return err
		}
		list, err := s.loadList(name)
		if err != nil {
			return err
		}
		opts = append(opts, menu.WithList(list, name))
	}

	m := menu.New(s.store, os.Stdin, os.Stdout, opts...)
	return m.Run(ctx)
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := newSession(cfg, false)
	defer s.close()

	name, err := s.fileArg(fs.Args())
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, s.store, name)
}

// tailCommand tails the latest journal or lists journal sessions.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	listSessions := fs.Bool("sessions", false, "List journal sessions instead of tailing")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.JournalDir, workDir)
	if err != nil {
		return fmt.Errorf("finding journal directory: %w", err)
	}

	if *listSessions {
		sessions, err := logging.FindSessions(logDir)
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No journal files found.")
			return nil
		}
		for _, sess := range sessions {
			fmt.Printf("%s  %s\n", sess.ModTime.Format("2006-01-02 15:04:05"), sess.ID)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if logPath == "" {
		fmt.Println("No journal files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasker config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if file := cws.ConfigFile(); file != "" {
		fmt.Printf("# config file: %s\n", file)
	} else {
		fmt.Println("# no config file found")
	}
	for _, field := range config.Fields() {
		fmt.Printf("%-15s = %-30q # %s\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tasker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasker - a personal task manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu [file]              Interactive numbered menu (default command)")
	fmt.Fprintln(w, "  tui [file]               Launch terminal UI")
	fmt.Fprintln(w, "  ls [-priority] [file]    List tasks by number or by priority")
	fmt.Fprintln(w, "  search <text> [file]     Find tasks whose note or tags contain text")
	fmt.Fprintln(w, "  add [options] <note...>  Add a task")
	fmt.Fprintln(w, "  rm <id>                  Delete a task and renumber the rest")
	fmt.Fprintln(w, "  edit <id> [options]      Change a task's note, priority or tags")
	fmt.Fprintln(w, "  files                    List task files in the data directory")
	fmt.Fprintln(w, "  delete-file <name>       Delete a task file")
	fmt.Fprintln(w, "  doctor [file]            Check config, directories and task file validity")
	fmt.Fprintln(w, "  tail                     Show the latest activity journal")
	fmt.Fprintln(w, "  config                   Show effective configuration and its sources")
	fmt.Fprintln(w, "  completion <shell>       Print a shell completion script")
	fmt.Fprintln(w, "  version                  Show version information")
	fmt.Fprintln(w, "  help                     Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Priority: low, medium or high (default medium)")
	fmt.Fprintln(w, "  -tags string")
	fmt.Fprintln(w, "        Tags for the task")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit Options (use with 'edit' command):")
	fmt.Fprintln(w, "  -note string")
	fmt.Fprintln(w, "        New note")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        New priority")
	fmt.Fprintln(w, "  -tags string")
	fmt.Fprintln(w, "        New tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -sessions")
	fmt.Fprintln(w, "        List journal sessions, newest first")
}
