package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/todo"
)

// doctorCommand checks config, directories, and task file validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasker doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s := newSession(cfg, false)
	defer s.close()

	name, err := s.fileArg(fs.Args())
	if err != nil {
		return err
	}
	taskPath := s.store.Path(name)

	fmt.Println("tasker doctor")
	fmt.Println("=============")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if _, err := todo.ParseFormat(cfg.Format); err != nil {
		fmt.Printf("  ❌ Format: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  ✅ Format: %s\n", cfg.Format)
	}
	fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Println()

	// Check data directory
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	if !checkDir(cfg.DataDir, "will be created on save") {
		allOK = false
	}
	fmt.Println()

	// Check task file
	fmt.Printf("Task file: %s\n", taskPath)
	info, err := os.Stat(taskPath)
	switch {
	case err != nil && os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on save)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		tasks, loadErr := s.store.Load(name)
		if loadErr != nil {
			fmt.Println("  ❌ Validation failed:")
			fmt.Printf("     - %v\n", loadErr)
			allOK = false
		} else {
			fmt.Println("  ✅ Valid")
			if *verbose {
				groups := todo.GroupByPriority(tasks)
				fmt.Printf("  Tasks: %d", len(tasks))
				for _, g := range groups {
					fmt.Printf("  %s: %d", g.Priority, len(g.Tasks))
				}
				fmt.Println()
			}
		}
	}
	fmt.Println()

	// Check journal directory
	if cfg.Journal {
		fmt.Printf("Journal directory: %s\n", cfg.JournalDir)
		if !checkDir(cfg.JournalDir, "will be created on first change") {
			allOK = false
		}
	} else {
		fmt.Println("Journal: disabled")
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. tasker may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkDir reports whether path is usable as a directory. A missing
// directory is only a warning.
func checkDir(path, missingNote string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("  ⚠️  Not found (%s)\n", missingNote)
			return true
		}
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		return false
	}
	fmt.Println("  ✅ OK")
	return true
}
