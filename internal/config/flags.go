package config

import "flag"

// flagFields maps flag names to config field names.
var flagFields = map[string]string{
	"file":           "task_file",
	"data-dir":       "data_dir",
	"format":         "format",
	"journal-dir":    "journal_dir",
	"journal":        "journal",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines global flags on fs, parses args, and applies the
// flags that were set explicitly. If sources is non-nil, it tracks the
// source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasker", flag.ContinueOnError)
	}

	// Bind to copies so that unset flags leave file and env values alone.
	vals := *cfg
	fs.StringVar(&vals.TaskFile, "file", cfg.TaskFile, "Task file name (.tsk is added when missing)")
	fs.StringVar(&vals.DataDir, "data-dir", cfg.DataDir, "Directory holding task files")
	fs.StringVar(&vals.Format, "format", cfg.Format, "Task file format when saving (json, yaml)")
	fs.StringVar(&vals.JournalDir, "journal-dir", cfg.JournalDir, "Activity journal directory")
	fs.BoolVar(&vals.Journal, "journal", cfg.Journal, "Record activity in the journal")
	fs.StringVar(&vals.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&vals.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&vals.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&vals.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok {
			return
		}
		switch field {
		case "task_file":
			setSource(&cfg.TaskFile, vals.TaskFile, sources, field, SourceFlag)
		case "data_dir":
			setSource(&cfg.DataDir, vals.DataDir, sources, field, SourceFlag)
		case "format":
			setSource(&cfg.Format, vals.Format, sources, field, SourceFlag)
		case "journal_dir":
			setSource(&cfg.JournalDir, vals.JournalDir, sources, field, SourceFlag)
		case "journal":
			setSource(&cfg.Journal, vals.Journal, sources, field, SourceFlag)
		case "log_level":
			setSource(&cfg.LogLevel, vals.LogLevel, sources, field, SourceFlag)
		case "log_format":
			setSource(&cfg.LogFormat, vals.LogFormat, sources, field, SourceFlag)
		case "log_timestamps":
			setSource(&cfg.LogTimestamps, vals.LogTimestamps, sources, field, SourceFlag)
		case "log_caller":
			setSource(&cfg.LogCaller, vals.LogCaller, sources, field, SourceFlag)
		}
	})

	return nil
}
