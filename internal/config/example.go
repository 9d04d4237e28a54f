package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasker configuration file
# Values can be overridden by TASKER_* environment variables or CLI flags

# Task file used when no file is given (.tsk is added when missing)
task_file = "tasks.tsk"

# Directory holding task files (relative to the working directory)
data_dir = "."

# Encoding used when saving: json or yaml (loading detects either)
format = "json"

# Activity journal directory (supports ~ expansion and %VAR% on Windows)
journal_dir = "~/.tasker"

# Record adds, edits, deletes, loads and saves in the journal
journal = true

# Console logging
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
