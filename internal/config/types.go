// Package config handles configuration loading and defaults.
package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, lowest precedence first.
	Files []string
}

// Default values.
const (
	DefaultTaskFile   = "tasks.tsk"
	DefaultDataDir    = "."
	DefaultFormat     = "json"
	DefaultJournalDir = "~/.tasker"
	DefaultJournal    = true
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for tasker.
type Config struct {
	// Task files
	TaskFile string `toml:"task_file"`
	DataDir  string `toml:"data_dir"`
	Format   string `toml:"format"`

	// Activity journal
	JournalDir string `toml:"journal_dir"`
	Journal    bool   `toml:"journal"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		"task_file",
		"data_dir",
		"format",
		"journal_dir",
		"journal",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the string form of a field named as in Fields.
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "data_dir":
		return c.DataDir
	case "format":
		return c.Format
	case "journal_dir":
		return c.JournalDir
	case "journal":
		return boolString(c.Journal)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return boolString(c.LogTimestamps)
	case "log_caller":
		return boolString(c.LogCaller)
	}
	return ""
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
