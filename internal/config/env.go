package config

import "os"

// Environment variables read by loadFromEnv.
const (
	EnvTaskFile      = "TASKER_TASK_FILE"
	EnvDataDir       = "TASKER_DATA_DIR"
	EnvFormat        = "TASKER_FORMAT"
	EnvJournalDir    = "TASKER_JOURNAL_DIR"
	EnvJournal       = "TASKER_JOURNAL"
	EnvLogLevel      = "TASKER_LOG_LEVEL"
	EnvLogFormat     = "TASKER_LOG_FORMAT"
	EnvLogTimestamps = "TASKER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKER_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	if v := os.Getenv(EnvTaskFile); v != "" {
		setSource(&cfg.TaskFile, v, sources, "task_file", SourceEnv)
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		setSource(&cfg.DataDir, v, sources, "data_dir", SourceEnv)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		setSource(&cfg.Format, v, sources, "format", SourceEnv)
	}
	if v := os.Getenv(EnvJournalDir); v != "" {
		setSource(&cfg.JournalDir, v, sources, "journal_dir", SourceEnv)
	}
	if v := os.Getenv(EnvJournal); v != "" {
		setSource(&cfg.Journal, boolFromString(v), sources, "journal", SourceEnv)
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		setSource(&cfg.LogLevel, v, sources, "log_level", SourceEnv)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		setSource(&cfg.LogFormat, v, sources, "log_format", SourceEnv)
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		setSource(&cfg.LogTimestamps, boolFromString(v), sources, "log_timestamps", SourceEnv)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		setSource(&cfg.LogCaller, boolFromString(v), sources, "log_caller", SourceEnv)
	}
}
