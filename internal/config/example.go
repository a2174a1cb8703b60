package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by TASK_CLI_* environment variables or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
task_file = "tasks_database.json"

# Timestamp layout for created_at/updated_at: "ansic", "rfc3339", or a Go layout
time_layout = "ansic"

# Diagnostics on stderr
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
