// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/tracker"
	"github.com/nibzard/task-cli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every command needs for one invocation.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// Run executes the task-cli CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
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
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	a := &app{
		cfg:     cws.Config,
		sources: cws,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logging.FromConfig(cws.Config, stderr),
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fmt.Fprintln(stdout, "Usage: task-cli <command> [arguments]")
		fmt.Fprintln(stdout, "Type 'task-cli --help' for details.")
		return nil
	}
	subcommand, cmdArgs := remaining[0], remaining[1:]

	switch subcommand {
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	case "version", "--version":
		return versionCommand(stdout)
	case "doctor":
		return a.doctorCommand(cmdArgs)
	case "config":
		return a.configCommand(cmdArgs)
	case "completion":
		return completionCommand(stdout, cmdArgs)
	case "tui":
		return a.tuiCommand(ctx, cmdArgs)
	}

	command, err := ParseCommand(subcommand, cmdArgs)
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stdout, usage.Message)
			if !isTaskCommand(subcommand) {
				fmt.Fprintln(stdout, "Type 'task-cli --help' for details.")
			}
			return nil
		}
		return err
	}
	return a.execute(command)
}

// openTracker loads the configured task file.
func (a *app) openTracker() (*tracker.Tracker, error) {
	store := task.NewStore(a.cfg.TaskFile,
		task.WithLogger(a.logger),
		task.WithTimeLayout(a.cfg.TimeLayout),
	)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tracker.New(store), nil
}

// execute runs one parsed task command and renders its outcome.
func (a *app) execute(command Command) error {
	tr, err := a.openTracker()
	if err != nil {
		return err
	}

	var (
		out    tracker.Outcome
		runErr error
	)
	switch command.Kind {
	case CommandAdd:
		out, runErr = tr.Add(command.Description)
	case CommandUpdate:
		out, runErr = tr.Update(command.ID, command.Description)
	case CommandDelete:
		out, runErr = tr.Delete(command.ID)
	case CommandMark:
		out, runErr = tr.SetStatus(command.ID, command.Status)
	case CommandList:
		out = tr.List()
	case CommandListByStatus:
		out = tr.ListByStatus(command.Filter)
	default:
		return fmt.Errorf("unhandled command kind %d", command.Kind)
	}

	if runErr != nil {
		return fmt.Errorf("saving tasks to %s: %w", tr.Store().Path(), runErr)
	}
	out.Render(a.stdout)
	return nil
}

// tuiCommand launches the interactive task browser.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("task-cli tui", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	tr, err := a.openTracker()
	if err != nil {
		return err
	}
	return ui.Run(ctx, tr)
}

// doctorCommand checks the task file against the schema and reports the
// state of the store.
func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("task-cli doctor", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	taskPath := a.cfg.TaskFile
	if len(remaining) == 1 {
		taskPath = remaining[0]
		if !filepath.IsAbs(taskPath) {
			taskPath = filepath.Join(a.cfg.WorkDir, taskPath)
		}
	}

	w := a.stdout
	fmt.Fprintln(w, "task-cli doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Task file: %s\n", taskPath)

	data, err := os.ReadFile(taskPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ✅ Not created yet (first add will create it)")
			fmt.Fprintln(w, "  Next id: 1")
			return nil
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return fmt.Errorf("task file check failed: %w", err)
	}

	result := task.Validate(data)
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Invalid:")
		for _, verr := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", verr)
		}
		return fmt.Errorf("task file check failed: %d problem(s)", len(result.Errors))
	}

	store := task.NewStore(taskPath, task.WithLogger(logging.Discard()))
	if err := store.Load(); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return fmt.Errorf("task file check failed: %w", err)
	}

	fmt.Fprintln(w, "  ✅ OK")
	fmt.Fprintf(w, "  Tasks: %d", store.Len())
	for _, status := range task.Statuses() {
		fmt.Fprintf(w, "  %s: %d", status, len(store.Filter(status)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Next id: %d\n", store.Peek())
	return nil
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("task-cli config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := a.stdout
	if *example {
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	}

	cfg := a.cfg
	src := a.sources.Sources
	fmt.Fprintf(w, "task_file      = %q (%s)\n", cfg.TaskFile, src["task_file"])
	fmt.Fprintf(w, "time_layout    = %q (%s)\n", cfg.TimeLayout, src["time_layout"])
	fmt.Fprintf(w, "log_level      = %q (%s)\n", cfg.LogLevel, src["log_level"])
	fmt.Fprintf(w, "log_format     = %q (%s)\n", cfg.LogFormat, src["log_format"])
	fmt.Fprintf(w, "log_timestamps = %t (%s)\n", cfg.LogTimestamps, src["log_timestamps"])
	fmt.Fprintf(w, "log_caller     = %t (%s)\n", cfg.LogCaller, src["log_caller"])
	if len(a.sources.Files) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Config files:")
		for _, f := range a.sources.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "task-cli version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "task-cli - track short text tasks in a local JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  task-cli [options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>              Add a task")
	fmt.Fprintln(w, "  update <id> <description>      Replace a task's description")
	fmt.Fprintln(w, "  delete <id>                    Delete a task")
	fmt.Fprintln(w, "  mark-in-progress <id>          Mark a task in progress")
	fmt.Fprintln(w, "  mark-done <id>                 Mark a task done")
	fmt.Fprintln(w, "  mark-todo <id>                 Mark a task todo again")
	fmt.Fprintln(w, "  list                           Show all tasks")
	fmt.Fprintln(w, "  list <status>                  Show tasks with status todo, in-progress or done")
	fmt.Fprintln(w, "  tui                            Browse and re-mark tasks interactively")
	fmt.Fprintln(w, "  doctor [file]                  Check the task file")
	fmt.Fprintln(w, "  config [-example]              Show effective configuration")
	fmt.Fprintln(w, "  completion <bash|zsh|fish>     Print a shell completion script")
	fmt.Fprintln(w, "  version                        Show version information")
	fmt.Fprintln(w, "  help                           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, `  task-cli add "buy milk"`)
	fmt.Fprintln(w, "  task-cli mark-done 1")
	fmt.Fprintln(w, "  task-cli list done")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
