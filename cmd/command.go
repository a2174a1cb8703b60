package cmd

import (
	"strconv"
	"strings"

	"github.com/nibzard/task-cli/internal/task"
)

// CommandKind enumerates the task commands the dispatcher understands.
type CommandKind int

const (
	CommandAdd CommandKind = iota + 1
	CommandUpdate
	CommandDelete
	CommandMark
	CommandList
	CommandListByStatus
)

// Command is a parsed task command, ready to run against a tracker.
type Command struct {
	Kind        CommandKind
	ID          int
	Description string
	Status      task.Status
	Filter      string
}

// UsageError is a problem with the command line. It is reported to the
// user but is not a failure of the invocation.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageError(msg string) *UsageError {
	return &UsageError{Message: msg}
}

// markCommands maps mark-* command names to the status they set.
var markCommands = map[string]task.Status{
	"mark-todo":        task.StatusTodo,
	"mark-in-progress": task.StatusInProgress,
	"mark-done":        task.StatusDone,
}

// isTaskCommand reports whether name is handled by ParseCommand.
func isTaskCommand(name string) bool {
	switch name {
	case "add", "update", "delete", "list":
		return true
	}
	_, ok := markCommands[name]
	return ok
}

// ParseCommand resolves a command name and its arguments. All argument
// validation happens here, before any task file is read.
func ParseCommand(name string, args []string) (Command, error) {
	switch name {
	case "add":
		description := strings.Join(args, " ")
		if strings.TrimSpace(description) == "" {
			return Command{}, usageError("Error: Missing description.")
		}
		return Command{Kind: CommandAdd, Description: description}, nil

	case "update":
		if len(args) < 2 {
			return Command{}, usageError("Error: Usage: update [id] [description]")
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		description := strings.Join(args[1:], " ")
		if strings.TrimSpace(description) == "" {
			return Command{}, usageError("Error: Missing description.")
		}
		return Command{Kind: CommandUpdate, ID: id, Description: description}, nil

	case "delete":
		if len(args) < 1 {
			return Command{}, usageError("Error: Usage: delete [id]")
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDelete, ID: id}, nil

	case "list":
		if len(args) == 0 || args[0] == "tasks" {
			return Command{Kind: CommandList}, nil
		}
		return Command{Kind: CommandListByStatus, Filter: args[0]}, nil
	}

	if status, ok := markCommands[name]; ok {
		if len(args) < 1 {
			return Command{}, usageError("Error: Usage: " + name + " [id]")
		}
		id, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMark, ID: id, Status: status}, nil
	}

	return Command{}, usageError("Unknown command: " + name)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, usageError("Error: ID must be a number.")
	}
	return id, nil
}
