package cmd

import (
	"fmt"
	"io"
	"strings"
)

// commandNames lists every top-level command for completion scripts.
var commandNames = []string{
	"add", "update", "delete",
	"mark-in-progress", "mark-done", "mark-todo",
	"list", "tui", "doctor", "config", "completion", "version", "help",
}

var listFilters = []string{"todo", "in-progress", "done"}

// completionCommand prints a completion script for the requested shell.
func completionCommand(w io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: task-cli completion <bash|zsh|fish>")
	}

	commands := strings.Join(commandNames, " ")
	filters := strings.Join(listFilters, " ")

	switch args[0] {
	case "bash":
		fmt.Fprintf(w, `# task-cli bash completion
_task_cli() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        list) COMPREPLY=($(compgen -W "%s" -- "$cur")); return ;;
        completion) COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur")); return ;;
    esac
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    fi
}
complete -F _task_cli task-cli
`, filters, commands)
	case "zsh":
		fmt.Fprintf(w, `#compdef task-cli
# task-cli zsh completion
_task_cli() {
    if (( CURRENT == 2 )); then
        compadd %s
    elif [[ ${words[2]} == list ]]; then
        compadd %s
    elif [[ ${words[2]} == completion ]]; then
        compadd bash zsh fish
    fi
}
compdef _task_cli task-cli
`, commands, filters)
	case "fish":
		fmt.Fprintf(w, `# task-cli fish completion
complete -c task-cli -f
complete -c task-cli -n "__fish_use_subcommand" -a "%s"
complete -c task-cli -n "__fish_seen_subcommand_from list" -a "%s"
complete -c task-cli -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`, commands, filters)
	default:
		return fmt.Errorf("unsupported shell %q (expected bash|zsh|fish)", args[0])
	}
	return nil
}
