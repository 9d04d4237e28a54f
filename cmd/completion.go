package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasker/internal/config"
)

var completionCommands = []string{
	"menu", "tui", "ls", "search", "add", "rm", "edit", "files",
	"delete-file", "doctor", "tail", "config", "completion", "version", "help",
}

// completionCommand prints a shell completion script.
func completionCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("completion requires a shell: bash, zsh, fish or powershell")
	}
	words := strings.Join(completionCommands, " ")

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(`# tasker bash completion
_tasker() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    else
        COMPREPLY=($(compgen -f -X '!*%s' -- "$cur"))
    fi
}
complete -F _tasker tasker
`, words, ".tsk")
	case "zsh":
		fmt.Printf(`#compdef tasker
# tasker zsh completion
_tasker() {
    if (( CURRENT == 2 )); then
        compadd -- %s
    else
        _files -g '*.tsk'
    fi
}
compdef _tasker tasker
`, words)
	case "fish":
		fmt.Printf(`# tasker fish completion
complete -c tasker -f -n '__fish_use_subcommand' -a '%s'
complete -c tasker -n 'not __fish_use_subcommand' -a '(__fish_complete_suffix .tsk)'
`, words)
	case "powershell", "pwsh":
		quoted := make([]string, len(completionCommands))
		for i, c := range completionCommands {
			quoted[i] = "'" + c + "'"
		}
		fmt.Printf(`# tasker PowerShell completion
Register-ArgumentCompleter -Native -CommandName tasker -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, strings.Join(quoted, ", "))
	default:
		return fmt.Errorf("unsupported shell %q: expected bash, zsh, fish or powershell", args[0])
	}
	return nil
}
