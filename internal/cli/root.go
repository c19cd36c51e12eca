// Package cli provides the command-line interface for translog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adlib-audio/translog/internal/cli/commands"
	"github.com/adlib-audio/translog/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// An unknown first token may name a plugin command. Positional log-file
	// arguments also land here, so only divert when a plugin binary actually
	// exists; otherwise the root command parses the token as a file path.
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					return plugins.Execute(pluginPath, os.Args[2:])
				}
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command. The root command itself
// does the parsing; validate and version are subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewParseCommand()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.Long += `

PLUGINS:
  translog supports plugins for extended functionality. Plugins are standalone
  binaries named translog-<command> that are automatically discovered and
  invoked.

  Plugin locations (searched in order):
    1. Same directory as the translog binary
    2. ~/.translog/plugins/
    3. Anywhere in PATH`

	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
