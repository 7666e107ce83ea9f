// Package cli implements the taskmini commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via ldflags.
var Version = "dev"

type rootOptions struct {
	configPath    string
	dbPath        string
	user          string
	logLevel      string
	ephemeral     bool
	noHostDialogs bool
}

// NewRootCommand builds the command tree. Running the root command starts the
// TUI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "taskmini",
		Short: "A small personal task list in the terminal",
		Long: `taskmini keeps a per-user task list in a local SQLite file.
Add, complete and delete tasks from the keyboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+defaultConfigHint()+")")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path")
	flags.StringVar(&opts.user, "user", "", "user identity used to scope the task list")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep tasks in memory only")
	flags.BoolVar(&opts.noHostDialogs, "no-host-dialogs", false, "always use in-app prompts")

	root.AddCommand(newExportCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
