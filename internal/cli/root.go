// Package cli exposes the recommendation engine on the command line.
package cli

import (
	"github.com/spf13/cobra"
)

const app = "benefits"

// Actual version can be specified in build command.
var version = "unknown"

// NewRootCommand builds the command tree. Output goes to the command's writer.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "benefits ranks employee benefits for a job offer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newSuggestCommand(), newVersionCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s version: %s\n", app, version)
		},
	}
}
