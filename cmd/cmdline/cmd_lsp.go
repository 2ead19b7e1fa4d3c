package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/cmdline/lsp"
)

func newLSPCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server on stdio.

Every line of an open document is checked as a command line against the
definition, which is reloaded whenever the file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.load()
			if err != nil {
				return err
			}
			server := lsp.NewLSPServer(version, root, g.definition)
			return server.RunStdio()
		},
	}
}
