package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cmdline/cmdline"
	"github.com/dhamidi/cmdline/definition"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type globalOptions struct {
	definition string
	verbosity  int
	logPath    string
}

func (g *globalOptions) load() (*cmdline.Command, error) {
	return definition.Load(g.definition)
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "cmdline",
		Short:         "Match, complete and check command lines against a grammar",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if g.logPath != "" {
				path = &g.logPath
			}
			commonlog.Configure(g.verbosity, path)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.definition, "definition", "d", "cmdline.yaml", "command tree definition file")
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&g.logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newCompleteCmd(g))
	rootCmd.AddCommand(newTokensCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
