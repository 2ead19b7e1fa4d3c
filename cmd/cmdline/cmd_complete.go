package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/cmdline/cmdline"
	"github.com/dhamidi/cmdline/format"
)

func newCompleteCmd(g *globalOptions) *cobra.Command {
	var position int
	var split bool

	cmd := &cobra.Command{
		Use:   "complete <command line>",
		Short: "Print completions for a command line",
		Long: `Print completions for a command line, one per line with its description.

The cursor defaults to the end of the line; --position moves it. With --args
the arguments are taken as already split words and the last one is the word
being completed.`,
		Example: `  cmdline complete -d app.yaml "app build --o"
  cmdline complete -d app.yaml --position 7 "app bu --output x"
  cmdline complete -d app.yaml --args -- build --output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.load()
			if err != nil {
				return err
			}
			p := cmdline.NewParser(root)

			var items []cmdline.CompletionItem
			switch {
			case split:
				items = p.Parse(args).Completions()
			default:
				if err := cobra.ExactArgs(1)(cmd, args); err != nil {
					return err
				}
				result := p.ParseLine(args[0])
				if position >= 0 {
					items = result.CompletionsAt(position)
				} else {
					items = result.Completions()
				}
			}

			return format.NewLineEncoder(cmd.OutOrStdout()).EncodeCompletions(items)
		},
	}

	cmd.Flags().IntVarP(&position, "position", "p", -1, "cursor offset into the line (default: end of line)")
	cmd.Flags().BoolVar(&split, "args", false, "treat the arguments as already split words")

	return cmd
}
