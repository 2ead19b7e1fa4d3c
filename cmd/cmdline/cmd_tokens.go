package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cmdline/cmdline"
)

func newTokensCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [--] <args>...",
		Short: "Show how the arguments are classified before matching",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range cmdline.Tokenize(args, root) {
				position := fmt.Sprint(tok.Position)
				if tok.Implicit() {
					position = "-"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", position, tok.Kind, tok.Value)
			}
			return nil
		},
	}
}
