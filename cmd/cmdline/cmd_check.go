package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cmdline/cmdline"
)

func newCheckCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the definition and print its command tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.load()
			if err != nil {
				return err
			}
			printCommand(cmd.OutOrStdout(), root, 0)
			return nil
		},
	}
}

func printCommand(w io.Writer, c *cmdline.Command, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s%s\n", indent, strings.Join(c.Aliases(), ", "), describe(c.Description()))
	for _, opt := range c.Options() {
		arg := opt.Argument()
		fmt.Fprintf(w, "%s  %s <%s %s>%s\n", indent, strings.Join(opt.Aliases(), ", "), arg.ValueType, arg.Arity(), describe(opt.Description()))
	}
	for _, arg := range c.Arguments() {
		fmt.Fprintf(w, "%s  <%s> %s %s%s\n", indent, arg.Name(), arg.ValueType, arg.Arity(), describe(arg.Description()))
	}
	for _, sub := range c.Subcommands() {
		printCommand(w, sub, depth+1)
	}
}

func describe(d string) string {
	if d == "" {
		return ""
	}
	return "  # " + d
}
