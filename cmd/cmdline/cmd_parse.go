package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cmdline/cmdline"
	"github.com/dhamidi/cmdline/format"
)

func newParseCmd(g *globalOptions) *cobra.Command {
	var outputFormat string
	var line bool

	cmd := &cobra.Command{
		Use:   "parse [--] <args>...",
		Short: "Match a command line against the definition and dump the result",
		Long: `Match a command line against the definition and dump the result.

Arguments after -- are taken as already split words. With --line they are
joined and split again on whitespace, as an editor would see the line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder := format.New(outputFormat, cmd.OutOrStdout())
			if encoder == nil {
				return fmt.Errorf("unknown format: %s (expected one of %s)", outputFormat, strings.Join(format.Names(), ", "))
			}

			root, err := g.load()
			if err != nil {
				return err
			}

			p := cmdline.NewParser(root)
			var result *cmdline.ParseResult
			if line {
				result = p.ParseLine(strings.Join(args, " "))
			} else {
				result = p.Parse(args)
			}

			if err := encoder.Encode(result); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if n := len(result.Errors()); n > 0 {
				return fmt.Errorf("%d parse error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&line, "line", false, "treat the arguments as one command line")

	return cmd
}
