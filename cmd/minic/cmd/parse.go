package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiaobogaga/minic/compiler"
)

func newParseCmd() *cobra.Command {
	var format string
	parseCmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}
			tokens, err := readSource(args[0])
			if err != nil {
				return err
			}
			program, err := compiler.NewParser(tokens, cfg.CompilerOptions(logger)).Parse()
			if err != nil {
				return err
			}
			if format == "yaml" {
				return compiler.DumpYAML(cmd.OutOrStdout(), program)
			}
			return compiler.DumpJSON(cmd.OutOrStdout(), program)
		},
	}
	parseCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return parseCmd
}
