package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a source file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			tokens, err := readSource(args[0])
			if err != nil {
				return err
			}
			logger.Debug("tokenized", "file", args[0], "tokens", len(tokens))
			out := cmd.OutOrStdout()
			for _, token := range tokens {
				fmt.Fprintf(out, "%d\t%s\t%s\n", token.Line, token.TP, token.Content)
			}
			return nil
		},
	}
}
