package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xiaobogaga/minic/compiler"
	"github.com/xiaobogaga/minic/watch"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	var watchFiles bool
	checkCmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check source files and report the first error of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			opts := cfg.CompilerOptions(logger)
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				if !checkFile(out, path, opts) {
					failed++
				}
			}
			if !watchFiles {
				if failed > 0 {
					return fmt.Errorf("%w: %d of %d files", errCheckFailed, failed, len(args))
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			logger.Info("watching for changes, press Ctrl+C to stop", "files", len(args))
			return watch.Files(ctx, args, func(path string) {
				checkFile(out, path, opts)
			}, logger)
		},
	}
	checkCmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "re-check files whenever they change")
	return checkCmd
}

// checkFile prints "path: ok" or the error and reports whether the file passed.
func checkFile(out io.Writer, path string, opts *compiler.Options) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Debug("checking", "file", path)
	_, err = compiler.Compile(string(src), opts)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return false
	}
	fmt.Fprintf(out, "%s: ok\n", path)
	return true
}
