package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xiaobogaga/minic/compiler"
	"github.com/xiaobogaga/minic/config"
)

var (
	cfgFile string
	verbose bool
)

// NewRootCmd builds the minic command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minic",
		Short: "minic - front-end for a small C-like language",
		Long: `minic tokenizes, parses and semantically checks programs written in a
small C-like language with int, bool and void types and functions.

Commands:
  check    - run all stages and report the first error
  parse    - print the syntax tree
  tokens   - print the token stream
  samples  - run the built-in sample programs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newCheckCmd(), newParseCmd(), newTokensCmd(), newSamplesCmd(), newVersionCmd())
	return rootCmd
}

func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// setup loads the config and builds the logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config loaded", "file", cfgFile, "max_depth", cfg.Parser.MaxDepth)
	return cfg, logger, nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Level: level, Prefix: "minic"}), nil
}

// readSource reads a source file and runs it through the tokenizer.
func readSource(path string) ([]*compiler.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tokenizer := &compiler.Tokenizer{}
	return tokenizer.Tokenize(f)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
