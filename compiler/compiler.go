package compiler

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options tunes the parser and the analyzer. The zero value, and a nil *Options, mean
// the defaults.
type Options struct {
	// MaxDepth bounds expression and block nesting. 0 means DefaultMaxDepth, a negative
	// value disables the check.
	MaxDepth int
	// SkipExprStmts leaves expression statements unchecked.
	SkipExprStmts bool
	// Logger receives stage progress at debug level. Nil discards it.
	Logger *log.Logger
}

func (o *Options) normalize() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

type Stage string

const (
	LexerStage    Stage = "lexer"
	ParserStage   Stage = "parser"
	SemanticStage Stage = "semantic"
)

// StageReport is the outcome of one stage. A stage that never ran has no report.
type StageReport struct {
	Stage  Stage
	Passed bool
	Err    error
}

// Result holds whatever the stages produced before the first failure.
type Result struct {
	Tokens  []*Token
	Program *Program
	Stages  []StageReport
}

// Failed returns the report of the failed stage, if any.
func (result *Result) Failed() (StageReport, bool) {
	for _, report := range result.Stages {
		if !report.Passed {
			return report, true
		}
	}
	return StageReport{}, false
}

// Passed reports whether every stage ran and passed.
func (result *Result) Passed() bool {
	_, failed := result.Failed()
	return !failed && len(result.Stages) == 3
}

// Compile runs the tokenizer, the parser and the analyzer over src, stopping at the first
// stage that fails. The returned error is that stage's error; the Result is never nil.
func Compile(src string, opts *Options) (*Result, error) {
	o := opts.normalize()
	logger := o.Logger
	result := &Result{}

	logger.Debug("compiler: start tokenizer")
	tokens, err := Tokenize(src)
	result.record(LexerStage, err)
	if err != nil {
		logger.Debug("compiler: tokenizer failed", "err", err)
		return result, err
	}
	result.Tokens = tokens
	logger.Debug("compiler: tokenizer done", "tokens", len(tokens))

	logger.Debug("compiler: start parser")
	program, err := NewParser(tokens, &o).Parse()
	result.record(ParserStage, err)
	if err != nil {
		logger.Debug("compiler: parser failed", "err", err)
		return result, err
	}
	result.Program = program
	logger.Debug("compiler: parser done", "decls", len(program.Decls))

	logger.Debug("compiler: start semantic analysis")
	err = NewAnalyzer(&o).Analyze(program)
	result.record(SemanticStage, err)
	if err != nil {
		logger.Debug("compiler: semantic analysis failed", "err", err)
		return result, err
	}
	logger.Debug("compiler: semantic analysis done")
	return result, nil
}

func (result *Result) record(stage Stage, err error) {
	result.Stages = append(result.Stages, StageReport{Stage: stage, Passed: err == nil, Err: err})
}
