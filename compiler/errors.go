package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrLex is wrapped by every tokenizer error.
	ErrLex = errors.New("lex error")
	// ErrSyntax is wrapped by every parser error.
	ErrSyntax = errors.New("syntax error")
	// ErrSemantic is wrapped by every analyzer error.
	ErrSemantic = errors.New("semantic error")
)

type LexError struct {
	Line int
	Near string
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("tokenizer error near %s at line %d: %s", e.Near, e.Line, e.Msg)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

// SyntaxError is the first malformed construct the parser met. Near is the text of the
// offending token, empty at end of input.
type SyntaxError struct {
	Line int
	Near string
	Msg  string
}

func (e *SyntaxError) Error() string {
	near := e.Near
	if near == "" {
		near = "end of input"
	}
	return fmt.Sprintf("syntax error near %s at line %d: %s", near, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ErrorKind classifies a SemanticError.
type ErrorKind int

const (
	Redeclaration ErrorKind = iota
	UndefinedVariable
	UndefinedFunction
	ArityMismatch
	ArgumentTypeMismatch
	BinaryOperandType
	UnaryOperandType
	AssignmentTypeMismatch
	ReturnTypeMismatch
	MissingReturn
	VoidReturnWithValue
	MissingReturnValue
	ReturnOutsideFunction
	UnknownExpression
	UnknownStatement

	errorKindCount
)

var errorKindNames = [...]string{
	Redeclaration:          "redeclaration",
	UndefinedVariable:      "undefined variable",
	UndefinedFunction:      "undefined function",
	ArityMismatch:          "arity mismatch",
	ArgumentTypeMismatch:   "argument type mismatch",
	BinaryOperandType:      "binary operand type",
	UnaryOperandType:       "unary operand type",
	AssignmentTypeMismatch: "assignment type mismatch",
	ReturnTypeMismatch:     "return type mismatch",
	MissingReturn:          "missing return",
	VoidReturnWithValue:    "void return with value",
	MissingReturnValue:     "missing return value",
	ReturnOutsideFunction:  "return outside function",
	UnknownExpression:      "unknown expression",
	UnknownStatement:       "unknown statement",
}

func (kind ErrorKind) String() string {
	if kind >= 0 && kind < errorKindCount {
		return errorKindNames[kind]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// SemanticError is the first violation the analyzer found. Name is the variable or
// function the error is about, if any. Line is 0 when the node has no position.
type SemanticError struct {
	Kind ErrorKind
	Name string
	Line int
	Msg  string
}

func (e *SemanticError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("semantic error: %s", e.Msg)
	}
	return fmt.Sprintf("semantic error at line %d: %s", e.Line, e.Msg)
}

func (e *SemanticError) Unwrap() error {
	return ErrSemantic
}

// IsKind reports whether err is a SemanticError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var semanticErr *SemanticError
	if !errors.As(err, &semanticErr) {
		return false
	}
	return semanticErr.Kind == kind
}

func makeSemanticError(kind ErrorKind, node Node, name string, format string, msg ...interface{}) error {
	return &SemanticError{
		Kind: kind,
		Name: name,
		Line: lineOf(node),
		Msg:  fmt.Sprintf(format, msg...),
	}
}
