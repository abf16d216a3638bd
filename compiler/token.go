package compiler

import "fmt"

// The language has those lexical elements:
// * KeyWord: int, bool, void, return, if, while, true, false.
// * Symbol: {, }, (, ), ,, ;, +, -, *, /, =, ==, !=, <, >, <=, >=, &&, ||, !.
// * Constant: integer.
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: /* */, //.
// if and while are reserved, the comparison and logical operators are scanned, but the
// parser accepts none of them.

type TokenType int

const (
	IntTP               TokenType = iota // int
	BoolTP                               // bool
	VoidTP                               // void
	ReturnTP                             // return
	IfTP                                 // if
	WhileTP                              // while
	TrueTP                               // true
	FalseTP                              // false
	IdentifierTP                         // varA
	NumberTP                             // 1010
	AddTP                                // +
	MinusTP                              // -
	MultiplyTP                           // *
	DivideTP                             // /
	AssignTP                             // =
	EqualTP                              // ==
	NotEqualTP                           // !=
	LessTP                               // <
	GreaterTP                            // >
	LessEqualTP                          // <=
	GreaterEqualTP                       // >=
	AndTP                                // &&
	OrTP                                 // ||
	NotTP                                // !
	SemiColonTP                          // ;
	CommaTP                              // ,
	LeftParentThesesTP                   // (
	RightParentThesesTP                  // )
	LeftBraceTP                          // {
	RightBraceTP                         // }
	IllegalTP                            // any byte the tokenizer cannot classify
	EOFTP                                // end of input sentinel

	tokenTypeCount
)

var tokenTypeNames = [...]string{
	IntTP:               "int",
	BoolTP:              "bool",
	VoidTP:              "void",
	ReturnTP:            "return",
	IfTP:                "if",
	WhileTP:             "while",
	TrueTP:              "true",
	FalseTP:             "false",
	IdentifierTP:        "IDENT",
	NumberTP:            "NUMBER",
	AddTP:               "+",
	MinusTP:             "-",
	MultiplyTP:          "*",
	DivideTP:            "/",
	AssignTP:            "=",
	EqualTP:             "==",
	NotEqualTP:          "!=",
	LessTP:              "<",
	GreaterTP:           ">",
	LessEqualTP:         "<=",
	GreaterEqualTP:      ">=",
	AndTP:               "&&",
	OrTP:                "||",
	NotTP:               "!",
	SemiColonTP:         ";",
	CommaTP:             ",",
	LeftParentThesesTP:  "(",
	RightParentThesesTP: ")",
	LeftBraceTP:         "{",
	RightBraceTP:        "}",
	IllegalTP:           "ILLEGAL",
	EOFTP:               "EOF",
}

func (tp TokenType) String() string {
	if tp >= 0 && tp < tokenTypeCount {
		return tokenTypeNames[tp]
	}
	return fmt.Sprintf("TokenType(%d)", int(tp))
}

// keyWordTokenTPMap is the mapping from keyWord to the corresponding TokenTP.
var keyWordTokenTPMap = map[string]TokenType{
	"int":    IntTP,
	"bool":   BoolTP,
	"void":   VoidTP,
	"return": ReturnTP,
	"if":     IfTP,
	"while":  WhileTP,
	"true":   TrueTP,
	"false":  FalseTP,
}

// simpleSymbolTokenTPMap holds the single byte symbols which never start a longer token.
var simpleSymbolTokenTPMap = map[byte]TokenType{
	'{': LeftBraceTP,
	'}': RightBraceTP,
	'(': LeftParentThesesTP,
	')': RightParentThesesTP,
	',': CommaTP,
	';': SemiColonTP,
	'+': AddTP,
	'-': MinusTP,
	'*': MultiplyTP,
	'/': DivideTP,
}

// operatorTokenTPMap holds the operators which may be one or two bytes long.
// A lone & or | is not an operator.
var operatorTokenTPMap = map[string]TokenType{
	"=":  AssignTP,
	"==": EqualTP,
	"!":  NotTP,
	"!=": NotEqualTP,
	"<":  LessTP,
	"<=": LessEqualTP,
	">":  GreaterTP,
	">=": GreaterEqualTP,
	"&&": AndTP,
	"||": OrTP,
}

// Token is a single lexical unit. Line is 1-based.
type Token struct {
	TP      TokenType
	Content string
	Line    int
}

func (token *Token) String() string {
	switch token.TP {
	case IdentifierTP, NumberTP, IllegalTP:
		return fmt.Sprintf("%s(%s)", token.TP, token.Content)
	}
	return token.TP.String()
}
