package compiler

import (
	"bytes"
	"io"
	"strings"

	"github.com/xiaobogaga/minic/util"
)

// A simple Tokenizer. It scans the whole source once and always terminates the token
// sequence with exactly one EOF token.

type Tokenizer struct {
	src         []byte
	currentPos  int
	currentLine int
	tokens      []*Token
}

// Tokenize scans src with a fresh Tokenizer.
func Tokenize(src string) ([]*Token, error) {
	tokenizer := &Tokenizer{}
	return tokenizer.Tokenize(strings.NewReader(src))
}

func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, error) {
	src, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	tokenizer.Reset()
	tokenizer.src = src
	for {
		token, err := tokenizer.getNextToken()
		if err != nil {
			return nil, err
		}
		if token == nil {
			break
		}
		tokenizer.tokens = append(tokenizer.tokens, token)
	}
	tokenizer.tokens = append(tokenizer.tokens, &Token{TP: EOFTP, Line: tokenizer.currentLine})
	return tokenizer.tokens, nil
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.src, tokenizer.tokens = nil, nil
	tokenizer.currentPos, tokenizer.currentLine = 0, 1
}

// getNextToken returns the next token, or nil once the source is exhausted.
func (tokenizer *Tokenizer) getNextToken() (*Token, error) {
	err := tokenizer.skipSpaceAndComments()
	if err != nil {
		return nil, err
	}
	if !tokenizer.hasRemainCharacters() {
		return nil, nil
	}
	b := tokenizer.src[tokenizer.currentPos]
	switch b {
	case '{', '}', '(', ')', ',', ';', '+', '-', '*', '/':
		return tokenizer.tokenSimpleSymbol(), nil
	case '=', '!', '<', '>', '&', '|':
		return tokenizer.tokenOperator(), nil
	}
	switch {
	case util.IsNumber(b):
		return tokenizer.tokenNumber(), nil
	case util.IsLetterOrUnderscore(b):
		return tokenizer.tokenKeywordOrIdentifier(), nil
	default:
		return tokenizer.makeToken(IllegalTP, 1), nil
	}
}

func (tokenizer *Tokenizer) hasRemainCharacters() bool {
	return tokenizer.currentPos < len(tokenizer.src)
}

func (tokenizer *Tokenizer) lookingAt(prefix string) bool {
	return bytes.HasPrefix(tokenizer.src[tokenizer.currentPos:], []byte(prefix))
}

// skipSpaceAndComments steps over blanks and comments, counting lines on the way.
func (tokenizer *Tokenizer) skipSpaceAndComments() error {
	for tokenizer.hasRemainCharacters() {
		b := tokenizer.src[tokenizer.currentPos]
		switch {
		case util.IsNewLine(b):
			tokenizer.currentLine++
			tokenizer.currentPos++
		case util.IsSpace(b):
			tokenizer.currentPos++
		case tokenizer.lookingAt("//"):
			tokenizer.skipSingleLineComment()
		case tokenizer.lookingAt("/*"):
			err := tokenizer.skipMultipleLineComment()
			if err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// The trailing newline is left for skipSpaceAndComments so the line count stays right.
func (tokenizer *Tokenizer) skipSingleLineComment() {
	for tokenizer.hasRemainCharacters() && !util.IsNewLine(tokenizer.src[tokenizer.currentPos]) {
		tokenizer.currentPos++
	}
}

// Block comments don't nest, the first */ closes the comment.
func (tokenizer *Tokenizer) skipMultipleLineComment() error {
	startLine := tokenizer.currentLine
	tokenizer.currentPos += 2
	for tokenizer.hasRemainCharacters() {
		if tokenizer.lookingAt("*/") {
			tokenizer.currentPos += 2
			return nil
		}
		if util.IsNewLine(tokenizer.src[tokenizer.currentPos]) {
			tokenizer.currentLine++
		}
		tokenizer.currentPos++
	}
	return tokenizer.makeError("/*", startLine, "unterminated comment")
}

func (tokenizer *Tokenizer) tokenSimpleSymbol() *Token {
	return tokenizer.makeToken(simpleSymbolTokenTPMap[tokenizer.src[tokenizer.currentPos]], 1)
}

// tokenOperator prefers the two byte form, so "<=" is never scanned as "<" "=".
func (tokenizer *Tokenizer) tokenOperator() *Token {
	if tokenizer.currentPos+1 < len(tokenizer.src) {
		tp, ok := operatorTokenTPMap[string(tokenizer.src[tokenizer.currentPos:tokenizer.currentPos+2])]
		if ok {
			return tokenizer.makeToken(tp, 2)
		}
	}
	tp, ok := operatorTokenTPMap[string(tokenizer.src[tokenizer.currentPos])]
	if !ok {
		return tokenizer.makeToken(IllegalTP, 1)
	}
	return tokenizer.makeToken(tp, 1)
}

// tokenNumber scans a continuous run of digits. "12ab" becomes NUMBER(12) IDENT(ab).
func (tokenizer *Tokenizer) tokenNumber() *Token {
	length := 0
	for tokenizer.currentPos+length < len(tokenizer.src) && util.IsNumber(tokenizer.src[tokenizer.currentPos+length]) {
		length++
	}
	return tokenizer.makeToken(NumberTP, length)
}

func (tokenizer *Tokenizer) tokenKeywordOrIdentifier() *Token {
	length := 0
	for tokenizer.currentPos+length < len(tokenizer.src) &&
		util.IsLetterOrUnderscoreOrNumber(tokenizer.src[tokenizer.currentPos+length]) {
		length++
	}
	token := tokenizer.makeToken(IdentifierTP, length)
	if keyWordTP, isKeyWord := keyWordTokenTPMap[token.Content]; isKeyWord {
		token.TP = keyWordTP
	}
	return token
}

// makeToken consumes length bytes at the current position as a token of type tp.
func (tokenizer *Tokenizer) makeToken(tp TokenType, length int) *Token {
	token := &Token{
		TP:      tp,
		Content: string(tokenizer.src[tokenizer.currentPos : tokenizer.currentPos+length]),
		Line:    tokenizer.currentLine,
	}
	tokenizer.currentPos += length
	return token
}

func (tokenizer *Tokenizer) makeError(near string, line int, msg string) error {
	return &LexError{Line: line, Near: near, Msg: msg}
}
