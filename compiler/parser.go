package compiler

// Parser is a recursive descent parser over a token slice. Each grammar rule has its own
// parse method, from the lowest binding level to the highest:
//
//	Program      := Declaration*
//	Declaration  := ("int"|"bool"|"void") IDENT ( FunctionTail | ";" ) | Statement
//	FunctionTail := "(" ParamList? ")" Block
//	ParamList    := "int" IDENT ("," "int" IDENT)*
//	Statement    := "return" Expr? ";" | Block | Expr ";"
//	Block        := "{" Declaration* "}"
//	Expr         := Assignment
//	Assignment   := Term ( "=" Assignment )?
//	Term         := Factor ( ("+"|"-") Factor )*
//	Factor       := Unary ( ("*"|"/") Unary )*
//	Unary        := "-" Unary | Primary
//	Primary      := "true" | "false" | NUMBER | IDENT ( "(" ArgList? ")" )? | "(" Expr ")"
//	ArgList      := Expr ("," Expr)*
//
// The parser stops at the first error, it never tries to recover.
type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
	maxDepth        int
	depth           int
}

// DefaultMaxDepth bounds how deep expressions and blocks may nest.
const DefaultMaxDepth = 256

// NewParser creates a parser over tokens. A missing trailing EOF token is supplied, so
// the parser never runs past the end of the slice.
func NewParser(tokens []*Token, opts *Options) *Parser {
	o := opts.normalize()
	if len(tokens) == 0 || tokens[len(tokens)-1].TP != EOFTP {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], &Token{TP: EOFTP, Line: line})
	}
	return &Parser{currentTokens: tokens, maxDepth: o.MaxDepth}
}

// Parse parses tokens with the default options.
func Parse(tokens []*Token) (*Program, error) {
	return NewParser(tokens, nil).Parse()
}

func (parser *Parser) Parse() (*Program, error) {
	program := &Program{}
	for !parser.isAtEnd() {
		decl, err := parser.parseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Decls = append(program.Decls, decl)
	}
	return program, nil
}

// int a;
// int add(int a, int b) { ... }
// or any other statement.
func (parser *Parser) parseDeclaration() (Stmt, error) {
	typeToken, match := parser.matchToken(IntTP, BoolTP, VoidTP)
	if !match {
		return parser.parseStatement()
	}
	nameToken, err := parser.expectToken(IdentifierTP, "expected identifier after type")
	if err != nil {
		return nil, err
	}
	tp, _ := typeOfKeyword(typeToken.TP)
	if parser.checkToken(LeftParentThesesTP) {
		return parser.parseFuncDeclaration(typeToken, tp, nameToken)
	}
	_, err = parser.expectToken(SemiColonTP, "expected ';' after variable declaration")
	if err != nil {
		return nil, err
	}
	return &VarDecl{Pos: Pos{Line: typeToken.Line}, Type: tp, Name: nameToken.Content}, nil
}

// Only int parameters are accepted.
func (parser *Parser) parseFuncDeclaration(typeToken *Token, returnType Type, nameToken *Token) (Stmt, error) {
	_, err := parser.expectToken(LeftParentThesesTP, "expected '(' after function name")
	if err != nil {
		return nil, err
	}
	params, err := parser.parseFuncParamList()
	if err != nil {
		return nil, err
	}
	if !parser.checkToken(LeftBraceTP) {
		return nil, parser.makeError(parser.getCurrentToken(), "expected '{' before function body")
	}
	body, err := parser.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Pos:        Pos{Line: typeToken.Line},
		ReturnType: returnType,
		Name:       nameToken.Content,
		Params:     params,
		Body:       body,
	}, nil
}

// The opening parenthesis is already consumed.
func (parser *Parser) parseFuncParamList() (params []*Param, err error) {
	if _, match := parser.matchToken(RightParentThesesTP); match {
		return nil, nil
	}
	for {
		paramTypeToken, err := parser.expectToken(IntTP, "only int parameters supported")
		if err != nil {
			return nil, err
		}
		paramNameToken, err := parser.expectToken(IdentifierTP, "expected parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, &Param{
			Pos:  Pos{Line: paramTypeToken.Line},
			Type: IntType,
			Name: paramNameToken.Content,
		})
		if _, match := parser.matchToken(CommaTP); !match {
			break
		}
	}
	_, err = parser.expectToken(RightParentThesesTP, "expected ')' after parameters")
	if err != nil {
		return nil, err
	}
	return params, nil
}

func (parser *Parser) parseStatement() (Stmt, error) {
	switch parser.getCurrentToken().TP {
	case ReturnTP:
		return parser.parseReturnStatement()
	case LeftBraceTP:
		return parser.parseBlock()
	}
	return parser.parseExpressionStatement()
}

// return;
// return expr;
func (parser *Parser) parseReturnStatement() (Stmt, error) {
	returnToken, err := parser.expectToken(ReturnTP, "expected 'return'")
	if err != nil {
		return nil, err
	}
	stmt := &ReturnStmt{Pos: Pos{Line: returnToken.Line}}
	if _, match := parser.matchToken(SemiColonTP); match {
		return stmt, nil
	}
	stmt.Value, err = parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, err = parser.expectToken(SemiColonTP, "expected ';' after return value")
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// {
//    declarations or statements
// }
func (parser *Parser) parseBlock() (*BlockStmt, error) {
	defer parser.leave()
	if err := parser.enter(); err != nil {
		return nil, err
	}
	leftBrace, err := parser.expectToken(LeftBraceTP, "expected '{'")
	if err != nil {
		return nil, err
	}
	block := &BlockStmt{Pos: Pos{Line: leftBrace.Line}}
	for !parser.checkToken(RightBraceTP) && !parser.isAtEnd() {
		stmt, err := parser.parseDeclaration()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	_, err = parser.expectToken(RightBraceTP, "expected '}' to close block")
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (parser *Parser) parseExpressionStatement() (Stmt, error) {
	line := parser.getCurrentToken().Line
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, err = parser.expectToken(SemiColonTP, "expected ';' after expression")
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: Pos{Line: line}, Expr: expr}, nil
}

func (parser *Parser) parseExpression() (Expr, error) {
	return parser.parseAssignment()
}

// Assignment is right associative: a = b = 1 is a = (b = 1).
func (parser *Parser) parseAssignment() (Expr, error) {
	defer parser.leave()
	if err := parser.enter(); err != nil {
		return nil, err
	}
	expr, err := parser.parseTerm()
	if err != nil {
		return nil, err
	}
	assignToken, match := parser.matchToken(AssignTP)
	if !match {
		return expr, nil
	}
	value, err := parser.parseAssignment()
	if err != nil {
		return nil, err
	}
	variable, ok := expr.(*VarExpr)
	if !ok {
		return nil, parser.makeError(assignToken, "invalid assignment target")
	}
	return &AssignExpr{Pos: variable.Pos, Name: variable.Name, Value: value}, nil
}

func (parser *Parser) parseTerm() (Expr, error) {
	expr, err := parser.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		opToken, match := parser.matchToken(AddTP, MinusTP)
		if !match {
			return expr, nil
		}
		right, err := parser.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Pos: expr.Position(), Op: opToken.Content, Left: expr, Right: right}
	}
}

func (parser *Parser) parseFactor() (Expr, error) {
	expr, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		opToken, match := parser.matchToken(MultiplyTP, DivideTP)
		if !match {
			return expr, nil
		}
		right, err := parser.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Pos: expr.Position(), Op: opToken.Content, Left: expr, Right: right}
	}
}

func (parser *Parser) parseUnary() (Expr, error) {
	minusToken, match := parser.matchToken(MinusTP)
	if !match {
		return parser.parsePrimary()
	}
	defer parser.leave()
	if err := parser.enter(); err != nil {
		return nil, err
	}
	operand, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Pos: Pos{Line: minusToken.Line}, Op: minusToken.Content, Operand: operand}, nil
}

func (parser *Parser) parsePrimary() (Expr, error) {
	token := parser.getCurrentToken()
	switch token.TP {
	case TrueTP, FalseTP:
		parser.stepForward()
		return &BoolExpr{Pos: Pos{Line: token.Line}, Value: token.TP == TrueTP}, nil
	case NumberTP:
		parser.stepForward()
		return &NumberExpr{Pos: Pos{Line: token.Line}, Value: token.Content}, nil
	case IdentifierTP:
		parser.stepForward()
		if _, match := parser.matchToken(LeftParentThesesTP); match {
			return parser.parseFuncCall(token)
		}
		return &VarExpr{Pos: Pos{Line: token.Line}, Name: token.Content}, nil
	case LeftParentThesesTP:
		parser.stepForward()
		expr, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		_, err = parser.expectToken(RightParentThesesTP, "expected ')' after expression")
		if err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, parser.makeError(token, "expected expression")
}

// The callee name and the opening parenthesis are already consumed.
func (parser *Parser) parseFuncCall(nameToken *Token) (Expr, error) {
	call := &CallExpr{Pos: Pos{Line: nameToken.Line}, Callee: nameToken.Content}
	if _, match := parser.matchToken(RightParentThesesTP); match {
		return call, nil
	}
	for {
		arg, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if _, match := parser.matchToken(CommaTP); !match {
			break
		}
	}
	_, err := parser.expectToken(RightParentThesesTP, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (parser *Parser) getCurrentToken() *Token {
	return parser.currentTokens[parser.currentTokenPos]
}

func (parser *Parser) isAtEnd() bool {
	return parser.getCurrentToken().TP == EOFTP
}

// stepForward never moves past the EOF token.
func (parser *Parser) stepForward() {
	if !parser.isAtEnd() {
		parser.currentTokenPos++
	}
}

func (parser *Parser) checkToken(expectedTokenTP TokenType) bool {
	return parser.getCurrentToken().TP == expectedTokenTP
}

// matchToken consumes the current token if it has one of the given types.
func (parser *Parser) matchToken(expectedTokenTPs ...TokenType) (*Token, bool) {
	token := parser.getCurrentToken()
	for _, tp := range expectedTokenTPs {
		if token.TP == tp {
			parser.stepForward()
			return token, true
		}
	}
	return nil, false
}

// expectToken consumes the current token, or fails with msg if it is not of the expected type.
func (parser *Parser) expectToken(expectedTokenTP TokenType, msg string) (*Token, error) {
	token, match := parser.matchToken(expectedTokenTP)
	if !match {
		return nil, parser.makeError(parser.getCurrentToken(), msg)
	}
	return token, nil
}

func (parser *Parser) enter() error {
	parser.depth++
	if parser.maxDepth > 0 && parser.depth > parser.maxDepth {
		return parser.makeError(parser.getCurrentToken(), "nesting too deep")
	}
	return nil
}

func (parser *Parser) leave() {
	parser.depth--
}

func (parser *Parser) makeError(token *Token, msg string) error {
	return &SyntaxError{Line: token.Line, Near: token.Content, Msg: msg}
}
