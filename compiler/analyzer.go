package compiler

// Analyzer walks a Program and checks scope, arity, typing and return rules. It stops at
// the first violation.
type Analyzer struct {
	symbols       *SymbolTable
	skipExprStmts bool
	current       funcContext
}

// funcContext describes the function whose body is being analyzed.
type funcContext struct {
	inFunc     bool
	name       string
	returnType Type
	hasReturn  bool
}

func NewAnalyzer(opts *Options) *Analyzer {
	o := opts.normalize()
	return &Analyzer{
		symbols:       NewSymbolTable(),
		skipExprStmts: o.SkipExprStmts,
	}
}

// Analyze checks program with the default options.
func Analyze(program *Program) error {
	return NewAnalyzer(nil).Analyze(program)
}

// Symbols exposes the table filled by the last Analyze call.
func (analyzer *Analyzer) Symbols() *SymbolTable {
	return analyzer.symbols
}

// Analyze starts from an empty symbol table, so an Analyzer can be reused.
func (analyzer *Analyzer) Analyze(program *Program) error {
	analyzer.symbols = NewSymbolTable()
	analyzer.current = funcContext{}
	analyzer.symbols.EnterScope()
	defer analyzer.symbols.ExitScope()
	return analyzer.analyzeStmts(program.Decls)
}

func (analyzer *Analyzer) analyzeStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		err := analyzer.analyzeStmt(stmt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (analyzer *Analyzer) analyzeStmt(stmt Stmt) error {
	switch stmt := stmt.(type) {
	case *VarDecl:
		return analyzer.analyzeVarDecl(stmt)
	case *FuncDecl:
		return analyzer.analyzeFuncDecl(stmt)
	case *BlockStmt:
		return analyzer.analyzeBlock(stmt)
	case *ReturnStmt:
		return analyzer.analyzeReturn(stmt)
	case *ExprStmt:
		if analyzer.skipExprStmts {
			return nil
		}
		_, err := analyzer.typeOf(stmt.Expr)
		return err
	}
	return makeSemanticError(UnknownStatement, stmt, "", "unknown statement type %T", stmt)
}

func (analyzer *Analyzer) analyzeVarDecl(decl *VarDecl) error {
	if !analyzer.symbols.Declare(decl.Name, decl.Type) {
		return makeSemanticError(Redeclaration, decl, decl.Name, "variable redeclared: %s", decl.Name)
	}
	return nil
}

// The signature is registered before the body is analyzed, so a function can call itself.
func (analyzer *Analyzer) analyzeFuncDecl(decl *FuncDecl) error {
	signature := Signature{ReturnType: decl.ReturnType}
	for _, param := range decl.Params {
		signature.ParamTypes = append(signature.ParamTypes, param.Type)
	}
	if !analyzer.symbols.DeclareFunction(decl.Name, signature) {
		return makeSemanticError(Redeclaration, decl, decl.Name, "function redeclared: %s", decl.Name)
	}

	saved := analyzer.current
	analyzer.current = funcContext{inFunc: true, name: decl.Name, returnType: decl.ReturnType}
	defer func() { analyzer.current = saved }()

	err := analyzer.analyzeFuncBody(decl)
	if err != nil {
		return err
	}
	// Any return anywhere in the body counts, reachability is not considered.
	if decl.ReturnType != VoidType && !analyzer.current.hasReturn {
		return makeSemanticError(MissingReturn, decl, decl.Name, "function '%s' must return a value", decl.Name)
	}
	return nil
}

// Parameters live in their own scope, the body block opens another one inside it.
func (analyzer *Analyzer) analyzeFuncBody(decl *FuncDecl) error {
	analyzer.symbols.EnterScope()
	defer analyzer.symbols.ExitScope()
	for _, param := range decl.Params {
		if !analyzer.symbols.Declare(param.Name, param.Type) {
			return makeSemanticError(Redeclaration, param, param.Name,
				"parameter redeclared: %s in function '%s'", param.Name, decl.Name)
		}
	}
	return analyzer.analyzeBlock(decl.Body)
}

func (analyzer *Analyzer) analyzeBlock(block *BlockStmt) error {
	if block == nil {
		return nil
	}
	analyzer.symbols.EnterScope()
	defer analyzer.symbols.ExitScope()
	return analyzer.analyzeStmts(block.Stmts)
}

func (analyzer *Analyzer) analyzeReturn(stmt *ReturnStmt) error {
	current := &analyzer.current
	if !current.inFunc {
		return makeSemanticError(ReturnOutsideFunction, stmt, "", "return statement outside function")
	}
	current.hasReturn = true
	if current.returnType == VoidType {
		if stmt.Value != nil {
			return makeSemanticError(VoidReturnWithValue, stmt, current.name,
				"void function '%s' should not return a value", current.name)
		}
		return nil
	}
	if stmt.Value == nil {
		return makeSemanticError(MissingReturnValue, stmt, current.name,
			"non-void function '%s' must return a value", current.name)
	}
	tp, err := analyzer.typeOf(stmt.Value)
	if err != nil {
		return err
	}
	if tp != current.returnType {
		return makeSemanticError(ReturnTypeMismatch, stmt, current.name,
			"return type mismatch in function '%s': expected %s, got %s", current.name, current.returnType, tp)
	}
	return nil
}

// typeOf checks expr and returns its type. Types are compared by equality, nothing is
// ever converted.
func (analyzer *Analyzer) typeOf(expr Expr) (Type, error) {
	switch expr := expr.(type) {
	case *NumberExpr:
		return IntType, nil
	case *BoolExpr:
		return BoolType, nil
	case *VarExpr:
		if !analyzer.symbols.IsDeclared(expr.Name) {
			return InvalidType, makeSemanticError(UndefinedVariable, expr, expr.Name, "undefined variable: %s", expr.Name)
		}
		return analyzer.symbols.TypeOf(expr.Name), nil
	case *AssignExpr:
		return analyzer.typeOfAssign(expr)
	case *BinaryExpr:
		return analyzer.typeOfBinary(expr)
	case *UnaryExpr:
		return analyzer.typeOfUnary(expr)
	case *CallExpr:
		return analyzer.typeOfCall(expr)
	}
	return InvalidType, makeSemanticError(UnknownExpression, expr, "", "unknown expression type %T", expr)
}

func (analyzer *Analyzer) typeOfAssign(expr *AssignExpr) (Type, error) {
	if !analyzer.symbols.IsDeclared(expr.Name) {
		return InvalidType, makeSemanticError(UndefinedVariable, expr, expr.Name, "undefined variable: %s", expr.Name)
	}
	target := analyzer.symbols.TypeOf(expr.Name)
	value, err := analyzer.typeOf(expr.Value)
	if err != nil {
		return InvalidType, err
	}
	if value != target {
		return InvalidType, makeSemanticError(AssignmentTypeMismatch, expr, expr.Name,
			"cannot assign %s to variable %s of type %s", value, expr.Name, target)
	}
	return target, nil
}

func (analyzer *Analyzer) typeOfBinary(expr *BinaryExpr) (Type, error) {
	left, err := analyzer.typeOf(expr.Left)
	if err != nil {
		return InvalidType, err
	}
	right, err := analyzer.typeOf(expr.Right)
	if err != nil {
		return InvalidType, err
	}
	if left != IntType || right != IntType {
		return InvalidType, makeSemanticError(BinaryOperandType, expr, "",
			"binary operator '%s' requires int operands, got %s and %s", expr.Op, left, right)
	}
	return IntType, nil
}

func (analyzer *Analyzer) typeOfUnary(expr *UnaryExpr) (Type, error) {
	operand, err := analyzer.typeOf(expr.Operand)
	if err != nil {
		return InvalidType, err
	}
	if operand != IntType {
		return InvalidType, makeSemanticError(UnaryOperandType, expr, "",
			"unary operator '%s' requires an int operand, got %s", expr.Op, operand)
	}
	return IntType, nil
}

// Arity is checked before any argument is typed, then arguments are checked left to right.
func (analyzer *Analyzer) typeOfCall(call *CallExpr) (Type, error) {
	if !analyzer.symbols.HasFunction(call.Callee) {
		return InvalidType, makeSemanticError(UndefinedFunction, call, call.Callee, "undefined function: %s", call.Callee)
	}
	fn := analyzer.symbols.Function(call.Callee)
	if len(call.Args) != len(fn.ParamTypes) {
		return InvalidType, makeSemanticError(ArityMismatch, call, call.Callee,
			"function '%s' called with wrong number of arguments: expected %d, got %d",
			call.Callee, len(fn.ParamTypes), len(call.Args))
	}
	for i, arg := range call.Args {
		argType, err := analyzer.typeOf(arg)
		if err != nil {
			return InvalidType, err
		}
		if argType != fn.ParamTypes[i] {
			return InvalidType, makeSemanticError(ArgumentTypeMismatch, arg, call.Callee,
				"argument type mismatch in call to '%s': argument %d expected %s, got %s",
				call.Callee, i+1, fn.ParamTypes[i], argType)
		}
	}
	return fn.ReturnType, nil
}
