package compiler

import "fmt"

// In this file, we defined all ast of the language according to its grammar. A source file
// is a flat list of declarations, there is no package or import clause.
//
// Expr and Stmt are closed: only the node types below implement them, so a type switch over
// either interface lists every kind the parser can produce.

type Type int

const (
	// InvalidType is the zero value, it never names a declaration.
	InvalidType Type = iota
	IntType
	BoolType
	VoidType
)

var typeNames = [...]string{
	InvalidType: "invalid",
	IntType:     "int",
	BoolType:    "bool",
	VoidType:    "void",
}

func (tp Type) String() string {
	if tp >= InvalidType && tp <= VoidType {
		return typeNames[tp]
	}
	return fmt.Sprintf("Type(%d)", int(tp))
}

// typeOfKeyword maps the int, bool and void keywords to their Type.
func typeOfKeyword(tp TokenType) (Type, bool) {
	switch tp {
	case IntTP:
		return IntType, true
	case BoolTP:
		return BoolType, true
	case VoidTP:
		return VoidType, true
	}
	return InvalidType, false
}

// Pos is the source position of the first token of a node.
type Pos struct {
	Line int
}

func (pos Pos) Position() Pos {
	return pos
}

type Node interface {
	Position() Pos
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// lineOf returns the line of node, or 0 for a nil node.
func lineOf(node Node) int {
	if node == nil {
		return 0
	}
	return node.Position().Line
}

type Program struct {
	Decls []Stmt
}

// NumberExpr keeps the literal text, it is never converted to a machine integer.
type NumberExpr struct {
	Pos
	Value string
}

type BoolExpr struct {
	Pos
	Value bool
}

type VarExpr struct {
	Pos
	Name string
}

// AssignExpr is name = value. The parser only builds it for a plain variable target.
type AssignExpr struct {
	Pos
	Name  string
	Value Expr
}

type BinaryExpr struct {
	Pos
	Op    string
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Pos
	Op      string
	Operand Expr
}

type CallExpr struct {
	Pos
	Callee string
	Args   []Expr
}

func (*NumberExpr) exprNode() {}
func (*BoolExpr) exprNode()   {}
func (*VarExpr) exprNode()    {}
func (*AssignExpr) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}

type VarDecl struct {
	Pos
	Type Type
	Name string
}

// ExprStmt is an expression evaluated for its effect, like a = 1; or f();
type ExprStmt struct {
	Pos
	Expr Expr
}

// ReturnStmt with a nil Value is a bare return;
type ReturnStmt struct {
	Pos
	Value Expr
}

type BlockStmt struct {
	Pos
	Stmts []Stmt
}

type Param struct {
	Pos
	Type Type
	Name string
}

type FuncDecl struct {
	Pos
	ReturnType Type
	Name       string
	Params     []*Param
	Body       *BlockStmt
}

func (*VarDecl) stmtNode()    {}
func (*ExprStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*BlockStmt) stmtNode()  {}
func (*FuncDecl) stmtNode()   {}
