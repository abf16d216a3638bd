package compiler

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// DumpNode is a serialisable view of one AST node. Fields a kind doesn't use stay empty
// and are omitted from the output.
type DumpNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string      `json:"type,omitempty" yaml:"type,omitempty"`
	Op       string      `json:"op,omitempty" yaml:"op,omitempty"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Params   []DumpParam `json:"params,omitempty" yaml:"params,omitempty"`
	Children []DumpNode  `json:"children,omitempty" yaml:"children,omitempty"`
}

type DumpParam struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Dump converts every top level declaration of program.
func Dump(program *Program) []DumpNode {
	nodes := make([]DumpNode, 0, len(program.Decls))
	for _, decl := range program.Decls {
		nodes = append(nodes, dumpStmt(decl))
	}
	return nodes
}

// DumpJSON writes the dump of program to w as indented JSON.
func DumpJSON(w io.Writer, program *Program) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(Dump(program))
}

// DumpYAML writes the dump of program to w as YAML.
func DumpYAML(w io.Writer, program *Program) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(Dump(program))
	if err != nil {
		return err
	}
	return enc.Close()
}

func dumpStmt(stmt Stmt) DumpNode {
	switch n := stmt.(type) {
	case *VarDecl:
		return DumpNode{Kind: "VarDecl", Line: n.Line, Name: n.Name, Type: n.Type.String()}
	case *FuncDecl:
		node := DumpNode{Kind: "FuncDecl", Line: n.Line, Name: n.Name, Type: n.ReturnType.String()}
		for _, param := range n.Params {
			node.Params = append(node.Params, DumpParam{Type: param.Type.String(), Name: param.Name})
		}
		if n.Body != nil {
			node.Children = []DumpNode{dumpStmt(n.Body)}
		}
		return node
	case *BlockStmt:
		node := DumpNode{Kind: "Block", Line: n.Line}
		for _, child := range n.Stmts {
			node.Children = append(node.Children, dumpStmt(child))
		}
		return node
	case *ReturnStmt:
		node := DumpNode{Kind: "Return", Line: n.Line}
		if n.Value != nil {
			node.Children = []DumpNode{dumpExpr(n.Value)}
		}
		return node
	case *ExprStmt:
		return DumpNode{Kind: "ExprStmt", Line: n.Line, Children: []DumpNode{dumpExpr(n.Expr)}}
	}
	return DumpNode{Kind: "Unknown"}
}

func dumpExpr(expr Expr) DumpNode {
	switch n := expr.(type) {
	case *NumberExpr:
		return DumpNode{Kind: "Number", Line: n.Line, Value: n.Value}
	case *BoolExpr:
		value := "false"
		if n.Value {
			value = "true"
		}
		return DumpNode{Kind: "Bool", Line: n.Line, Value: value}
	case *VarExpr:
		return DumpNode{Kind: "Var", Line: n.Line, Name: n.Name}
	case *AssignExpr:
		return DumpNode{Kind: "Assign", Line: n.Line, Name: n.Name, Children: []DumpNode{dumpExpr(n.Value)}}
	case *BinaryExpr:
		return DumpNode{Kind: "Binary", Line: n.Line, Op: n.Op, Children: []DumpNode{dumpExpr(n.Left), dumpExpr(n.Right)}}
	case *UnaryExpr:
		return DumpNode{Kind: "Unary", Line: n.Line, Op: n.Op, Children: []DumpNode{dumpExpr(n.Operand)}}
	case *CallExpr:
		node := DumpNode{Kind: "Call", Line: n.Line, Name: n.Callee}
		for _, arg := range n.Args {
			node.Children = append(node.Children, dumpExpr(arg))
		}
		return node
	}
	return DumpNode{Kind: "Unknown"}
}
