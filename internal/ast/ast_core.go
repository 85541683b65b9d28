// Package ast defines the abstract syntax tree for Lox programs. Nodes are
// immutable once the parser builds them; every node carries the byte span
// of the source it was parsed from. Traversals either type-switch over the
// node (resolver, interpreter) or implement Visitor (pretty printers).
package ast

import "github.com/froth/golox/internal/token"

// Node is the base interface for all AST nodes.
type Node interface {
	Span() token.Span
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Name is an identifier, interned by its string value.
type Name = string

// Reserved names.
const (
	ThisName  Name = "this"
	SuperName Name = "super"
	InitName  Name = "init"
)

// NameExpr is one occurrence of a name in the source, as opposed to the
// abstract Name. Its span is unique per occurrence and keys the resolver's
// depth map.
type NameExpr struct {
	Name Name
	Loc  token.Span
}

func (n NameExpr) Span() token.Span { return n.Loc }

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) Span() token.Span {
	if len(p.Statements) == 0 {
		return token.Span{}
	}
	first := p.Statements[0].Span()
	return first.Until(p.Statements[len(p.Statements)-1].Span())
}

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	Expression Expression
	Loc        token.Span
}

func (es *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()   {}
func (es *ExpressionStatement) Span() token.Span { return es.Loc }

// PrintStatement writes a value's display form to the interpreter's printer.
type PrintStatement struct {
	Expression Expression
	Loc        token.Span
}

func (ps *PrintStatement) Accept(v Visitor) { v.VisitPrintStatement(ps) }
func (ps *PrintStatement) statementNode()   {}
func (ps *PrintStatement) Span() token.Span { return ps.Loc }

// VarStatement declares a variable, optionally with an initializer.
type VarStatement struct {
	Name        NameExpr
	Initializer Expression // nil when absent
	Loc         token.Span
}

func (vs *VarStatement) Accept(v Visitor) { v.VisitVarStatement(vs) }
func (vs *VarStatement) statementNode()   {}
func (vs *VarStatement) Span() token.Span { return vs.Loc }

// BlockStatement is a brace-delimited scope.
type BlockStatement struct {
	Statements []Statement
	Loc        token.Span
}

func (bs *BlockStatement) Accept(v Visitor) { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()   {}
func (bs *BlockStatement) Span() token.Span { return bs.Loc }

// IfStatement branches on the truthiness of its condition.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
	Loc       token.Span
}

func (is *IfStatement) Accept(v Visitor) { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()   {}
func (is *IfStatement) Span() token.Span { return is.Loc }

// WhileStatement loops while its condition is truthy. `for` loops desugar
// to this in the parser.
type WhileStatement struct {
	Condition Expression
	Body      Statement
	Loc       token.Span
}

func (ws *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()   {}
func (ws *WhileStatement) Span() token.Span { return ws.Loc }

// FunctionStatement is a named function declaration. Class methods reuse it.
type FunctionStatement struct {
	Name       NameExpr
	Parameters []NameExpr
	Body       []Statement
	Loc        token.Span
}

func (fs *FunctionStatement) Accept(v Visitor) { v.VisitFunctionStatement(fs) }
func (fs *FunctionStatement) statementNode()   {}
func (fs *FunctionStatement) Span() token.Span { return fs.Loc }

// ReturnStatement exits the enclosing function, optionally with a value.
type ReturnStatement struct {
	Value Expression // nil for a bare `return;`
	Loc   token.Span
}

func (rs *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()   {}
func (rs *ReturnStatement) Span() token.Span { return rs.Loc }

// ClassStatement declares a class with an optional superclass.
type ClassStatement struct {
	Name       NameExpr
	Superclass *NameExpr // nil when the class has no superclass
	Methods    []*FunctionStatement
	Loc        token.Span
}

func (cs *ClassStatement) Accept(v Visitor) { v.VisitClassStatement(cs) }
func (cs *ClassStatement) statementNode()   {}
func (cs *ClassStatement) Span() token.Span { return cs.Loc }
