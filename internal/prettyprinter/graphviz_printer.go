package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/froth/golox/internal/ast"
)

// --- Graphviz Printer (digraph for `dot`) ---

// GraphvizPrinter renders the AST as a Graphviz digraph. Each node gets a
// sequential id; edges run parent -> child.
type GraphvizPrinter struct {
	buf    bytes.Buffer
	nextID int
	// lastID holds the id of the most recently emitted node so parents can
	// connect to the children they just visited.
	lastID int
}

func NewGraphvizPrinter() *GraphvizPrinter {
	return &GraphvizPrinter{}
}

// String returns the complete digraph.
func (p *GraphvizPrinter) String() string {
	return "digraph ast {\n" + p.buf.String() + "}\n"
}

func (p *GraphvizPrinter) node(label string) int {
	id := p.nextID
	p.nextID++
	fmt.Fprintf(&p.buf, "  n%d [label=%q];\n", id, label)
	p.lastID = id
	return id
}

func (p *GraphvizPrinter) edge(from, to int) {
	fmt.Fprintf(&p.buf, "  n%d -> n%d;\n", from, to)
}

// child visits a node and connects it under the parent id.
func (p *GraphvizPrinter) child(parent int, node ast.Node) {
	node.Accept(p)
	p.edge(parent, p.lastID)
}

// childLabel emits a plain labeled node (for names) under the parent.
func (p *GraphvizPrinter) childLabel(parent int, label string) {
	id := p.node(label)
	p.edge(parent, id)
}

func (p *GraphvizPrinter) VisitProgram(program *ast.Program) {
	id := p.node("program")
	for _, stmt := range program.Statements {
		p.child(id, stmt)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitExpressionStatement(es *ast.ExpressionStatement) {
	id := p.node("expr stmt")
	p.child(id, es.Expression)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitPrintStatement(ps *ast.PrintStatement) {
	id := p.node("print")
	p.child(id, ps.Expression)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitVarStatement(vs *ast.VarStatement) {
	id := p.node("var " + vs.Name.Name)
	if vs.Initializer != nil {
		p.child(id, vs.Initializer)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitBlockStatement(bs *ast.BlockStatement) {
	id := p.node("block")
	for _, stmt := range bs.Statements {
		p.child(id, stmt)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitIfStatement(is *ast.IfStatement) {
	id := p.node("if")
	p.child(id, is.Condition)
	p.child(id, is.Then)
	if is.Else != nil {
		p.child(id, is.Else)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitWhileStatement(ws *ast.WhileStatement) {
	id := p.node("while")
	p.child(id, ws.Condition)
	p.child(id, ws.Body)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitFunctionStatement(fs *ast.FunctionStatement) {
	id := p.node("fun " + fs.Name.Name)
	for _, param := range fs.Parameters {
		p.childLabel(id, "param "+param.Name)
	}
	for _, stmt := range fs.Body {
		p.child(id, stmt)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitReturnStatement(rs *ast.ReturnStatement) {
	id := p.node("return")
	if rs.Value != nil {
		p.child(id, rs.Value)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitClassStatement(cs *ast.ClassStatement) {
	label := "class " + cs.Name.Name
	if cs.Superclass != nil {
		label += " < " + cs.Superclass.Name
	}
	id := p.node(label)
	for _, method := range cs.Methods {
		p.child(id, method)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitNumberLiteral(nl *ast.NumberLiteral) {
	p.node(strconv.FormatFloat(nl.Value, 'f', -1, 64))
}

func (p *GraphvizPrinter) VisitStringLiteral(sl *ast.StringLiteral) {
	p.node("\"" + sl.Value + "\"")
}

func (p *GraphvizPrinter) VisitBooleanLiteral(bl *ast.BooleanLiteral) {
	p.node(strconv.FormatBool(bl.Value))
}

func (p *GraphvizPrinter) VisitNilLiteral(nl *ast.NilLiteral) {
	p.node("nil")
}

func (p *GraphvizPrinter) VisitVariableExpression(ve *ast.VariableExpression) {
	p.node(ve.Name.Name)
}

func (p *GraphvizPrinter) VisitGroupingExpression(ge *ast.GroupingExpression) {
	id := p.node("group")
	p.child(id, ge.Expression)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitPrefixExpression(pe *ast.PrefixExpression) {
	id := p.node(pe.Operator.Lexeme)
	p.child(id, pe.Right)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitInfixExpression(ie *ast.InfixExpression) {
	id := p.node(ie.Operator.Lexeme)
	p.child(id, ie.Left)
	p.child(id, ie.Right)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitLogicalExpression(le *ast.LogicalExpression) {
	id := p.node(le.Operator.Lexeme)
	p.child(id, le.Left)
	p.child(id, le.Right)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitAssignExpression(ae *ast.AssignExpression) {
	id := p.node(ae.Name.Name + " =")
	p.child(id, ae.Value)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitCallExpression(ce *ast.CallExpression) {
	id := p.node("call")
	p.child(id, ce.Callee)
	for _, arg := range ce.Arguments {
		p.child(id, arg)
	}
	p.lastID = id
}

func (p *GraphvizPrinter) VisitGetExpression(ge *ast.GetExpression) {
	id := p.node("." + ge.Name.Name)
	p.child(id, ge.Object)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitSetExpression(se *ast.SetExpression) {
	id := p.node("." + se.Name.Name + " =")
	p.child(id, se.Object)
	p.child(id, se.Value)
	p.lastID = id
}

func (p *GraphvizPrinter) VisitThisExpression(te *ast.ThisExpression) {
	p.node("this")
}

func (p *GraphvizPrinter) VisitSuperExpression(se *ast.SuperExpression) {
	p.node("super." + se.Method.Name)
}
