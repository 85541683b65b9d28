package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/froth/golox/internal/ast"
)

// --- Tree Printer (structural dump, one node per line) ---

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) nested(node ast.Node) {
	p.indent++
	node.Accept(p)
	p.indent--
}

func (p *TreePrinter) VisitProgram(program *ast.Program) {
	p.line("Program")
	for _, stmt := range program.Statements {
		p.nested(stmt)
	}
}

func (p *TreePrinter) VisitExpressionStatement(es *ast.ExpressionStatement) {
	p.line("ExpressionStatement")
	p.nested(es.Expression)
}

func (p *TreePrinter) VisitPrintStatement(ps *ast.PrintStatement) {
	p.line("PrintStatement")
	p.nested(ps.Expression)
}

func (p *TreePrinter) VisitVarStatement(vs *ast.VarStatement) {
	p.line("VarStatement %s", vs.Name.Name)
	if vs.Initializer != nil {
		p.nested(vs.Initializer)
	}
}

func (p *TreePrinter) VisitBlockStatement(bs *ast.BlockStatement) {
	p.line("BlockStatement")
	for _, stmt := range bs.Statements {
		p.nested(stmt)
	}
}

func (p *TreePrinter) VisitIfStatement(is *ast.IfStatement) {
	p.line("IfStatement")
	p.nested(is.Condition)
	p.nested(is.Then)
	if is.Else != nil {
		p.nested(is.Else)
	}
}

func (p *TreePrinter) VisitWhileStatement(ws *ast.WhileStatement) {
	p.line("WhileStatement")
	p.nested(ws.Condition)
	p.nested(ws.Body)
}

func (p *TreePrinter) VisitFunctionStatement(fs *ast.FunctionStatement) {
	params := ""
	for idx, param := range fs.Parameters {
		if idx > 0 {
			params += ", "
		}
		params += param.Name
	}
	p.line("FunctionStatement %s(%s)", fs.Name.Name, params)
	p.indent++
	for _, stmt := range fs.Body {
		stmt.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitReturnStatement(rs *ast.ReturnStatement) {
	p.line("ReturnStatement")
	if rs.Value != nil {
		p.nested(rs.Value)
	}
}

func (p *TreePrinter) VisitClassStatement(cs *ast.ClassStatement) {
	if cs.Superclass != nil {
		p.line("ClassStatement %s < %s", cs.Name.Name, cs.Superclass.Name)
	} else {
		p.line("ClassStatement %s", cs.Name.Name)
	}
	p.indent++
	for _, method := range cs.Methods {
		method.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitNumberLiteral(nl *ast.NumberLiteral) {
	p.line("NumberLiteral %s", strconv.FormatFloat(nl.Value, 'f', -1, 64))
}

func (p *TreePrinter) VisitStringLiteral(sl *ast.StringLiteral) {
	p.line("StringLiteral %q", sl.Value)
}

func (p *TreePrinter) VisitBooleanLiteral(bl *ast.BooleanLiteral) {
	p.line("BooleanLiteral %t", bl.Value)
}

func (p *TreePrinter) VisitNilLiteral(nl *ast.NilLiteral) {
	p.line("NilLiteral")
}

func (p *TreePrinter) VisitVariableExpression(ve *ast.VariableExpression) {
	p.line("Variable %s", ve.Name.Name)
}

func (p *TreePrinter) VisitGroupingExpression(ge *ast.GroupingExpression) {
	p.line("Grouping")
	p.nested(ge.Expression)
}

func (p *TreePrinter) VisitPrefixExpression(pe *ast.PrefixExpression) {
	p.line("Prefix %s", pe.Operator.Lexeme)
	p.nested(pe.Right)
}

func (p *TreePrinter) VisitInfixExpression(ie *ast.InfixExpression) {
	p.line("Infix %s", ie.Operator.Lexeme)
	p.nested(ie.Left)
	p.nested(ie.Right)
}

func (p *TreePrinter) VisitLogicalExpression(le *ast.LogicalExpression) {
	p.line("Logical %s", le.Operator.Lexeme)
	p.nested(le.Left)
	p.nested(le.Right)
}

func (p *TreePrinter) VisitAssignExpression(ae *ast.AssignExpression) {
	p.line("Assign %s", ae.Name.Name)
	p.nested(ae.Value)
}

func (p *TreePrinter) VisitCallExpression(ce *ast.CallExpression) {
	p.line("Call")
	p.nested(ce.Callee)
	for _, arg := range ce.Arguments {
		p.nested(arg)
	}
}

func (p *TreePrinter) VisitGetExpression(ge *ast.GetExpression) {
	p.line("Get %s", ge.Name.Name)
	p.nested(ge.Object)
}

func (p *TreePrinter) VisitSetExpression(se *ast.SetExpression) {
	p.line("Set %s", se.Name.Name)
	p.nested(se.Object)
	p.nested(se.Value)
}

func (p *TreePrinter) VisitThisExpression(te *ast.ThisExpression) {
	p.line("This")
}

func (p *TreePrinter) VisitSuperExpression(se *ast.SuperExpression) {
	p.line("Super %s", se.Method.Name)
}
