// Package prettyprinter renders ASTs three ways: as indented structure
// (TreePrinter), as Lox source (CodePrinter), and as Graphviz DOT
// (GraphvizPrinter). All three are ast.Visitor implementations.
package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/froth/golox/internal/ast"
)

// --- Code Printer (output looks like source code) ---

// CodePrinter reconstructs Lox source from the AST. Printing a parse
// result and re-parsing it yields the same tree.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) VisitProgram(program *ast.Program) {
	for _, stmt := range program.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
}

func (p *CodePrinter) VisitExpressionStatement(es *ast.ExpressionStatement) {
	es.Expression.Accept(p)
	p.write(";")
}

func (p *CodePrinter) VisitPrintStatement(ps *ast.PrintStatement) {
	p.write("print ")
	ps.Expression.Accept(p)
	p.write(";")
}

func (p *CodePrinter) VisitVarStatement(vs *ast.VarStatement) {
	p.write("var " + vs.Name.Name)
	if vs.Initializer != nil {
		p.write(" = ")
		vs.Initializer.Accept(p)
	}
	p.write(";")
}

func (p *CodePrinter) VisitBlockStatement(bs *ast.BlockStatement) {
	p.write("{\n")
	p.indent++
	for _, stmt := range bs.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitIfStatement(is *ast.IfStatement) {
	p.write("if (")
	is.Condition.Accept(p)
	p.write(") ")
	is.Then.Accept(p)
	if is.Else != nil {
		p.write(" else ")
		is.Else.Accept(p)
	}
}

func (p *CodePrinter) VisitWhileStatement(ws *ast.WhileStatement) {
	p.write("while (")
	ws.Condition.Accept(p)
	p.write(") ")
	ws.Body.Accept(p)
}

func (p *CodePrinter) VisitFunctionStatement(fs *ast.FunctionStatement) {
	p.write("fun ")
	p.writeFunction(fs)
}

func (p *CodePrinter) writeFunction(fs *ast.FunctionStatement) {
	p.write(fs.Name.Name + "(")
	for idx, param := range fs.Parameters {
		if idx > 0 {
			p.write(", ")
		}
		p.write(param.Name)
	}
	p.write(") {\n")
	p.indent++
	for _, stmt := range fs.Body {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitReturnStatement(rs *ast.ReturnStatement) {
	p.write("return")
	if rs.Value != nil {
		p.write(" ")
		rs.Value.Accept(p)
	}
	p.write(";")
}

func (p *CodePrinter) VisitClassStatement(cs *ast.ClassStatement) {
	p.write("class " + cs.Name.Name)
	if cs.Superclass != nil {
		p.write(" < " + cs.Superclass.Name)
	}
	p.write(" {\n")
	p.indent++
	for _, method := range cs.Methods {
		p.writeIndent()
		p.writeFunction(method)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitNumberLiteral(nl *ast.NumberLiteral) {
	p.write(strconv.FormatFloat(nl.Value, 'f', -1, 64))
}

func (p *CodePrinter) VisitStringLiteral(sl *ast.StringLiteral) {
	p.write("\"" + sl.Value + "\"")
}

func (p *CodePrinter) VisitBooleanLiteral(bl *ast.BooleanLiteral) {
	if bl.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNilLiteral(nl *ast.NilLiteral) {
	p.write("nil")
}

func (p *CodePrinter) VisitVariableExpression(ve *ast.VariableExpression) {
	p.write(ve.Name.Name)
}

func (p *CodePrinter) VisitGroupingExpression(ge *ast.GroupingExpression) {
	p.write("(")
	ge.Expression.Accept(p)
	p.write(")")
}

func (p *CodePrinter) VisitPrefixExpression(pe *ast.PrefixExpression) {
	p.write(pe.Operator.Lexeme)
	pe.Right.Accept(p)
}

func (p *CodePrinter) VisitInfixExpression(ie *ast.InfixExpression) {
	ie.Left.Accept(p)
	p.write(" " + ie.Operator.Lexeme + " ")
	ie.Right.Accept(p)
}

func (p *CodePrinter) VisitLogicalExpression(le *ast.LogicalExpression) {
	le.Left.Accept(p)
	p.write(" " + le.Operator.Lexeme + " ")
	le.Right.Accept(p)
}

func (p *CodePrinter) VisitAssignExpression(ae *ast.AssignExpression) {
	p.write(ae.Name.Name + " = ")
	ae.Value.Accept(p)
}

func (p *CodePrinter) VisitCallExpression(ce *ast.CallExpression) {
	ce.Callee.Accept(p)
	p.write("(")
	for idx, arg := range ce.Arguments {
		if idx > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitGetExpression(ge *ast.GetExpression) {
	ge.Object.Accept(p)
	p.write("." + ge.Name.Name)
}

func (p *CodePrinter) VisitSetExpression(se *ast.SetExpression) {
	se.Object.Accept(p)
	p.write("." + se.Name.Name + " = ")
	se.Value.Accept(p)
}

func (p *CodePrinter) VisitThisExpression(te *ast.ThisExpression) {
	p.write("this")
}

func (p *CodePrinter) VisitSuperExpression(se *ast.SuperExpression) {
	p.write("super." + se.Method.Name)
}
