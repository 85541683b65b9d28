package parser

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

// Every parse function is entered with curToken on the construct's first
// token and leaves curToken on its last token; the caller advances.

func (p *Parser) parseDeclaration() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarStatement()
	case token.FUN:
		return p.parseFunStatement()
	case token.CLASS:
		return p.parseClassStatement()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.PRINT:
		return p.parsePrintStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected variable name") {
		return nil
	}
	name := ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}

	var initializer ast.Expression
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		initializer = p.parseExpression(LOWEST)
		if initializer == nil {
			return nil
		}
	}
	if !p.expectPeek(token.SEMICOLON, diagnostics.ErrP005, "expected ';' after variable declaration") {
		return nil
	}
	return &ast.VarStatement{Name: name, Initializer: initializer, Loc: start.Until(p.curToken.Span)}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	start := p.curToken.Span
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON, diagnostics.ErrP005, "expected ';' after value") {
		return nil
	}
	return &ast.PrintStatement{Expression: value, Loc: start.Until(p.curToken.Span)}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.peekTokenIs(token.SEMICOLON) {
		// Carry the parsed expression so the REPL can fall back to
		// evaluating the line as a bare expression.
		err := diagnostics.NewError(diagnostics.ErrP005, p.peekToken, "expected ';' after expression")
		err.Partial = expr
		p.ctx.Errors = append(p.ctx.Errors, err)
		return nil
	}
	p.nextToken()
	return &ast.ExpressionStatement{Expression: expr, Loc: expr.Span().Until(p.curToken.Span)}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.curToken.Span
	var statements []ast.Statement

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP004, p.curToken, "expected '}' after block",
			))
			return nil
		}
		before := len(p.ctx.Errors)
		stmt := p.parseDeclaration()
		if stmt != nil {
			statements = append(statements, stmt)
			p.nextToken()
			continue
		}
		if len(p.ctx.Errors) > before {
			p.synchronize()
		} else {
			p.nextToken()
		}
	}
	return &ast.BlockStatement{Statements: statements, Loc: start.Until(p.curToken.Span)}
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN, diagnostics.ErrP001, "expected '(' after 'if'") {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after if condition") {
		return nil
	}
	p.nextToken()
	thenStmt := p.parseStatement()
	if thenStmt == nil {
		return nil
	}

	var elseStmt ast.Statement
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		elseStmt = p.parseStatement()
		if elseStmt == nil {
			return nil
		}
	}

	end := thenStmt.Span()
	if elseStmt != nil {
		end = elseStmt.Span()
	}
	return &ast.IfStatement{Condition: condition, Then: thenStmt, Else: elseStmt, Loc: start.Until(end)}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN, diagnostics.ErrP001, "expected '(' after 'while'") {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after while condition") {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{Condition: condition, Body: body, Loc: start.Until(body.Span())}
}

// parseForStatement desugars `for (init; cond; step) body` into
// `{ init; while (cond) { body; step; } }`. The desugared tree is what the
// resolver and interpreter see.
func (p *Parser) parseForStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN, diagnostics.ErrP001, "expected '(' after 'for'") {
		return nil
	}

	var initializer ast.Statement
	p.nextToken()
	switch p.curToken.Type {
	case token.SEMICOLON:
		// no initializer
	case token.VAR:
		initializer = p.parseVarStatement()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.parseExpressionStatement()
		if initializer == nil {
			return nil
		}
	}

	var condition ast.Expression
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		condition = p.parseExpression(LOWEST)
		if condition == nil {
			return nil
		}
	}
	if !p.expectPeek(token.SEMICOLON, diagnostics.ErrP005, "expected ';' after loop condition") {
		return nil
	}

	var step ast.Expression
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		step = p.parseExpression(LOWEST)
		if step == nil {
			return nil
		}
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after for clauses") {
		return nil
	}

	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	loc := start.Until(body.Span())

	if step != nil {
		body = &ast.BlockStatement{
			Statements: []ast.Statement{
				body,
				&ast.ExpressionStatement{Expression: step, Loc: step.Span()},
			},
			Loc: loc,
		}
	}
	if condition == nil {
		condition = &ast.BooleanLiteral{Value: true, Loc: start}
	}
	var loop ast.Statement = &ast.WhileStatement{Condition: condition, Body: body, Loc: loc}
	if initializer != nil {
		loop = &ast.BlockStatement{Statements: []ast.Statement{initializer, loop}, Loc: loc}
	}
	return loop
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.curToken.Span
	var value ast.Expression
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
	}
	if !p.expectPeek(token.SEMICOLON, diagnostics.ErrP005, "expected ';' after return value") {
		return nil
	}
	return &ast.ReturnStatement{Value: value, Loc: start.Until(p.curToken.Span)}
}

func (p *Parser) parseFunStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected function name") {
		return nil
	}
	return p.parseFunctionRest(start, "function")
}

// parseFunctionRest parses the parameter list and body. curToken is the
// function's name; kind distinguishes diagnostics for functions vs methods.
func (p *Parser) parseFunctionRest(start token.Span, kind string) *ast.FunctionStatement {
	name := ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}

	if !p.expectPeek(token.LPAREN, diagnostics.ErrP001, "expected '(' after "+kind+" name") {
		return nil
	}
	var parameters []ast.NameExpr
	if !p.peekTokenIs(token.RPAREN) {
		for {
			if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected parameter name") {
				return nil
			}
			if len(parameters) >= MaxArguments {
				p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
					diagnostics.ErrP011, p.curToken, "can't have more than %d parameters", MaxArguments,
				))
			}
			parameters = append(parameters, ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span})
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after parameters") {
		return nil
	}
	if !p.expectPeek(token.LBRACE, diagnostics.ErrP003, "expected '{' before "+kind+" body") {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.FunctionStatement{
		Name:       name,
		Parameters: parameters,
		Body:       body.Statements,
		Loc:        start.Until(p.curToken.Span),
	}
}

func (p *Parser) parseClassStatement() ast.Statement {
	start := p.curToken.Span
	if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected class name") {
		return nil
	}
	name := ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}

	var superclass *ast.NameExpr
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected superclass name") {
			return nil
		}
		superclass = &ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}
	}

	if !p.expectPeek(token.LBRACE, diagnostics.ErrP003, "expected '{' before class body") {
		return nil
	}

	var methods []*ast.FunctionStatement
	for !p.peekTokenIs(token.RBRACE) {
		if p.peekTokenIs(token.EOF) {
			p.errorAtPeek(diagnostics.ErrP004, "expected '}' after class body")
			return nil
		}
		if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected method name") {
			return nil
		}
		method := p.parseFunctionRest(p.curToken.Span, "method")
		if method == nil {
			return nil
		}
		methods = append(methods, method)
	}
	p.nextToken() // the closing brace

	return &ast.ClassStatement{
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
		Loc:        start.Until(p.curToken.Span),
	}
}
