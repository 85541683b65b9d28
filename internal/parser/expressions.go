package parser

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError()
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(float64)
	return &ast.NumberLiteral{Value: value, Loc: p.curToken.Span}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Value: value, Loc: p.curToken.Span}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Value: p.curTokenIs(token.TRUE), Loc: p.curToken.Span}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Loc: p.curToken.Span}
}

func (p *Parser) parseVariableExpression() ast.Expression {
	return &ast.VariableExpression{
		Name: ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span},
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	start := p.curToken.Span
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after expression") {
		return nil
	}
	return &ast.GroupingExpression{Expression: expr, Loc: start.Until(p.curToken.Span)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	operator := p.curToken
	p.nextToken()
	right := p.parseExpression(UNARY)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{
		Operator: operator,
		Right:    right,
		Loc:      operator.Span.Until(right.Span()),
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	operator := p.curToken
	precedence := precedences[operator.Type]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{
		Left:     left,
		Operator: operator,
		Right:    right,
		Loc:      left.Span().Until(right.Span()),
	}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	operator := p.curToken
	precedence := precedences[operator.Type]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.LogicalExpression{
		Left:     left,
		Operator: operator,
		Right:    right,
		Loc:      left.Span().Until(right.Span()),
	}
}

// parseAssignExpression rewrites the already-parsed left side: a variable
// becomes an assignment target, a property read becomes a property write.
// Anything else records InvalidAssignmentTarget but parsing keeps going.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	equals := p.curToken
	p.nextToken()
	// Right-associative: a = b = c parses as a = (b = c).
	value := p.parseExpression(ASSIGNMENT - 1)
	if value == nil {
		return nil
	}

	switch target := left.(type) {
	case *ast.VariableExpression:
		return &ast.AssignExpression{
			Name:  target.Name,
			Value: value,
			Loc:   left.Span().Until(value.Span()),
		}
	case *ast.GetExpression:
		return &ast.SetExpression{
			Object: target.Object,
			Name:   target.Name,
			Value:  value,
			Loc:    left.Span().Until(value.Span()),
		}
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP009, equals, "invalid assignment target",
		))
		return value
	}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	var arguments []ast.Expression
	if !p.peekTokenIs(token.RPAREN) {
		for {
			p.nextToken()
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			if len(arguments) >= MaxArguments {
				p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewSpanError(
					diagnostics.ErrP010, arg.Span(), "can't have more than %d arguments", MaxArguments,
				))
			}
			arguments = append(arguments, arg)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN, diagnostics.ErrP002, "expected ')' after arguments") {
		return nil
	}
	return &ast.CallExpression{
		Callee:    callee,
		Arguments: arguments,
		Loc:       callee.Span().Until(p.curToken.Span),
	}
}

func (p *Parser) parseGetExpression(object ast.Expression) ast.Expression {
	if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected property name after '.'") {
		return nil
	}
	name := ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}
	return &ast.GetExpression{
		Object: object,
		Name:   name,
		Loc:    object.Span().Until(p.curToken.Span),
	}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Loc: p.curToken.Span}
}

func (p *Parser) parseSuperExpression() ast.Expression {
	keyword := p.curToken.Span
	if !p.expectPeek(token.DOT, diagnostics.ErrP006, "expected '.' and method name after 'super'") {
		return nil
	}
	if !p.expectPeek(token.IDENT, diagnostics.ErrP006, "expected superclass method name") {
		return nil
	}
	method := ast.NameExpr{Name: p.curToken.Lexeme, Loc: p.curToken.Span}
	return &ast.SuperExpression{
		Keyword: keyword,
		Method:  method,
		Loc:     keyword.Until(p.curToken.Span),
	}
}
