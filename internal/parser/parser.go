// Package parser builds the AST from the token stream. It is a Pratt parser
// over Lox's operator grammar with recovery at statement boundaries: a
// failed declaration records its diagnostic, the parser synchronizes to the
// next safe token, and parsing resumes so one bad statement does not mask
// the rest of the file.
package parser

import (
	"github.com/froth/golox/internal/ast"
	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/pipeline"
	"github.com/froth/golox/internal/token"
)

// MaxArguments bounds call arguments and function parameters.
const MaxArguments = 255

const (
	_ int = iota
	LOWEST
	ASSIGNMENT // =
	LOGIC_OR   // or
	LOGIC_AND  // and
	EQUALITY   // == !=
	COMPARISON // > >= < <=
	TERM       // + -
	FACTOR     // * /
	UNARY      // ! -x
	CALL       // foo(...) foo.bar
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:   ASSIGNMENT,
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALITY,
	token.NOT_EQ:   EQUALITY,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LTE:      COMPARISON,
	token.GTE:      COMPARISON,
	token.PLUS:     TERM,
	token.MINUS:    TERM,
	token.SLASH:    FACTOR,
	token.ASTERISK: FACTOR,
	token.LPAREN:   CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.NUMBER: p.parseNumberLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.NIL:    p.parseNilLiteral,
		token.IDENT:  p.parseVariableExpression,
		token.LPAREN: p.parseGroupedExpression,
		token.BANG:   p.parsePrefixExpression,
		token.MINUS:  p.parsePrefixExpression,
		token.THIS:   p.parseThisExpression,
		token.SUPER:  p.parseSuperExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.AND:      p.parseLogicalExpression,
		token.OR:       p.parseLogicalExpression,
		token.ASSIGN:   p.parseAssignExpression,
		token.LPAREN:   p.parseCallExpression,
		token.DOT:      p.parseGetExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse runs the parser over a token stream outside a pipeline.
func Parse(tokens []token.Token) (*ast.Program, []*diagnostics.DiagnosticError) {
	ctx := &pipeline.PipelineContext{Tokens: tokens}
	program := New(tokens, ctx).ParseProgram()
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors
	}
	return program, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else if len(p.tokens) > 0 {
		p.peekToken = p.tokens[len(p.tokens)-1] // EOF repeats
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// expectPeek advances when the next token matches, or records the given
// diagnostic and stays put.
func (p *Parser) expectPeek(t token.TokenType, code diagnostics.ErrorCode, msg string) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorAtPeek(code, msg)
	return false
}

func (p *Parser) errorAtPeek(code diagnostics.ErrorCode, msg string) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, p.peekToken, "%s", msg))
}

func (p *Parser) noPrefixParseFnError() {
	if p.curTokenIs(token.EOF) {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP008, p.curToken, "unexpected end of input",
		))
		return
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP007, p.curToken, "expected expression, got '%s'", p.curToken.Lexeme,
	))
}

// ParseProgram parses declarations until EOF. A lone EOF yields an empty
// statement list.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		before := len(p.ctx.Errors)
		stmt := p.parseDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
			p.nextToken()
			continue
		}
		if len(p.ctx.Errors) > before {
			p.synchronize()
		} else {
			p.nextToken()
		}
	}

	p.ctx.AstRoot = program
	return program
}

// synchronize discards tokens until just past the next ';' or just before
// the next statement-starting keyword, then lets parsing resume.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		switch p.peekToken.Type {
		case token.CLASS, token.FOR, token.FUN, token.IF,
			token.PRINT, token.RETURN, token.VAR, token.WHILE:
			p.nextToken()
			return
		}
		p.nextToken()
	}
}
