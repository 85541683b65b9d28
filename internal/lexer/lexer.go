// Package lexer turns Lox source text into tokens. The lexer never stops at
// the first bad byte: it records a diagnostic and keeps scanning, so one
// report covers the whole file. Runs of adjacent bad bytes are coalesced
// into a single diagnostic before they are returned.
package lexer

import (
	"strconv"

	"github.com/froth/golox/internal/diagnostics"
	"github.com/froth/golox/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	start        int  // start of the token being scanned

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Scan tokenizes a whole source. It returns the token list (terminated by
// EOF) or the non-empty error collection; never both.
func Scan(src *token.Source) ([]token.Token, []*diagnostics.DiagnosticError) {
	l := New(src.Content)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.errors) > 0 {
		errs := combineErrors(l.errors, src)
		for _, err := range errs {
			err.Src = src
		}
		return nil, errs
	}
	return tokens, nil
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
	} else {
		l.ch = l.input[l.readPosition]
		l.position = l.readPosition
	}
	l.readPosition = l.position + 1
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. ILLEGAL tokens mark bytes that produced
// a diagnostic; Scan filters them out.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.start = l.position

	if l.atEOF() {
		return token.Token{Type: token.EOF, Span: token.Span{Offset: len(l.input), Length: 0}}
	}

	var tok token.Token
	switch l.ch {
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case ',':
		tok = l.newToken(token.COMMA)
	case '.':
		tok = l.newToken(token.DOT)
	case '-':
		tok = l.newToken(token.MINUS)
	case '+':
		tok = l.newToken(token.PLUS)
	case ';':
		tok = l.newToken(token.SEMICOLON)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NOT_EQ)
		} else {
			tok = l.newToken(token.BANG)
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.EQ)
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LTE)
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GTE)
		} else {
			tok = l.newToken(token.GT)
		}
	case '/':
		if l.peekChar() == '/' {
			l.skipComment()
			return l.NextToken()
		}
		tok = l.newToken(token.SLASH)
	case '"':
		return l.readString()
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		l.errors = append(l.errors, diagnostics.NewSpanError(
			diagnostics.ErrS001,
			token.Span{Offset: l.position, Length: 1},
			"unexpected character '%c'", l.ch,
		))
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	span := token.Span{Offset: l.start, Length: l.position - l.start + 1}
	return token.Token{
		Type:   tokenType,
		Lexeme: l.input[span.Offset:span.End()],
		Span:   span,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) readString() token.Token {
	// Newlines and arbitrary bytes are allowed inside strings; only the
	// closing quote ends them.
	for {
		l.readChar()
		if l.atEOF() {
			span := token.Span{Offset: l.start, Length: l.position - l.start}
			l.errors = append(l.errors, diagnostics.NewSpanError(
				diagnostics.ErrS003, span, "non-terminated string",
			))
			return token.Token{Type: token.ILLEGAL, Span: span}
		}
		if l.ch == '"' {
			break
		}
	}
	l.readChar() // consume the closing quote
	span := token.Span{Offset: l.start, Length: l.position - l.start}
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[span.Offset:span.End()],
		Literal: l.input[span.Offset+1 : span.End()-1],
		Span:    span,
	}
}

func (l *Lexer) readNumber() token.Token {
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	// A trailing dot with no fractional digits is not part of the number.
	if !l.atEOF() && l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}
	}
	span := token.Span{Offset: l.start, Length: l.position - l.start}
	lexeme := l.input[span.Offset:span.End()]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.errors = append(l.errors, diagnostics.NewSpanError(
			diagnostics.ErrS004, span, "invalid number literal %q", lexeme,
		))
		return token.Token{Type: token.ILLEGAL, Span: span}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: value, Span: span}
}

func (l *Lexer) readIdentifier() token.Token {
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	span := token.Span{Offset: l.start, Length: l.position - l.start}
	lexeme := l.input[span.Offset:span.End()]
	tok := token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Span: span}
	if tok.Type == token.IDENT {
		tok.Literal = lexeme
	}
	return tok
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
