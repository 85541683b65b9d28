// Package diagnostics defines the error values shared by every pipeline
// stage. Each error carries a stable code, a human-readable message, and
// the byte span of the offending source, so the front end can render
// source-pointed reports.
package diagnostics

import (
	"fmt"

	"github.com/froth/golox/internal/token"
)

type ErrorCode string

// Scanner errors.
const (
	ErrS001 ErrorCode = "S001" // unexpected character
	ErrS002 ErrorCode = "S002" // unexpected characters (coalesced run)
	ErrS003 ErrorCode = "S003" // non-terminated string
	ErrS004 ErrorCode = "S004" // invalid number literal
)

// Parser errors.
const (
	ErrP001 ErrorCode = "P001" // expected '('
	ErrP002 ErrorCode = "P002" // expected ')'
	ErrP003 ErrorCode = "P003" // expected '{'
	ErrP004 ErrorCode = "P004" // expected '}'
	ErrP005 ErrorCode = "P005" // expected ';'
	ErrP006 ErrorCode = "P006" // expected identifier
	ErrP007 ErrorCode = "P007" // expected expression
	ErrP008 ErrorCode = "P008" // unexpected end of input
	ErrP009 ErrorCode = "P009" // invalid assignment target
	ErrP010 ErrorCode = "P010" // too many arguments
	ErrP011 ErrorCode = "P011" // too many parameters
)

// Resolution errors.
const (
	ErrR001 ErrorCode = "R001" // variable initialized with itself
	ErrR002 ErrorCode = "R002" // return outside function
	ErrR003 ErrorCode = "R003" // return with value inside initializer
	ErrR004 ErrorCode = "R004" // this outside class
	ErrR005 ErrorCode = "R005" // class inherits from itself
	ErrR006 ErrorCode = "R006" // super outside class
	ErrR007 ErrorCode = "R007" // super in class without superclass
)

// Runtime errors.
const (
	ErrE001 ErrorCode = "E001" // operand has wrong type
	ErrE002 ErrorCode = "E002" // operands have wrong types
	ErrE003 ErrorCode = "E003" // '+' applied to mismatched operands
	ErrE004 ErrorCode = "E004" // undefined variable
	ErrE005 ErrorCode = "E005" // undefined property
	ErrE006 ErrorCode = "E006" // property access on non-instance
	ErrE007 ErrorCode = "E007" // calling a non-callable value
	ErrE008 ErrorCode = "E008" // wrong number of arguments
	ErrE009 ErrorCode = "E009" // superclass is not a class
)

// DiagnosticError is a positioned error from any pipeline stage.
//
// Partial is only populated for ErrP005 (expected ';'): it holds the
// expression the parser had built when the semicolon was missing, which the
// REPL uses to evaluate bare expressions.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Span    token.Span
	Src     *token.Source
	Partial interface{}
}

func (e *DiagnosticError) Error() string {
	if e.Src != nil {
		line, col := e.Src.LineCol(e.Span.Offset)
		return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Code, e.Src.Name, line, col, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError creates a diagnostic pointing at a token.
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    tok.Span,
	}
}

// NewSpanError creates a diagnostic pointing at an arbitrary span.
func NewSpanError(code ErrorCode, span token.Span, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}
