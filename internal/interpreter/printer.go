package interpreter

import (
	"fmt"
	"io"
)

// Printer is the interpreter's output sink for `print` statements.
type Printer interface {
	Print(value Object)
}

// ConsolePrinter writes each value's display form followed by a newline.
type ConsolePrinter struct {
	Out io.Writer
}

func (p *ConsolePrinter) Print(value Object) {
	fmt.Fprintln(p.Out, value.Inspect())
}

// VectorPrinter collects printed lines; tests use it.
type VectorPrinter struct {
	Lines []string
}

func (p *VectorPrinter) Print(value Object) {
	p.Lines = append(p.Lines, value.Inspect())
}
