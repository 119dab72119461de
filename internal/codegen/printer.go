package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
)

// Printer accumulates Go source for a generated function.
type Printer struct {
	buf   bytes.Buffer
	depth int
}

func (p *Printer) WriteString(s string) { p.buf.WriteString(s) }

// Indent writes the indentation of the current block.
func (p *Printer) Indent() { p.buf.WriteString(strings.Repeat("\t", p.depth)) }

func (p *Printer) Newline() { p.buf.WriteByte('\n') }

// Line writes one indented line.
func (p *Printer) Line(s string) {
	p.Indent()
	p.WriteString(s)
	p.Newline()
}

// Block prints body one level deeper.
func (p *Printer) Block(body []Stmt) {
	p.depth++
	for _, s := range body {
		s.format(p)
	}
	p.depth--
}

// Source prints fn as a Go function declaration, gofmt-ed. When formatting
// fails the unformatted text is returned together with the error.
func (fn *Func) Source() ([]byte, error) {
	p := &Printer{}
	params := make([]string, len(fn.Params))
	for i, n := range fn.Params {
		typ := "any"
		if i < len(fn.paramTypes) && fn.paramTypes[i] != "" {
			typ = fn.paramTypes[i]
		}
		params[i] = n.id + " " + typ
	}
	sig := "func " + fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.Results != "" {
		sig += " " + fn.Results
	}
	p.Line(sig + " {")
	p.Block(fn.Body)
	p.Line("}")
	out, err := format.Source(p.buf.Bytes())
	if err != nil {
		return p.buf.Bytes(), fmt.Errorf("codegen: format %s: %w", fn.Name, err)
	}
	return out, nil
}

// FormatExpr prints a single expression; mostly useful in tests.
func FormatExpr(x Expr) string {
	p := &Printer{}
	x.Format(p)
	return p.buf.String()
}
