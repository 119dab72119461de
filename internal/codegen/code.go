// Package codegen is the statement/expression builder keyword compilers emit
// validation code through. A built Func can be printed as Go source that
// calls the rt helpers, or executed in-process against an instance.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a generated expression.
type Expr interface {
	// Eval computes the expression inside a running frame.
	Eval(f *Frame) any
	// Format prints the expression as Go source.
	Format(p *Printer)
}

// Name is a generated variable. The zero Name is invalid.
type Name struct {
	id string
}

func (n Name) String() string        { return n.id }
func (n Name) Eval(f *Frame) any     { return f.Get(n) }
func (n Name) Format(p *Printer)     { p.WriteString(n.id) }
func (n Name) formatAddr(p *Printer) { p.WriteString("&" + n.id) }

type literal struct {
	v any
}

// Lit is a constant. Supported kinds: string, bool, int, nil and []string.
func Lit(v any) Expr { return literal{v: v} }

func (l literal) Eval(*Frame) any { return l.v }

func (l literal) Format(p *Printer) {
	switch t := l.v.(type) {
	case nil:
		p.WriteString("nil")
	case string:
		p.WriteString(strconv.Quote(t))
	case bool:
		p.WriteString(strconv.FormatBool(t))
	case int:
		p.WriteString(strconv.Itoa(t))
	case []string:
		q := make([]string, len(t))
		for i, s := range t {
			q[i] = strconv.Quote(s)
		}
		p.WriteString("[]string{" + strings.Join(q, ", ") + "}")
	default:
		p.WriteString(fmt.Sprintf("%#v", t))
	}
}

type raw struct {
	src string
	v   any
}

// Raw is a constant whose printed form is src, for values Lit cannot spell.
func Raw(src string, v any) Expr { return raw{src: src, v: v} }

func (r raw) Eval(*Frame) any   { return r.v }
func (r raw) Format(p *Printer) { p.WriteString(r.src) }

type not struct {
	x Expr
}

// Not negates a condition.
func Not(x Expr) Expr {
	if n, ok := x.(not); ok {
		return n.x
	}
	return not{x: x}
}

func (n not) Eval(f *Frame) any { return !Truthy(n.x.Eval(f)) }

func (n not) Format(p *Printer) {
	p.WriteString("!")
	formatOperand(p, n.x)
}

type logical struct {
	op    string
	and   bool
	terms []Expr
}

// And is a short-circuit conjunction; And() is true.
func And(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	return logical{op: " && ", and: true, terms: terms}
}

// Or is a short-circuit disjunction; Or() is false.
func Or(terms ...Expr) Expr {
	if len(terms) == 1 {
		return terms[0]
	}
	return logical{op: " || ", terms: terms}
}

func (l logical) Eval(f *Frame) any {
	for _, t := range l.terms {
		if Truthy(t.Eval(f)) != l.and {
			return !l.and
		}
	}
	return l.and
}

func (l logical) Format(p *Printer) {
	if len(l.terms) == 0 {
		p.WriteString(strconv.FormatBool(l.and))
		return
	}
	for i, t := range l.terms {
		if i > 0 {
			p.WriteString(l.op)
		}
		formatOperand(p, t)
	}
}

type call struct {
	fn   string
	eval func(args ...any) any
	args []Expr
}

// Call invokes a runtime helper. fn is the printed callee (e.g.
// "rt.PropertyIn"); eval computes the result from the evaluated arguments.
func Call(fn string, eval func(args ...any) any, args ...Expr) Expr {
	return call{fn: fn, eval: eval, args: args}
}

func (c call) Eval(f *Frame) any {
	vals := make([]any, len(c.args))
	for i, a := range c.args {
		vals[i] = a.Eval(f)
	}
	return c.eval(vals...)
}

func (c call) Format(p *Printer) {
	p.WriteString(c.fn + "(")
	for i, a := range c.args {
		if i > 0 {
			p.WriteString(", ")
		}
		a.Format(p)
	}
	p.WriteString(")")
}

type assignExpr struct {
	n Name
	v Expr
}

// SetTo stores v into n and yields true. It lets a short-circuit condition
// remember which operand made it succeed.
func SetTo(n Name, v Expr) Expr { return assignExpr{n: n, v: v} }

func (a assignExpr) Eval(f *Frame) any {
	f.Set(a.n, a.v.Eval(f))
	return true
}

func (a assignExpr) Format(p *Printer) {
	p.WriteString("rt.Assign(")
	a.n.formatAddr(p)
	p.WriteString(", ")
	a.v.Format(p)
	p.WriteString(")")
}

// Truthy is the condition semantics of generated code: false and nil are
// false, every other value is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	}
	return true
}

// formatOperand parenthesizes compound operands.
func formatOperand(p *Printer, x Expr) {
	if _, ok := x.(logical); ok {
		p.WriteString("(")
		x.Format(p)
		p.WriteString(")")
		return
	}
	x.Format(p)
}
