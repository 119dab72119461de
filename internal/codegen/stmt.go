package codegen

import "github.com/reoring/jsc/rt"

type flow int

const (
	flowNext flow = iota
	flowBreak
	flowReturn
)

// Stmt is a generated statement.
type Stmt interface {
	exec(f *Frame) flow
	format(p *Printer)
}

func execBlock(f *Frame, body []Stmt) flow {
	for _, s := range body {
		if fl := s.exec(f); fl != flowNext {
			return fl
		}
	}
	return flowNext
}

// declare introduces a variable: "n := init" or "var n typ".
type declare struct {
	n    Name
	typ  string
	init Expr
}

func (d declare) exec(f *Frame) flow {
	if d.init != nil {
		f.Set(d.n, d.init.Eval(f))
	} else {
		f.Set(d.n, nil)
	}
	return flowNext
}

func (d declare) format(p *Printer) {
	if d.init == nil {
		p.Line("var " + d.n.id + " " + d.typ)
		return
	}
	p.Indent()
	p.WriteString(d.n.id + " := ")
	d.init.Format(p)
	p.Newline()
}

type assign struct {
	n Name
	v Expr
}

func (a assign) exec(f *Frame) flow {
	f.Set(a.n, a.v.Eval(f))
	return flowNext
}

func (a assign) format(p *Printer) {
	p.Indent()
	p.WriteString(a.n.id + " = ")
	a.v.Format(p)
	p.Newline()
}

type appendStmt struct {
	sink Name
	v    Expr
}

func (a appendStmt) exec(f *Frame) flow {
	s, _ := f.Get(a.sink).([]any)
	f.Set(a.sink, append(s, a.v.Eval(f)))
	return flowNext
}

func (a appendStmt) format(p *Printer) {
	p.Indent()
	p.WriteString(a.sink.id + " = append(" + a.sink.id + ", ")
	a.v.Format(p)
	p.WriteString(")")
	p.Newline()
}

type ifStmt struct {
	cond Expr
	then []Stmt
	els  []Stmt
}

func (s ifStmt) exec(f *Frame) flow {
	if Truthy(s.cond.Eval(f)) {
		return execBlock(f, s.then)
	}
	return execBlock(f, s.els)
}

func (s ifStmt) format(p *Printer) {
	p.Indent()
	s.formatChain(p)
	p.Newline()
}

func (s ifStmt) formatChain(p *Printer) {
	p.WriteString("if ")
	s.cond.Format(p)
	p.WriteString(" {")
	p.Newline()
	p.Block(s.then)
	p.Indent()
	p.WriteString("}")
	if len(s.els) == 0 {
		return
	}
	if len(s.els) == 1 {
		if inner, ok := s.els[0].(ifStmt); ok {
			p.WriteString(" else ")
			inner.formatChain(p)
			return
		}
	}
	p.WriteString(" else {")
	p.Newline()
	p.Block(s.els)
	p.Indent()
	p.WriteString("}")
}

// forOf ranges over an array value, binding each element to elem.
type forOf struct {
	elem    Name
	iter    Expr
	declare bool
	body    []Stmt
}

func (s forOf) exec(f *Frame) flow {
	for _, v := range rt.Elements(s.iter.Eval(f)) {
		f.Set(s.elem, v)
		switch execBlock(f, s.body) {
		case flowBreak:
			return flowNext
		case flowReturn:
			return flowReturn
		}
	}
	return flowNext
}

func (s forOf) format(p *Printer) {
	p.Indent()
	op := " = "
	if s.declare {
		op = " := "
	}
	p.WriteString("for _, " + s.elem.id + op + "range rt.Elements(")
	s.iter.Format(p)
	p.WriteString(") {")
	p.Newline()
	p.Block(s.body)
	p.Line("}")
}

type breakStmt struct{}

func (breakStmt) exec(*Frame) flow  { return flowBreak }
func (breakStmt) format(p *Printer) { p.Line("break") }

type returnStmt struct {
	v Expr
}

func (s returnStmt) exec(f *Frame) flow {
	if s.v != nil {
		f.ret = s.v.Eval(f)
	}
	return flowReturn
}

func (s returnStmt) format(p *Printer) {
	if s.v == nil {
		p.Line("return")
		return
	}
	p.Indent()
	p.WriteString("return ")
	s.v.Format(p)
	p.Newline()
}
