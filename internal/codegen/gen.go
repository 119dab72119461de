package codegen

import "strconv"

// Gen builds the body of one generated function. Nested blocks are opened by
// the closure-taking methods (If, IfElse, ForOf); everything emitted inside
// the closure lands in that block.
type Gen struct {
	names  map[string]int
	params []Name
	ptypes []string
	blocks []*[]Stmt
}

// New returns an empty builder.
func New() *Gen {
	root := []Stmt{}
	return &Gen{names: map[string]int{}, blocks: []*[]Stmt{&root}}
}

// Name reserves a fresh variable name derived from prefix.
func (g *Gen) Name(prefix string) Name {
	i := g.names[prefix]
	g.names[prefix] = i + 1
	return Name{id: prefix + strconv.Itoa(i)}
}

// Param declares a function parameter of the printed Go type typ. Params
// bind to Run's arguments in declaration order.
func (g *Gen) Param(name, typ string) Name {
	n := Name{id: name}
	g.names[name]++
	g.params = append(g.params, n)
	g.ptypes = append(g.ptypes, typ)
	return n
}

func (g *Gen) emit(s Stmt) {
	top := g.blocks[len(g.blocks)-1]
	*top = append(*top, s)
}

func (g *Gen) block(body func()) []Stmt {
	b := []Stmt{}
	g.blocks = append(g.blocks, &b)
	if body != nil {
		body()
	}
	g.blocks = g.blocks[:len(g.blocks)-1]
	return b
}

// Let declares a variable initialized to init.
func (g *Gen) Let(prefix string, init Expr) Name {
	n := g.Name(prefix)
	g.emit(declare{n: n, init: init})
	return n
}

// Var declares a variable holding its zero value; typ is the printed Go type.
func (g *Gen) Var(prefix, typ string) Name {
	n := g.Name(prefix)
	g.emit(declare{n: n, typ: typ})
	return n
}

// Assign stores v into n.
func (g *Gen) Assign(n Name, v Expr) { g.emit(assign{n: n, v: v}) }

// Append appends v to the slice held by sink.
func (g *Gen) Append(sink Name, v Expr) { g.emit(appendStmt{sink: sink, v: v}) }

// If emits "if cond { then }".
func (g *Gen) If(cond Expr, then func()) { g.IfElse(cond, then, nil) }

// IfNot emits "if !cond { then }".
func (g *Gen) IfNot(cond Expr, then func()) { g.IfElse(Not(cond), then, nil) }

// IfElse emits "if cond { then } else { els }". A nil els omits the branch.
func (g *Gen) IfElse(cond Expr, then, els func()) {
	s := ifStmt{cond: cond, then: g.block(then)}
	if els != nil {
		s.els = g.block(els)
	}
	g.emit(s)
}

// ForOf ranges over the array value iter, declaring a fresh element variable
// derived from prefix.
func (g *Gen) ForOf(prefix string, iter Expr, body func(elem Name)) {
	elem := g.Name(prefix)
	g.emit(forOf{elem: elem, iter: iter, declare: true, body: g.block(func() { body(elem) })})
}

// ForOfInto ranges over iter assigning each element to an existing variable,
// so the last visited element stays readable after the loop.
func (g *Gen) ForOfInto(elem Name, iter Expr, body func()) {
	g.emit(forOf{elem: elem, iter: iter, body: g.block(body)})
}

// Break leaves the innermost loop.
func (g *Gen) Break() { g.emit(breakStmt{}) }

// Return leaves the function; v may be nil.
func (g *Gen) Return(v Expr) { g.emit(returnStmt{v: v}) }

// Len reports how many statements the current block holds.
func (g *Gen) Len() int { return len(*g.blocks[len(g.blocks)-1]) }

// Func finalizes the builder into a named function.
func (g *Gen) Func(name, results string) *Func {
	if len(g.blocks) != 1 {
		panic("codegen: Func called inside an open block")
	}
	return &Func{Name: name, Results: results, Params: g.params, paramTypes: g.ptypes, Body: *g.blocks[0]}
}

// Guard emits "if cond { body }" only when body produced statements. cond
// must be free of side effects, since it is dropped together with an empty
// body.
func (g *Gen) Guard(cond Expr, body func()) bool {
	then := g.block(body)
	if len(then) == 0 {
		return false
	}
	g.emit(ifStmt{cond: cond, then: then})
	return true
}
