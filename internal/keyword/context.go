// Package keyword carries what a keyword compiler needs while emitting code:
// the builder, the compiled keyword value, the names bound to the instance and
// to the issue sink, the compile options and the error reporter.
package keyword

import (
	"fmt"

	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/rt"
)

// Options are the compile-time flags keyword compilers consult. They are
// fixed for a whole compilation.
type Options struct {
	AllErrors     bool // report every failure instead of stopping at the first
	OwnProperties bool // inherited members do not count as present
	LoopRequired  int  // static lists at least this long are checked in a loop
	Data          bool // accept {"$data": pointer} keyword values
}

// Definition describes one keyword compiler.
type Definition struct {
	Keyword    string
	Type       []string // instance types the keyword applies to
	SchemaType []string // JSON types the keyword value may have
	Data       bool     // the keyword accepts $data references
	Code       func(cxt *Context) Outcome
}

// Outcome is what a keyword compiler hands back. Valid, when set, is a
// generated boolean the orchestrator must test before evaluating anything
// else; it is left nil when failures are only accumulated.
type Outcome struct {
	Valid codegen.Expr
}

// Context is created once per keyword occurrence.
type Context struct {
	Gen        *codegen.Gen
	Keyword    string
	SchemaPath string // e.g. "#/required"

	Spec       ir.RequiredSpec
	IsData     bool
	SchemaCode codegen.Expr // the keyword value as seen by generated code

	Data   codegen.Name // instance under validation
	Loc    codegen.Name // rt.Location of Data
	Errors codegen.Name // []rt.Issue sink
	Level  int          // nesting depth of Data, for relative $data pointers
	Opts   Options

	params map[string]codegen.Expr
}

// Bindings are the generated names a Context is wired to.
type Bindings struct {
	Data   codegen.Name
	Loc    codegen.Name
	Errors codegen.Name
	Level  int
}

// NewContext prepares a Context. For $data values it emits the binding that
// resolves the reference against the instance location.
func NewContext(g *codegen.Gen, def *Definition, spec ir.RequiredSpec, b Bindings, opts Options) (*Context, error) {
	cxt := &Context{
		Gen:        g,
		Keyword:    def.Keyword,
		SchemaPath: "#/" + rt.EscapeToken(def.Keyword),
		Spec:       spec,
		Data:       b.Data,
		Loc:        b.Loc,
		Errors:     b.Errors,
		Level:      b.Level,
		Opts:       opts,
	}
	switch s := spec.(type) {
	case *ir.Static:
		cxt.SchemaCode = codegen.Lit(s.Props)
	case *ir.Data:
		if !def.Data {
			return nil, fmt.Errorf("keyword %q does not support $data", def.Keyword)
		}
		if !s.Pointer.Absolute && s.Pointer.Up > b.Level {
			return nil, fmt.Errorf("cannot access data %d levels up, current level is %d", s.Pointer.Up, b.Level)
		}
		cxt.IsData = true
		cxt.SchemaCode = g.Let("schema", resolveData(b.Loc, s.Pointer))
	default:
		return nil, fmt.Errorf("keyword %q: unsupported value %T", def.Keyword, spec)
	}
	return cxt, nil
}

func resolveData(loc codegen.Name, p rt.DataPointer) codegen.Expr {
	ptr := codegen.Raw(fmt.Sprintf("rt.MustParseDataPointer(%q)", p.String()), p)
	return codegen.Call("rt.ResolveData", func(a ...any) any {
		l, _ := a[0].(rt.Location)
		return rt.ResolveData(l, a[1].(rt.DataPointer))
	}, loc, ptr)
}

// SetParams replaces the parameters attached to subsequently reported
// failures.
func (c *Context) SetParams(params map[string]codegen.Expr) { c.params = params }
