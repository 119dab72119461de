package jsc

import (
	"errors"
	"fmt"

	"github.com/reoring/jsc/internal/codegen"
	eng "github.com/reoring/jsc/internal/engine"
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/internal/keyword"
	"github.com/reoring/jsc/vocabulary/validation"
)

// Compile decodes a JSON schema document and compiles it. With no opts,
// DefaultOptions apply. Explicit opts replace the defaults as a whole, so a
// zero LoopRequired means every static list is checked in a loop; start
// from DefaultOptions to change a single field. Repeated member names in the
// schema are rejected with ErrDuplicateKey.
func Compile(schema []byte, opts ...Options) (*Validator, error) {
	doc, _, err := eng.Decode(eng.NewBytes(schema), eng.DecodeOptions{OnDuplicate: eng.DupError})
	if err != nil {
		var ie eng.IssueError
		if errors.As(err, &ie) && ie.Code == "duplicate_key" {
			return nil, &SchemaError{Path: ie.Path, Err: fmt.Errorf("%w: %s", ErrDuplicateKey, ie.Message)}
		}
		return nil, fmt.Errorf("jsc: parse schema: %w", err)
	}
	return CompileValue(doc, opts...)
}

// CompileValue compiles an already decoded schema (map[string]any). The
// "required" value may be []any or []string. Options behave as in Compile.
func CompileValue(schema any, opts ...Options) (*Validator, error) {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	m, ok := schema.(map[string]any)
	if !ok {
		return nil, &SchemaError{Path: "/", Err: fmt.Errorf("schema must be an object, got %T", schema)}
	}

	def := validation.Required
	var spec ir.RequiredSpec
	if raw, ok := m[def.Keyword]; ok {
		raw = jsonValue(raw)
		path := "/" + def.Keyword
		if err := checkRequiredValue(raw, o.Data); err != nil {
			return nil, &SchemaError{Path: path, Keyword: def.Keyword, Err: err}
		}
		var err error
		if spec, err = ir.ParseRequired(raw, o.Data); err != nil {
			return nil, &SchemaError{Path: path, Keyword: def.Keyword, Err: err}
		}
	}
	return build(def, spec, o)
}

// jsonValue turns Go-typed keyword values into the JSON-decoded shapes the
// meta-schema accepts.
func jsonValue(v any) any {
	if ss, ok := v.([]string); ok {
		out := make([]any, len(ss))
		for i, s := range ss {
			out[i] = s
		}
		return out
	}
	return v
}

// build emits the validate function:
//
//	func validate(data any, loc rt.Location) []rt.Issue
//
// The keyword runs only for object instances. When it yields a validity
// flag, a false flag returns immediately.
func build(def *keyword.Definition, spec ir.RequiredSpec, o Options) (*Validator, error) {
	g := codegen.New()
	data := g.Param("data", "any")
	loc := g.Param("loc", "rt.Location")
	errs := g.Var("vErrors", "[]rt.Issue")
	var cerr error
	if spec != nil {
		g.Guard(keyword.IsObject(data), func() {
			cxt, err := keyword.NewContext(g, def, spec, keyword.Bindings{Data: data, Loc: loc, Errors: errs}, o.keyword())
			if err != nil {
				cerr = err
				return
			}
			out := def.Code(cxt)
			if out.Valid != nil {
				g.IfNot(out.Valid, func() { g.Return(errs) })
			}
		})
	}
	if cerr != nil {
		return nil, &SchemaError{Path: "/" + def.Keyword, Keyword: def.Keyword, Err: cerr}
	}
	g.Return(errs)
	return &Validator{fn: g.Func("validate", "[]rt.Issue"), opts: o}, nil
}
