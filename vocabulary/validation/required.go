// Package validation holds compilers for the JSON Schema validation
// vocabulary. Only "required" is implemented.
package validation

import (
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/internal/keyword"
)

// Required compiles the "required" keyword.
var Required = &keyword.Definition{
	Keyword:    "required",
	Type:       []string{"object"},
	SchemaType: []string{"array"},
	Data:       true,
	Code:       compileRequired,
}

// Shape is how the property list is walked by generated code.
type Shape int

const (
	ShapeNone     Shape = iota // nothing to check
	ShapeUnrolled              // one inlined check per declared name
	ShapeLoop                  // a runtime loop over the list
)

// Mode is how failures are accumulated.
type Mode int

const (
	ModeAllErrors Mode = iota // every absent name is reported
	ModeFailFast              // the first absent name is reported, then stop
)

// Plan is the strategy chosen for one keyword occurrence.
type Plan struct {
	Shape Shape
	Mode  Mode
}

// Dispatch classifies a keyword value under the given options. It never
// fails.
func Dispatch(spec ir.RequiredSpec, opts keyword.Options) Plan {
	p := Plan{Mode: ModeFailFast}
	if opts.AllErrors {
		p.Mode = ModeAllErrors
	}
	switch s := spec.(type) {
	case *ir.Data:
		p.Shape = ShapeLoop
	case *ir.Static:
		switch {
		case len(s.Props) == 0:
			p.Shape = ShapeNone
		case len(s.Props) >= opts.LoopRequired:
			p.Shape = ShapeLoop
		default:
			p.Shape = ShapeUnrolled
		}
	}
	return p
}

func compileRequired(cxt *keyword.Context) keyword.Outcome {
	plan := Dispatch(cxt.Spec, cxt.Opts)
	switch {
	case plan.Shape == ShapeNone:
		return keyword.Outcome{}
	case plan.Mode == ModeAllErrors && plan.Shape == ShapeLoop:
		allErrorsLoop(cxt)
		return keyword.Outcome{}
	case plan.Mode == ModeAllErrors:
		allErrorsUnrolled(cxt)
		return keyword.Outcome{}
	case plan.Shape == ShapeLoop:
		return failFastLoop(cxt).outcome()
	default:
		return failFastUnrolled(cxt).outcome()
	}
}
