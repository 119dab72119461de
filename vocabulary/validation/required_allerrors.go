package validation

import (
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/internal/keyword"
)

// allErrorsLoop reports every absent name from a runtime loop. An undefined
// $data value is left to whoever handles undefined references; a defined
// non-array is a data error.
func allErrorsLoop(cxt *keyword.Context) {
	if !cxt.IsData {
		loopAllRequired(cxt)
		return
	}
	g := cxt.Gen
	g.If(keyword.IsDefined(cxt.SchemaCode), func() {
		g.IfElse(keyword.IsArray(cxt.SchemaCode), func() {
			loopAllRequired(cxt)
		}, cxt.DataError)
	})
}

func loopAllRequired(cxt *keyword.Context) {
	cxt.Gen.ForOf("prop", cxt.SchemaCode, func(prop codegen.Name) {
		cxt.Gen.If(keyword.NoPropertyInData(cxt.Data, prop, cxt.Opts.OwnProperties), func() {
			cxt.SetParams(map[string]codegen.Expr{"missingProperty": prop})
			cxt.Error()
		})
	})
}

// allErrorsUnrolled inlines one check per declared name.
func allErrorsUnrolled(cxt *keyword.Context) {
	for _, prop := range cxt.Spec.(*ir.Static).Props {
		keyword.CheckReportMissingProp(cxt, prop)
	}
}
