package validation

import (
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/internal/keyword"
)

// FailFastResult is the generated state of a fail-fast check: Valid is false
// once a name is found missing, Missing holds that name.
type FailFastResult struct {
	Valid   codegen.Name
	Missing codegen.Name
}

func (r FailFastResult) outcome() keyword.Outcome { return keyword.Outcome{Valid: r.Valid} }

// failFastLoop stops at the first absent name. An undefined $data value is
// vacuously valid; a defined non-array is a data error.
func failFastLoop(cxt *keyword.Context) FailFastResult {
	g := cxt.Gen
	res := FailFastResult{
		Missing: g.Var("missing", "any"),
		Valid:   g.Let("valid", codegen.Lit(true)),
	}
	if !cxt.IsData {
		loopUntilMissing(cxt, res)
		return res
	}
	g.IfElse(codegen.Not(keyword.IsDefined(cxt.SchemaCode)), func() {
		g.Assign(res.Valid, codegen.Lit(true))
	}, func() {
		g.IfElse(codegen.Not(keyword.IsArray(cxt.SchemaCode)), func() {
			cxt.DataError()
			g.Assign(res.Valid, codegen.Lit(false))
		}, func() {
			loopUntilMissing(cxt, res)
		})
	})
	return res
}

func loopUntilMissing(cxt *keyword.Context, res FailFastResult) {
	g := cxt.Gen
	cxt.SetParams(map[string]codegen.Expr{"missingProperty": res.Missing})
	g.ForOfInto(res.Missing, cxt.SchemaCode, func() {
		g.Assign(res.Valid, keyword.PropertyInData(cxt.Data, res.Missing, cxt.Opts.OwnProperties))
		g.IfNot(res.Valid, func() {
			cxt.Error()
			g.Break()
		})
	})
}

// failFastUnrolled folds every declared name into one short-circuit test
// that remembers the first absent name.
func failFastUnrolled(cxt *keyword.Context) FailFastResult {
	g := cxt.Gen
	res := FailFastResult{Missing: g.Var("missing", "any")}
	props := cxt.Spec.(*ir.Static).Props
	res.Valid = g.Let("valid", codegen.Not(keyword.CheckMissingProp(cxt, props, res.Missing)))
	g.IfNot(res.Valid, func() {
		keyword.ReportMissingProp(cxt, res.Missing)
	})
	return res
}
