package keyword

import "github.com/reoring/jsc/internal/codegen"

// CheckReportMissingProp emits a standalone check for prop that reports it
// when absent.
func CheckReportMissingProp(c *Context, prop string) {
	c.Gen.If(NoPropertyInData(c.Data, codegen.Lit(prop), c.Opts.OwnProperties), func() {
		c.SetParams(map[string]codegen.Expr{"missingProperty": codegen.Lit(prop)})
		c.Error()
	})
}

// CheckMissingProp returns a condition that is true when any of props is
// absent. Evaluation stops at the first absent name, which is stored in
// missing.
func CheckMissingProp(c *Context, props []string, missing codegen.Name) codegen.Expr {
	terms := make([]codegen.Expr, len(props))
	for i, prop := range props {
		terms[i] = codegen.And(
			NoPropertyInData(c.Data, codegen.Lit(prop), c.Opts.OwnProperties),
			codegen.SetTo(missing, codegen.Lit(prop)),
		)
	}
	return codegen.Or(terms...)
}

// ReportMissingProp reports the name held by missing.
func ReportMissingProp(c *Context, missing codegen.Name) {
	c.SetParams(map[string]codegen.Expr{"missingProperty": missing})
	c.Error()
}
