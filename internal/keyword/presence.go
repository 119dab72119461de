package keyword

import (
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/rt"
)

// PropertyInData is true when data holds prop. With own set, inherited
// members do not count.
func PropertyInData(data, prop codegen.Expr, own bool) codegen.Expr {
	return codegen.Call("rt.PropertyIn", func(a ...any) any {
		return rt.PropertyIn(a[0], a[1], own)
	}, data, prop, codegen.Lit(own))
}

// NoPropertyInData negates PropertyInData.
func NoPropertyInData(data, prop codegen.Expr, own bool) codegen.Expr {
	return codegen.Not(PropertyInData(data, prop, own))
}

// IsDefined is true unless x evaluated to rt.Undefined.
func IsDefined(x codegen.Expr) codegen.Expr {
	return codegen.Call("rt.Defined", func(a ...any) any { return rt.Defined(a[0]) }, x)
}

// IsArray is true when x evaluated to an array.
func IsArray(x codegen.Expr) codegen.Expr {
	return codegen.Call("rt.IsArray", func(a ...any) any { return rt.IsArray(a[0]) }, x)
}

// IsObject is true when x evaluated to an object.
func IsObject(x codegen.Expr) codegen.Expr {
	return codegen.Call("rt.IsObject", func(a ...any) any { return rt.IsObject(a[0]) }, x)
}
