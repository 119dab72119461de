package keyword

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/jsc/i18n"
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/rt"
)

// Error records a failure of the keyword carrying the current params.
func (c *Context) Error() {
	c.Gen.Append(c.Errors, c.issue(rt.CodeRequired, c.params))
}

// DataError records that the $data value had the wrong shape. It carries no
// params.
func (c *Context) DataError() {
	c.Gen.Append(c.Errors, c.issue(rt.CodeDataError, nil))
}

func (c *Context) issue(code string, params map[string]codegen.Expr) codegen.Expr {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return issueExpr{
		keyword:    c.Keyword,
		code:       code,
		schemaPath: c.SchemaPath,
		loc:        c.Loc,
		keys:       keys,
		params:     params,
	}
}

// issueExpr builds an rt.Issue when evaluated.
type issueExpr struct {
	keyword    string
	code       string
	schemaPath string
	loc        codegen.Name
	keys       []string
	params     map[string]codegen.Expr
}

func (e issueExpr) Eval(f *codegen.Frame) any {
	data := map[string]string{"keyword": e.keyword}
	var params map[string]any
	if len(e.keys) > 0 {
		params = make(map[string]any, len(e.keys))
		for _, k := range e.keys {
			v := e.params[k].Eval(f)
			params[k] = v
			data[k] = fmt.Sprint(v)
		}
	}
	loc, _ := e.loc.Eval(f).(rt.Location)
	return rt.Issue{
		Keyword:      e.keyword,
		Code:         e.code,
		Message:      i18n.T(e.code, data),
		InstancePath: loc.Pointer(),
		SchemaPath:   e.schemaPath,
		Params:       params,
	}
}

func (e issueExpr) Format(p *codegen.Printer) {
	p.WriteString("rt.Issue{Keyword: " + strconv.Quote(e.keyword) +
		", Code: " + strconv.Quote(e.code) +
		", InstancePath: " + e.loc.String() + ".Pointer()" +
		", SchemaPath: " + strconv.Quote(e.schemaPath))
	data := []string{strconv.Quote("keyword") + ": " + strconv.Quote(e.keyword)}
	if len(e.keys) > 0 {
		p.WriteString(", Params: map[string]any{")
		for i, k := range e.keys {
			if i > 0 {
				p.WriteString(", ")
			}
			v := codegen.FormatExpr(e.params[k])
			p.WriteString(strconv.Quote(k) + ": " + v)
			data = append(data, strconv.Quote(k)+": fmt.Sprint("+v+")")
		}
		p.WriteString("}")
	}
	p.WriteString(", Message: i18n.T(" + strconv.Quote(e.code) +
		", map[string]string{" + strings.Join(data, ", ") + "})}")
}
