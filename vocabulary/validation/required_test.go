package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsc/instance"
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/internal/ir"
	"github.com/reoring/jsc/internal/keyword"
	"github.com/reoring/jsc/rt"
	"github.com/reoring/jsc/vocabulary/validation"
)

type compiled struct {
	fn     *codegen.Func
	errs   codegen.Name
	out    keyword.Outcome
	emits  int // statements emitted by the keyword itself
	source string
}

func compile(t *testing.T, spec ir.RequiredSpec, opts keyword.Options) compiled {
	t.Helper()
	g := codegen.New()
	data := g.Param("data", "any")
	loc := g.Param("loc", "rt.Location")
	errs := g.Var("vErrors", "[]rt.Issue")
	before := g.Len()
	cxt, err := keyword.NewContext(g, validation.Required, spec, keyword.Bindings{Data: data, Loc: loc, Errors: errs}, opts)
	require.NoError(t, err)
	out := validation.Required.Code(cxt)
	c := compiled{errs: errs, out: out, emits: g.Len() - before}
	c.fn = g.Func("validate", "[]rt.Issue")
	src, err := c.fn.Source()
	require.NoError(t, err, "generated source must be valid Go:\n%s", src)
	c.source = string(src)
	return c
}

// run executes the compiled keyword and returns its issues and, for
// fail-fast plans, the validity flag (true otherwise).
func (c compiled) run(t *testing.T, data any) (rt.Issues, bool) {
	t.Helper()
	f, err := c.fn.Run(data, rt.RootLocation(data))
	require.NoError(t, err)
	var iss rt.Issues
	items, _ := f.Get(c.errs).([]any)
	for _, it := range items {
		iss = append(iss, it.(rt.Issue))
	}
	valid := true
	if c.out.Valid != nil {
		valid = codegen.Truthy(c.out.Valid.Eval(f))
	}
	return iss, valid
}

func static(props ...string) ir.RequiredSpec { return &ir.Static{Props: props} }

func data(ptr string) ir.RequiredSpec {
	return &ir.Data{Pointer: rt.MustParseDataPointer(ptr)}
}

func missingNames(iss rt.Issues) []string {
	out := []string{}
	for _, it := range iss {
		if name, ok := it.MissingProperty(); ok {
			out = append(out, name)
		}
	}
	return out
}

func TestDispatch(t *testing.T) {
	cases := []struct {
		name string
		spec ir.RequiredSpec
		opts keyword.Options
		want validation.Plan
	}{
		{"empty static", static(), keyword.Options{LoopRequired: 0, AllErrors: true}, validation.Plan{Shape: validation.ShapeNone, Mode: validation.ModeAllErrors}},
		{"below threshold", static("a"), keyword.Options{LoopRequired: 2}, validation.Plan{Shape: validation.ShapeUnrolled, Mode: validation.ModeFailFast}},
		{"at threshold", static("a", "b"), keyword.Options{LoopRequired: 2}, validation.Plan{Shape: validation.ShapeLoop, Mode: validation.ModeFailFast}},
		{"threshold zero loops", static("a"), keyword.Options{LoopRequired: 0, AllErrors: true}, validation.Plan{Shape: validation.ShapeLoop, Mode: validation.ModeAllErrors}},
		{"data always loops", data("0/props"), keyword.Options{LoopRequired: 1000}, validation.Plan{Shape: validation.ShapeLoop, Mode: validation.ModeFailFast}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validation.Dispatch(tc.spec, tc.opts))
		})
	}
}

func TestDispatch_LoopThresholdOne(t *testing.T) {
	opts := keyword.Options{LoopRequired: 1}
	assert.Equal(t, validation.ShapeLoop, validation.Dispatch(static("a"), opts).Shape)
	assert.Equal(t, validation.ShapeLoop, validation.Dispatch(static("a", "b"), opts).Shape)

	opts.LoopRequired = 2
	assert.Equal(t, validation.ShapeUnrolled, validation.Dispatch(static("a"), opts).Shape)
	assert.Equal(t, validation.ShapeLoop, validation.Dispatch(static("a", "b"), opts).Shape)
}

func TestRequired_EmptyStaticEmitsNothing(t *testing.T) {
	for _, all := range []bool{true, false} {
		c := compile(t, static(), keyword.Options{AllErrors: all})
		assert.Zero(t, c.emits)
		assert.Nil(t, c.out.Valid)
		iss, valid := c.run(t, map[string]any{})
		assert.Empty(t, iss)
		assert.True(t, valid)
	}
}

func TestRequired_AllErrorsReportsEveryMissing(t *testing.T) {
	for _, loop := range []int{0, 200} {
		c := compile(t, static("a", "b"), keyword.Options{AllErrors: true, LoopRequired: loop})
		iss, valid := c.run(t, map[string]any{})
		require.Len(t, iss, 2)
		assert.Equal(t, []string{"a", "b"}, missingNames(iss))
		assert.Equal(t, "should have required property 'a'", iss[0].Message)
		assert.Equal(t, "required", iss[0].Keyword)
		assert.Equal(t, "/", iss[0].InstancePath)
		assert.Equal(t, "#/required", iss[0].SchemaPath)
		assert.True(t, valid, "all-errors mode keeps no validity flag")
		assert.Nil(t, c.out.Valid)
	}
}

func TestRequired_FailFastReportsFirstMissing(t *testing.T) {
	for _, loop := range []int{0, 200} {
		c := compile(t, static("a", "b"), keyword.Options{LoopRequired: loop})
		iss, valid := c.run(t, map[string]any{})
		require.Len(t, iss, 1)
		assert.Equal(t, []string{"a"}, missingNames(iss))
		assert.False(t, valid)

		iss, valid = c.run(t, map[string]any{"a": 1})
		assert.Equal(t, []string{"b"}, missingNames(iss))
		assert.False(t, valid)

		iss, valid = c.run(t, map[string]any{"a": 1, "b": nil})
		assert.Empty(t, iss, "null members are present")
		assert.True(t, valid)
	}
}

func TestRequired_UnrolledAndLoopAgree(t *testing.T) {
	instances := []map[string]any{
		{},
		{"a": 1},
		{"b": 1},
		{"a": 1, "b": 2, "c": 3},
		{"c": true},
	}
	lists := [][]string{{"a"}, {"a", "b"}, {"c", "a", "b"}, {"a", "a"}}
	for _, all := range []bool{true, false} {
		for _, props := range lists {
			unrolled := compile(t, static(props...), keyword.Options{AllErrors: all, LoopRequired: len(props) + 1})
			loop := compile(t, static(props...), keyword.Options{AllErrors: all, LoopRequired: len(props)})
			for _, inst := range instances {
				iu, vu := unrolled.run(t, inst)
				il, vl := loop.run(t, inst)
				assert.Equal(t, iu, il, "props=%v all=%v inst=%v", props, all, inst)
				assert.Equal(t, vu, vl, "props=%v all=%v inst=%v", props, all, inst)
			}
		}
	}
}

func TestRequired_DuplicatesAreCheckedTwice(t *testing.T) {
	c := compile(t, static("a", "a"), keyword.Options{AllErrors: true})
	iss, _ := c.run(t, map[string]any{})
	assert.Equal(t, []string{"a", "a"}, missingNames(iss))

	c = compile(t, static("a", "a"), keyword.Options{})
	iss, valid := c.run(t, map[string]any{})
	assert.Equal(t, []string{"a"}, missingNames(iss))
	assert.False(t, valid)
}

func TestRequired_DataNonArrayIsMisuse(t *testing.T) {
	for _, all := range []bool{true, false} {
		c := compile(t, data("0/props"), keyword.Options{AllErrors: all, Data: true})
		for _, bad := range []any{5, "a", map[string]any{"x": 1}, true} {
			iss, valid := c.run(t, map[string]any{"props": bad})
			require.Len(t, iss, 1)
			assert.Equal(t, rt.CodeDataError, iss[0].Code)
			assert.Equal(t, `"required" keyword value must be array`, iss[0].Message)
			assert.Empty(t, missingNames(iss))
			if !all {
				assert.False(t, valid)
			}
		}
	}
}

func TestRequired_DataResolvesPerInstance(t *testing.T) {
	for _, all := range []bool{true, false} {
		c := compile(t, data("0/props"), keyword.Options{AllErrors: all, Data: true})

		iss, valid := c.run(t, map[string]any{"props": []any{}})
		assert.Empty(t, iss, "empty array is satisfied")
		assert.True(t, valid)

		iss, valid = c.run(t, map[string]any{})
		assert.Empty(t, iss, "undefined reference reports nothing")
		assert.True(t, valid)

		iss, valid = c.run(t, map[string]any{"props": []any{"props", "x", "y"}})
		if all {
			assert.Equal(t, []string{"x", "y"}, missingNames(iss))
		} else {
			assert.Equal(t, []string{"x"}, missingNames(iss))
			assert.False(t, valid)
		}
	}
}

func TestRequired_DataAbsolutePointer(t *testing.T) {
	c := compile(t, data("/meta/required"), keyword.Options{AllErrors: true, Data: true})
	inst := map[string]any{"meta": map[string]any{"required": []any{"meta", "name"}}}
	iss, _ := c.run(t, inst)
	assert.Equal(t, []string{"name"}, missingNames(iss))
}

func TestRequired_OwnProperties(t *testing.T) {
	base := instance.NewObject([]string{"a"}, []any{1})
	obj := instance.NewObject([]string{"b"}, []any{2})
	obj.Inherit(base)

	for _, loop := range []int{0, 200} {
		for _, all := range []bool{true, false} {
			own := compile(t, static("a", "b"), keyword.Options{AllErrors: all, OwnProperties: true, LoopRequired: loop})
			iss, _ := own.run(t, obj)
			assert.Equal(t, []string{"a"}, missingNames(iss))

			inherited := compile(t, static("a", "b"), keyword.Options{AllErrors: all, LoopRequired: loop})
			iss, valid := inherited.run(t, obj)
			assert.Empty(t, iss)
			assert.True(t, valid)
		}
	}
}

func TestRequired_GeneratedShapes(t *testing.T) {
	c := compile(t, static("a", "b"), keyword.Options{LoopRequired: 200})
	assert.Contains(t, c.source, `rt.Assign(&missing0, "a")`)
	assert.NotContains(t, c.source, "range")

	c = compile(t, static("a", "b"), keyword.Options{LoopRequired: 0})
	assert.Contains(t, c.source, `for _, missing0 = range rt.Elements([]string{"a", "b"})`)
	assert.Contains(t, c.source, "break")

	c = compile(t, static("a", "b"), keyword.Options{AllErrors: true, LoopRequired: 0})
	assert.Contains(t, c.source, "for _, prop0 := range")
	assert.NotContains(t, c.source, "break")

	c = compile(t, data("0/props"), keyword.Options{Data: true})
	assert.Contains(t, c.source, `rt.ResolveData(loc, rt.MustParseDataPointer("0/props"))`)
	assert.Contains(t, c.source, "} else if !rt.IsArray(schema0) {")
}
