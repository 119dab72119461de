package codegen

import "fmt"

// Func is a finished generated function.
type Func struct {
	Name    string
	Params  []Name
	Results string // printed result list, e.g. "([]rt.Issue, bool)"
	Body    []Stmt

	paramTypes []string
}

// Frame is the variable store of one Run. Frames are never shared, so a Func
// may run concurrently.
type Frame struct {
	vars map[string]any
	ret  any
}

// Get returns the current value of n (nil when unset).
func (f *Frame) Get(n Name) any { return f.vars[n.id] }

// Set stores v into n.
func (f *Frame) Set(n Name, v any) { f.vars[n.id] = v }

// Returned is the value passed to the executed return statement, if any.
func (f *Frame) Returned() any { return f.ret }

// Run executes the function body with args bound to the params.
func (fn *Func) Run(args ...any) (*Frame, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("codegen: %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	f := &Frame{vars: make(map[string]any, len(fn.Params)+8)}
	for i, p := range fn.Params {
		f.Set(p, args[i])
	}
	execBlock(f, fn.Body)
	return f, nil
}
