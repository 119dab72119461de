package jsc

import (
	"context"
	"fmt"

	"github.com/reoring/jsc/instance"
	"github.com/reoring/jsc/internal/codegen"
	"github.com/reoring/jsc/rt"
)

// Validator is a compiled schema. It is immutable and safe for concurrent
// use; each call runs in its own frame.
type Validator struct {
	fn   *codegen.Func
	opts Options
}

// Options returns the options the validator was compiled with.
func (v *Validator) Options() Options { return v.opts }

// Validate checks a decoded instance. Objects may be map[string]any or any
// rt.Object (see package instance). It returns nil, Issues, or ctx's error
// when ctx is already done.
func (v *Validator) Validate(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := v.fn.Run(data, rt.RootLocation(data))
	if err != nil {
		return err
	}
	if iss := collectIssues(frame.Returned()); len(iss) > 0 {
		return iss
	}
	return nil
}

// ValidateJSON decodes a JSON instance and validates it.
func (v *Validator) ValidateJSON(ctx context.Context, b []byte) error {
	data, err := instance.DecodeJSON(b, instance.DecodeOptions{MaxDepth: v.opts.MaxDepth})
	if err != nil {
		return err
	}
	return v.Validate(ctx, data)
}

// ValidateYAML decodes a YAML instance and validates it. Members merged in
// with "<<" are inherited, so OwnProperties treats them as absent.
func (v *Validator) ValidateYAML(ctx context.Context, b []byte) error {
	data, err := instance.DecodeYAML(b)
	if err != nil {
		return err
	}
	return v.Validate(ctx, data)
}

// Source prints the generated validation function as Go source.
func (v *Validator) Source() ([]byte, error) { return v.fn.Source() }

func collectIssues(ret any) Issues {
	items, _ := ret.([]any)
	if len(items) == 0 {
		return nil
	}
	iss := make(Issues, 0, len(items))
	for _, it := range items {
		switch t := it.(type) {
		case rt.Issue:
			iss = append(iss, t)
		default:
			panic(fmt.Sprintf("jsc: generated code produced %T, want rt.Issue", it))
		}
	}
	return iss
}
