// Package ir defines the keyword-value representation handed from schema
// parsing to the keyword compilers. This package is internal and not part of
// the public API.
package ir

import (
	"fmt"

	"github.com/reoring/jsc/rt"
)

// SpecKind identifies how a keyword value is supplied.
type SpecKind int

const (
	SpecStatic SpecKind = iota // literal value known at compile time
	SpecData                   // {"$data": pointer}, resolved per instance
)

// RequiredSpec is the value of a "required" keyword.
type RequiredSpec interface {
	Kind() SpecKind
}

// Static lists property names in declared order. Duplicates are kept.
type Static struct {
	Props []string
}

func (s *Static) Kind() SpecKind { return SpecStatic }

// Data refers to the property list through a $data pointer.
type Data struct {
	Pointer rt.DataPointer
}

func (d *Data) Kind() SpecKind { return SpecData }

// DataKeyword is the member name that marks a $data reference.
const DataKeyword = "$data"

// ParseRequired converts a decoded keyword value. allowData enables
// {"$data": "..."} references.
func ParseRequired(v any, allowData bool) (RequiredSpec, error) {
	switch t := v.(type) {
	case []any:
		props := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: must be string, got %T", i, item)
			}
			props = append(props, s)
		}
		return &Static{Props: props}, nil
	case []string:
		return &Static{Props: append([]string(nil), t...)}, nil
	case map[string]any:
		ref, ok := t[DataKeyword]
		if !ok || len(t) != 1 {
			return nil, fmt.Errorf("must be array")
		}
		if !allowData {
			return nil, fmt.Errorf("$data references are disabled")
		}
		s, ok := ref.(string)
		if !ok {
			return nil, fmt.Errorf("$data: must be string, got %T", ref)
		}
		p, err := rt.ParseDataPointer(s)
		if err != nil {
			return nil, fmt.Errorf("$data: %w", err)
		}
		return &Data{Pointer: p}, nil
	}
	return nil, fmt.Errorf("must be array, got %T", v)
}
