// Package instance provides the object model that generated validators run
// against. Objects keep their members in document order and may inherit
// members from prototypes, which is how YAML merge keys (<<) are surfaced: a
// merged member is reachable but not owned.
package instance

import "github.com/reoring/jsc/rt"

// Object is an ordered set of own members plus zero or more prototypes.
// Prototypes are searched in order after the own members.
type Object struct {
	keys   []string
	values map[string]any
	protos []*Object
}

var _ rt.Object = (*Object)(nil)

// NewObject creates an object from parallel key/value slices. A repeated key
// keeps its first position and its last value.
func NewObject(keys []string, values []any) *Object {
	o := &Object{values: make(map[string]any, len(keys))}
	for i, k := range keys {
		o.Set(k, values[i])
	}
	return o
}

// Set assigns an own member.
func (o *Object) Set(key string, v any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Inherit appends a prototype.
func (o *Object) Inherit(proto *Object) {
	if proto != nil && proto != o {
		o.protos = append(o.protos, proto)
	}
}

// Protos returns the prototypes in lookup order.
func (o *Object) Protos() []*Object { return o.protos }

func (o *Object) HasOwn(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Get(key string) (any, bool) {
	return o.lookup(key, map[*Object]bool{})
}

func (o *Object) lookup(key string, seen map[*Object]bool) (any, bool) {
	if seen[o] {
		return nil, false
	}
	seen[o] = true
	if v, ok := o.values[key]; ok {
		return v, true
	}
	for _, p := range o.protos {
		if v, ok := p.lookup(key, seen); ok {
			return v, true
		}
	}
	return nil, false
}

func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Len returns the number of own members.
func (o *Object) Len() int { return len(o.keys) }

// Flatten returns own and inherited members as a plain map, own members
// taking precedence. Nested objects are flattened too.
func (o *Object) Flatten() map[string]any {
	out := map[string]any{}
	o.flattenInto(out, map[*Object]bool{})
	return out
}

func (o *Object) flattenInto(out map[string]any, seen map[*Object]bool) {
	if seen[o] {
		return
	}
	seen[o] = true
	for _, k := range o.keys {
		if _, ok := out[k]; !ok {
			out[k] = Plain(o.values[k])
		}
	}
	for _, p := range o.protos {
		p.flattenInto(out, seen)
	}
}

// Plain converts a value tree containing *Object into map[string]any/[]any.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Flatten()
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = Plain(x)
		}
		return out
	}
	return v
}
