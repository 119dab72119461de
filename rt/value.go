package rt

type undefined struct{}

// Undefined is the value of a $data reference that did not resolve. It is
// distinct from JSON null, which decodes to nil.
var Undefined any = undefined{}

// Defined reports whether v is anything other than Undefined.
func Defined(v any) bool {
	_, u := v.(undefined)
	return !u
}

// Object is an instance object that distinguishes own members from members
// reachable through a prototype (for example a YAML merge key).
type Object interface {
	// HasOwn reports whether key is held directly by the object.
	HasOwn(key string) bool
	// Has reports whether key is held directly or inherited.
	Has(key string) bool
	// Get returns the member value, searching prototypes after own members.
	Get(key string) (any, bool)
	// Keys lists own member names in document order.
	Keys() []string
}

// IsObject reports whether v is an object instance.
func IsObject(v any) bool {
	switch v.(type) {
	case map[string]any, Object:
		return true
	}
	return false
}

// IsArray reports whether v is an array instance.
func IsArray(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	}
	return false
}

// Elements returns the items of an array value; nil for non-arrays.
func Elements(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	return nil
}

// PropertyIn reports whether data holds a member named key. A member whose
// value is null counts as present. With own set, inherited members are
// ignored. Keys that are not strings never match.
func PropertyIn(data any, key any, own bool) bool {
	k, ok := key.(string)
	if !ok {
		return false
	}
	switch d := data.(type) {
	case map[string]any:
		_, ok := d[k]
		return ok
	case Object:
		if own {
			return d.HasOwn(k)
		}
		return d.Has(k)
	}
	return false
}

// member returns the value stored under tok in an object or array.
func member(v any, tok string) (any, bool) {
	switch t := v.(type) {
	case map[string]any:
		x, ok := t[tok]
		return x, ok
	case Object:
		return t.Get(tok)
	case []any:
		i, ok := arrayIndex(tok, len(t))
		if !ok {
			return nil, false
		}
		return t[i], true
	}
	return nil, false
}

func arrayIndex(tok string, n int) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	i := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		i = i*10 + int(c-'0')
		if i >= n {
			return 0, false
		}
	}
	return i, true
}

// Assign stores v through dst and reports true, so generated code can record
// a value inside a short-circuit condition.
func Assign(dst *any, v any) bool {
	*dst = v
	return true
}
