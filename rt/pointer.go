package rt

import (
	"fmt"
	"strconv"
	"strings"
)

// DataPointer is a parsed $data reference: either an absolute JSON Pointer
// (RFC 6901) evaluated from the root instance, or a relative JSON Pointer
// ("0/foo", "1/bar", "2#") evaluated from the current instance location.
type DataPointer struct {
	Absolute bool
	Up       int      // levels to climb before Tokens apply (relative only)
	KeyOf    bool     // "N#": the member name or index of the target itself
	Tokens   []string // unescaped reference tokens
	raw      string
}

func (p DataPointer) String() string { return p.raw }

// ParseDataPointer parses an absolute or relative JSON Pointer.
func ParseDataPointer(s string) (DataPointer, error) {
	p := DataPointer{raw: s}
	if s == "" {
		p.Absolute = true
		return p, nil
	}
	if s[0] == '/' {
		p.Absolute = true
		toks, err := splitTokens(s)
		if err != nil {
			return DataPointer{}, err
		}
		p.Tokens = toks
		return p, nil
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || (i > 1 && s[0] == '0') {
		return DataPointer{}, fmt.Errorf("invalid JSON pointer %q", s)
	}
	up, err := strconv.Atoi(s[:i])
	if err != nil {
		return DataPointer{}, fmt.Errorf("invalid JSON pointer %q: %w", s, err)
	}
	p.Up = up
	rest := s[i:]
	switch {
	case rest == "":
	case rest == "#":
		p.KeyOf = true
	case rest[0] == '/':
		toks, err := splitTokens(rest)
		if err != nil {
			return DataPointer{}, err
		}
		p.Tokens = toks
	default:
		return DataPointer{}, fmt.Errorf("invalid JSON pointer %q", s)
	}
	return p, nil
}

// splitTokens splits "/a/b~1c" into unescaped tokens, rejecting stray '~'.
func splitTokens(s string) ([]string, error) {
	parts := strings.Split(s[1:], "/")
	for i, p := range parts {
		for j := 0; j < len(p); j++ {
			if p[j] == '~' && (j+1 == len(p) || (p[j+1] != '0' && p[j+1] != '1')) {
				return nil, fmt.Errorf("invalid JSON pointer escape in %q", s)
			}
		}
		// '~1' -> '/', then '~0' -> '~' per RFC6901
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~1", "/"), "~0", "~")
	}
	return parts, nil
}

// EscapeToken escapes a member name for use inside a JSON Pointer.
func EscapeToken(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// Location describes where in the instance a generated routine is running.
// Parents and Keys run from the root down to the parent of Data, so
// len(Parents) == len(Keys) is the current data level.
type Location struct {
	Root    any
	Data    any
	Parents []any
	Keys    []string
}

// RootLocation is the location of a top-level instance.
func RootLocation(v any) Location { return Location{Root: v, Data: v} }

// Level returns the nesting depth of Data below Root.
func (l Location) Level() int { return len(l.Keys) }

// Pointer renders the instance path of Data as a JSON Pointer ("/" for root).
func (l Location) Pointer() string {
	if len(l.Keys) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, k := range l.Keys {
		b.WriteByte('/')
		b.WriteString(EscapeToken(k))
	}
	return b.String()
}

// ResolveData evaluates p at loc. Unresolvable references yield Undefined.
func ResolveData(loc Location, p DataPointer) any {
	var cur any
	switch {
	case p.Absolute:
		cur = loc.Root
	case p.Up == 0:
		cur = loc.Data
	case p.Up <= len(loc.Parents):
		cur = loc.Parents[len(loc.Parents)-p.Up]
	default:
		return Undefined
	}
	if p.KeyOf {
		// the name of the member that holds the target; the root has none
		idx := len(loc.Keys) - p.Up - 1
		if p.Absolute || idx < 0 {
			return Undefined
		}
		return loc.Keys[idx]
	}
	for _, tok := range p.Tokens {
		next, ok := member(cur, tok)
		if !ok {
			return Undefined
		}
		cur = next
	}
	return cur
}

// MustParseDataPointer is ParseDataPointer for pointers already checked at
// compile time; it panics on malformed input.
func MustParseDataPointer(s string) DataPointer {
	p, err := ParseDataPointer(s)
	if err != nil {
		panic(err)
	}
	return p
}
