package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// DuplicateStrictness controls duplicate key handling while decoding.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota // last occurrence wins
	DupWarn                              // last occurrence wins, an issue is recorded
	DupError                             // decoding stops with an IssueError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Path + ": " + e.Message }

// ObjectFactory builds an object value from members in document order.
// Keys are unique; for duplicates only the last value is passed.
type ObjectFactory func(keys []string, values []any) any

// DecodeOptions controls Decode.
type DecodeOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int // 0 means unlimited
	// MakeObject builds objects; nil produces map[string]any.
	MakeObject ObjectFactory
}

// Decode reads exactly one JSON value from src. Numbers decode to
// json.Number. Warnings (DupWarn) are returned alongside the value.
func Decode(src TokenSource, opt DecodeOptions) (any, []SimpleIssue, error) {
	d := &decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.ErrUnexpectedEOF
		}
		return nil, nil, err
	}
	v, err := d.value(tok, "")
	if err != nil {
		return nil, d.issues, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		si := SimpleIssue{Code: "parse_error", Path: "/", Message: "unexpected data after top-level value"}
		return nil, d.issues, IssueError{si}
	}
	return v, d.issues, nil
}

type decoder struct {
	src    TokenSource
	opt    DecodeOptions
	depth  int
	issues []SimpleIssue
}

func (d *decoder) value(tok Token, path string) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object(path)
	case KindBeginArray:
		return d.array(path)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (d *decoder) enter(path string) error {
	d.depth++
	if d.opt.MaxDepth > 0 && d.depth > d.opt.MaxDepth {
		return IssueError{SimpleIssue{Code: "parse_error", Path: normalizeIssuePath(path), Message: "max depth exceeded"}}
	}
	return nil
}

func (d *decoder) object(path string) (any, error) {
	if err := d.enter(path); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	var keys []string
	var vals []any
	index := map[string]int{}
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		if tok.Kind == KindEndObject {
			break
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		key := tok.String
		kpath := joinJSONPointer(path, key)
		vt, err := d.src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		v, err := d.value(vt, kpath)
		if err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			si := SimpleIssue{Code: "duplicate_key", Path: kpath, Message: "key '" + key + "' duplicated"}
			switch d.opt.OnDuplicate {
			case DupError:
				return nil, IssueError{si}
			case DupWarn:
				d.issues = append(d.issues, si)
			}
			vals[i] = v
			continue
		}
		index[key] = len(keys)
		keys = append(keys, key)
		vals = append(vals, v)
	}
	if d.opt.MakeObject != nil {
		return d.opt.MakeObject(keys, vals), nil
	}
	m := make(map[string]any, len(keys))
	for i, k := range keys {
		m[k] = vals[i]
	}
	return m, nil
}

func (d *decoder) array(path string) (any, error) {
	if err := d.enter(path); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	arr := []any{}
	for {
		tok, err := d.src.NextToken()
		if err != nil {
			return nil, unexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, joinJSONPointer(path, itoa(len(arr))))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

// small local itoa to keep strconv out of the hot path
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	bp := len(buf)
	for i > 0 {
		bp--
		buf[bp] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[bp:])
}
