package jsc

import (
	"errors"
	"fmt"

	"github.com/reoring/jsc/rt"
)

// Issue codes.
const (
	CodeRequired  = rt.CodeRequired  // a required property is absent
	CodeDataError = rt.CodeDataError // a $data value did not resolve to an array
)

// Issue is a single validation failure. See rt.Issue.
type Issue = rt.Issue

// Issues is a collection of failures that implements error.
type Issues = rt.Issues

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues { return rt.AppendIssues(dst, more...) }

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) { return rt.AsIssues(err) }

// ErrDuplicateKey reports a schema object that repeats a member name.
var ErrDuplicateKey = errors.New("jsc: duplicate key in schema")

// SchemaError describes a schema the compiler refuses.
type SchemaError struct {
	Path    string // JSON Pointer into the schema document
	Keyword string // offending keyword, empty for document-level problems
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("jsc: schema %s: keyword %q: %v", e.Path, e.Keyword, e.Err)
	}
	return fmt.Sprintf("jsc: schema %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
