package rt

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced by generated validators.
const (
	CodeRequired  = "required"
	CodeDataError = "data_error"
)

// Issue is a single validation failure recorded by generated code.
type Issue struct {
	Keyword      string         `json:"keyword"`          // Keyword that failed, e.g. "required".
	Code         string         `json:"code"`             // One of the codes listed above.
	Message      string         `json:"message"`          // Rendered, user-facing message.
	InstancePath string         `json:"instancePath"`     // JSON Pointer to the failing instance location ("/" for root).
	SchemaPath   string         `json:"schemaPath"`       // Location of the keyword in the schema (e.g. "#/required").
	Params       map[string]any `json:"params,omitempty"` // Structured parameters such as {"missingProperty": "id"}.
}

// MissingProperty returns params["missingProperty"] when present.
func (i Issue) MissingProperty() (string, bool) {
	s, ok := i.Params["missingProperty"].(string)
	return s, ok
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /: should have required property 'id'
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.InstancePath, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
