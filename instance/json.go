package instance

import (
	"fmt"
	"io"

	eng "github.com/reoring/jsc/internal/engine"
)

// DecodeOptions tunes instance decoding.
type DecodeOptions struct {
	MaxDepth         int  // 0 means unlimited
	RejectDuplicates bool // fail on repeated object keys instead of keeping the last
}

// DecodeJSON decodes a JSON document into *Object/[]any/scalars. Numbers are
// kept as json.Number.
func DecodeJSON(b []byte, opts ...DecodeOptions) (any, error) {
	return decodeJSON(eng.NewBytes(b), opts)
}

// DecodeJSONReader is DecodeJSON over a stream. The reader is consumed fully.
func DecodeJSONReader(r io.Reader, opts ...DecodeOptions) (any, error) {
	return decodeJSON(eng.NewReader(r), opts)
}

func decodeJSON(src eng.TokenSource, opts []DecodeOptions) (any, error) {
	var o DecodeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	dup := eng.DupIgnore
	if o.RejectDuplicates {
		dup = eng.DupError
	}
	v, _, err := eng.Decode(src, eng.DecodeOptions{
		OnDuplicate: dup,
		MaxDepth:    o.MaxDepth,
		MakeObject:  func(keys []string, vals []any) any { return NewObject(keys, vals) },
	})
	if err != nil {
		return nil, fmt.Errorf("instance: decode json: %w", err)
	}
	return v, nil
}
