package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Values(t *testing.T) {
	v, issues, err := Decode(NewBytes([]byte(`{"a":[1,"x",true,null,{}],"b":[]}`)), DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, issues)
	m := v.(map[string]any)
	assert.Equal(t, []any{json.Number("1"), "x", true, nil, map[string]any{}}, m["a"])
	assert.Equal(t, []any{}, m["b"])
}

func TestDecode_DuplicateKeys(t *testing.T) {
	in := []byte(`{"x":{"required":["a"],"required":["b"]}}`)

	v, _, err := Decode(NewBytes(in), DecodeOptions{OnDuplicate: DupIgnore})
	require.NoError(t, err)
	assert.Equal(t, []any{"b"}, v.(map[string]any)["x"].(map[string]any)["required"], "last occurrence wins")

	_, issues, err := Decode(NewBytes(in), DecodeOptions{OnDuplicate: DupWarn})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "/x/required", issues[0].Path)

	_, _, err = Decode(NewBytes(in), DecodeOptions{OnDuplicate: DupError})
	var ie IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "duplicate_key", ie.Code)
	assert.Equal(t, "/x/required", ie.Path)
}

func TestDecode_KeyOrderAndFactory(t *testing.T) {
	var gotKeys []string
	_, _, err := Decode(NewBytes([]byte(`{"z":1,"a":2,"z":3}`)), DecodeOptions{
		MakeObject: func(keys []string, vals []any) any {
			gotKeys = keys
			assert.Equal(t, []any{json.Number("3"), json.Number("2")}, vals)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, gotKeys)
}

func TestDecode_MaxDepth(t *testing.T) {
	_, _, err := Decode(NewBytes([]byte(`{"a":{"b":[1]}}`)), DecodeOptions{MaxDepth: 2})
	var ie IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "/a/b", ie.Path)

	_, _, err = Decode(NewBytes([]byte(`{"a":{"b":[1]}}`)), DecodeOptions{MaxDepth: 3})
	assert.NoError(t, err)
}

func TestDecode_Truncated(t *testing.T) {
	_, _, err := Decode(NewBytes([]byte(``)), DecodeOptions{})
	assert.Error(t, err)
	_, _, err = Decode(NewBytes([]byte(`{"a":[1,2`)), DecodeOptions{})
	assert.Error(t, err)
	_, _, err = Decode(NewBytes([]byte(`{} {}`)), DecodeOptions{})
	assert.Error(t, err)
}

func TestJoinJSONPointer(t *testing.T) {
	assert.Equal(t, "/a~1b/c~0", joinJSONPointer(joinJSONPointer("", "a/b"), "c~"))
	assert.Equal(t, "/", normalizeIssuePath(""))
	assert.Equal(t, "120", itoa(120))
}
