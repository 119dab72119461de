package jsc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Meta-schemas for the "required" keyword value, with and without $data.
const (
	requiredMetaURL = "https://jsc.invalid/meta/required.json"
	requiredMeta    = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {"type": "string"}
}`
	requiredDataMetaURL = "https://jsc.invalid/meta/required-data.json"
	requiredDataMeta    = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"anyOf": [
		{"type": "array", "items": {"type": "string"}},
		{
			"type": "object",
			"required": ["$data"],
			"properties": {
				"$data": {
					"type": "string",
					"anyOf": [{"format": "json-pointer"}, {"format": "relative-json-pointer"}]
				}
			},
			"additionalProperties": false
		}
	]
}`
)

var metaSchemas = sync.OnceValues(func() (map[bool]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	out := map[bool]*jsonschema.Schema{}
	for data, src := range map[bool][2]string{
		false: {requiredMetaURL, requiredMeta},
		true:  {requiredDataMetaURL, requiredDataMeta},
	} {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src[1]))
		if err != nil {
			return nil, fmt.Errorf("meta-schema %s: %w", src[0], err)
		}
		if err := c.AddResource(src[0], doc); err != nil {
			return nil, fmt.Errorf("meta-schema %s: %w", src[0], err)
		}
		sch, err := c.Compile(src[0])
		if err != nil {
			return nil, fmt.Errorf("meta-schema %s: %w", src[0], err)
		}
		out[data] = sch
	}
	return out, nil
})

// checkRequiredValue validates a decoded "required" value against the
// keyword meta-schema.
func checkRequiredValue(v any, allowData bool) error {
	schemas, err := metaSchemas()
	if err != nil {
		return err
	}
	return schemas[allowData].Validate(v)
}
