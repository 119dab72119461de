package instance

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a single YAML document. Members brought in through a
// merge key (<<) become prototypes of the mapping that merges them, so they
// are inherited rather than own members.
func DecodeYAML(b []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("instance: decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return nil, errors.New("instance: decode yaml: empty document")
	}
	c := &yamlConverter{objects: map[*yaml.Node]any{}}
	return c.convert(&doc)
}

type yamlConverter struct {
	// anchored nodes resolve to one shared value so merges share prototypes
	objects map[*yaml.Node]any
	depth   int
}

const maxYAMLDepth = 10000

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	if v, ok := c.objects[n]; ok {
		return v, nil
	}
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > maxYAMLDepth {
		return nil, errors.New("instance: decode yaml: max depth exceeded")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		c.objects[n] = out
		return out, nil
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("instance: decode yaml: line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("instance: decode yaml: unsupported node kind %d", n.Kind)
}

func (c *yamlConverter) mapping(n *yaml.Node) (any, error) {
	obj := &Object{values: map[string]any{}}
	c.objects[n] = obj
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := c.merge(obj, v); err != nil {
				return nil, err
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("instance: decode yaml: line %d: non-scalar mapping key", k.Line)
		}
		val, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		obj.Set(k.Value, val)
	}
	return obj, nil
}

func (c *yamlConverter) merge(obj *Object, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, s := range sources {
		pv, err := c.convert(s)
		if err != nil {
			return err
		}
		proto, ok := pv.(*Object)
		if !ok {
			return fmt.Errorf("instance: decode yaml: line %d: merge value must be a mapping", s.Line)
		}
		obj.Inherit(proto)
	}
	return nil
}
