package jsc

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsc/internal/keyword"
)

// DefaultLoopRequired is the static list length from which a loop is
// generated instead of one inlined check per name.
const DefaultLoopRequired = 200

// Options configure compilation.
type Options struct {
	// AllErrors reports every failure; otherwise validation stops at the
	// first one.
	AllErrors bool `mapstructure:"allErrors" yaml:"allErrors"`
	// OwnProperties ignores inherited members (YAML merge keys) when checking
	// presence.
	OwnProperties bool `mapstructure:"ownProperties" yaml:"ownProperties"`
	// LoopRequired is the loop threshold; 0 always loops. A zero Options
	// value therefore loops; use DefaultOptions as the starting point.
	LoopRequired int `mapstructure:"loopRequired" yaml:"loopRequired"`
	// Data accepts {"$data": pointer} keyword values.
	Data bool `mapstructure:"$data" yaml:"$data"`
	// MaxDepth bounds instance nesting for ValidateJSON (0 means unlimited).
	MaxDepth int `mapstructure:"maxDepth" yaml:"maxDepth"`
}

// DefaultOptions returns the options used when Compile gets none.
func DefaultOptions() Options {
	return Options{LoopRequired: DefaultLoopRequired}
}

func (o Options) keyword() keyword.Options {
	return keyword.Options{
		AllErrors:     o.AllErrors,
		OwnProperties: o.OwnProperties,
		LoopRequired:  o.LoopRequired,
		Data:          o.Data,
	}
}

func (o Options) validate() error {
	if o.LoopRequired < 0 {
		return fmt.Errorf("jsc: loopRequired must be >= 0, got %d", o.LoopRequired)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("jsc: maxDepth must be >= 0, got %d", o.MaxDepth)
	}
	return nil
}

// EnvPrefix prefixes the environment variables read by LoadOptions.
const EnvPrefix = "JSC_"

// envKeys maps environment variable suffixes to option keys.
var envKeys = map[string]string{
	"ALL_ERRORS":     "allErrors",
	"OWN_PROPERTIES": "ownProperties",
	"LOOP_REQUIRED":  "loopRequired",
	"DATA":           "$data",
	"MAX_DEPTH":      "maxDepth",
}

// LoadOptions layers DefaultOptions, the YAML (or JSON) file at path and
// JSC_* environment variables, later layers winning. An empty path skips
// the file layer.
func LoadOptions(path string) (Options, error) {
	layers := []map[string]any{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Options{}, fmt.Errorf("jsc: read options: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(b, &file); err != nil {
			return Options{}, fmt.Errorf("jsc: parse options %s: %w", path, err)
		}
		for key, raw := range file {
			v, err := normalizeOption(key, raw)
			if err != nil {
				return Options{}, fmt.Errorf("jsc: options %s: %s: %w", path, key, err)
			}
			file[key] = v
		}
		layers = append(layers, file)
	}
	env, err := envLayer()
	if err != nil {
		return Options{}, err
	}
	layers = append(layers, env)
	return decodeOptionLayers(layers...)
}

func envLayer() (map[string]any, error) {
	out := map[string]any{}
	for suffix, key := range envKeys {
		raw, ok := os.LookupEnv(EnvPrefix + suffix)
		if !ok {
			continue
		}
		v, err := normalizeOption(key, raw)
		if err != nil {
			return nil, fmt.Errorf("jsc: env %s%s: %w", EnvPrefix, suffix, err)
		}
		out[key] = v
	}
	return out, nil
}

// normalizeOption coerces a file or env value for a known key to its option
// type. Booleans also accept yes/no and on/off. Unknown keys pass through and
// are rejected when decoding.
func normalizeOption(key string, raw any) (any, error) {
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	switch key {
	case "loopRequired", "maxDepth":
		return cast.ToIntE(raw)
	case "allErrors", "ownProperties", "$data":
		if s, ok := raw.(string); ok {
			switch strings.ToLower(s) {
			case "yes", "y", "on":
				return true, nil
			case "no", "n", "off":
				return false, nil
			}
		}
		return cast.ToBoolE(raw)
	}
	return raw, nil
}

func decodeOptionLayers(layers ...map[string]any) (Options, error) {
	merged := map[string]any{}
	if err := mapstructure.Decode(DefaultOptions(), &merged); err != nil {
		return Options{}, fmt.Errorf("jsc: options defaults: %w", err)
	}
	for _, l := range layers {
		if err := mergo.Merge(&merged, l, mergo.WithOverride); err != nil {
			return Options{}, fmt.Errorf("jsc: merge options: %w", err)
		}
	}
	var o Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &o,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(merged); err != nil {
		return Options{}, fmt.Errorf("jsc: decode options: %w", err)
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
