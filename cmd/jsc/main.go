package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	j "github.com/goccy/go-json"

	"github.com/reoring/jsc"
	"github.com/reoring/jsc/instance"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	var code int
	switch sub {
	case "compile":
		code = compileCmd(os.Args[2:], os.Stdout)
	case "validate":
		code = validateCmd(os.Args[2:], os.Stdin, os.Stdout)
	default:
		usage()
		code = 2
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsc CLI\n\nUsage:\n  jsc compile -schema schema.json [options] [-o out.go]\n  jsc validate -schema schema.json -instance data.(json|yaml) [options]\n\nOptions:\n  -config file   YAML/JSON options file (JSC_* env vars override it)\n  -all-errors    report every missing property\n  -own           ignore inherited (merged) members\n  -loop N        loop threshold for static lists\n  -data          allow $data references\n  -v             verbose logs")
}

// common holds the flags shared by both subcommands.
type common struct {
	schema    string
	config    string
	allErrors bool
	own       bool
	loop      int
	data      bool
	verbose   bool
	fs        *flag.FlagSet
	logger    *slog.Logger
}

func newCommon(name string) *common {
	c := &common{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	c.fs.StringVar(&c.schema, "schema", "", "schema file (JSON)")
	c.fs.StringVar(&c.config, "config", "", "options file (YAML or JSON)")
	c.fs.BoolVar(&c.allErrors, "all-errors", false, "report every missing property")
	c.fs.BoolVar(&c.own, "own", false, "only own members count as present")
	c.fs.IntVar(&c.loop, "loop", jsc.DefaultLoopRequired, "loop threshold for static property lists")
	c.fs.BoolVar(&c.data, "data", false, "allow $data references")
	c.fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
	return c
}

func (c *common) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	c.logger = newLogger(os.Stderr, c.verbose)
	if c.schema == "" {
		return fmt.Errorf("-schema is required")
	}
	return nil
}

// newLogger writes to w through charmbracelet/log; -v lowers the level from
// warn to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
		Prefix:          "jsc",
	}))
}

// options loads file/env layers, then applies only the flags given on the
// command line.
func (c *common) options() (jsc.Options, error) {
	o, err := jsc.LoadOptions(c.config)
	if err != nil {
		return jsc.Options{}, err
	}
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "all-errors":
			o.AllErrors = c.allErrors
		case "own":
			o.OwnProperties = c.own
		case "loop":
			o.LoopRequired = c.loop
		case "data":
			o.Data = c.data
		}
	})
	c.logger.Debug("options resolved", "allErrors", o.AllErrors, "ownProperties", o.OwnProperties, "loopRequired", o.LoopRequired, "data", o.Data)
	return o, nil
}

func (c *common) compile() (*jsc.Validator, error) {
	o, err := c.options()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(c.schema)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	v, err := jsc.Compile(b, o)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("schema compiled", "schema", c.schema)
	return v, nil
}

func compileCmd(args []string, stdout io.Writer) int {
	c := newCommon("compile")
	var out string
	c.fs.StringVar(&out, "o", "", "output filename (default stdout)")
	if err := c.parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	v, err := c.compile()
	if err != nil {
		c.logger.Error("compile failed", "err", err)
		return 1
	}
	src, err := v.Source()
	if err != nil {
		c.logger.Error("render failed", "err", err)
		return 1
	}
	if out == "" {
		_, _ = stdout.Write(src)
		return 0
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		c.logger.Error("creating output dir", "err", err)
		return 1
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		c.logger.Error("writing output", "err", err)
		return 1
	}
	c.logger.Debug("wrote generated code", "out", out)
	return 0
}

func validateCmd(args []string, stdin io.Reader, stdout io.Writer) int {
	c := newCommon("validate")
	var inst string
	c.fs.StringVar(&inst, "instance", "", "instance file (.json, .yaml, .yml) or - for JSON on stdin")
	if err := c.parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if inst == "" {
		fmt.Fprintln(os.Stderr, "-instance is required")
		return 2
	}
	v, err := c.compile()
	if err != nil {
		c.logger.Error("compile failed", "err", err)
		return 1
	}
	ctx := context.Background()
	if inst == "-" {
		var data any
		data, err = instance.DecodeJSONReader(stdin, instance.DecodeOptions{MaxDepth: v.Options().MaxDepth})
		if err == nil {
			err = v.Validate(ctx, data)
		}
	} else {
		err = validateFile(ctx, v, inst)
	}
	if err == nil {
		c.logger.Debug("instance valid", "instance", inst)
		return 0
	}
	iss, ok := jsc.AsIssues(err)
	if !ok {
		c.logger.Error("validation failed", "instance", inst, "err", err)
		return 1
	}
	enc := j.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(iss); err != nil {
		c.logger.Error("encoding issues", "err", err)
	}
	return 1
}

// validateFile picks the decoder by extension: .yaml and .yml are YAML,
// anything else is JSON.
func validateFile(ctx context.Context, v *jsc.Validator, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading instance: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return v.ValidateYAML(ctx, b)
	default:
		return v.ValidateJSON(ctx, b)
	}
}
