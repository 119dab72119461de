package jsc_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/reoring/jsc"
)

// --- Fixtures: n required names, instance holding all of them ---

func requiredFixture(n int) (schema []byte, inst map[string]any) {
	names := make([]string, n)
	inst = make(map[string]any, n)
	for i := range names {
		names[i] = fmt.Sprintf("%q", fmt.Sprintf("p%d", i))
		inst[fmt.Sprintf("p%d", i)] = i
	}
	return []byte(`{"required":[` + strings.Join(names, ",") + `]}`), inst
}

func benchValidate(b *testing.B, n int, o jsc.Options) {
	schema, inst := requiredFixture(n)
	v, err := jsc.Compile(schema, o)
	if err != nil {
		b.Fatalf("compile: %v", err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.Validate(ctx, inst); err != nil {
			b.Fatal(err)
		}
	}
}

func loopAt(threshold int, all bool) jsc.Options {
	o := jsc.DefaultOptions()
	o.LoopRequired = threshold
	o.AllErrors = all
	return o
}

// --- Unrolled vs loop ---

func Benchmark_Required_Unrolled_10_FailFast(b *testing.B) {
	benchValidate(b, 10, loopAt(1000, false))
}

func Benchmark_Required_Loop_10_FailFast(b *testing.B) {
	benchValidate(b, 10, loopAt(0, false))
}

func Benchmark_Required_Unrolled_10_AllErrors(b *testing.B) {
	benchValidate(b, 10, loopAt(1000, true))
}

func Benchmark_Required_Loop_10_AllErrors(b *testing.B) {
	benchValidate(b, 10, loopAt(0, true))
}

func Benchmark_Required_Unrolled_300_FailFast(b *testing.B) {
	benchValidate(b, 300, loopAt(1000, false))
}

func Benchmark_Required_Loop_300_FailFast(b *testing.B) {
	benchValidate(b, 300, loopAt(0, false))
}

// --- Compile cost ---

func Benchmark_Compile_300(b *testing.B) {
	schema, _ := requiredFixture(300)
	b.ReportAllocs()
	b.SetBytes(int64(len(schema)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := jsc.Compile(schema); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Reference: santhosh-tekuri/jsonschema/v6 on the same input ---

func Benchmark_Required_jsonschema_v6_10(b *testing.B) {
	schema, inst := requiredFixture(10)
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schema)))
	if err != nil {
		b.Fatal(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("https://jsc.invalid/bench.json", doc); err != nil {
		b.Fatal(err)
	}
	sch, err := c.Compile("https://jsc.invalid/bench.json")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := sch.Validate(inst); err != nil {
			b.Fatal(err)
		}
	}
}
