package jsc

// Package jsc compiles the JSON Schema "required" keyword into an executable
// validator.
//
// - A schema document is decoded, its "required" value is checked against the
//   keyword's meta-schema and turned into a generated program
// - The program can be printed as Go source (Validator.Source) or executed
//   against instances (Validator.Validate)
// - Failures are reported as Issues (keyword, code, message, params)
//
// Design policy:
// - Keep only public APIs in the root package; code generation lives under
//   internal/, runtime helpers under rt/, the instance model under instance/.
// - Keyword compilers live under vocabulary/ and only talk to internal/keyword.
//
// Typical usage:
//
//  v, err := jsc.Compile([]byte(`{"required":["id","email"]}`), jsc.Options{AllErrors: true, LoopRequired: 200})
//  err = v.ValidateJSON(ctx, body)
//  if iss, ok := jsc.AsIssues(err); ok { ... }
//
