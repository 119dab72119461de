// Package rt holds the runtime helpers that generated validators call into:
// the instance model seen by presence checks, $data pointer resolution and
// the Issue type that generated code records.
//
// Code rendered by Validator.Source refers to these helpers by name, and the
// in-process interpreter evaluates the very same functions, so the printed
// program and the executed program agree.
package rt
