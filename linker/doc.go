// Package linker attaches an ABI description to a compiled WebAssembly module.
//
// The description travels as a custom section (named "abi" by default) that
// runtimes ignore and tooling reads. Annotation is idempotent and
// first-write-wins: a module that already carries the section is returned
// with its existing payload untouched.
//
// # Main Types
//
//   - Linker: configured annotator with text and binary entry points
//   - Annotate: the bare algorithm on an already parsed module
//
// # Pipeline
//
//	hex text -> bytes -> wasm.Module -> annotate -> bytes -> hex text
//
// Decoding and parsing are the only steps that fail; either failure aborts
// the call without output.
//
// # Thread Safety
//
// A Linker is immutable after New and safe for concurrent use. Every call
// works on its own copy of the input.
//
// # Example
//
//	l, _ := linker.New(linker.DefaultOptions())
//	out, err := l.Link(codeHex, `[{"type":"function","name":"add"}]`)
package linker
