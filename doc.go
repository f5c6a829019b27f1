// Package abilink embeds ABI descriptions into compiled WebAssembly modules.
//
// A contract toolchain produces a module and, separately, a description of
// the functions it exposes. abilink stores that description inside the module
// as a custom section so the two always travel together. Runtimes ignore
// custom sections, so the annotated module executes exactly as before.
//
// # Architecture Overview
//
//	abilink/             Root package with the Link entry point
//	├── linker/          Annotation algorithm and pipeline
//	├── wasm/            Section-level module parser and encoder
//	├── hexcodec/        Hex transport encoding
//	├── errors/          Structured error types
//	├── abi/             WIT-style reading of ABI payloads for display
//	├── engine/          wazero integration for inspection and host imports
//	├── config/          TOML configuration and logger setup
//	└── cmd/             abilink CLI and the js/wasm host adapter
//
// # Quick Start
//
//	out, err := abilink.Link(moduleHex, abiJSON)
//	if errors.Is(err, abierrors.ErrDecode) {
//	    // input was not hex
//	}
//
// Link is idempotent: linking an already linked module returns it unchanged,
// keeping the first description.
//
// # Thread Safety
//
// Link holds no state between calls and is safe for concurrent use.
package abilink
