// Package wasm reads and writes the WebAssembly binary container.
//
// A module is handled as an ordered list of sections. Standard sections are
// kept as opaque content; custom sections are split into name and payload so
// they can be looked up and added. Nothing inside a section is validated, so
// any module a runtime accepts before editing is accepted after it.
//
// # Parsing
//
//	data, _ := os.ReadFile("module.wasm")
//	module, err := wasm.ParseModule(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Editing and Encoding
//
//	if _, ok := module.Custom("abi"); !ok {
//	    module.Prepend(wasm.NewCustomSection("abi", payload))
//	}
//	encoded := module.Encode()
//
// # Round Trips
//
// Encode recomputes every size prefix in its shortest LEB128 form. For any
// module m returned by ParseModule:
//
//	again, _ := wasm.ParseModule(m.Encode())
//	again.Equal(m) // true
//
// and m.Encode() reproduces the original bytes whenever the producer also
// used shortest-form sizes, which every mainstream toolchain does.
//
// # Binary Format Reference
//
// Header (8 bytes):
//
//	Magic:   0x00 0x61 0x73 0x6D  ("\0asm")
//	Version: 0x01 0x00 0x00 0x00  (version 1)
//
// Section format:
//
//	ID:      1 byte
//	Size:    u32 LEB128
//	Content: Size bytes
//
// Custom section content:
//
//	Name:    u32 LEB128 length, UTF-8 bytes
//	Payload: remaining bytes
package wasm
