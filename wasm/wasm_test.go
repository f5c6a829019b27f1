package wasm_test

import (
	"github.com/wippyai/abilink/wasm"
)

var header = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// section encodes one section with a shortest-form size.
func section(id byte, content []byte) []byte {
	out := []byte{id}
	out = wasm.AppendU32(out, uint32(len(content)))
	return append(out, content...)
}

func custom(name string, payload []byte) []byte {
	return section(wasm.SectionCustom, append(wasm.AppendName(nil, name), payload...))
}

func module(sections ...[]byte) []byte {
	out := append([]byte{}, header...)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

// addModule exports add(i32, i32) -> i32 and carries a trailing custom section.
func addModule() []byte {
	return module(
		section(wasm.SectionType, []byte{0x01, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f}),
		section(wasm.SectionFunction, []byte{0x01, 0x00}),
		section(wasm.SectionExport, wasm.AppendVec(nil, append(wasm.AppendName(nil, "add"), 0x00, 0x00))),
		section(wasm.SectionCode, wasm.AppendVec(nil, []byte{0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b})),
		custom("meta", []byte{1, 2, 3}),
	)
}
