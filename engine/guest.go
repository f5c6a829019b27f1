package engine

import (
	"github.com/wippyai/abilink/wasm"
)

// NewLogGuest returns a module that places message in its memory and
// exports run(), which passes it to env.log. It is the smallest guest that
// exercises the host logging import.
func NewLogGuest(message string) []byte {
	return buildLogGuest([]byte(message), 0, int32(len(message)))
}

// buildLogGuest stores data at offset 0 and calls env.log(ptr, length) from run.
func buildLogGuest(data []byte, ptr, length int32) []byte {
	const (
		i32      = 0x7f
		funcType = 0x60
	)

	types := wasm.AppendVec(nil,
		[]byte{funcType, 0x02, i32, i32, 0x00}, // (i32, i32) -> ()
		[]byte{funcType, 0x00, 0x00},           // () -> ()
	)
	imports := wasm.AppendVec(nil,
		append(wasm.AppendName(wasm.AppendName(nil, LogModule), LogFunction), 0x00, 0x00),
	)
	funcs := wasm.AppendVec(nil, []byte{0x01})
	memory := wasm.AppendVec(nil, []byte{0x00, 0x01}) // min 1 page, no max
	exports := wasm.AppendVec(nil,
		append(wasm.AppendName(nil, "run"), 0x00, 0x01),
		append(wasm.AppendName(nil, "memory"), 0x02, 0x00),
	)

	body := []byte{0x00} // no locals
	body = append(body, 0x41)
	body = wasm.AppendS32(body, ptr)
	body = append(body, 0x41)
	body = wasm.AppendS32(body, length)
	body = append(body, 0x10, 0x00, 0x0b) // call 0, end
	code := wasm.AppendVec(nil, append(wasm.AppendU32(nil, uint32(len(body))), body...))

	segment := []byte{0x00, 0x41, 0x00, 0x0b} // active, memory 0, offset i32.const 0
	segment = wasm.AppendU32(segment, uint32(len(data)))
	segment = append(segment, data...)
	dataSec := wasm.AppendVec(nil, segment)

	m := &wasm.Module{Sections: []wasm.Section{
		{ID: wasm.SectionType, Data: types},
		{ID: wasm.SectionImport, Data: imports},
		{ID: wasm.SectionFunction, Data: funcs},
		{ID: wasm.SectionMemory, Data: memory},
		{ID: wasm.SectionExport, Data: exports},
		{ID: wasm.SectionCode, Data: code},
		{ID: wasm.SectionData, Data: dataSec},
	}}
	return m.Encode()
}
