package wasm

import (
	"github.com/wippyai/abilink/wasm/internal/binary"
)

// Encode encodes the module to WebAssembly binary format.
// Every size prefix is recomputed from the section content and written in
// its shortest LEB128 form.
func (m *Module) Encode() []byte {
	w := binary.NewWriterSize(m.encodedSize())

	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	for i := range m.Sections {
		writeSection(w, &m.Sections[i])
	}

	return w.Bytes()
}

func writeSection(w *binary.Writer, s *Section) {
	w.Byte(s.ID)
	w.WriteU32(uint32(s.Size()))
	if s.IsCustom() {
		w.WriteName(s.Name)
	}
	w.WriteBytes(s.Data)
}

func (m *Module) encodedSize() int {
	n := HeaderSize
	for i := range m.Sections {
		size := m.Sections[i].Size()
		n += 1 + binary.SizeU32(uint32(size)) + size
	}
	return n
}

func sizeName(s string) int {
	return binary.SizeU32(uint32(len(s))) + len(s)
}
