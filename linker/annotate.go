package linker

import (
	"github.com/wippyai/abilink/wasm"
)

// Annotate ensures m carries a custom section called name.
//
// When such a section already exists m is returned unchanged and payload is
// ignored. Otherwise a section holding a copy of payload is inserted ahead of
// every existing section. m is modified in place and returned.
func Annotate(m *wasm.Module, name string, payload []byte) *wasm.Module {
	if _, ok := m.Custom(name); ok {
		return m
	}
	m.Prepend(wasm.NewCustomSection(name, payload))
	return m
}
