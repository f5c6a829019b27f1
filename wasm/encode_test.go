package wasm_test

import (
	"bytes"
	"testing"

	"github.com/wippyai/abilink/wasm"
)

func TestEncodeEmptyModule(t *testing.T) {
	m := &wasm.Module{}
	data := m.Encode()

	if !bytes.Equal(data, header) {
		t.Errorf("empty module: got %x, want %x", data, header)
	}
}

func TestEncodeRoundTripBytes(t *testing.T) {
	inputs := map[string][]byte{
		"empty":   module(),
		"add":     addModule(),
		"customs": module(custom("a", nil), custom("b", []byte{0}), section(wasm.SectionMemory, []byte{0x01, 0x00, 0x01})),
		"large":   module(custom("blob", bytes.Repeat([]byte{0x5a}, 300))),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			m, err := wasm.ParseModule(data)
			if err != nil {
				t.Fatalf("ParseModule: %v", err)
			}
			if got := m.Encode(); !bytes.Equal(got, data) {
				t.Errorf("Encode(ParseModule(b)) != b\n got %x\nwant %x", got, data)
			}
		})
	}
}

func TestEncodeParseFidelity(t *testing.T) {
	m := &wasm.Module{Sections: []wasm.Section{
		wasm.NewCustomSection("abi", []byte(`[{"name":"f"}]`)),
		{ID: wasm.SectionType, Data: []byte{0x01, 0x60, 0x00, 0x00}},
		wasm.NewCustomSection("long", bytes.Repeat([]byte{0x01}, 200)),
		{ID: wasm.SectionData, Data: []byte{}},
	}}

	parsed, err := wasm.ParseModule(m.Encode())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if !parsed.Equal(m) {
		t.Errorf("ParseModule(Encode(m)) != m:\n got %+v\nwant %+v", parsed.Sections, m.Sections)
	}
}

func TestEncodeRecomputesSizes(t *testing.T) {
	m := &wasm.Module{Sections: []wasm.Section{
		wasm.NewCustomSection("abi", bytes.Repeat([]byte{'x'}, 130)),
	}}
	data := m.Encode()

	// 1 (name length) + 3 (name) + 130 (payload) = 134 = 0x86 0x01
	want := []byte{wasm.SectionCustom, 0x86, 0x01, 0x03, 'a', 'b', 'i'}
	if !bytes.Equal(data[8:8+len(want)], want) {
		t.Errorf("section prefix: got %x, want %x", data[8:8+len(want)], want)
	}
	if len(data) != 8+len(want)+130 {
		t.Errorf("total length: got %d", len(data))
	}
}

func TestEncodeCanonicalizesPaddedSizes(t *testing.T) {
	// Function section with a size written as a padded 5-byte LEB128.
	padded := module([]byte{wasm.SectionFunction, 0x82, 0x80, 0x80, 0x80, 0x00, 0x01, 0x00})
	canonical := module(section(wasm.SectionFunction, []byte{0x01, 0x00}))

	m, err := wasm.ParseModule(padded)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if got := m.Encode(); !bytes.Equal(got, canonical) {
		t.Errorf("got %x, want %x", got, canonical)
	}

	again, err := wasm.ParseModule(m.Encode())
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if !again.Equal(m) {
		t.Error("canonical re-encoding changed module content")
	}
}
