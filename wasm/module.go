package wasm

import "bytes"

// Module is a WebAssembly binary module viewed as its ordered section list.
// Section contents are kept as raw bytes; nothing below the container level
// is decoded.
type Module struct {
	Sections []Section
}

// Section is one module section.
// For custom sections Name holds the section name and Data the payload that
// follows it. For all other sections Name is empty and Data is the raw content.
type Section struct {
	Name string
	Data []byte
	ID   byte
}

// NewCustomSection returns a custom section holding a copy of data.
func NewCustomSection(name string, data []byte) Section {
	return Section{
		ID:   SectionCustom,
		Name: name,
		Data: append([]byte{}, data...),
	}
}

// IsCustom reports whether s is a custom section.
func (s *Section) IsCustom() bool {
	return s.ID == SectionCustom
}

// Size returns the encoded content length of s, excluding the id byte and
// the size prefix.
func (s *Section) Size() int {
	if s.IsCustom() {
		return sizeName(s.Name) + len(s.Data)
	}
	return len(s.Data)
}

// Equal reports whether two sections have the same id, name and content.
func (s *Section) Equal(o *Section) bool {
	return s.ID == o.ID && s.Name == o.Name && bytes.Equal(s.Data, o.Data)
}

// Custom returns the first custom section with the given name.
func (m *Module) Custom(name string) (*Section, bool) {
	for i := range m.Sections {
		if s := &m.Sections[i]; s.IsCustom() && s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// CustomSections returns every custom section with the given name in module order.
func (m *Module) CustomSections(name string) []*Section {
	var out []*Section
	for i := range m.Sections {
		if s := &m.Sections[i]; s.IsCustom() && s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// Prepend inserts s before all existing sections.
func (m *Module) Prepend(s Section) {
	m.Sections = append([]Section{s}, m.Sections...)
}

// Equal reports whether both modules hold equal sections in the same order.
func (m *Module) Equal(o *Module) bool {
	if len(m.Sections) != len(o.Sections) {
		return false
	}
	for i := range m.Sections {
		if !m.Sections[i].Equal(&o.Sections[i]) {
			return false
		}
	}
	return true
}
