package abilink

import (
	"github.com/wippyai/abilink/linker"
)

// AnnotationSection is the custom section name Link writes.
const AnnotationSection = linker.DefaultSectionName

var defaultLinker = linker.NewWithDefaults()

// Link takes a module as hex text and an ABI description, and returns the
// module as lowercase hex text with the description stored in the "abi"
// custom section. A module that already has the section is returned
// re-encoded with its original description.
func Link(code, abi string) (string, error) {
	return defaultLinker.Link(code, abi)
}
