package wasm

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/wasm/internal/binary"
)

// ParseModule splits a WebAssembly binary into its sections.
//
// Only the container is checked: the header, each section's size prefix
// against the bytes that remain, and custom section names. Section ids and
// ordering are preserved as found. The returned module does not alias data.
// All failures are errors.ErrParse class errors.
func ParseModule(data []byte) (*Module, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, errors.Truncated("header", r.Position(),
			fmt.Sprintf("need %d bytes, have %d", HeaderSize, len(data)))
	}
	if magic != Magic {
		return nil, errors.New(errors.PhaseParse, errors.KindBadMagic).
			Section("header").At(0).
			Detail("got %#08x, want %#08x", magic, Magic).
			Build()
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, errors.Truncated("header", r.Position(),
			fmt.Sprintf("need %d bytes, have %d", HeaderSize, len(data)))
	}
	if version != Version {
		return nil, errors.New(errors.PhaseParse, errors.KindBadVersion).
			Section("header").At(4).
			Detail("unsupported binary version %d", version).
			Build()
	}

	m := &Module{}
	for r.Remaining() > 0 {
		start := r.Position()
		id, err := r.ReadByte()
		if err != nil {
			return nil, readError("section header", r.Position(), err)
		}
		label := SectionName(id) + " section"

		size, err := r.ReadU32()
		if err != nil {
			return nil, readError(label, r.Position(), err)
		}
		if int64(size) > int64(r.Remaining()) {
			return nil, errors.Truncated(label, start,
				fmt.Sprintf("section %d declares %d bytes, %d remain", len(m.Sections), size, r.Remaining()))
		}

		content, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, readError(label, r.Position(), err)
		}

		sec := Section{ID: id, Data: content}
		if id == SectionCustom {
			sec.Name, sec.Data, err = splitCustom(content, r.Position()-len(content))
			if err != nil {
				return nil, err
			}
		}
		m.Sections = append(m.Sections, sec)
	}

	return m, nil
}

// splitCustom separates a custom section's name from its payload.
// base is the absolute offset of content within the module.
func splitCustom(content []byte, base int) (string, []byte, error) {
	sr := binary.NewReader(content)
	name, err := sr.ReadName()
	if err != nil {
		return "", nil, readError("custom section", base+sr.Position(), err)
	}
	payload, err := sr.ReadRemaining()
	if err != nil {
		return "", nil, readError("custom section", base+sr.Position(), err)
	}
	return name, payload, nil
}

func readError(section string, pos int, err error) error {
	kind := errors.KindInvalidData
	detail := err.Error()
	switch {
	case stderrors.Is(err, binary.ErrShort), stderrors.Is(err, io.EOF):
		kind = errors.KindTruncated
		detail = "unexpected end of input"
	case stderrors.Is(err, binary.ErrOverflow):
		kind = errors.KindOverflow
	case stderrors.Is(err, binary.ErrInvalidUTF8):
		kind = errors.KindInvalidUTF8
	}
	return errors.New(errors.PhaseParse, kind).
		Section(section).
		At(pos).
		Detail("%s", detail).
		Build()
}
