package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/abilink/abi"
	"github.com/wippyai/abilink/engine"
	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/wasm"
)

var errNoSignatures = &errors.Error{Phase: errors.PhaseABI, Kind: errors.KindInvalidInput}

// previewLimit caps how many payload bytes are shown per section.
const previewLimit = 256

type sectionRow struct {
	Index int
	Kind  string
	Name  string
	Data  []byte
}

func (r sectionRow) label() string {
	if r.Name != "" {
		return r.Kind + " " + r.Name
	}
	return r.Kind
}

// report is everything inspect knows about a module.
type report struct {
	Source     string
	Size       int
	Section    string
	Rows       []sectionRow
	Annotation []byte
	Annotated  bool
	Signatures []abi.Signature
	SigErr     error
	Runtime    *engine.Description
	RuntimeErr error
}

func buildReport(ctx context.Context, source string, bin []byte, section string) (*report, error) {
	m, err := wasm.ParseModule(bin)
	if err != nil {
		return nil, err
	}

	rep := &report{Source: source, Size: len(bin), Section: section}
	for i, s := range m.Sections {
		rep.Rows = append(rep.Rows, sectionRow{
			Index: i,
			Kind:  wasm.SectionName(s.ID),
			Name:  s.Name,
			Data:  s.Data,
		})
	}

	if s, ok := m.Custom(section); ok {
		rep.Annotated = true
		rep.Annotation = s.Data
		if utf8.Valid(s.Data) {
			rep.Signatures, rep.SigErr = abi.ParseSignatures(string(s.Data))
			// Payloads are opaque; only report errors for text that looked like signatures.
			if stderrors.Is(rep.SigErr, errNoSignatures) {
				rep.SigErr = nil
			}
		}
	}

	rep.Runtime, rep.RuntimeErr = engine.Describe(ctx, bin)
	return rep, nil
}

// styler renders headings, colored only on terminals.
type styler struct {
	color   bool
	heading lipgloss.Style
	name    lipgloss.Style
	faint   lipgloss.Style
	err     lipgloss.Style
}

func newStyler(color bool) styler {
	return styler{
		color:   color,
		heading: titleStyle,
		name:    funcStyle,
		faint:   helpStyle,
		err:     errorStyle,
	}
}

func (s styler) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

func (r *report) write(w io.Writer, s styler) {
	fmt.Fprintf(w, "%s %s (%d bytes, %d sections)\n\n",
		s.render(s.heading, "Module"), r.Source, r.Size, len(r.Rows))

	fmt.Fprintf(w, "%4s  %-10s %8s  %s\n", "#", "KIND", "SIZE", "NAME")
	for _, row := range r.Rows {
		name := row.Name
		if row.Kind == "custom" {
			name = s.render(s.name, name)
		}
		fmt.Fprintf(w, "%4d  %-10s %8d  %s\n", row.Index, row.Kind, len(row.Data), name)
	}
	fmt.Fprintln(w)

	title := fmt.Sprintf("Annotation %q", r.Section)
	if !r.Annotated {
		fmt.Fprintf(w, "%s %s\n", s.render(s.heading, title), s.render(s.faint, "absent"))
	} else {
		fmt.Fprintf(w, "%s (%d bytes)\n", s.render(s.heading, title), len(r.Annotation))
		fmt.Fprintln(w, indent(preview(r.Annotation)))
		switch {
		case r.SigErr != nil:
			fmt.Fprintf(w, "  %s\n", s.render(s.err, "signatures: "+r.SigErr.Error()))
		case len(r.Signatures) > 0:
			fmt.Fprintln(w, "  signatures:")
			for _, sig := range r.Signatures {
				fmt.Fprintf(w, "    %s\n", s.render(s.name, sig.String()))
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.render(s.heading, "Runtime view"))
	if r.RuntimeErr != nil {
		fmt.Fprintf(w, "  %s\n", s.render(s.err, "unavailable: "+r.RuntimeErr.Error()))
		return
	}
	writeFunctions(w, "imports", r.Runtime.Imports)
	writeFunctions(w, "exports", r.Runtime.Exports)
	if len(r.Runtime.CustomSections) > 0 {
		fmt.Fprintf(w, "  custom sections: %s\n", strings.Join(r.Runtime.CustomSections, ", "))
	}
}

func writeFunctions(w io.Writer, label string, fns []engine.Function) {
	if len(fns) == 0 {
		fmt.Fprintf(w, "  %s: none\n", label)
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, fn := range fns {
		fmt.Fprintf(w, "    %s\n", fn)
	}
}

// preview shows printable payloads as text and everything else as hex rows.
func preview(data []byte) string {
	truncated := len(data) > previewLimit
	if truncated {
		data = data[:previewLimit]
	}

	var out string
	if utf8.Valid(data) && printable(string(data)) {
		out = string(data)
	} else {
		out = hexRows(data)
	}
	if truncated {
		out += "\n..."
	}
	return out
}

func printable(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

func hexRows(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		if off > 0 {
			b.WriteByte('\n')
		}
		end := min(off+16, len(data))
		fmt.Fprintf(&b, "%04x  % x", off, data[off:end])
	}
	return b.String()
}

func indent(s string) string {
	if s == "" {
		return "  (empty)"
	}
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}
