package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // transport text to bytes
	PhaseParse  Phase = "parse"  // module container structure
	PhaseEncode Phase = "encode" // module to bytes or text
	PhaseConfig Phase = "config" // configuration loading
	PhaseLoad   Phase = "load"   // module compilation for inspection
	PhaseHost   Phase = "host"   // host import registration
	PhaseABI    Phase = "abi"    // reading an ABI payload for display
)

// Kind categorizes the error
type Kind string

const (
	KindOddLength    Kind = "odd_length"
	KindInvalidHex   Kind = "invalid_hex"
	KindBadMagic     Kind = "bad_magic"
	KindBadVersion   Kind = "bad_version"
	KindTruncated    Kind = "truncated"
	KindInvalidUTF8  Kind = "invalid_utf8"
	KindOverflow     Kind = "overflow"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidData  Kind = "invalid_data"
	KindNotFound     Kind = "not_found"
)

// Phase sentinels. An Error matches a sentinel when the phases are equal,
// whatever its kind.
var (
	ErrDecode = &Error{Phase: PhaseDecode}
	ErrParse  = &Error{Phase: PhaseParse}
)

// Error is the structured error type used throughout abilink
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Section  string
	Detail   string
	Position int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
	}

	if e.Position >= 0 && (e.Phase == PhaseDecode || e.Phase == PhaseParse) {
		fmt.Fprintf(&b, " at offset %d", e.Position)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a kind matches every error of its phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == "" {
		return e.Phase == t.Phase
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Position: -1,
		},
	}
}

// Section sets the section being processed
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// At sets the byte or character offset
func (b *Builder) At(pos int) *Builder {
	b.err.Position = pos
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OddLength creates an error for hex text with an odd number of digits
func OddLength(length int) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindOddLength,
		Position: -1,
		Detail:   fmt.Sprintf("%d hex digits after removing whitespace", length),
	}
}

// InvalidHex creates an error for a non-hexadecimal character
func InvalidHex(pos int, c byte) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidHex,
		Position: pos,
		Detail:   fmt.Sprintf("invalid hex digit %q", c),
	}
}

// Truncated creates a parse error for input that ends before a structure is complete
func Truncated(section string, pos int, detail string) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindTruncated,
		Section:  section,
		Position: pos,
		Detail:   detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidInput,
		Position: -1,
		Detail:   detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidData,
		Position: -1,
		Detail:   detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNotFound,
		Position: -1,
		Detail:   fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     kind,
		Position: -1,
		Detail:   detail,
		Cause:    cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return Wrap(PhaseLoad, KindInvalidData, cause, detail)
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return Wrap(PhaseConfig, KindInvalidInput, cause, detail)
}
