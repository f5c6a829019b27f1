package linker

import (
	"go.uber.org/zap"

	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/hexcodec"
	"github.com/wippyai/abilink/wasm"
)

// DefaultSectionName is the custom section that carries the ABI description.
const DefaultSectionName = "abi"

// Options configures linker behavior.
type Options struct {
	// Logger overrides the package logger for this Linker.
	Logger *zap.Logger

	// SectionName is the custom section to create. Empty is rejected by New.
	SectionName string
}

// DefaultOptions returns default linker configuration.
func DefaultOptions() Options {
	return Options{
		SectionName: DefaultSectionName,
	}
}

// Linker embeds ABI descriptions into modules.
// Thread-safe.
type Linker struct {
	log     *zap.Logger
	options Options
}

// New creates a Linker with the given options.
func New(opts Options) (*Linker, error) {
	if opts.SectionName == "" {
		return nil, errors.InvalidInput(errors.PhaseEncode, "section name must not be empty")
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Linker{
		log:     log.With(zap.String("section", opts.SectionName)),
		options: opts,
	}, nil
}

// NewWithDefaults creates a Linker that writes the "abi" section.
func NewWithDefaults() *Linker {
	l, _ := New(DefaultOptions())
	return l
}

// Options returns the configuration.
func (l *Linker) Options() Options {
	return l.options
}

// Link decodes hex module text, annotates it with abi and returns the result
// as lowercase hex text.
//
// Malformed hex yields an errors.ErrDecode class error, a malformed module an
// errors.ErrParse class error.
func (l *Linker) Link(code, abi string) (string, error) {
	bin, err := hexcodec.Decode(code)
	if err != nil {
		l.log.Debug("reject module text", zap.Error(err))
		return "", err
	}
	out, err := l.LinkBinary(bin, []byte(abi))
	if err != nil {
		return "", err
	}
	return hexcodec.Encode(out), nil
}

// LinkBinary annotates a raw module with payload and returns the new encoding.
// bin and payload are not retained.
func (l *Linker) LinkBinary(bin, payload []byte) ([]byte, error) {
	m, err := wasm.ParseModule(bin)
	if err != nil {
		l.log.Debug("reject module", zap.Int("size", len(bin)), zap.Error(err))
		return nil, err
	}

	name := l.options.SectionName
	if existing, ok := m.Custom(name); ok {
		l.log.Debug("annotation present, keeping first",
			zap.Int("sections", len(m.Sections)),
			zap.Int("existing_size", len(existing.Data)),
			zap.Int("ignored_size", len(payload)))
	} else {
		l.log.Debug("inserting annotation",
			zap.Int("sections", len(m.Sections)),
			zap.Int("payload_size", len(payload)))
	}

	out := Annotate(m, name, payload).Encode()
	l.log.Debug("module encoded", zap.Int("input_size", len(bin)), zap.Int("output_size", len(out)))
	return out, nil
}
