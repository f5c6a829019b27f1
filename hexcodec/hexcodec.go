// Package hexcodec converts between raw module bytes and the hexadecimal
// text used to carry them across a host call boundary.
//
// Decode tolerates whitespace and either letter case; Encode always emits
// lowercase digits with no separators, so Encode(Decode(s)) reproduces s for
// any canonical input.
package hexcodec

import (
	"encoding/hex"
	"strings"

	"github.com/wippyai/abilink/errors"
)

// Clean removes the whitespace Decode ignores: space, tab, CR and LF.
func Clean(text string) string {
	if strings.IndexAny(text, " \t\r\n") < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case ' ', '\t', '\r', '\n':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Decode strips whitespace from text and decodes the remaining digit pairs.
// Failures are errors.ErrDecode class errors with kind odd_length or
// invalid_hex; offsets refer to the cleaned text.
func Decode(text string) ([]byte, error) {
	s := Clean(text)
	if len(s)%2 != 0 {
		return nil, errors.OddLength(len(s))
	}
	out := make([]byte, len(s)/2)
	if _, err := hex.Decode(out, []byte(s)); err != nil {
		if ib, ok := err.(hex.InvalidByteError); ok {
			return nil, errors.InvalidHex(strings.IndexByte(s, byte(ib)), byte(ib))
		}
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidHex, err, "decode hex")
	}
	return out, nil
}

// Encode returns the lowercase hex form of data.
func Encode(data []byte) string {
	return hex.EncodeToString(data)
}
