package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		excludes []string
	}{
		{
			name: "parse error with section and offset",
			err: New(PhaseParse, KindTruncated).
				Section("code section").
				At(17).
				Detail("declares %d bytes, %d remain", 9, 2).
				Build(),
			contains: []string{"[parse]", "truncated", "in code section", "at offset 17", "declares 9 bytes, 2 remain"},
		},
		{
			name:     "minimal error",
			err:      New(PhaseEncode, KindInvalidData).Build(),
			contains: []string{"[encode]", "invalid_data"},
			excludes: []string{"offset", "caused by"},
		},
		{
			name:     "error with cause",
			err:      Load("compile module", errors.New("invalid magic")),
			contains: []string{"[load]", "invalid_data", "compile module", "caused by", "invalid magic"},
		},
		{
			name:     "decode error",
			err:      InvalidHex(3, 'z'),
			contains: []string{"[decode]", "invalid_hex", "at offset 3", `'z'`},
		},
		{
			name:     "config errors never print offsets",
			err:      &Error{Phase: PhaseConfig, Kind: KindInvalidInput, Position: 0},
			contains: []string{"[config]"},
			excludes: []string{"offset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("error message %q should not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseHost, KindInvalidData, cause, "instantiate env")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := Truncated("header", 4, "need 8 bytes")

	if !errors.Is(err, &Error{Phase: PhaseParse, Kind: KindTruncated}) {
		t.Error("should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindBadMagic}) {
		t.Error("should not match different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindTruncated}) {
		t.Error("should not match different phase")
	}
	if errors.Is(err, errors.New("other")) {
		t.Error("should not match non-Error target")
	}
}

func TestPhaseSentinels(t *testing.T) {
	tests := []struct {
		err       error
		wantParse bool
		wantDec   bool
	}{
		{OddLength(3), false, true},
		{InvalidHex(0, 'g'), false, true},
		{Truncated("section data", 9, ""), true, false},
		{New(PhaseParse, KindBadMagic).Build(), true, false},
		{InvalidInput(PhaseConfig, "bad level"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := errors.Is(tt.err, ErrParse); got != tt.wantParse {
				t.Errorf("Is(ErrParse) = %v, want %v", got, tt.wantParse)
			}
			if got := errors.Is(tt.err, ErrDecode); got != tt.wantDec {
				t.Errorf("Is(ErrDecode) = %v, want %v", got, tt.wantDec)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	var err error = NotFound(PhaseParse, "custom section", "abi")

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Kind != KindNotFound {
		t.Errorf("Kind = %v, want %v", target.Kind, KindNotFound)
	}
	if !strings.Contains(target.Detail, `"abi"`) {
		t.Errorf("Detail = %q, want quoted name", target.Detail)
	}
}
