package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/abilink/config"
	"github.com/wippyai/abilink/engine"
	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/hexcodec"
	"github.com/wippyai/abilink/wasm"
)

const emptyModuleHex = "0061736d01000000"

func quiet(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvSection, "")
	t.Setenv(config.EnvLogFormat, "")
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestLinkFromStdin(t *testing.T) {
	quiet(t)

	out, err := runCLI(t, emptyModuleHex+"\n", "link", "-abi", "myabi")
	require.NoError(t, err)
	require.Equal(t, "0061736d01000000"+"0009036162696d79616269\n", out)
}

func TestLinkKeepsExistingAnnotation(t *testing.T) {
	quiet(t)

	first, err := runCLI(t, emptyModuleHex, "link", "-abi", "one")
	require.NoError(t, err)

	second, err := runCLI(t, first, "link", "-abi", "two")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLinkFilesAndBinaryOutput(t *testing.T) {
	quiet(t)
	dir := t.TempDir()

	guest := engine.NewLogGuest("hi")
	in := filepath.Join(dir, "guest.wasm")
	require.NoError(t, os.WriteFile(in, guest, 0o644))
	abiFile := filepath.Join(dir, "guest.wit")
	require.NoError(t, os.WriteFile(abiFile, []byte("run: func();"), 0o644))
	out := filepath.Join(dir, "linked.wasm")

	stdout, err := runCLI(t, "", "link", "-in", in, "-binary", "-abi-file", abiFile, "-out", out, "-output", "binary")
	require.NoError(t, err)
	require.Empty(t, stdout)

	linked, err := os.ReadFile(out)
	require.NoError(t, err)
	m, err := wasm.ParseModule(linked)
	require.NoError(t, err)
	s, ok := m.Custom("abi")
	require.True(t, ok)
	require.Equal(t, "run: func();", string(s.Data))
	require.True(t, m.Sections[0].IsCustom())
}

func TestLinkSectionFromConfig(t *testing.T) {
	quiet(t)
	path := filepath.Join(t.TempDir(), "abilink.toml")
	require.NoError(t, os.WriteFile(path, []byte("section = \"component-abi\"\nlog_level = \"error\"\n"), 0o644))

	out, err := runCLI(t, emptyModuleHex, "link", "-config", path, "-abi", "x")
	require.NoError(t, err)

	bin, err := hexcodec.Decode(out)
	require.NoError(t, err)
	m, err := wasm.ParseModule(bin)
	require.NoError(t, err)
	_, ok := m.Custom("component-abi")
	require.True(t, ok)
	_, ok = m.Custom("abi")
	require.False(t, ok)
}

func TestLinkErrors(t *testing.T) {
	quiet(t)

	tests := []struct {
		name   string
		stdin  string
		args   []string
		target error
	}{
		{"odd hex", "0061736d0100000", []string{"link", "-abi", "a"}, errors.ErrDecode},
		{"bad hex", "zz61736d01000000", []string{"link", "-abi", "a"}, errors.ErrDecode},
		{"bad magic", "0061736e01000000", []string{"link", "-abi", "a"}, errors.ErrParse},
		{"truncated section", emptyModuleHex + "0105", []string{"link", "-abi", "a"}, errors.ErrParse},
		{"no abi", emptyModuleHex, []string{"link"}, &errors.Error{Phase: errors.PhaseConfig}},
		{"both abi flags", emptyModuleHex, []string{"link", "-abi", "a", "-abi-file", "f"}, &errors.Error{Phase: errors.PhaseConfig}},
		{"bad output", emptyModuleHex, []string{"link", "-abi", "a", "-output", "base64"}, &errors.Error{Phase: errors.PhaseConfig}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "", "frobnicate")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command frobnicate")

	_, err = runCLI(t, "")
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	quiet(t)

	linked, err := runCLI(t, hexcodec.Encode(engine.NewLogGuest("hello")), "link", "-abi", "run: func();")
	require.NoError(t, err)

	out, err := runCLI(t, linked, "inspect")
	require.NoError(t, err)

	require.Contains(t, out, "Module <stdin>")
	require.Contains(t, out, `Annotation "abi" (12 bytes)`)
	require.Contains(t, out, "run: func();")
	require.Contains(t, out, "signatures:")
	require.Contains(t, out, "env.log(i32, i32)")
	require.Contains(t, out, "custom sections: abi")

	lines := strings.Split(out, "\n")
	require.Contains(t, lines[3], "custom")
	require.Contains(t, lines[3], "abi")
}

func TestInspectWithoutAnnotation(t *testing.T) {
	quiet(t)

	out, err := runCLI(t, emptyModuleHex, "inspect", "-section", "meta")
	require.NoError(t, err)
	require.Contains(t, out, `Annotation "meta" absent`)
	require.Contains(t, out, "imports: none")
}

func TestInspectOpaquePayload(t *testing.T) {
	quiet(t)

	out, err := runCLI(t, emptyModuleHex+"0009036162696d79616269", "inspect")
	require.NoError(t, err)
	require.Contains(t, out, "myabi")
	require.NotContains(t, out, "signatures")
}

func TestInspectInteractiveNeedsTerminal(t *testing.T) {
	quiet(t)

	_, err := runCLI(t, emptyModuleHex, "inspect", "-i")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a terminal")
}

func TestPreview(t *testing.T) {
	require.Equal(t, "abc", preview([]byte("abc")))
	require.Equal(t, "0000  00 01 ff", preview([]byte{0x00, 0x01, 0xff}))

	long := bytes.Repeat([]byte("a"), previewLimit+1)
	require.True(t, strings.HasSuffix(preview(long), "\n..."))
}
