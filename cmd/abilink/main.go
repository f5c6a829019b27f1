package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/abilink/config"
	"github.com/wippyai/abilink/engine"
	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/hexcodec"
	"github.com/wippyai/abilink/linker"
)

const usage = `Usage: abilink link    [-config f] [-section name] [-in f] [-binary] [-abi text | -abi-file f] [-out f] [-output hex|binary] [-v]
       abilink inspect [-config f] [-section name] [-in f] [-binary] [-i]

Module input is hex text unless -binary is given. -in and -out default to stdin and stdout.`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return errors.InvalidInput(errors.PhaseConfig, "missing command")
	}

	switch args[0] {
	case "link":
		return runLink(args[1:], stdin, stdout, stderr)
	case "inspect":
		return runInspect(ctx, args[1:], stdin, stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		fmt.Fprintln(stderr, usage)
		return errors.InvalidInput(errors.PhaseConfig, "unknown command "+args[0])
	}
}

// common holds flags shared by every subcommand.
type common struct {
	configPath string
	section    string
	in         string
	binary     bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to abilink.toml")
	fs.StringVar(&c.section, "section", "", "Annotation section name (overrides config)")
	fs.StringVar(&c.in, "in", "", "Module input file (default stdin)")
	fs.BoolVar(&c.binary, "binary", false, "Input is a raw .wasm binary instead of hex text")
}

func (c *common) load() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.section != "" {
		cfg.Section = c.section
	}
	return cfg, nil
}

// readModule returns raw module bytes from the input file or stdin.
func (c *common) readModule(stdin io.Reader) ([]byte, error) {
	data, err := readInput(c.in, stdin)
	if err != nil {
		return nil, err
	}
	if c.binary {
		return data, nil
	}
	return hexcodec.Decode(string(data))
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	return data, nil
}

func runLink(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("link", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		c       common
		abiText = fs.String("abi", "", "ABI description text")
		abiFile = fs.String("abi-file", "", "Read the ABI description from a file")
		out     = fs.String("out", "", "Output file (default stdout)")
		output  = fs.String("output", "", "Output format: hex or binary (overrides config)")
		verbose = fs.Bool("v", false, "Debug logging")
	)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	payload, err := abiPayload(*abiText, *abiFile)
	if err != nil {
		return err
	}

	l, err := linker.New(cfg.LinkerOptions(log))
	if err != nil {
		return err
	}

	bin, err := c.readModule(stdin)
	if err != nil {
		return err
	}
	linked, err := l.LinkBinary(bin, payload)
	if err != nil {
		return err
	}

	var result []byte
	if cfg.Output == config.OutputBinary {
		result = linked
	} else {
		result = []byte(hexcodec.Encode(linked) + "\n")
	}

	if err := writeOutput(*out, stdout, result); err != nil {
		return err
	}
	log.Info("linked module",
		zap.String("section", cfg.Section),
		zap.Int("input_size", len(bin)),
		zap.Int("output_size", len(linked)))
	return nil
}

func abiPayload(text, file string) ([]byte, error) {
	switch {
	case text != "" && file != "":
		return nil, errors.InvalidInput(errors.PhaseConfig, "use either -abi or -abi-file, not both")
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+file)
		}
		return data, nil
	case text != "":
		return []byte(text), nil
	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, "an ABI description is required (-abi or -abi-file)")
	}
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "write "+path)
	}
	return nil
}

func runInspect(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var c common
	interactive := fs.Bool("i", false, "Interactive section browser")
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	engine.SetLogger(log)

	bin, err := c.readModule(stdin)
	if err != nil {
		return err
	}

	name := c.in
	piped := name == "" || name == "-"
	if piped {
		name = "<stdin>"
	}
	rep, err := buildReport(ctx, name, bin, cfg.Section)
	if err != nil {
		return err
	}

	if *interactive {
		if !isTerminal(stdout) || strings.TrimSpace(os.Getenv("TERM")) == "dumb" {
			return errors.InvalidInput(errors.PhaseConfig, "interactive mode requires a terminal")
		}
		return runInteractive(rep, piped)
	}

	rep.write(stdout, newStyler(isTerminal(stdout)))
	return nil
}
