// Package config loads abilink settings from a TOML file and the environment.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/abilink/errors"
	"github.com/wippyai/abilink/linker"
)

// Environment overrides, applied after the file.
const (
	EnvSection   = "ABILINK_SECTION"
	EnvLogLevel  = "ABILINK_LOG_LEVEL"
	EnvLogFormat = "ABILINK_LOG_FORMAT"
)

// Output conventions for linked modules.
const (
	OutputHex    = "hex"
	OutputBinary = "binary"
)

// Config holds CLI settings.
type Config struct {
	Section   string `toml:"section"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Output    string `toml:"output"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Section:   linker.DefaultSectionName,
		LogLevel:  "info",
		LogFormat: "console",
		Output:    OutputHex,
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Config("read "+path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.Config("unknown keys in "+path+": "+strings.Join(keys, ", "), nil)
		}
	}
	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSection)); v != "" {
		cfg.Section = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = v
	}
}

// Validate checks every field.
func Validate(cfg Config) error {
	if cfg.Section == "" {
		return errors.Config("section must not be empty", nil)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Config("log_level", err)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return errors.Config("log_format must be console or json, got "+cfg.LogFormat, nil)
	}
	switch cfg.Output {
	case OutputHex, OutputBinary:
	default:
		return errors.Config("output must be hex or binary, got "+cfg.Output, nil)
	}
	return nil
}

// LinkerOptions returns linker options for cfg using log.
func (c Config) LinkerOptions(log *zap.Logger) linker.Options {
	return linker.Options{SectionName: c.Section, Logger: log}
}

// NewLogger builds a stderr logger at the configured level and encoding.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Config("log_level", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.LogFormat
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true

	log, err := zc.Build()
	if err != nil {
		return nil, errors.Config("build logger", err)
	}
	return log, nil
}
