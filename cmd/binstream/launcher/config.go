// This file maps CLI context and the optional YAML file to the Config struct.

package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-binstream/integration"
	"github.com/rony4d/go-binstream/utils/chunks"
)

// Config aggregates everything a command needs besides its own flags.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type InputConfig struct {
	Preset      string `yaml:"preset"`
	Compression string `yaml:"compression"`
	ChunkSize   int    `yaml:"chunksize"`
	MaxFrame    int    `yaml:"maxframe"`
}

type OutputConfig struct {
	Digest bool `yaml:"digest"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Input: InputConfig{
			Compression: d.Input.Compression,
			ChunkSize:   d.Input.ChunkSize,
			MaxFrame:    d.Input.MaxFrame,
		},
		Output: OutputConfig{
			Digest: d.Output.Digest,
		},
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults, the config file, the selected preset and CLI
// overrides, in that order, and validates the result.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if ctx.GlobalIsSet("preset") {
		cfg.Input.Preset = ctx.GlobalString("preset")
	}
	if cfg.Input.Preset != "" {
		if err := applyPreset(&cfg, cfg.Input.Preset); err != nil {
			return Config{}, err
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

// loadConfigFile decodes YAML into cfg, keeping values the file does not mention.
// Unknown keys are an error; an empty file is not.
func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyPreset(cfg *Config, name string) error {
	preset, err := integration.GetPresetByName(name)
	if err != nil {
		return err
	}
	compression, err := chunks.ParseCompression(cfg.Input.Compression)
	if err != nil {
		return err
	}
	target := integration.PresetConfig{
		ChunkSize:   cfg.Input.ChunkSize,
		MaxFrame:    cfg.Input.MaxFrame,
		Compression: compression,
	}
	integration.ApplyPreset(&target, preset)

	cfg.Input.Preset = target.Name
	cfg.Input.ChunkSize = target.ChunkSize
	cfg.Input.MaxFrame = target.MaxFrame
	cfg.Input.Compression = target.Compression.String()
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("compression") {
		cfg.Input.Compression = ctx.GlobalString("compression")
	}
	if ctx.GlobalIsSet("chunksize") {
		cfg.Input.ChunkSize = ctx.GlobalInt("chunksize")
	}
	if ctx.GlobalIsSet("maxframe") {
		cfg.Input.MaxFrame = ctx.GlobalInt("maxframe")
	}

	if ctx.GlobalIsSet("digest") {
		cfg.Output.Digest = ctx.GlobalBool("digest")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}

	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Sentry.DSN = ctx.GlobalString("sentry.dsn")
	}
}

func (c Config) validate() error {
	if _, err := chunks.ParseCompression(c.Input.Compression); err != nil {
		return err
	}
	if c.Input.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Input.ChunkSize)
	}
	if c.Input.MaxFrame <= 0 {
		return fmt.Errorf("max frame must be positive, got %d", c.Input.MaxFrame)
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 5 {
		return fmt.Errorf("log verbosity must be in 0..5, got %d", c.Logging.Verbosity)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %q (valid: text, json)", c.Logging.Format)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
