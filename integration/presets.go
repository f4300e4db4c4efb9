package integration

import (
	"fmt"

	"github.com/rony4d/go-binstream/utils/chunks"
	"github.com/rony4d/go-binstream/utils/records"
)

// Package integration provides named read profiles for the binstream tool.
// A preset bundles the settings that decide how input is cut into chunks and
// how large a single record may grow, so users can pick a profile instead of
// tuning each flag.
//
// Usage:
//   cfg := integration.SmallPreset() // constrained memory, tests
//   cfg := integration.BulkPreset()  // large compressed dumps
//
// Each preset returns a PresetConfig that the launcher merges into its config
// after the config file and before explicit CLI flags.

// PresetConfig captures the tunable read parameters that vary across presets.
type PresetConfig struct {
	Name        string             // identifier used by --preset
	ChunkSize   int                // bytes requested from the input per pull
	MaxFrame    int                // largest accepted frame payload
	Compression chunks.Compression // input decompression
}

// DefaultPreset reads plain input in 64KiB chunks with the record codec's default frame limit.
func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:        "default",
		ChunkSize:   chunks.DefaultChunkSize,
		MaxFrame:    records.MaxAlloc,
		Compression: chunks.CompressionNone,
	}
}

// SmallPreset keeps both the chunk buffer and the largest frame small.
//
// Use cases:
//   - Low-memory environments
//   - Exercising chunk-boundary handling on small inputs
func SmallPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "small"
	cfg.ChunkSize = 4 * 1024
	cfg.MaxFrame = 16 * 1024
	return cfg
}

// BulkPreset is tuned for large zstd-compressed dumps.
//
// Trade-offs:
//   - 1MiB chunks mean fewer pulls but more memory held per stream
//   - frames up to 16MiB are accepted, so a corrupt length can allocate that much
func BulkPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "bulk"
	cfg.ChunkSize = 1024 * 1024
	cfg.MaxFrame = 16 * 1024 * 1024
	cfg.Compression = chunks.CompressionZstd
	return cfg
}

// GetPresetByName looks up a preset by its identifier.
//
// Example:
//
//	preset, err := integration.GetPresetByName("bulk")
//	if err != nil {
//	    return err
//	}
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "default":
		return DefaultPreset(), nil
	case "small":
		return SmallPreset(), nil
	case "bulk":
		return BulkPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: default, small, bulk)", name)
	}
}

// ApplyPreset merges preset into target. Non-zero sizes and the name override the
// target; the compression is always applied, since "none" is a valid choice.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.ChunkSize > 0 {
		target.ChunkSize = preset.ChunkSize
	}
	if preset.MaxFrame > 0 {
		target.MaxFrame = preset.MaxFrame
	}
	target.Compression = preset.Compression
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
