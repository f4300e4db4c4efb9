package integration_test

import (
	"testing"

	"github.com/rony4d/go-binstream/integration"
	"github.com/rony4d/go-binstream/utils/chunks"
	"github.com/rony4d/go-binstream/utils/records"
)

// TestDefaultPreset_hasReasonableDefaults guards the baseline values: if they
// change, the CLI defaults change with them.
func TestDefaultPreset_hasReasonableDefaults(t *testing.T) {
	cfg := integration.DefaultPreset()

	if cfg.Name != "default" {
		t.Fatalf("Name = %q, want 'default'", cfg.Name)
	}
	if cfg.ChunkSize != chunks.DefaultChunkSize {
		t.Fatalf("ChunkSize = %d, want %d", cfg.ChunkSize, chunks.DefaultChunkSize)
	}
	if cfg.MaxFrame != records.MaxAlloc {
		t.Fatalf("MaxFrame = %d, want %d", cfg.MaxFrame, records.MaxAlloc)
	}
	if cfg.Compression != chunks.CompressionNone {
		t.Fatalf("Compression = %s, want none", cfg.Compression)
	}
}

func TestSmallPreset_overridesDefaults(t *testing.T) {
	defaultCfg := integration.DefaultPreset()
	small := integration.SmallPreset()

	if small.Name != "small" {
		t.Fatalf("Name = %q, want 'small'", small.Name)
	}
	if small.ChunkSize >= defaultCfg.ChunkSize {
		t.Fatalf("Small ChunkSize (%d) should be smaller than default (%d)", small.ChunkSize, defaultCfg.ChunkSize)
	}
	if small.MaxFrame >= defaultCfg.MaxFrame {
		t.Fatalf("Small MaxFrame (%d) should be smaller than default (%d)", small.MaxFrame, defaultCfg.MaxFrame)
	}
	// A frame must still fit in a handful of chunks.
	if small.MaxFrame < small.ChunkSize {
		t.Fatalf("MaxFrame (%d) below ChunkSize (%d)", small.MaxFrame, small.ChunkSize)
	}
}

func TestBulkPreset_overridesDefaults(t *testing.T) {
	defaultCfg := integration.DefaultPreset()
	bulk := integration.BulkPreset()

	if bulk.Name != "bulk" {
		t.Fatalf("Name = %q, want 'bulk'", bulk.Name)
	}
	if bulk.ChunkSize <= defaultCfg.ChunkSize {
		t.Fatalf("Bulk ChunkSize (%d) should be larger than default (%d)", bulk.ChunkSize, defaultCfg.ChunkSize)
	}
	if bulk.Compression != chunks.CompressionZstd {
		t.Fatalf("Compression = %s, want zstd", bulk.Compression)
	}
}

func TestGetPresetByName_validPresets(t *testing.T) {
	for _, name := range []string{"default", "small", "bulk"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := integration.GetPresetByName(name)
			if err != nil {
				t.Fatalf("GetPresetByName(%q) returned error: %v", name, err)
			}
			if cfg.Name != name {
				t.Fatalf("Preset name = %q, want %q", cfg.Name, name)
			}
			if cfg.ChunkSize <= 0 || cfg.MaxFrame <= 0 {
				t.Fatalf("Preset %q has invalid sizes: %+v", name, cfg)
			}
		})
	}
}

func TestGetPresetByName_invalidPreset(t *testing.T) {
	for _, name := range []string{"unknown", "", "BULK", "lite"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := integration.GetPresetByName(name)
			if err == nil {
				t.Fatalf("GetPresetByName(%q) should return error, got config: %+v", name, cfg)
			}
		})
	}
}

func TestApplyPreset_overridesTarget(t *testing.T) {
	target := integration.PresetConfig{
		Name:        "custom",
		ChunkSize:   10,
		MaxFrame:    20,
		Compression: chunks.CompressionLZ4,
	}

	preset := integration.BulkPreset()
	integration.ApplyPreset(&target, preset)

	if target != preset {
		t.Fatalf("target = %+v, want %+v", target, preset)
	}
}

// TestApplyPreset_partialOverride checks that zero sizes and an empty name leave
// the target alone, while the compression always follows the preset.
func TestApplyPreset_partialOverride(t *testing.T) {
	target := integration.BulkPreset()

	integration.ApplyPreset(&target, integration.PresetConfig{ChunkSize: 512})

	if target.ChunkSize != 512 {
		t.Fatalf("ChunkSize should be overridden to 512, got %d", target.ChunkSize)
	}
	if target.Name != "bulk" {
		t.Fatalf("Name should remain 'bulk', got %q", target.Name)
	}
	if target.MaxFrame != integration.BulkPreset().MaxFrame {
		t.Fatalf("MaxFrame should be unchanged, got %d", target.MaxFrame)
	}
	if target.Compression != chunks.CompressionNone {
		t.Fatalf("Compression = %s, want none", target.Compression)
	}
}

func TestPresets_areIdempotent(t *testing.T) {
	if integration.SmallPreset() != integration.SmallPreset() {
		t.Fatal("SmallPreset() should return identical results on multiple calls")
	}
	if integration.BulkPreset() != integration.BulkPreset() {
		t.Fatal("BulkPreset() should return identical results on multiple calls")
	}
}
