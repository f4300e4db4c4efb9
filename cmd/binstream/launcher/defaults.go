package launcher

import (
	"github.com/rony4d/go-binstream/integration"
)

// Defaults bundles the baseline configuration values the launcher uses
// before the config file, presets and flags override them.

type Defaults struct {
	Input   InputDefaults
	Output  OutputDefaults
	Logging LoggingDefaults
}

// InputDefaults controls how input is opened and cut into chunks.
type InputDefaults struct {
	Compression string //	Decompression applied to the input (none, zstd, lz4).
	ChunkSize   int    //	Bytes requested from the input per pull. Smaller chunks exercise more boundaries, larger ones mean fewer reads.
	MaxFrame    int    //	Upper bound for a single frame payload; a larger length prefix is rejected before anything is allocated.
}

// OutputDefaults controls how records are printed.
type OutputDefaults struct {
	Digest bool //	Append the BLAKE3-256 digest of every record.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	preset := integration.DefaultPreset()
	return Defaults{
		Input: InputDefaults{
			Compression: preset.Compression.String(),
			ChunkSize:   preset.ChunkSize,
			MaxFrame:    preset.MaxFrame,
		},
		Output: OutputDefaults{
			Digest: false,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
