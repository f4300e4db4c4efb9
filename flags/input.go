package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// InputFlags covers how the input is opened and cut into chunks.

func InputFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "preset",
			Usage: "Read profile (default|small|bulk)",
		},
		cli.StringFlag{
			Name:  "compression",
			Usage: "Input compression (none|zstd|lz4)",
			Value: "none",
		},
		cli.IntFlag{
			Name:  "chunksize",
			Usage: "Bytes requested from the input per pull",
			Value: 64 * 1024,
		},
		cli.IntFlag{
			Name:  "maxframe",
			Usage: "Largest accepted frame payload in bytes",
			Value: 100 * 1024,
		},
	}
}

// OutputFlags covers how records are printed.

func OutputFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "digest",
			Usage: "Append the BLAKE3-256 digest of every record",
		},
	}
}
