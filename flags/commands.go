package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// Per-command flags. Global flags go before the command name, these after it.

var (
	DelimFlag = cli.StringFlag{
		Name:  "delim",
		Usage: `Record delimiter: a single character, an escape such as \n or \x00, or 0x-prefixed hex`,
		Value: `\n`,
	}
	WidthFlag = cli.IntFlag{
		Name:  "width",
		Usage: "Integer width in bytes (1|2|4|8)",
		Value: 4,
	}
	BitWidthFlag = cli.IntFlag{
		Name:  "width",
		Usage: "Field width in bits (1..64)",
		Value: 8,
	}
	OrderFlag = cli.StringFlag{
		Name:  "order",
		Usage: "Byte order (be|le)",
		Value: "be",
	}
	MaxFlag = cli.IntFlag{
		Name:  "max",
		Usage: "Largest accepted frame payload, overrides --maxframe",
	}
	CBORFlag = cli.BoolFlag{
		Name:  "cbor",
		Usage: "Print frame payloads in CBOR diagnostic notation",
	}
)
