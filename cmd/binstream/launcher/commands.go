package launcher

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-binstream/flags"
	"github.com/rony4d/go-binstream/utils/binstream"
	"github.com/rony4d/go-binstream/utils/bits"
	"github.com/rony4d/go-binstream/utils/chunks"
	"github.com/rony4d/go-binstream/utils/records"
)

var (
	splitCommand = cli.Command{
		Name:      "split",
		Usage:     "Print the records of a delimited input",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{flags.DelimFlag},
		Action:    withSession("split", runSplit),
	}
	intsCommand = cli.Command{
		Name:      "ints",
		Usage:     "Print the input as a sequence of fixed-width integers",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{flags.WidthFlag, flags.OrderFlag},
		Action:    withSession("ints", runInts),
	}
	bitsCommand = cli.Command{
		Name:      "bits",
		Usage:     "Print the input as a sequence of LSB-first bit fields",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{flags.BitWidthFlag},
		Action:    withSession("bits", runBits),
	}
	framesCommand = cli.Command{
		Name:      "frames",
		Usage:     "Print the payloads of a length-prefixed input",
		ArgsUsage: "[file]",
		Flags:     []cli.Flag{flags.WidthFlag, flags.OrderFlag, flags.MaxFlag, flags.CBORFlag},
		Action:    withSession("frames", runFrames),
	}
)

// session is the state shared by every command run.
type session struct {
	cfg    Config
	log    *logrus.Logger
	stream *binstream.Stream
	out    *recordPrinter
	close  func()
}

// openSession builds the config and logger and opens the input named by the
// first argument; no argument or "-" reads stdin.
func openSession(ctx *cli.Context) (*session, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Logging, cfg.Sentry, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("sentry hook: %w", err)
	}

	var (
		in      io.Reader = os.Stdin
		closeIn           = func() {}
	)
	if path := ctx.Args().First(); path != "" && path != "-" {
		f, err := os.Open(resolvePath(path))
		if err != nil {
			return nil, err
		}
		in, closeIn = f, func() { f.Close() }
	}

	compression, _ := chunks.ParseCompression(cfg.Input.Compression)
	src, err := chunks.Open(in, compression, cfg.Input.ChunkSize)
	if err != nil {
		closeIn()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"input":       ctx.Args().First(),
		"compression": compression,
		"chunksize":   cfg.Input.ChunkSize,
		"preset":      cfg.Input.Preset,
	}).Debug("Opened input")

	return &session{
		cfg:    cfg,
		log:    log,
		stream: binstream.New(src, binstream.WithLogger(log)),
		out:    &recordPrinter{w: ctx.App.Writer, digest: cfg.Output.Digest},
		close: func() {
			src.Close()
			closeIn()
		},
	}, nil
}

func withSession(name string, run func(*cli.Context, *session) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		err = run(ctx, s)
		if err != nil {
			s.log.WithError(err).WithField("command", name).Error("Command failed")
			return err
		}
		s.log.WithFields(logrus.Fields{
			"command": name,
			"records": s.out.count,
		}).Info("Done")
		return nil
	}
}

func runSplit(ctx *cli.Context, s *session) error {
	delim, err := parseDelim(ctx.String(flags.DelimFlag.Name))
	if err != nil {
		return err
	}

	r := records.NewReader(s.stream)
	var offset int64
	for {
		line, ok, err := r.Line(delim)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := s.out.record(offset, line.Slice(), ""); err != nil {
			return err
		}
		offset += int64(line.Len())
	}

	// An unterminated last record is still a record.
	if n := s.stream.Buffered(); n > 0 {
		tail, err := s.stream.ReadBytes(n)
		if err != nil {
			return err
		}
		return s.out.record(offset, tail.Slice(), "unterminated")
	}
	return nil
}

func runInts(ctx *cli.Context, s *session) error {
	width := ctx.Int(flags.WidthFlag.Name)
	if width != 1 && width != 2 && width != 4 && width != 8 {
		return fmt.Errorf("%w: unsupported integer width %d", binstream.ErrInvalidArgument, width)
	}
	order, err := binstream.ParseOrder(ctx.String(flags.OrderFlag.Name))
	if err != nil {
		return err
	}

	var offset int64
	for {
		part, err := s.stream.ReadBytes(width)
		if err != nil {
			return err
		}
		if part.IsEmpty() {
			return nil
		}
		if part.Len() < width {
			return fmt.Errorf("%d trailing bytes at offset %d do not form a %d-byte integer", part.Len(), offset, width)
		}
		if err := s.out.value(offset, order.Uint(part.Slice())); err != nil {
			return err
		}
		offset += int64(width)
	}
}

func runBits(ctx *cli.Context, s *session) error {
	width := ctx.Int(flags.BitWidthFlag.Name)
	if width <= 0 {
		return fmt.Errorf("%w: %d", bits.ErrWidth, width)
	}

	r := bits.NewReader(s.stream)
	var offset int64
	for {
		v, ok, err := r.Read(width)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := s.out.value(offset, v); err != nil {
			return err
		}
		offset += int64(width)
	}
	s.log.WithField("bit", offset).Debug("Input ended")
	return nil
}

func runFrames(ctx *cli.Context, s *session) error {
	width := ctx.Int(flags.WidthFlag.Name)
	order, err := binstream.ParseOrder(ctx.String(flags.OrderFlag.Name))
	if err != nil {
		return err
	}
	maxLen := s.cfg.Input.MaxFrame
	if ctx.IsSet(flags.MaxFlag.Name) {
		maxLen = ctx.Int(flags.MaxFlag.Name)
	}
	withCBOR := ctx.Bool(flags.CBORFlag.Name)

	r := records.NewReader(s.stream)
	var offset int64
	for {
		payload, ok, err := r.Frame(width, order, maxLen)
		if err != nil {
			return fmt.Errorf("frame at offset %d: %w", offset, err)
		}
		if !ok {
			return nil
		}
		note := ""
		if withCBOR {
			if note, err = diagnoseCBOR(payload.Slice()); err != nil {
				s.log.WithError(err).WithField("offset", offset).Warn("Payload is not CBOR")
				note = "!cbor"
			}
		}
		if err := s.out.record(offset, payload.Slice(), note); err != nil {
			return err
		}
		offset += int64(width + payload.Len())
	}
}

// parseDelim accepts a single character, a Go escape such as \n or \x00, or a
// 0x-prefixed hex byte.
func parseDelim(s string) (byte, error) {
	if strings.HasPrefix(s, "0x") {
		if b, err := hexutil.Decode(s); err == nil && len(b) == 1 {
			return b[0], nil
		}
	} else if len(s) == 1 {
		return s[0], nil
	} else if u, err := strconv.Unquote(`"` + s + `"`); err == nil && len(u) == 1 {
		return u[0], nil
	}
	return 0, fmt.Errorf("%w: invalid delimiter %q", binstream.ErrInvalidArgument, s)
}
