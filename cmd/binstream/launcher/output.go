package launcher

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// recordPrinter writes one tab-separated line per record:
// offset, length, hex payload, then the optional digest and annotation.
type recordPrinter struct {
	w      io.Writer
	digest bool
	count  int
}

func (p *recordPrinter) record(offset int64, payload []byte, note string) error {
	fields := []string{
		strconv.FormatInt(offset, 10),
		strconv.Itoa(len(payload)),
		hexutil.Encode(payload),
	}
	if p.digest {
		sum := blake3.Sum256(payload)
		fields = append(fields, hexutil.Encode(sum[:]))
	}
	if note != "" {
		fields = append(fields, note)
	}
	p.count++
	_, err := fmt.Fprintln(p.w, strings.Join(fields, "\t"))
	return err
}

// value writes offset, decimal and hex forms of an integer field.
func (p *recordPrinter) value(offset int64, v uint64) error {
	p.count++
	_, err := fmt.Fprintf(p.w, "%d\t%d\t%s\n", offset, v, hexutil.EncodeUint64(v))
	return err
}

// diagnoseCBOR renders payload in CBOR diagnostic notation.
func diagnoseCBOR(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	return cbor.Diagnose(payload)
}
