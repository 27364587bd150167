// Package packed implements a binary-safe representation of code tables and
// encoded streams, written most significant bit first.
//
// Table layout:
//
//	"HUFT" | count:32 | count * (symbol:32 | length:16 | code bits) | zero padding
//
// Stream layout:
//
//	"HUFS" | symbols:64 | bits:64 | stream bits | zero padding
//
// Streams always record their symbol and bit counts, so padding at the end of
// the last byte is never mistaken for data.
package packed

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/icza/bitio"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/huffman"
)

// Name is the registry name of the packed representation
const Name = "packed"

const (
	tableMagic  = "HUFT"
	streamMagic = "HUFS"

	// maxCodeLen is the largest code length the 16-bit length field can hold
	maxCodeLen = 1<<16 - 1

	// maxEntries bounds the entry count to the number of Unicode code points
	maxEntries = utf8.MaxRune + 1

	// preallocation caps, the rest grows on demand
	maxPrealloc      = 1 << 20
	maxEntryPrealloc = 1 << 10
)

var _ codec.Codec = (*PackedCodec)(nil)

// PackedCodec reads and writes the packed binary representation
type PackedCodec struct{}

// NewPackedCodec creates a new packed codec
func NewPackedCodec() *PackedCodec {
	return &PackedCodec{}
}

// Name returns the codec name
func (c *PackedCodec) Name() string {
	return Name
}

// WriteTable writes the table entries ordered by symbol
func (c *PackedCodec) WriteTable(w io.Writer, table *huffman.CodeTable) error {
	entries := table.Entries()
	for _, e := range entries {
		if len(e.Code) > maxCodeLen {
			return fmt.Errorf("%w: code of %q is %d bits, limit %d", codec.ErrCodeTooLong, e.Symbol, len(e.Code), maxCodeLen)
		}
	}

	bw := bitio.NewWriter(w)
	if _, err := bw.Write([]byte(tableMagic)); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(entries)), 32); err != nil {
		return err
	}
	for _, e := range entries {
		if err := bw.WriteBits(uint64(uint32(e.Symbol)), 32); err != nil {
			return err
		}
		if err := bw.WriteBits(uint64(len(e.Code)), 16); err != nil {
			return err
		}
		if err := writeBits(bw, e.Code); err != nil {
			return err
		}
	}
	return bw.Close()
}

// ReadTable parses a table written by WriteTable
func (c *PackedCodec) ReadTable(r io.Reader) (*huffman.CodeTable, error) {
	br := bitio.NewReader(r)
	if err := readMagic(br, tableMagic); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformedTable, err)
	}

	count, err := br.ReadBits(32)
	if err != nil {
		return nil, fmt.Errorf("%w: entry count: %w", codec.ErrMalformedTable, err)
	}
	if count == 0 || count > maxEntries {
		return nil, fmt.Errorf("%w: entry count %d", codec.ErrMalformedTable, count)
	}

	entries := make([]huffman.Entry, 0, min(count, maxEntryPrealloc))
	for i := uint64(0); i < count; i++ {
		sym, err := br.ReadBits(32)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d symbol: %w", codec.ErrMalformedTable, i, err)
		}
		if !utf8.ValidRune(rune(sym)) {
			return nil, fmt.Errorf("%w: entry %d holds invalid symbol %#x", codec.ErrMalformedTable, i, sym)
		}
		n, err := br.ReadBits(16)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d length: %w", codec.ErrMalformedTable, i, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: entry %d has an empty code", codec.ErrMalformedTable, i)
		}
		code, err := readBits(br, n)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d code: %w", codec.ErrMalformedTable, i, err)
		}
		entries = append(entries, huffman.Entry{Symbol: rune(sym), Code: code})
	}

	table, err := huffman.NewCodeTable(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformedTable, err)
	}
	return table, nil
}

// WriteStream writes the stream with its symbol and bit counts.
// A stream of unknown length cannot be written.
func (c *PackedCodec) WriteStream(w io.Writer, s huffman.Stream) error {
	if s.Symbols < 0 {
		return codec.ErrMissingStreamLength
	}
	if len(s.Bits) > 0 && !s.Bits.Valid() {
		return fmt.Errorf("%w: bits must be '0' or '1'", codec.ErrMalformedStream)
	}

	bw := bitio.NewWriter(w)
	if _, err := bw.Write([]byte(streamMagic)); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(s.Symbols), 64); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(s.Bits)), 64); err != nil {
		return err
	}
	if err := writeBits(bw, s.Bits); err != nil {
		return err
	}
	return bw.Close()
}

// ReadStream parses a stream written by WriteStream
func (c *PackedCodec) ReadStream(r io.Reader) (huffman.Stream, error) {
	br := bitio.NewReader(r)
	if err := readMagic(br, streamMagic); err != nil {
		return huffman.Stream{}, fmt.Errorf("%w: %w", codec.ErrMalformedStream, err)
	}

	symbols, err := br.ReadBits(64)
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("%w: symbol count: %w", codec.ErrMissingStreamLength, err)
	}
	nbits, err := br.ReadBits(64)
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("%w: bit count: %w", codec.ErrMissingStreamLength, err)
	}
	// every code is at least one bit long
	if symbols > nbits {
		return huffman.Stream{}, fmt.Errorf("%w: %d symbols cannot fit in %d bits", codec.ErrMalformedStream, symbols, nbits)
	}
	if symbols > uint64(maxInt) {
		return huffman.Stream{}, fmt.Errorf("%w: symbol count %d overflows", codec.ErrMalformedStream, symbols)
	}

	bits, err := readBits(br, nbits)
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("%w: stream bits: %w", codec.ErrMalformedStream, err)
	}
	return huffman.Stream{Bits: bits, Symbols: int(symbols)}, nil
}

const maxInt = int(^uint(0) >> 1)

func readMagic(br *bitio.Reader, magic string) error {
	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(br, buf); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if string(buf) != magic {
		return fmt.Errorf("header %q, want %q", buf, magic)
	}
	return nil
}

func writeBits(bw *bitio.Writer, bits huffman.Bits) error {
	for i := 0; i < len(bits); i++ {
		if err := bw.WriteBool(bits[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

func readBits(br *bitio.Reader, n uint64) (huffman.Bits, error) {
	var sb strings.Builder
	if n < maxPrealloc {
		sb.Grow(int(n))
	} else {
		sb.Grow(maxPrealloc)
	}
	for i := uint64(0); i < n; i++ {
		b, err := br.ReadBool()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return "", fmt.Errorf("after %d of %d bits: %w", i, n, err)
		}
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return huffman.Bits(sb.String()), nil
}

func init() {
	codec.Register(NewPackedCodec())
}
