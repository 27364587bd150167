package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/dgryski/go-bitstream"
)

// Writer packs the codes of a symbol sequence into bytes, most significant bit first
type Writer struct {
	bw      *bitstream.BitWriter
	table   *CodeTable
	bits    int64
	symbols int
}

// NewWriter returns a Writer encoding with table into w
func NewWriter(w io.Writer, table *CodeTable) *Writer {
	return &Writer{bw: bitstream.NewWriter(w), table: table}
}

// WriteSymbol writes the code of s
func (w *Writer) WriteSymbol(s Symbol) error {
	code, ok := w.table.Lookup(s)
	if !ok {
		return fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, s, w.symbols)
	}
	for i := 0; i < len(code); i++ {
		if err := w.bw.WriteBit(bitstream.Bit(code[i] == '1')); err != nil {
			return err
		}
	}
	w.bits += int64(len(code))
	w.symbols++
	return nil
}

// WriteText writes the code of every rune of text
func (w *Writer) WriteText(text string) error {
	for _, r := range text {
		if err := w.WriteSymbol(r); err != nil {
			return err
		}
	}
	return nil
}

// Close pads the last byte with zero bits and flushes it
func (w *Writer) Close() error {
	return w.bw.Flush(bitstream.Zero)
}

// BitsWritten returns the number of code bits written so far, padding excluded
func (w *Writer) BitsWritten() int64 { return w.bits }

// SymbolsWritten returns the number of symbols written so far
func (w *Writer) SymbolsWritten() int { return w.symbols }

// Reader decodes symbols from a byte stream produced by Writer
type Reader struct {
	br        *bitstream.BitReader
	c         *cursor
	remaining int
}

// NewReader returns a Reader that decodes n symbols from r.
// With n < 0 it decodes until the input ends; the zero bits Writer adds as
// padding then decode as extra symbols, so callers that pad should pass n.
func NewReader(r io.Reader, t *Tree, n int) (*Reader, error) {
	c, err := newCursor(t)
	if err != nil {
		return nil, err
	}
	return &Reader{br: bitstream.NewReader(r), c: c, remaining: n}, nil
}

// ReadSymbol returns the next symbol, or io.EOF once the stream is done
func (r *Reader) ReadSymbol() (Symbol, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	for {
		bit, err := r.br.ReadBit()
		if errors.Is(err, io.EOF) {
			if r.c.midCode() {
				return 0, fmt.Errorf("%w: input ended inside a code", ErrIncompleteCode)
			}
			if r.remaining > 0 {
				return 0, fmt.Errorf("%w: %d symbols still expected", ErrIncompleteCode, r.remaining)
			}
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}

		b := byte('0')
		if bit == bitstream.One {
			b = '1'
		}
		sym, ok, err := r.c.step(b)
		if err != nil {
			return 0, err
		}
		if ok {
			if r.remaining > 0 {
				r.remaining--
			}
			return sym, nil
		}
	}
}

// ReadAll reads symbols until io.EOF
func (r *Reader) ReadAll() ([]Symbol, error) {
	var out []Symbol
	for {
		s, err := r.ReadSymbol()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}
