// Package text implements the plain-text representation of code tables and
// encoded streams.
//
// A table is one "<symbol> <code>" line per entry, newline terminated and
// ordered by symbol. A stream is a single token of '0' and '1' characters with
// no length information, so streams read back carry huffman.UnknownLength.
// Whitespace and non-printable symbols have no place in this framing; tables
// holding them must use the packed representation instead.
package text

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/huffman"
)

// Name is the registry name of the text representation
const Name = "text"

var _ codec.Codec = (*TextCodec)(nil)

// TextCodec reads and writes the plain-text representation
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Name returns the codec name
func (c *TextCodec) Name() string {
	return Name
}

// Representable reports whether s can appear in a text table
func Representable(s huffman.Symbol) bool {
	return s != utf8.RuneError && unicode.IsPrint(s) && !unicode.IsSpace(s)
}

// WriteTable writes one "<symbol> <code>" line per entry
func (c *TextCodec) WriteTable(w io.Writer, table *huffman.CodeTable) error {
	entries := table.Entries()
	for _, e := range entries {
		if !Representable(e.Symbol) {
			return fmt.Errorf("%w: %q", codec.ErrUnsupportedSymbol, e.Symbol)
		}
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%c %s\n", e.Symbol, e.Code); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable parses a table written by WriteTable
func (c *TextCodec) ReadTable(r io.Reader) (*huffman.CodeTable, error) {
	var entries []huffman.Entry
	seen := make(map[huffman.Symbol]int)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")

		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", codec.ErrMalformedTable, lineNo, err)
		}
		if prev, dup := seen[e.Symbol]; dup {
			return nil, fmt.Errorf("%w: line %d: symbol %q already defined on line %d", codec.ErrMalformedTable, lineNo, e.Symbol, prev)
		}
		seen[e.Symbol] = lineNo
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", codec.ErrMalformedTable)
	}

	table, err := huffman.NewCodeTable(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrMalformedTable, err)
	}
	return table, nil
}

func parseLine(line string) (huffman.Entry, error) {
	sym, size := utf8.DecodeRuneInString(line)
	if size == 0 {
		return huffman.Entry{}, fmt.Errorf("empty line")
	}
	if !Representable(sym) {
		return huffman.Entry{}, fmt.Errorf("symbol %q is not printable", sym)
	}

	rest := line[size:]
	if !strings.HasPrefix(rest, " ") {
		return huffman.Entry{}, fmt.Errorf("expected a single space after %q", sym)
	}
	code := huffman.Bits(rest[1:])
	if !code.Valid() {
		return huffman.Entry{}, fmt.Errorf("code %q of %q is not a binary string", code, sym)
	}
	return huffman.Entry{Symbol: sym, Code: code}, nil
}

// WriteStream writes the bits as a single token
func (c *TextCodec) WriteStream(w io.Writer, s huffman.Stream) error {
	if len(s.Bits) > 0 && !s.Bits.Valid() {
		return fmt.Errorf("%w: bits must be '0' or '1'", codec.ErrMalformedStream)
	}
	_, err := io.WriteString(w, string(s.Bits))
	return err
}

// ReadStream reads a single token of bits; a trailing newline is tolerated
func (c *TextCodec) ReadStream(r io.Reader) (huffman.Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return huffman.Stream{}, err
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))

	bits := huffman.Bits(data)
	if len(bits) > 0 && !bits.Valid() {
		return huffman.Stream{}, fmt.Errorf("%w: expected a single token of '0' and '1'", codec.ErrMalformedStream)
	}
	return huffman.Stream{Bits: bits, Symbols: huffman.UnknownLength}, nil
}

func init() {
	codec.Register(NewTextCodec())
}
