package codec

import (
	"io"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// Codec is the universal interface for persisted code tables and encoded streams
type Codec interface {
	// Name returns the registry name of the representation
	Name() string

	// WriteTable persists a code table
	WriteTable(w io.Writer, table *huffman.CodeTable) error

	// ReadTable loads a code table written by WriteTable
	ReadTable(r io.Reader) (*huffman.CodeTable, error)

	// WriteStream persists an encoded stream
	WriteStream(w io.Writer, s huffman.Stream) error

	// ReadStream loads a stream written by WriteStream.
	// Representations that do not record the symbol count return
	// huffman.UnknownLength in Stream.Symbols.
	ReadStream(r io.Reader) (huffman.Stream, error)
}
