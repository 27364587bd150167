package huffman

import (
	"fmt"
	"strings"
)

// UnknownLength is the Stream.Symbols value of a stream whose symbol count was not recorded
const UnknownLength = -1

// Stream is an encoded bit sequence and the number of symbols it carries
type Stream struct {
	Bits    Bits
	Symbols int
}

// Encode appends the code of every symbol of text, in order.
// A symbol without a code fails the whole call with ErrUnknownSymbol.
func Encode(text []Symbol, table *CodeTable) (Stream, error) {
	var sb strings.Builder
	for i, s := range text {
		code, ok := table.codes[s]
		if !ok {
			return Stream{}, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, s, i)
		}
		sb.WriteString(string(code))
	}
	return Stream{Bits: Bits(sb.String()), Symbols: len(text)}, nil
}

// EncodeString encodes the runes of text
func EncodeString(text string, table *CodeTable) (Stream, error) {
	return Encode([]Symbol(text), table)
}

// EncodedLen returns the number of bits Encode would produce for text
func EncodedLen(text []Symbol, table *CodeTable) (int, error) {
	n := 0
	for i, s := range text {
		code, ok := table.codes[s]
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, s, i)
		}
		n += len(code)
	}
	return n, nil
}
