package huffman

import "errors"

var (
	// ErrEmptyAlphabet is returned when a tree is built from zero symbols
	ErrEmptyAlphabet = errors.New("huffman: empty alphabet")

	// ErrInvalidWeight is returned for negative, NaN or infinite frequencies
	ErrInvalidWeight = errors.New("huffman: invalid symbol weight")

	// ErrDuplicateSymbol is returned when an alphabet lists a symbol twice
	ErrDuplicateSymbol = errors.New("huffman: duplicate symbol")

	// ErrUnknownSymbol is returned when a symbol has no entry in the code table
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")

	// ErrIncompleteCode is returned when a bitstream ends in the middle of a code
	ErrIncompleteCode = errors.New("huffman: incomplete code at end of stream")

	// ErrInvalidBit is returned for a bit the tree cannot consume
	ErrInvalidBit = errors.New("huffman: invalid bit")

	// ErrCorruptTree is returned when the tree breaks the two-children invariant
	ErrCorruptTree = errors.New("huffman: corrupt tree")

	// ErrNotPrefixFree is returned when one code is a prefix of another
	ErrNotPrefixFree = errors.New("huffman: code table is not prefix-free")

	// ErrIncompleteTable is returned when a code table does not describe a full binary tree
	ErrIncompleteTable = errors.New("huffman: code table is incomplete")
)
