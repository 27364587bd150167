package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrMalformedTable is returned when a persisted code table cannot be parsed
	ErrMalformedTable = errors.New("malformed code table")

	// ErrMalformedStream is returned when a persisted stream cannot be parsed
	ErrMalformedStream = errors.New("malformed encoded stream")

	// ErrMissingStreamLength is returned when a stream lacks the counts needed to stop decoding
	ErrMissingStreamLength = errors.New("encoded stream has no length")

	// ErrUnsupportedSymbol is returned when a symbol cannot be represented by the format
	ErrUnsupportedSymbol = errors.New("symbol not representable in this format")

	// ErrCodeTooLong is returned when a code exceeds the length field of the format
	ErrCodeTooLong = errors.New("code too long for this format")
)
