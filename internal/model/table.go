package model

import (
	"time"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// Table is a stored code table
type Table struct {
	ID        string
	Codes     *huffman.CodeTable
	CreatedAt time.Time
}
