package codec

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// SaveTable writes table to the file at path, creating or truncating it
func SaveTable(path string, c Codec, table *huffman.CodeTable) error {
	return writeFile(path, func(w *bufio.Writer) error {
		return c.WriteTable(w, table)
	})
}

// LoadTable reads a code table from the file at path
func LoadTable(path string, c Codec) (*huffman.CodeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open code table: %w", err)
	}
	defer f.Close()

	table, err := c.ReadTable(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// SaveStream writes s to the file at path, creating or truncating it
func SaveStream(path string, c Codec, s huffman.Stream) error {
	return writeFile(path, func(w *bufio.Writer) error {
		return c.WriteStream(w, s)
	})
}

// LoadStream reads an encoded stream from the file at path
func LoadStream(path string, c Codec) (huffman.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("open encoded stream: %w", err)
	}
	defer f.Close()

	s, err := c.ReadStream(bufio.NewReader(f))
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func writeFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
