package codec_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/codec/packed"
	"github.com/cocosip/go-huffman-codec/codec/text"
	"github.com/cocosip/go-huffman-codec/huffman"
)

func TestFilesRoundTrip(t *testing.T) {
	tree, err := huffman.BuildTree(huffman.DemoAlphabet())
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table := huffman.GenerateCodes(tree)
	stream, err := huffman.EncodeString(huffman.DemoText, table)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for _, c := range []codec.Codec{text.NewTextCodec(), packed.NewPackedCodec()} {
		t.Run(c.Name(), func(t *testing.T) {
			dir := t.TempDir()
			tablePath := filepath.Join(dir, "codes")
			streamPath := filepath.Join(dir, "stream")

			if err := codec.SaveTable(tablePath, c, table); err != nil {
				t.Fatalf("SaveTable failed: %v", err)
			}
			if err := codec.SaveStream(streamPath, c, stream); err != nil {
				t.Fatalf("SaveStream failed: %v", err)
			}

			gotTable, err := codec.LoadTable(tablePath, c)
			if err != nil {
				t.Fatalf("LoadTable failed: %v", err)
			}
			if !gotTable.Equal(table) {
				t.Errorf("LoadTable() =\n%s\nwant\n%s", gotTable, table)
			}

			gotStream, err := codec.LoadStream(streamPath, c)
			if err != nil {
				t.Fatalf("LoadStream failed: %v", err)
			}
			rebuilt, err := huffman.TreeFromCodes(gotTable)
			if err != nil {
				t.Fatalf("TreeFromCodes failed: %v", err)
			}
			decoded, err := huffman.DecodeStream(gotStream, rebuilt)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if string(decoded) != huffman.DemoText {
				t.Errorf("decoded %q, want %q", string(decoded), huffman.DemoText)
			}
		})
	}
}

func TestFilesErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	if _, err := codec.LoadTable(missing, text.NewTextCodec()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTable() error = %v, want %v", err, os.ErrNotExist)
	}
	if _, err := codec.LoadStream(missing, packed.NewPackedCodec()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadStream() error = %v, want %v", err, os.ErrNotExist)
	}

	noDir := filepath.Join(dir, "no-such-dir", "codes")
	table, err := huffman.NewCodeTable([]huffman.Entry{{Symbol: 'a', Code: "0"}})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}
	if err := codec.SaveTable(noDir, text.NewTextCodec(), table); err == nil {
		t.Error("SaveTable() into a missing directory succeeded")
	}

	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte("not a table"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := codec.LoadTable(garbage, packed.NewPackedCodec()); !errors.Is(err, codec.ErrMalformedTable) {
		t.Errorf("LoadTable() error = %v, want %v", err, codec.ErrMalformedTable)
	}
}
