package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/internal/repo"
	"github.com/cocosip/go-huffman-codec/pkg/logger"
)

func newService(t *testing.T) (*TableService, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewTableService(repo.NewTableRepoInMemory(), logger.NewWriter(&logs)), &logs
}

func TestCreateFromAlphabet(t *testing.T) {
	svc, logs := newService(t)
	ctx := context.Background()

	created, err := svc.CreateFromAlphabet(ctx, huffman.DemoAlphabet())
	if err != nil {
		t.Fatalf("CreateFromAlphabet failed: %v", err)
	}
	if _, err := uuid.Parse(created.Table.ID); err != nil {
		t.Errorf("id %q is not a uuid: %v", created.Table.ID, err)
	}
	if code, _ := created.Table.Codes.Lookup('f'); code != "0" {
		t.Errorf("code of 'f' = %q, want %q", code, "0")
	}
	if created.Stats.WeightedBits != 224 {
		t.Errorf("WeightedBits = %v, want 224", created.Stats.WeightedBits)
	}
	if !strings.Contains(logs.String(), "[INFO] table created: "+created.Table.ID) {
		t.Errorf("missing creation log, got %q", logs.String())
	}

	stored, err := svc.GetByID(ctx, created.Table.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !stored.Codes.Equal(created.Table.Codes) {
		t.Errorf("stored table differs from created table")
	}
}

func TestCreateErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateFromText(ctx, ""); !errors.Is(err, huffman.ErrEmptyAlphabet) {
		t.Errorf("CreateFromText(\"\") error = %v, want %v", err, huffman.ErrEmptyAlphabet)
	}
	bad := []huffman.WeightedSymbol{{Symbol: 'a', Freq: -1}}
	if _, err := svc.CreateFromAlphabet(ctx, bad); !errors.Is(err, huffman.ErrInvalidWeight) {
		t.Errorf("CreateFromAlphabet(negative) error = %v, want %v", err, huffman.ErrInvalidWeight)
	}
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("failed creations stored %d tables", len(all))
	}
}

func TestEncodeDecode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateFromAlphabet(ctx, huffman.DemoAlphabet())
	if err != nil {
		t.Fatalf("CreateFromAlphabet failed: %v", err)
	}
	id := created.Table.ID

	stream, err := svc.Encode(ctx, id, huffman.DemoText)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if stream.Bits != "11001101100101111" || stream.Symbols != 5 {
		t.Errorf("Encode() = %+v", stream)
	}

	text, err := svc.Decode(ctx, id, stream)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if text != huffman.DemoText {
		t.Errorf("Decode() = %q, want %q", text, huffman.DemoText)
	}

	// without a length the whole bit string is consumed
	text, err = svc.Decode(ctx, id, huffman.Stream{Bits: stream.Bits, Symbols: huffman.UnknownLength})
	if err != nil || text != huffman.DemoText {
		t.Errorf("Decode(unknown length) = %q, %v", text, err)
	}
}

func TestEncodeDecodeErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateFromText(ctx, "aab")
	if err != nil {
		t.Fatalf("CreateFromText failed: %v", err)
	}
	id := created.Table.ID

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"encode unknown table", func() error {
			_, err := svc.Encode(ctx, "nope", "a")
			return err
		}, repo.ErrNotFound},
		{"decode unknown table", func() error {
			_, err := svc.Decode(ctx, "nope", huffman.Stream{Bits: "0", Symbols: 1})
			return err
		}, repo.ErrNotFound},
		{"encode unknown symbol", func() error {
			_, err := svc.Encode(ctx, id, "abc")
			return err
		}, huffman.ErrUnknownSymbol},
		{"decode invalid bit", func() error {
			_, err := svc.Decode(ctx, id, huffman.Stream{Bits: "0x", Symbols: huffman.UnknownLength})
			return err
		}, huffman.ErrInvalidBit},
		{"decode too few bits", func() error {
			_, err := svc.Decode(ctx, id, huffman.Stream{Bits: "0", Symbols: 3})
			return err
		}, huffman.ErrIncompleteCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListOrder(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	var want []string
	for _, text := range []string{"abc", "hello", "zz"} {
		created, err := svc.CreateFromText(ctx, text)
		if err != nil {
			t.Fatalf("CreateFromText(%q) failed: %v", text, err)
		}
		want = append(want, created.Table.ID)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != len(want) {
		t.Fatalf("List() returned %d tables, want %d", len(all), len(want))
	}
	for i, tbl := range all {
		if tbl.ID != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, tbl.ID, want[i])
		}
	}
}
