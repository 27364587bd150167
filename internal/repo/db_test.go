package repo

import (
	"context"
	"strings"
	"testing"
)

func TestOpenInvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://huffman@localhost:notaport/huffman", PoolOptions{MaxConns: 2})
	if err == nil {
		t.Fatal("Open() with an invalid port succeeded")
	}
	if !strings.HasPrefix(err.Error(), "parse dsn: ") {
		t.Errorf("Open() error = %v, want a dsn parse error", err)
	}
}
