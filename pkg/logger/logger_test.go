package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Infof("table %s stored", "t1")
	l.Errorf("decode failed: %v", "bad bit")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "[INFO] table t1 stored") {
		t.Errorf("info line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[ERROR] decode failed: bad bit") {
		t.Errorf("error line = %q", lines[1])
	}
}
