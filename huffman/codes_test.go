package huffman

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateCodesDemoAlphabet(t *testing.T) {
	tree, err := BuildTree(DemoAlphabet())
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table := GenerateCodes(tree)

	want := map[Symbol]Bits{
		'f': "0",
		'c': "100",
		'd': "101",
		'a': "1100",
		'b': "1101",
		'e': "111",
	}
	if table.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(want))
	}
	for s, code := range want {
		got, ok := table.Lookup(s)
		if !ok || got != code {
			t.Errorf("code of %q = %q (found=%v), want %q", s, got, ok, code)
		}
	}
	if table.MaxLen() != 4 {
		t.Errorf("MaxLen() = %d, want 4", table.MaxLen())
	}

	t.Logf("Demo codes:\n%s", table)
}

func TestGenerateCodesDegenerate(t *testing.T) {
	tree, err := BuildTree([]WeightedSymbol{{'q', 3}})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	table := GenerateCodes(tree)

	code, ok := table.Lookup('q')
	if !ok {
		t.Fatalf("single symbol missing from table")
	}
	if code != DegenerateCode {
		t.Errorf("single symbol code = %q, want %q", code, DegenerateCode)
	}
}

func TestGenerateCodesPrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 30; round++ {
		alphabet := randomAlphabet(rng, 2+rng.Intn(80), 500)
		tree, err := BuildTree(alphabet)
		if err != nil {
			t.Fatalf("round %d: BuildTree failed: %v", round, err)
		}
		table := GenerateCodes(tree)

		if table.Len() != len(alphabet) {
			t.Fatalf("round %d: table has %d entries, want %d", round, table.Len(), len(alphabet))
		}

		entries := table.Entries()
		for i := range entries {
			if !entries[i].Code.Valid() {
				t.Errorf("round %d: %q has invalid code %q", round, entries[i].Symbol, entries[i].Code)
			}
			for j := range entries {
				if i == j {
					continue
				}
				if strings.HasPrefix(string(entries[j].Code), string(entries[i].Code)) {
					t.Errorf("round %d: %q (%s) prefixes %q (%s)", round,
						entries[i].Symbol, entries[i].Code, entries[j].Symbol, entries[j].Code)
				}
			}
		}
	}
}

func TestGenerateCodesWeightMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for round := 0; round < 30; round++ {
		alphabet := randomAlphabet(rng, 2+rng.Intn(50), 100)
		tree, err := BuildTree(alphabet)
		if err != nil {
			t.Fatalf("round %d: BuildTree failed: %v", round, err)
		}
		table := GenerateCodes(tree)

		for _, lo := range alphabet {
			for _, hi := range alphabet {
				if lo.Freq >= hi.Freq {
					continue
				}
				loCode, _ := table.Lookup(lo.Symbol)
				hiCode, _ := table.Lookup(hi.Symbol)
				if len(loCode) < len(hiCode) {
					t.Errorf("round %d: %q (freq %v) has %d bits but %q (freq %v) has %d", round,
						lo.Symbol, lo.Freq, len(loCode), hi.Symbol, hi.Freq, len(hiCode))
				}
			}
		}
	}
}

func TestNewCodeTable(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{
			name:    "valid",
			entries: []Entry{{'a', "0"}, {'b', "10"}, {'c', "11"}},
		},
		{
			name:    "single degenerate",
			entries: []Entry{{'a', "0"}},
		},
		{
			name:    "empty",
			wantErr: ErrEmptyAlphabet,
		},
		{
			name:    "empty code",
			entries: []Entry{{'a', ""}, {'b', "1"}},
			wantErr: ErrInvalidBit,
		},
		{
			name:    "non-binary code",
			entries: []Entry{{'a', "0"}, {'b', "12"}},
			wantErr: ErrInvalidBit,
		},
		{
			name:    "duplicate symbol",
			entries: []Entry{{'a', "0"}, {'a', "1"}},
			wantErr: ErrDuplicateSymbol,
		},
		{
			name:    "prefix",
			entries: []Entry{{'a', "1"}, {'b', "10"}, {'c', "0"}},
			wantErr: ErrNotPrefixFree,
		},
		{
			name:    "prefix with a code sorted in between",
			entries: []Entry{{'a', "01"}, {'b', "0100"}, {'c', "0101"}, {'d', "00"}},
			wantErr: ErrNotPrefixFree,
		},
		{
			name:    "duplicate code",
			entries: []Entry{{'a', "0"}, {'b', "0"}},
			wantErr: ErrNotPrefixFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewCodeTable(tt.entries)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewCodeTable() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCodeTable() unexpected error: %v", err)
			}
			if table.Len() != len(tt.entries) {
				t.Errorf("Len() = %d, want %d", table.Len(), len(tt.entries))
			}
		})
	}
}

func TestCodeTableOrderingAndString(t *testing.T) {
	table, err := NewCodeTable([]Entry{{'c', "11"}, {'a', "0"}, {'b', "10"}})
	if err != nil {
		t.Fatalf("NewCodeTable failed: %v", err)
	}

	syms := table.Symbols()
	if string(syms) != "abc" {
		t.Errorf("Symbols() = %q, want %q", string(syms), "abc")
	}

	want := "a: 0\nb: 10\nc: 11\n"
	if got := table.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// Entries hands out a copy
	entries := table.Entries()
	entries[0].Code = "111"
	if code, _ := table.Lookup('a'); code != "0" {
		t.Errorf("table changed through Entries(): code of 'a' = %q", code)
	}
}

func TestBitsValid(t *testing.T) {
	tests := []struct {
		bits Bits
		want bool
	}{
		{"0", true},
		{"1011", true},
		{"", false},
		{"10 1", false},
		{"2", false},
	}
	for _, tt := range tests {
		if got := tt.bits.Valid(); got != tt.want {
			t.Errorf("Bits(%q).Valid() = %v, want %v", tt.bits, got, tt.want)
		}
	}
}
