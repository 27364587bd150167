package huffman

import (
	"fmt"
	"sort"
	"strings"
)

// Bits is a bit sequence written as a string of '0' and '1' characters
type Bits string

// DegenerateCode is the code given to the only symbol of a one-symbol alphabet.
// An empty code could not be told apart on a bitstream, so the single leaf is
// addressed as if it were the left child of a missing root.
const DegenerateCode Bits = "0"

// Valid reports whether b is non-empty and made only of '0' and '1'
func (b Bits) Valid() bool {
	if len(b) == 0 {
		return false
	}
	return b.indexInvalid() < 0
}

func (b Bits) indexInvalid() int {
	for i := 0; i < len(b); i++ {
		if b[i] != '0' && b[i] != '1' {
			return i
		}
	}
	return -1
}

// Entry is one symbol and its code
type Entry struct {
	Symbol Symbol
	Code   Bits
}

// CodeTable maps each symbol of an alphabet to its prefix-free code.
// It is immutable once created.
type CodeTable struct {
	codes  map[Symbol]Bits
	sorted []Entry
}

func newCodeTable(codes map[Symbol]Bits) *CodeTable {
	ct := &CodeTable{codes: codes, sorted: make([]Entry, 0, len(codes))}
	for s, c := range codes {
		ct.sorted = append(ct.sorted, Entry{Symbol: s, Code: c})
	}
	sort.Slice(ct.sorted, func(i, j int) bool { return ct.sorted[i].Symbol < ct.sorted[j].Symbol })
	return ct
}

// NewCodeTable validates entries and returns them as a CodeTable.
// Codes must be non-empty, binary, unique per symbol and prefix-free.
func NewCodeTable(entries []Entry) (*CodeTable, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyAlphabet
	}
	codes := make(map[Symbol]Bits, len(entries))
	for _, e := range entries {
		if !e.Code.Valid() {
			return nil, fmt.Errorf("%w: %q has code %q", ErrInvalidBit, e.Symbol, e.Code)
		}
		if _, dup := codes[e.Symbol]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, e.Symbol)
		}
		codes[e.Symbol] = e.Code
	}
	ct := newCodeTable(codes)
	if err := ct.checkPrefixFree(); err != nil {
		return nil, err
	}
	return ct, nil
}

// checkPrefixFree sorts codes lexicographically; a prefix always sorts
// directly before some code it prefixes, so neighbours suffice.
func (ct *CodeTable) checkPrefixFree() error {
	entries := make([]Entry, len(ct.sorted))
	copy(entries, ct.sorted)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if strings.HasPrefix(string(cur.Code), string(prev.Code)) {
			return fmt.Errorf("%w: %q (%s) prefixes %q (%s)", ErrNotPrefixFree, prev.Symbol, prev.Code, cur.Symbol, cur.Code)
		}
	}
	return nil
}

// GenerateCodes walks the tree and assigns '0' to every left edge and '1' to
// every right edge. A tree made of a single leaf maps its symbol to DegenerateCode.
func GenerateCodes(t *Tree) *CodeTable {
	codes := make(map[Symbol]Bits)
	if !t.valid(t.root) {
		return newCodeTable(codes)
	}
	if t.Degenerate() {
		codes[t.nodes[t.root].symbol] = DegenerateCode
		return newCodeTable(codes)
	}

	type item struct {
		id   NodeID
		code string
	}
	stack := []item{{id: t.root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[it.id]
		if n.kind == leafNode {
			codes[n.symbol] = Bits(it.code)
			continue
		}
		// right first so the left subtree is visited first
		stack = append(stack,
			item{id: n.right, code: it.code + "1"},
			item{id: n.left, code: it.code + "0"},
		)
	}
	return newCodeTable(codes)
}

// Lookup returns the code of s
func (ct *CodeTable) Lookup(s Symbol) (Bits, bool) {
	c, ok := ct.codes[s]
	return c, ok
}

// Len returns the number of symbols in the table
func (ct *CodeTable) Len() int { return len(ct.codes) }

// Entries returns the table ordered by symbol
func (ct *CodeTable) Entries() []Entry {
	out := make([]Entry, len(ct.sorted))
	copy(out, ct.sorted)
	return out
}

// Symbols returns the table's symbols in ascending order
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, len(ct.sorted))
	for i, e := range ct.sorted {
		out[i] = e.Symbol
	}
	return out
}

// MaxLen returns the length of the longest code
func (ct *CodeTable) MaxLen() int {
	max := 0
	for _, e := range ct.sorted {
		if len(e.Code) > max {
			max = len(e.Code)
		}
	}
	return max
}

// Equal reports whether both tables hold the same codes
func (ct *CodeTable) Equal(other *CodeTable) bool {
	if ct.Len() != other.Len() {
		return false
	}
	for s, c := range ct.codes {
		if oc, ok := other.codes[s]; !ok || oc != c {
			return false
		}
	}
	return true
}

// String renders one "symbol: code" line per entry
func (ct *CodeTable) String() string {
	var sb strings.Builder
	for _, e := range ct.sorted {
		fmt.Fprintf(&sb, "%c: %s\n", e.Symbol, e.Code)
	}
	return sb.String()
}
