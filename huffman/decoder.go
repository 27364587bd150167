package huffman

import "fmt"

// cursor is the decode state machine: it walks from the root one bit at a
// time and returns to the root whenever it reaches a leaf.
type cursor struct {
	t  *Tree
	at NodeID
}

func newCursor(t *Tree) (*cursor, error) {
	if t == nil || !t.valid(t.root) {
		return nil, fmt.Errorf("%w: missing root", ErrCorruptTree)
	}
	return &cursor{t: t, at: t.root}, nil
}

// step consumes one bit ('0' or '1') and reports the symbol completed by it, if any
func (c *cursor) step(bit byte) (Symbol, bool, error) {
	t := c.t
	if bit != '0' && bit != '1' {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidBit, bit)
	}

	// A lone leaf only understands the degenerate one-bit code
	if t.Degenerate() {
		if bit != DegenerateCode[0] {
			return 0, false, fmt.Errorf("%w: %q in a single-symbol stream", ErrInvalidBit, bit)
		}
		return t.nodes[t.root].symbol, true, nil
	}

	n := t.nodes[c.at]
	if n.kind == leafNode {
		return 0, false, fmt.Errorf("%w: cursor stuck on leaf %d", ErrCorruptTree, c.at)
	}

	next := n.left
	if bit == '1' {
		next = n.right
	}
	if !t.valid(next) {
		return 0, false, fmt.Errorf("%w: node %d has no child for bit %q", ErrCorruptTree, c.at, bit)
	}

	if t.nodes[next].kind == leafNode {
		c.at = t.root
		return t.nodes[next].symbol, true, nil
	}
	c.at = next
	return 0, false, nil
}

// midCode reports whether the cursor has consumed part of a code
func (c *cursor) midCode() bool {
	return c.at != c.t.root
}

// Decode replays bits through the tree until they are exhausted.
// A stream that stops inside a code fails with ErrIncompleteCode.
func Decode(bits Bits, t *Tree) ([]Symbol, error) {
	return decode(bits, t, UnknownLength)
}

// DecodeN decodes exactly n symbols and ignores any bits left after the last
// one, so streams padded to a byte boundary decode cleanly. Running out of
// bits before n symbols fails with ErrIncompleteCode.
func DecodeN(bits Bits, t *Tree, n int) ([]Symbol, error) {
	if n < 0 {
		return Decode(bits, t)
	}
	return decode(bits, t, n)
}

// DecodeStream decodes s, honouring its symbol count when it is known
func DecodeStream(s Stream, t *Tree) ([]Symbol, error) {
	return DecodeN(s.Bits, t, s.Symbols)
}

// DecodeString is Decode returning a string
func DecodeString(bits Bits, t *Tree) (string, error) {
	out, err := Decode(bits, t)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decode(bits Bits, t *Tree, n int) ([]Symbol, error) {
	c, err := newCursor(t)
	if err != nil {
		return nil, err
	}

	// every code is at least one bit, so bits bounds the symbol count
	capacity := min(n, len(bits))
	if capacity < 0 {
		capacity = len(bits) / 2
	}
	out := make([]Symbol, 0, capacity)
	if n == 0 {
		return out, nil
	}

	for i := 0; i < len(bits); i++ {
		sym, ok, err := c.step(bits[i])
		if err != nil {
			return nil, fmt.Errorf("bit %d: %w", i, err)
		}
		if !ok {
			continue
		}
		out = append(out, sym)
		if n >= 0 && len(out) == n {
			return out, nil
		}
	}

	if c.midCode() {
		return nil, fmt.Errorf("%w: %d symbols decoded before the stream stopped", ErrIncompleteCode, len(out))
	}
	if n >= 0 && len(out) < n {
		return nil, fmt.Errorf("%w: stream ended after %d of %d symbols", ErrIncompleteCode, len(out), n)
	}
	return out, nil
}
