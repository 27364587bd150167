package huffman

import "fmt"

// TreeFromCodes rebuilds a decoding tree from a code table by inserting every
// code into a trie, '0' selecting the left branch and '1' the right one.
//
// A one-entry table holding DegenerateCode becomes a single-leaf tree. The
// table must describe a full binary tree: a code that prefixes another fails
// with ErrNotPrefixFree, and a branch left without a child fails with
// ErrIncompleteTable. Frequencies are not part of a code table, so every node
// of the rebuilt tree has frequency zero.
func TreeFromCodes(table *CodeTable) (*Tree, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	entries := table.sorted
	if len(entries) == 1 {
		e := entries[0]
		if e.Code != DegenerateCode {
			return nil, fmt.Errorf("%w: single symbol %q must use code %q, got %q", ErrIncompleteTable, e.Symbol, DegenerateCode, e.Code)
		}
		t := newTree(1)
		t.root = t.addLeaf(e.Symbol, 0)
		return t, nil
	}

	t := newTree(2*len(entries) - 1)
	t.root = t.addInternal(NoNode, NoNode)

	for _, e := range entries {
		if !e.Code.Valid() {
			return nil, fmt.Errorf("%w: %q has code %q", ErrInvalidBit, e.Symbol, e.Code)
		}
		at := t.root
		for i := 0; i < len(e.Code); i++ {
			if t.nodes[at].kind == leafNode {
				return nil, fmt.Errorf("%w: code of %q passes through leaf %q", ErrNotPrefixFree, e.Symbol, t.nodes[at].symbol)
			}
			last := i == len(e.Code)-1
			child := t.nodes[at].left
			if e.Code[i] == '1' {
				child = t.nodes[at].right
			}

			if child != NoNode {
				if last {
					return nil, fmt.Errorf("%w: code of %q (%s) is already taken or extended", ErrNotPrefixFree, e.Symbol, e.Code)
				}
				at = child
				continue
			}

			if last {
				child = t.addLeaf(e.Symbol, 0)
			} else {
				child = t.addInternal(NoNode, NoNode)
			}
			if e.Code[i] == '1' {
				t.nodes[at].right = child
			} else {
				t.nodes[at].left = child
			}
			at = child
		}
	}

	for id := range t.nodes {
		n := t.nodes[id]
		if n.kind == internalNode && (n.left == NoNode || n.right == NoNode) {
			return nil, fmt.Errorf("%w: node %d has a single child", ErrIncompleteTable, id)
		}
	}
	return t, nil
}
