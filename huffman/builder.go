package huffman

import "container/heap"

// handle is the heap's value-typed view of a tree node
type handle struct {
	id   NodeID
	freq float64
	seq  int
}

// handleHeap orders by frequency; equal frequencies fall back to the
// insertion sequence so that earlier pushes are popped first.
type handleHeap []handle

func (h handleHeap) Len() int { return len(h) }
func (h handleHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h handleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *handleHeap) Push(x any) { *h = append(*h, x.(handle)) }

func (h *handleHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// BuildTree builds a Huffman tree by repeatedly merging the two lightest nodes.
//
// The first node popped becomes the left child and the second the right child.
// Ties between equal frequencies are broken by insertion sequence: leaves are
// numbered in input order and every merged node takes the next number, so the
// same input order always produces the same tree.
//
// A single-symbol alphabet yields a tree whose root is that symbol's leaf.
func BuildTree(symbols []WeightedSymbol) (*Tree, error) {
	if err := validateAlphabet(symbols); err != nil {
		return nil, err
	}

	t := newTree(2*len(symbols) - 1)
	h := make(handleHeap, 0, len(symbols))
	seq := 0
	for _, ws := range symbols {
		id := t.addLeaf(ws.Symbol, ws.Freq)
		h = append(h, handle{id: id, freq: ws.Freq, seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(handle)
		right := heap.Pop(&h).(handle)
		id := t.addInternal(left.id, right.id)
		heap.Push(&h, handle{id: id, freq: t.nodes[id].freq, seq: seq})
		seq++
	}

	t.root = heap.Pop(&h).(handle).id
	return t, nil
}
