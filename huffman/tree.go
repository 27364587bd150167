package huffman

// NodeID addresses a node inside a Tree
type NodeID int32

// NoNode marks a missing child
const NoNode NodeID = -1

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

// node is a tagged variant: leaves carry a symbol, internal nodes carry two children
type node struct {
	kind   nodeKind
	symbol Symbol
	freq   float64
	left   NodeID
	right  NodeID
}

// Tree is a Huffman tree stored as an arena of nodes.
// A Tree is never modified after BuildTree or TreeFromCodes returns it.
type Tree struct {
	nodes []node
	root  NodeID
}

func newTree(capacity int) *Tree {
	return &Tree{nodes: make([]node, 0, capacity), root: NoNode}
}

func (t *Tree) addLeaf(sym Symbol, freq float64) NodeID {
	t.nodes = append(t.nodes, node{kind: leafNode, symbol: sym, freq: freq, left: NoNode, right: NoNode})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) addInternal(left, right NodeID) NodeID {
	var freq float64
	if left != NoNode {
		freq += t.nodes[left].freq
	}
	if right != NoNode {
		freq += t.nodes[right].freq
	}
	t.nodes = append(t.nodes, node{kind: internalNode, freq: freq, left: left, right: right})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Root returns the id of the root node
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the tree
func (t *Tree) Len() int { return len(t.nodes) }

// IsLeaf reports whether id is a leaf
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.valid(id) && t.nodes[id].kind == leafNode
}

// Symbol returns the symbol stored at a leaf
func (t *Tree) Symbol(id NodeID) (Symbol, bool) {
	if !t.IsLeaf(id) {
		return 0, false
	}
	return t.nodes[id].symbol, true
}

// Freq returns the aggregate frequency of a node
func (t *Tree) Freq(id NodeID) float64 {
	if !t.valid(id) {
		return 0
	}
	return t.nodes[id].freq
}

// Children returns the left and right children of an internal node
func (t *Tree) Children(id NodeID) (left, right NodeID, ok bool) {
	if !t.valid(id) || t.nodes[id].kind != internalNode {
		return NoNode, NoNode, false
	}
	n := t.nodes[id]
	return n.left, n.right, true
}

// Degenerate reports whether the whole tree is a single leaf
func (t *Tree) Degenerate() bool {
	return t.IsLeaf(t.root)
}

// Leaves returns the number of leaves, i.e. the alphabet size
func (t *Tree) Leaves() int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].kind == leafNode {
			n++
		}
	}
	return n
}

// Depth returns the length of the longest root-to-leaf path
func (t *Tree) Depth() int {
	if !t.valid(t.root) {
		return 0
	}
	type item struct {
		id    NodeID
		depth int
	}
	max := 0
	stack := []item{{t.root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[it.id]
		if n.kind == leafNode {
			if it.depth > max {
				max = it.depth
			}
			continue
		}
		stack = append(stack, item{n.left, it.depth + 1}, item{n.right, it.depth + 1})
	}
	return max
}
