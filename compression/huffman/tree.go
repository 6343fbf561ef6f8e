package huffman

import "container/heap"

// node is one entry of the index-based tree arena. left and right are
// indices into the same arena, or -1 for a leaf.
type node struct {
	sym            uint8
	symMin, symMax uint8
	nRepresent     int
	freq           int
	left, right    int
}

func isLeaf(n *node) bool { return n.left < 0 && n.right < 0 }

// nodeHeap is a container/heap min-heap over arena indices, ordered by
// frequency. Popping the two lowest-frequency roots twice per merge round
// is equivalent to sorting the whole root set and taking the bottom two,
// which is what the reference builder does with a qsort-per-merge.
type nodeHeap struct {
	arena *[]node
	idx   []int
}

func (h *nodeHeap) Len() int { return len(h.idx) }
func (h *nodeHeap) Less(i, j int) bool {
	return (*h.arena)[h.idx[i]].freq < (*h.arena)[h.idx[j]].freq
}
func (h *nodeHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *nodeHeap) Push(x any)    { h.idx = append(h.idx, x.(int)) }
func (h *nodeHeap) Pop() any {
	n := len(h.idx)
	x := h.idx[n-1]
	h.idx = h.idx[:n-1]
	return x
}

// buildTree constructs a Huffman tree over hist (length 16 or 256,
// zero-frequency entries dropped) and returns the node arena plus the
// root's index. When fewer than two symbols have nonzero frequency, a
// synthetic sentinel leaf with an unused symbol value is merged in so the
// packed tree format, which always has two children at the root, stays
// well-formed; see flate's handleDegenerateCodes for the analogous fix to
// canonical Huffman codes with one live symbol.
func buildTree(hist []int) (arena []node, root int) {
	nSym := len(hist)
	arena = make([]node, 0, 2*nSym)
	idx := make([]int, 0, nSym)
	used := make([]bool, nSym)

	for sym := 0; sym < nSym; sym++ {
		if hist[sym] == 0 {
			continue
		}
		arena = append(arena, node{
			sym: uint8(sym), symMin: uint8(sym), symMax: uint8(sym),
			nRepresent: 1, freq: hist[sym], left: -1, right: -1,
		})
		idx = append(idx, len(arena)-1)
		used[sym] = true
	}

	for sentinel := 0; len(idx) < 2 && sentinel < nSym; sentinel++ {
		if used[sentinel] {
			continue
		}
		arena = append(arena, node{
			sym: uint8(sentinel), symMin: uint8(sentinel), symMax: uint8(sentinel),
			nRepresent: 1, freq: 0, left: -1, right: -1,
		})
		idx = append(idx, len(arena)-1)
		used[sentinel] = true
	}

	h := &nodeHeap{arena: &arena, idx: idx}
	heap.Init(h)

	for h.Len() > 1 {
		ai := heap.Pop(h).(int)
		bi := heap.Pop(h).(int)

		left, right := ai, bi
		if arena[left].nRepresent > arena[right].nRepresent {
			left, right = right, left
		}

		merged := node{
			freq:       arena[left].freq + arena[right].freq,
			symMin:     minU8(arena[left].symMin, arena[right].symMin),
			symMax:     maxU8(arena[left].symMax, arena[right].symMax),
			nRepresent: arena[left].nRepresent + arena[right].nRepresent,
			left:       left,
			right:      right,
		}
		arena = append(arena, merged)
		heap.Push(h, len(arena)-1)
	}

	root = h.idx[0]
	shallowFirst(arena, root)
	return arena, root
}

// shallowFirst recursively rearranges each internal node so the child with
// the smaller n_represent is on the left, biasing small offsets into the
// left branch of the serialized tree (see serialize.go).
func shallowFirst(arena []node, i int) {
	n := &arena[i]
	if isLeaf(n) {
		return
	}
	if arena[n.left].nRepresent > arena[n.right].nRepresent {
		n.left, n.right = n.right, n.left
	}
	shallowFirst(arena, n.left)
	shallowFirst(arena, n.right)
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// hasSymbol reports whether the subtree rooted at arena[i] contains sym.
func hasSymbol(arena []node, i int, sym uint8) bool {
	n := &arena[i]
	if isLeaf(n) {
		return n.sym == sym
	}
	if sym < n.symMin || sym > n.symMax {
		return false
	}
	return hasSymbol(arena, n.left, sym) || hasSymbol(arena, n.right, sym)
}
