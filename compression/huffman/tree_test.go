package huffman

import "testing"

func countLeaves(arena []node, i int) int {
	n := &arena[i]
	if isLeaf(n) {
		return 1
	}
	return countLeaves(arena, n.left) + countLeaves(arena, n.right)
}

func TestBuildTreeShallowFirst(t *testing.T) {
	hist := make([]int, 256)
	hist['a'] = 100
	hist['b'] = 50
	hist['c'] = 25
	hist['d'] = 1
	hist['e'] = 1

	arena, root := buildTree(hist)
	var walk func(i int)
	walk = func(i int) {
		n := &arena[i]
		if isLeaf(n) {
			return
		}
		if arena[n.left].nRepresent > arena[n.right].nRepresent {
			t.Fatalf("node %d: left nRepresent %d > right nRepresent %d", i, arena[n.left].nRepresent, arena[n.right].nRepresent)
		}
		walk(n.left)
		walk(n.right)
	}
	walk(root)

	if got, want := countLeaves(arena, root), 5; got != want {
		t.Fatalf("got %d leaves, want %d", got, want)
	}
}

func TestBuildTreeDegenerateSingleSymbol(t *testing.T) {
	hist := make([]int, 16)
	hist[7] = 42

	arena, root := buildTree(hist)
	if countLeaves(arena, root) != 2 {
		t.Fatalf("degenerate alphabet should still produce a two-leaf tree, got %d leaves", countLeaves(arena, root))
	}
	if !hasSymbol(arena, root, 7) {
		t.Fatal("tree lost the only real symbol")
	}
}

func TestBuildTreeEmptyHistogram(t *testing.T) {
	hist := make([]int, 16)
	arena, root := buildTree(hist)
	if countLeaves(arena, root) != 2 {
		t.Fatalf("empty histogram should still produce a two-leaf tree, got %d leaves", countLeaves(arena, root))
	}
}

func TestBuildTreeAllSymbolsUsed(t *testing.T) {
	hist := make([]int, 256)
	for i := range hist {
		hist[i] = i + 1
	}
	arena, root := buildTree(hist)
	if got, want := countLeaves(arena, root), 256; got != want {
		t.Fatalf("got %d leaves, want %d", got, want)
	}
	for sym := 0; sym < 256; sym++ {
		if !hasSymbol(arena, root, uint8(sym)) {
			t.Fatalf("symbol %d missing from tree", sym)
		}
	}
}
