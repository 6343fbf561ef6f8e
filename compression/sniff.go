package compression

import (
	"github.com/gamemasterplc/mpdsarchivetool/compression/huffman"
	"github.com/gamemasterplc/mpdsarchivetool/compression/lz"
)

// candidateOrder mirrors original_source/compression.c's getCompressionType
// dispatch order: the header-tagged LZ77 variant is tried before the bare
// one so the four-byte `LZ77` tag isn't mistaken for literal data.
var candidateOrder = []struct {
	kind  Kind
	probe func([]byte) bool
}{
	{LZ77Header, lz.ProbeLZ77Header},
	{LZ77, lz.ProbeLZ77},
	{LZ11, lz.ProbeLZ11},
	{Huffman4, huffman.Probe4},
	{Huffman8, huffman.Probe8},
}

// KindOf identifies buf's container format using a structural dry-run
// decode for each candidate in turn, never allocating a decoded output. It
// returns None if no candidate's sniffer passes.
func KindOf(buf []byte) Kind {
	for _, c := range candidateOrder {
		if c.probe(buf) {
			return c.kind
		}
	}
	return None
}
