package huffman

import "github.com/gamemasterplc/mpdsarchivetool/compression/internal/bitio"

// Encode4 compresses buf as a 4-bit (0x24) Huffman stream, one tree node
// per nibble with the low nibble of each byte encoded before the high.
func Encode4(buf []byte) ([]byte, error) { return encode(buf, 4) }

// Encode8 compresses buf as an 8-bit (0x28) Huffman stream. It returns
// ErrTreeUnrepresentable rather than silently downgrading to 4-bit when the
// resulting tree cannot be packed into the 6-bit offset field — see
// serialize.go and DESIGN.md for why this implementation refuses to guess
// at the reference tool's "HACK: force 4-bit" behavior.
func Encode8(buf []byte) ([]byte, error) { return encode(buf, 8) }

func encode(buf []byte, nBits int) (out []byte, err error) {
	defer errRecover(&err)
	if len(buf) > MaxUncompressedSize {
		panic(ErrOversizeOutput)
	}

	nSym := 1 << uint(nBits)
	hist := make([]int, nSym)
	if nBits == 8 {
		for _, b := range buf {
			hist[b]++
		}
	} else {
		for _, b := range buf {
			hist[b&0xF]++
			hist[b>>4]++
		}
	}

	arena, root := buildTree(hist)
	treeBytes, terr := serializeTree(arena, root)
	if terr != nil {
		panic(terr)
	}

	var bw bitio.Writer
	if nBits == 8 {
		for _, b := range buf {
			writeSymbol(&bw, arena, root, b)
		}
	} else {
		for _, b := range buf {
			writeSymbol(&bw, arena, root, b&0xF)
			writeSymbol(&bw, arena, root, b>>4)
		}
	}

	bits := bw.Bytes()
	out = make([]byte, 4+len(treeBytes)+len(bits))
	out[0] = byte(0x20 | nBits)
	out[1] = byte(len(buf))
	out[2] = byte(len(buf) >> 8)
	out[3] = byte(len(buf) >> 16)
	copy(out[4:], treeBytes)
	copy(out[4+len(treeBytes):], bits)
	return out, nil
}

// writeSymbol emits the root-to-leaf path for sym as a sequence of bits, 0
// for a left step and 1 for a right step.
func writeSymbol(bw *bitio.Writer, arena []node, idx int, sym uint8) {
	n := &arena[idx]
	if isLeaf(n) {
		return
	}
	if hasSymbol(arena, n.left, sym) {
		bw.WriteBit(0)
		writeSymbol(bw, arena, n.left, sym)
	} else {
		bw.WriteBit(1)
		writeSymbol(bw, arena, n.right, sym)
	}
}

// Decode decompresses a 0x24 or 0x28 Huffman stream; the bit width is read
// from the low nibble of the header byte.
func Decode(buf []byte) (out []byte, err error) {
	defer errRecover(&err)
	nBits, size, treeBase, dataOff, err := parseHeader(buf)
	if err != nil {
		panic(err)
	}

	rd := bitio.NewWordReader(buf, dataOff)
	out = make([]byte, size)
	numSymbols := size
	if nBits == 4 {
		numSymbols *= 2
	}

	for i := uint32(0); i < numSymbols; i++ {
		sym, serr := decodeSymbol(treeBase, rd)
		if serr != nil {
			panic(serr)
		}
		switch {
		case nBits == 8:
			out[i] = sym
		case i%2 == 0:
			out[i/2] = sym
		default:
			out[i/2] |= sym << 4
		}
	}
	return out, nil
}

// Probe4 performs a structural dry-run decode of a 0x24 stream. It never
// returns an error — a malformed buffer simply yields false.
func Probe4(buf []byte) bool { return probe(buf, 4) }

// Probe8 performs a structural dry-run decode of a 0x28 stream.
func Probe8(buf []byte) bool { return probe(buf, 8) }

func probe(buf []byte, wantBits int) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	nBits, size, treeBase, dataOff, err := parseHeader(buf)
	if err != nil || nBits != wantBits {
		return false
	}

	rd := bitio.NewWordReader(buf, dataOff)
	numSymbols := size
	if nBits == 4 {
		numSymbols *= 2
	}
	for i := uint32(0); i < numSymbols; i++ {
		if _, serr := decodeSymbol(treeBase, rd); serr != nil {
			return false
		}
	}
	return rd.ByteOffset() == len(buf)
}

// parseHeader validates the 4-byte header and packed-tree bounds shared by
// Decode, Probe4, and Probe8, returning the bit width, declared size, the
// tree region (buf[4:4+treeBytes]), and the byte offset where the bit
// stream begins.
func parseHeader(buf []byte) (nBits int, size uint32, treeBase []byte, dataOff int, err error) {
	if len(buf) < 6 {
		return 0, 0, nil, 0, ErrTruncated
	}
	if buf[0]&0xF0 != 0x20 {
		return 0, 0, nil, 0, ErrMagicMismatch
	}
	nBits = int(buf[0] & 0xF)
	if nBits != 4 && nBits != 8 {
		return 0, 0, nil, 0, ErrMagicMismatch
	}
	size = uint32(buf[1]) | uint32(buf[2])<<8 | uint32(buf[3])<<16
	if size > MaxUncompressedSize {
		return 0, 0, nil, 0, ErrOversizeOutput
	}

	treeBytes := (int(buf[4]) + 1) * 2
	dataOff = 4 + treeBytes
	if dataOff > len(buf) {
		return 0, 0, nil, 0, ErrTruncated
	}
	return nBits, size, buf[4:dataOff], dataOff, nil
}

// decodeSymbol walks the packed tree from the virtual root (byte 1, whose
// own offset field is always 0) one bit at a time until a leaf-flagged
// child is reached, returning its symbol byte.
func decodeSymbol(treeBase []byte, rd *bitio.WordReader) (byte, error) {
	trOffs := 1
	for {
		lr, ok := rd.ReadBit()
		if !ok {
			return 0, ErrTruncated
		}
		if trOffs < 0 || trOffs >= len(treeBase) {
			return 0, ErrCorruptTree
		}
		thisNode := treeBase[trOffs]
		thisNodeOffs := (int(thisNode&0x3F) + 1) << 1
		trOffs = (trOffs &^ 1) + thisNodeOffs + int(lr)
		if thisNode&(0x80>>lr) != 0 {
			if trOffs < 0 || trOffs >= len(treeBase) {
				return 0, ErrCorruptTree
			}
			return treeBase[trOffs], nil
		}
	}
}
