package compression

import (
	"github.com/gamemasterplc/mpdsarchivetool/compression/huffman"
	"github.com/gamemasterplc/mpdsarchivetool/compression/lz"
)

// Error is the wrapper type for errors raised directly by this package
// (collaborator codecs report their own errors unwrapped).
type Error string

func (e Error) Error() string { return "compression: " + string(e) }

// ErrUnknownKind is returned by Compress when kind is not one of the
// defined Kind values.
var ErrUnknownKind error = Error("unrecognized compression kind")

// Compress encodes buf under the given kind. None returns a copy of buf.
func Compress(buf []byte, kind Kind) ([]byte, error) {
	switch kind {
	case None:
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	case LZ77:
		return lz.EncodeLZ77(buf)
	case LZ11:
		return lz.EncodeLZ11(buf)
	case LZ77Header:
		return lz.EncodeLZ77Header(buf)
	case Huffman4:
		return huffman.Encode4(buf)
	case Huffman8:
		return huffman.Encode8(buf)
	default:
		return nil, ErrUnknownKind
	}
}

// Decompress identifies buf's kind via KindOf and decodes it. None is
// passed straight through as a byte-identical copy, matching the archive's
// convention of storing uncompressed members without a magic byte.
func Decompress(buf []byte) ([]byte, error) {
	return DecompressAs(buf, KindOf(buf))
}

// DecompressAs decodes buf as the given kind without sniffing. Callers
// that already know a member's kind from other metadata (the archive
// manifest, for instance) should use this instead of Decompress: a raw
// NONE-compressed member can coincidentally start with a byte that looks
// like a codec magic, and sniffing it would misidentify it.
func DecompressAs(buf []byte, kind Kind) ([]byte, error) {
	switch kind {
	case LZ77Header:
		return lz.DecodeLZ77Header(buf)
	case LZ77:
		return lz.DecodeLZ77(buf)
	case LZ11:
		return lz.DecodeLZ11(buf)
	case Huffman4, Huffman8:
		return huffman.Decode(buf)
	default:
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}
}
