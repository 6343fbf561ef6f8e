package compression

import (
	"bytes"
	"testing"

	"github.com/gamemasterplc/mpdsarchivetool/internal/testutil"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	kinds := []Kind{None, LZ77, LZ11, LZ77Header, Huffman4, Huffman8}
	data := testutil.NewRand(5).Bytes(2048)
	// Huffman8 gets a 64-symbol alphabet: random bytes over all 256 values
	// build a tree too wide for the 6-bit packed child offset.
	data64 := make([]byte, len(data))
	for i, b := range data {
		data64[i] = b & 0x3F
	}

	for _, kind := range kinds {
		in := data
		if kind == Huffman8 {
			in = data64
		}
		enc, err := Compress(in, kind)
		if err != nil {
			t.Fatalf("%v: compress: %v", kind, err)
		}
		if kind != None && KindOf(enc) != kind {
			t.Fatalf("%v: KindOf(enc) = %v", kind, KindOf(enc))
		}
		dec, err := DecompressAs(enc, kind)
		if err != nil {
			t.Fatalf("%v: decompress: %v", kind, err)
		}
		if !bytes.Equal(dec, in) {
			t.Fatalf("%v: round trip mismatch", kind)
		}
	}
}

func TestKindOfUnrecognizedIsNone(t *testing.T) {
	if got := KindOf([]byte{0xFF, 0xFF, 0xFF, 0xFF}); got != None {
		t.Fatalf("got %v, want None", got)
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, kind := range []Kind{None, LZ77, LZ11, Huffman4, Huffman8, LZ77Header} {
		parsed, ok := ParseKind(kind.String())
		if !ok || parsed != kind {
			t.Fatalf("ParseKind(%q) = (%v, %v), want (%v, true)", kind.String(), parsed, ok, kind)
		}
	}
	if _, ok := ParseKind("not a kind"); ok {
		t.Fatal("ParseKind accepted a bogus name")
	}
}

func TestDecompressSniffsKind(t *testing.T) {
	enc, err := Compress([]byte("sniff me please"), LZ11)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Decompress(enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "sniff me please" {
		t.Fatalf("got %q", dec)
	}
}
