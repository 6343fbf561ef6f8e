package lz

import (
	"bytes"
	"testing"
)

func TestLZ77HeaderRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("ABCDEFGH"),
		bytes.Repeat([]byte{'A'}, 500),
	}
	for i, in := range cases {
		enc, err := EncodeLZ77Header(in)
		if err != nil {
			t.Fatalf("case %d: encode: %v", i, err)
		}
		if !bytes.HasPrefix(enc, []byte("LZ77")) {
			t.Fatalf("case %d: missing LZ77 tag: % x", i, enc)
		}
		dec, err := DecodeLZ77Header(enc)
		if err != nil {
			t.Fatalf("case %d: decode: %v", i, err)
		}
		if !bytes.Equal(dec, in) {
			t.Fatalf("case %d: round trip mismatch: got %v want %v", i, dec, in)
		}
		if !ProbeLZ77Header(enc) {
			t.Fatalf("case %d: ProbeLZ77Header rejected a valid stream", i)
		}
	}
}

func TestDecodeLZ77HeaderRejectsBadTag(t *testing.T) {
	buf := append([]byte("LZ76"), []byte{0x10, 0x00, 0x00, 0x00}...)
	if _, err := DecodeLZ77Header(buf); err != ErrMagicMismatch {
		t.Fatalf("got %v, want ErrMagicMismatch", err)
	}
}

func TestProbeLZ77HeaderRejectsBareLZ77(t *testing.T) {
	enc, err := EncodeLZ77(nil)
	if err != nil {
		t.Fatal(err)
	}
	if ProbeLZ77Header(enc) {
		t.Fatal("accepted a buffer missing the LZ77 tag")
	}
}
