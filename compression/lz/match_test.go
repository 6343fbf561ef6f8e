package lz

import (
	"bytes"
	"testing"
)

func TestMatchLenAtSelfOverlap(t *testing.T) {
	window := []byte("AB")
	lookahead := []byte("ABABABA")
	n := matchLenAt(window, lookahead, 2, 100)
	if n != len(lookahead) {
		t.Fatalf("got %d, want %d", n, len(lookahead))
	}
}

func TestFindMatchRequiresThreeBytesOfWindow(t *testing.T) {
	// With only two bytes of window, offset 2 is never reachable: the
	// search loop starts at j=2 and requires maxSearch > 2.
	length, offset := findMatch([]byte("AA"), []byte("AAAAAA"), 0x12, 0x12)
	if length != 0 || offset != 0 {
		t.Fatalf("got (%d, %d), want (0, 0)", length, offset)
	}
}

func TestFindMatchNeverReturnsOffsetOne(t *testing.T) {
	window := []byte("AAA")
	lookahead := []byte("AAAAA")
	length, offset := findMatch(window, lookahead, 0x12, 0x12)
	if length > 0 && offset == 1 {
		t.Fatal("findMatch returned offset 1, which the reference encoder never discovers")
	}
}

func TestFindMatchNoMatchBelowThreeBytes(t *testing.T) {
	length, offset := findMatch([]byte("ABCDE"), []byte("XY"), 0x12, 0x12)
	if length != 0 || offset != 0 {
		t.Fatalf("got (%d, %d), want (0, 0)", length, offset)
	}
}

// TestFindMatchContinuesPastEarlyExitAfterASingleJump hand-verifies the
// reference encoder's break condition: it only locks in once the running
// best reaches exactly earlyExit bytes. A candidate that jumps straight
// from 0 to something beyond earlyExit (skipping the exact value) does not
// trigger the break, so the search keeps going and can still adopt a
// later, strictly longer match — this is the LZ11 case spec §9 asks
// implementers to preserve rather than smooth into a naive ">= earlyExit,
// stop immediately" heuristic.
func TestFindMatchContinuesPastEarlyExitAfterASingleJump(t *testing.T) {
	lookahead := []byte("0123456789ABCDEFGHIJKLMNOPQRST") // 30 unique bytes

	window := bytes.Repeat([]byte{0xFF}, 100)
	// offset 30: a 20-byte literal match, capped by a deliberate mismatch
	// at the 21st byte so it can't extend into the offset-80 match below.
	copy(window[70:90], lookahead[:20])
	window[90] = '!'
	// offset 80: the full 30-byte literal match, strictly longer.
	copy(window[20:50], lookahead[:30])

	length, offset := findMatch(window, lookahead, len(lookahead), 0x12)
	if length != 30 || offset != 80 {
		t.Fatalf("got (%d, %d), want (30, 80)", length, offset)
	}
}
