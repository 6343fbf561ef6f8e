package lz

// findMatch scans the already-emitted window for the longest backreference
// match against the start of lookahead.
//
// It returns the best (length, offset) with offset counted in
// [2, min(maxOffset, len(window))-1] bytes back from the end of window (so
// no match is found until window holds at least 3 bytes), or length 0 if
// no match of at least 3
// bytes exists. Offset 1 is never returned even though it is a legal
// backreference distance — this mirrors the reference encoder, which starts
// its search at offset 2 and therefore never discovers degenerate single-byte
// periods; this is an accepted, compatibility-preserving suboptimality.
//
// length is capped at maxLen (the format's true maximum run length) and at
// len(lookahead). Once the running best reaches exactly earlyExit bytes,
// the reference encoder stops improving it: the next candidate that would
// beat it instead triggers an immediate break, discarding that candidate
// and keeping the earlyExit-length match found earlier. For LZ77, maxLen
// and earlyExit are both 0x12, so this is unreachable (no candidate can
// ever exceed the running best once it hits the format's true maximum).
// For LZ11, maxLen is far larger than earlyExit, so this quirk can and
// does discard a strictly longer, later match in favor of a shorter
// earlier one — a known, intentional suboptimality (see lz11.go) that
// spec §9 asks implementers to preserve rather than smooth away.
func findMatch(window, lookahead []byte, maxLen, earlyExit int) (length, offset int) {
	maxSearch := maxOffset
	if maxSearch > len(window) {
		maxSearch = len(window)
	}
	if maxLen > len(lookahead) {
		maxLen = len(lookahead)
	}
	if maxLen < 3 {
		return 0, 0
	}

	for j := 2; j < maxSearch; j++ {
		n := matchLenAt(window, lookahead, j, maxLen)
		if n > length {
			if length == earlyExit {
				break
			}
			length, offset = n, j
		}
	}
	if length < 3 {
		return 0, 0
	}
	return length, offset
}

// matchLenAt computes how many leading bytes of lookahead agree with the
// self-overlapping backreference copy starting offset bytes before the end
// of window, capped at maxLen.
func matchLenAt(window, lookahead []byte, offset, maxLen int) int {
	base := len(window) - offset
	n := 0
	for n < maxLen && n < len(lookahead) {
		var w byte
		if n < offset {
			w = window[base+n]
		} else {
			// Self-overlap: bytes beyond the first `offset` positions repeat
			// periodically, since a real decoder would be copying from
			// output it has only just produced as part of this same match.
			w = window[base+n%offset]
		}
		if w != lookahead[n] {
			break
		}
		n++
	}
	return n
}
