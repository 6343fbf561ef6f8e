package lz

var lz77HeaderTag = [4]byte{'L', 'Z', '7', '7'}

// EncodeLZ77Header compresses buf with LZ77 and prepends the four-byte
// `LZ77` tag.
func EncodeLZ77Header(buf []byte) ([]byte, error) {
	body, err := EncodeLZ77(buf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4+len(body))
	copy(out, lz77HeaderTag[:])
	copy(out[4:], body)
	return out, nil
}

// DecodeLZ77Header strips the `LZ77` tag and decompresses the remaining
// 0x10 LZ77 body.
func DecodeLZ77Header(buf []byte) (out []byte, err error) {
	defer errRecover(&err)
	if len(buf) < 4 || buf[0] != 'L' || buf[1] != 'Z' || buf[2] != '7' || buf[3] != '7' {
		panic(ErrMagicMismatch)
	}
	return DecodeLZ77(buf[4:])
}

// ProbeLZ77Header requires the exact `LZ77` tag plus a structurally valid
// LZ77 body.
func ProbeLZ77Header(buf []byte) bool {
	if len(buf) < 8 {
		return false
	}
	if buf[0] != 'L' || buf[1] != 'Z' || buf[2] != '7' || buf[3] != '7' {
		return false
	}
	return ProbeLZ77(buf[4:])
}
