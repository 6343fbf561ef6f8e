// Package testutil holds small helpers shared by the test suites of the
// codec packages. It is deliberately kept out of the importable API.
package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"encoding/hex"
)

// Rand implements a deterministic pseudo-random byte generator. Unlike
// math/rand, its output is stable across Go versions, which keeps golden
// test fixtures reproducible.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

// NewRand seeds a deterministic generator.
func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

// Intn returns a deterministic pseudo-random int in [0, n).
func (r *Rand) Intn(n int) int {
	r.Encrypt(r.blk[:], r.blk[:])
	x := 0
	for i := 0; i < 7; i++ {
		x |= int(r.blk[i]) << (8 * i)
	}
	if x < 0 {
		x = -x
	}
	return x % n
}

// Bytes returns n deterministic pseudo-random bytes.
func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

// MustDecodeHex decodes a hexadecimal string or panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
