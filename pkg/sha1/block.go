package sha1

import (
	"encoding/binary"
	"math/bits"
)

// Round constants, one per 20-round range (FIPS 180-4 Section 4.2.1).
const (
	_K0 = 0x5a827999
	_K1 = 0x6ed9eba1
	_K2 = 0x8f1bbcdc
	_K3 = 0xca62c1d6
)

// roundConstants is indexed by round/20.
var roundConstants = [4]uint32{_K0, _K1, _K2, _K3}

// scheduleLen is the number of words in an expanded message schedule.
const scheduleLen = 80

// ch selects bits of c or d depending on b. Rounds 0-19.
func ch(b, c, d uint32) uint32 {
	return b&c | ^b&d
}

// parity is used for rounds 20-39 and 60-79.
func parity(b, c, d uint32) uint32 {
	return b ^ c ^ d
}

// maj is the bitwise majority of b, c and d. Rounds 40-59.
func maj(b, c, d uint32) uint32 {
	return b&c | b&d | c&d
}

// expand fills w with the 80-word message schedule of one 64-byte block.
func expand(w *[scheduleLen]uint32, block []byte) {
	_ = block[BlockSize-1]
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < scheduleLen; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}
}

// compress runs the SHA-1 compression function over every complete block
// in p, in order, updating h in place. Trailing bytes that do not fill a
// block are ignored.
func compress(h *[5]uint32, p []byte) {
	var w [scheduleLen]uint32

	h0, h1, h2, h3, h4 := h[0], h[1], h[2], h[3], h[4]
	for len(p) >= BlockSize {
		expand(&w, p[:BlockSize])

		a, b, c, d, e := h0, h1, h2, h3, h4

		// The four 20-round ranges differ only in the round function;
		// the constant is looked up by range.
		i := 0
		for ; i < 20; i++ {
			t := bits.RotateLeft32(a, 5) + ch(b, c, d) + e + w[i] + roundConstants[i/20]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for ; i < 40; i++ {
			t := bits.RotateLeft32(a, 5) + parity(b, c, d) + e + w[i] + roundConstants[i/20]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for ; i < 60; i++ {
			t := bits.RotateLeft32(a, 5) + maj(b, c, d) + e + w[i] + roundConstants[i/20]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for ; i < scheduleLen; i++ {
			t := bits.RotateLeft32(a, 5) + parity(b, c, d) + e + w[i] + roundConstants[i/20]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}

		h0 += a
		h1 += b
		h2 += c
		h3 += d
		h4 += e

		p = p[BlockSize:]
	}

	h[0], h[1], h[2], h[3], h[4] = h0, h1, h2, h3, h4
}
