// Package crypto provides the SHA-1 based primitives of sha1kit behind a
// small, fixed-array-or-slice API: digests, the Merkle pairwise combiner,
// HMAC-SHA1 and the HKDF/PBKDF2 key derivations built on them.
//
// All functions are safe for concurrent use; each call owns its hash state.
package crypto

import (
	"hash"

	"github.com/backkem/sha1kit/pkg/sha1"
)

// SHA-1 constants (FIPS 180-4).
const (
	// SHA1LenBits is the SHA-1 output length in bits.
	SHA1LenBits = 160

	// SHA1LenBytes is the SHA-1 output length in bytes.
	SHA1LenBytes = sha1.Size

	// SHA1BlockSize is the SHA-1 compression block length in bytes.
	SHA1BlockSize = sha1.BlockSize
)

// SHA1 computes the SHA-1 hash of a message.
//
// Returns a 20-byte (160-bit) digest.
func SHA1(message []byte) [SHA1LenBytes]byte {
	return sha1.Sum(message)
}

// SHA1Slice computes the SHA-1 hash and returns it as a slice.
// This is a convenience function for cases where a slice is preferred.
func SHA1Slice(message []byte) []byte {
	h := sha1.Sum(message)
	return h[:]
}

// NewSHA1 returns a new hash.Hash for computing SHA-1 digests incrementally.
// This is useful for hashing large data or streaming data.
//
// Usage:
//
//	h := crypto.NewSHA1()
//	h.Write(data1)
//	h.Write(data2)
//	digest := h.Sum(nil)
func NewSHA1() hash.Hash {
	return sha1.New()
}

// Combine hashes two child digests into their Merkle parent:
// SHA1(left || right). Both inputs must be exactly 20 bytes; anything else
// fails with sha1.ErrInvalidDigestSize rather than being truncated or padded.
func Combine(left, right []byte) ([SHA1LenBytes]byte, error) {
	return sha1.Combine(left, right)
}
