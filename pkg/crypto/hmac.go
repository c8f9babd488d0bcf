package crypto

import (
	"hash"

	"github.com/backkem/sha1kit/pkg/hmac"
	"github.com/backkem/sha1kit/pkg/sha1"
)

// HMACSHA1 computes the HMAC-SHA1 of a message using the given key
// (RFC 2104 with a 64-byte block).
//
// Returns a 20-byte (160-bit) MAC.
func HMACSHA1(key, message []byte) [SHA1LenBytes]byte {
	var result [SHA1LenBytes]byte
	copy(result[:], hmac.Sum(sha1.NewHash, key, message))
	return result
}

// HMACSHA1Slice computes the HMAC-SHA1 and returns it as a slice.
// This is a convenience function for cases where a slice is preferred.
func HMACSHA1Slice(key, message []byte) []byte {
	return hmac.Sum(sha1.NewHash, key, message)
}

// NewHMACSHA1 returns a new hash.Hash for computing HMAC-SHA1 incrementally.
// This is useful for computing MACs over streaming data.
//
// Usage:
//
//	h := crypto.NewHMACSHA1(key)
//	h.Write(data1)
//	h.Write(data2)
//	mac := h.Sum(nil)
func NewHMACSHA1(key []byte) hash.Hash {
	return hmac.New(sha1.NewHash, key)
}

// HMACEqual compares two MACs for equality in constant time.
// This should be used instead of bytes.Equal to prevent timing attacks.
func HMACEqual(mac1, mac2 []byte) bool {
	return hmac.Equal(mac1, mac2)
}
