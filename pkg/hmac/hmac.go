// Package hmac implements the keyed-hash message authentication code
// construction (RFC 2104, FIPS 198-1) over any streaming digest engine.
//
// The construction only needs the engine's block size and digest size, both
// of which come from hash.Hash, so the same code keys SHA-1, SHA-256 or any
// other Merkle–Damgård engine:
//
//	mac := hmac.New(sha1.NewHash, key)
//	mac.Write(data)
//	tag := mac.Sum(nil)
package hmac

import (
	"crypto/subtle"
	"hash"
)

// Pad bytes from RFC 2104 Section 2.
const (
	ipadByte = 0x36
	opadByte = 0x5c
)

// MAC is an HMAC computation keyed once at construction. It owns two
// engine instances: inner absorbs ipad || message, outer absorbs
// opad || inner digest. MAC implements hash.Hash.
type MAC struct {
	inner hash.Hash
	outer hash.Hash

	// ipad and opad are the block-size key pads, computed once.
	ipad []byte
	opad []byte
}

var _ hash.Hash = (*MAC)(nil)

// New returns a MAC keyed with key over the engine built by h. Keys longer
// than the engine's block size are hashed first; shorter keys are padded
// with zero bytes. h must return a distinct instance on every call; New
// panics if it does not.
func New(h func() hash.Hash, key []byte) *MAC {
	m := &MAC{
		inner: h(),
		outer: h(),
	}
	if !distinct(m.inner, m.outer) {
		panic("hmac: hash constructor returned the same instance twice")
	}

	blockSize := m.inner.BlockSize()
	m.ipad = make([]byte, blockSize)
	m.opad = make([]byte, blockSize)

	if len(key) > blockSize {
		m.outer.Write(key)
		key = m.outer.Sum(nil)
	}
	copy(m.ipad, key)
	copy(m.opad, key)
	for i := range m.ipad {
		m.ipad[i] ^= ipadByte
		m.opad[i] ^= opadByte
	}

	m.Reset()
	return m
}

// distinct reports whether a and b are different instances. Hashes whose
// dynamic type is not comparable are treated as distinct.
func distinct(a, b hash.Hash) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = true
		}
	}()
	return a != b
}

// Write feeds message bytes into the inner engine.
func (m *MAC) Write(p []byte) (int, error) {
	return m.inner.Write(p)
}

// Sum appends the MAC of the data written so far to b. The inner state is
// preserved, so the caller may keep writing.
func (m *MAC) Sum(b []byte) []byte {
	origLen := len(b)
	b = m.inner.Sum(b)

	m.outer.Reset()
	m.outer.Write(m.opad)
	m.outer.Write(b[origLen:])
	return m.outer.Sum(b[:origLen])
}

// Reset discards the message and re-primes the inner engine with ipad.
func (m *MAC) Reset() {
	m.inner.Reset()
	m.inner.Write(m.ipad)
}

// Size returns the MAC length, which is the engine's digest size.
func (m *MAC) Size() int { return m.outer.Size() }

// BlockSize returns the engine's block size.
func (m *MAC) BlockSize() int { return m.inner.BlockSize() }

// Sum computes the MAC of message under key in one call.
func Sum(h func() hash.Hash, key, message []byte) []byte {
	m := New(h, key)
	m.Write(message)
	return m.Sum(nil)
}

// Equal compares two MACs in constant time. It should be used instead of
// bytes.Equal when verifying a received tag.
func Equal(mac1, mac2 []byte) bool {
	return subtle.ConstantTimeCompare(mac1, mac2) == 1
}
