// Package sha1 implements the SHA-1 hash algorithm as defined in FIPS 180-4
// and RFC 3174.
//
// The engine is an incremental Merkle–Damgård construction: a Context
// buffers input, compresses each complete 64-byte block as soon as it is
// available, and appends the standard padding and 64-bit length trailer on
// Finalize. Every Context owns its state; there is no shared scratch
// context, so independent messages may be hashed concurrently as long as
// each goroutine uses its own Context.
//
// SHA-1 is cryptographically broken for collision resistance and should not
// be used for new signature schemes.
package sha1

import (
	"encoding/binary"
	"hash"
)

// SHA-1 sizes from FIPS 180-4 Section 1.
const (
	// Size is the digest length in bytes.
	Size = 20

	// BlockSize is the compression block length in bytes.
	BlockSize = 64

	// MaxMessageLen is the longest message, in bytes, whose bit length
	// still fits the 64-bit length trailer.
	MaxMessageLen = 1<<61 - 1
)

// Initial hash value H(0).
const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
	init4 = 0xc3d2e1f0
)

// lengthTrailer is the size of the big-endian bit count appended on finalize.
const lengthTrailer = 8

// State is the lifecycle state of a Context.
type State int

const (
	// StateUninitialized is the zero value; Reset must be called first.
	StateUninitialized State = iota
	// StateInitialized means the context holds the initial hash value.
	StateInitialized
	// StateAccumulating means at least one byte has been written.
	StateAccumulating
	// StateFinalized means Finalize has consumed the context.
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Context is a streaming SHA-1 computation. It implements hash.Hash.
//
// The zero value is uninitialized; use New or call Reset before writing.
type Context struct {
	h     [5]uint32
	buf   [BlockSize]byte
	nbuf  int
	len   uint64
	state State
}

var _ hash.Hash = (*Context)(nil)

// New returns an initialized Context.
func New() *Context {
	c := new(Context)
	c.Reset()
	return c
}

// NewHash returns a new hash.Hash computing SHA-1, for APIs that take a
// func() hash.Hash constructor.
func NewHash() hash.Hash {
	return New()
}

// Reset (re-)initializes the context: initial hash value, empty buffer and
// zero length. It is safe to call in any state.
func (c *Context) Reset() {
	c.h = [5]uint32{init0, init1, init2, init3, init4}
	c.buf = [BlockSize]byte{}
	c.nbuf = 0
	c.len = 0
	c.state = StateInitialized
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	return c.state
}

// Len returns the number of bytes written since the last Reset.
func (c *Context) Len() uint64 {
	return c.len
}

// Size returns the digest length in bytes.
func (c *Context) Size() int { return Size }

// BlockSize returns the compression block length in bytes.
func (c *Context) BlockSize() int { return BlockSize }

// Write feeds p into the hash. Complete blocks are compressed immediately;
// fewer than BlockSize trailing bytes are kept in the context's own buffer.
//
// Write fails with ErrMessageTooLong, without changing the context, if the
// total length would exceed MaxMessageLen. It panics if the context is
// uninitialized or finalized.
func (c *Context) Write(p []byte) (int, error) {
	c.mustBeLive("Write")

	n := len(p)
	if n == 0 {
		return 0, nil
	}
	if uint64(n) > MaxMessageLen-c.len {
		return 0, ErrMessageTooLong
	}

	c.len += uint64(n)
	c.state = StateAccumulating
	c.absorb(p)
	return n, nil
}

// absorb buffers and compresses p without touching the length counter.
func (c *Context) absorb(p []byte) {
	if c.nbuf > 0 {
		n := copy(c.buf[c.nbuf:], p)
		c.nbuf += n
		if c.nbuf == BlockSize {
			compress(&c.h, c.buf[:])
			c.nbuf = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		compress(&c.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		c.nbuf = copy(c.buf[:], p)
	}
}

// Sum appends the digest of the data written so far to b. It finalizes a
// copy, so the caller may keep writing.
func (c *Context) Sum(b []byte) []byte {
	c.mustBeLive("Sum")

	c0 := *c
	digest := c0.checkSum()
	return append(b, digest[:]...)
}

// Finalize pads the message, compresses the final block or blocks and
// returns the digest. The hash state is wiped and the context moves to
// StateFinalized; call Reset before reusing it.
func (c *Context) Finalize() [Size]byte {
	c.mustBeLive("Finalize")

	digest := c.checkSum()

	c.h = [5]uint32{}
	c.buf = [BlockSize]byte{}
	c.nbuf = 0
	c.len = 0
	c.state = StateFinalized

	return digest
}

// checkSum appends 0x80, zeros up to 56 mod 64 and the 64-bit big-endian
// bit length, then serializes the state words. One extra block is
// compressed when fewer than 56 bytes are pending, two otherwise.
func (c *Context) checkSum() [Size]byte {
	var pad [BlockSize + lengthTrailer]byte
	pad[0] = 0x80

	var t int
	if c.nbuf < BlockSize-lengthTrailer {
		t = BlockSize - lengthTrailer - c.nbuf
	} else {
		t = 2*BlockSize - lengthTrailer - c.nbuf
	}

	binary.BigEndian.PutUint64(pad[t:], c.len<<3)
	c.absorb(pad[:t+lengthTrailer])

	if c.nbuf != 0 {
		panic("sha1: pending bytes after padding")
	}

	var digest [Size]byte
	binary.BigEndian.PutUint32(digest[0:], c.h[0])
	binary.BigEndian.PutUint32(digest[4:], c.h[1])
	binary.BigEndian.PutUint32(digest[8:], c.h[2])
	binary.BigEndian.PutUint32(digest[12:], c.h[3])
	binary.BigEndian.PutUint32(digest[16:], c.h[4])

	return digest
}

func (c *Context) mustBeLive(op string) {
	if c.state == StateInitialized || c.state == StateAccumulating {
		return
	}
	panic("sha1: " + op + " called on " + c.state.String() + " context")
}
