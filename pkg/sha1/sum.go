package sha1

import "fmt"

// Sum returns the SHA-1 digest of data. Each call owns its context.
func Sum(data []byte) [Size]byte {
	var c Context
	c.Reset()
	// A slice cannot be longer than MaxMessageLen, so Write cannot fail.
	_, _ = c.Write(data)
	return c.Finalize()
}

// Combine returns the digest of left followed by right. Both inputs must be
// SHA-1 digests; this is the inner-node rule of a Merkle tree:
// parent = Combine(leftChild, rightChild).
func Combine(left, right []byte) ([Size]byte, error) {
	if len(left) != Size {
		return [Size]byte{}, fmt.Errorf("%w: left is %d bytes", ErrInvalidDigestSize, len(left))
	}
	if len(right) != Size {
		return [Size]byte{}, fmt.Errorf("%w: right is %d bytes", ErrInvalidDigestSize, len(right))
	}

	var c Context
	c.Reset()
	_, _ = c.Write(left)
	_, _ = c.Write(right)
	return c.Finalize(), nil
}
