package sha1

import "encoding/binary"

// Checkpoint layout, shared with the standard library's crypto/sha1:
// magic || h[0..4] (BE) || block buffer (64 bytes) || length (BE uint64).
const (
	magic         = "sha\x01"
	marshaledSize = len(magic) + 5*4 + BlockSize + 8
)

// MarshalBinary checkpoints the running state so the computation can be
// resumed later with UnmarshalBinary.
func (c *Context) MarshalBinary() ([]byte, error) {
	if c.state != StateInitialized && c.state != StateAccumulating {
		return nil, ErrInactiveContext
	}

	b := make([]byte, 0, marshaledSize)
	b = append(b, magic...)
	for _, w := range c.h {
		b = binary.BigEndian.AppendUint32(b, w)
	}
	b = append(b, c.buf[:c.nbuf]...)
	b = append(b, make([]byte, BlockSize-c.nbuf)...)
	b = binary.BigEndian.AppendUint64(b, c.len)
	return b, nil
}

// UnmarshalBinary restores a state produced by MarshalBinary. The context
// need not be initialized beforehand.
func (c *Context) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return ErrInvalidStateIdentifier
	}
	if len(b) != marshaledSize {
		return ErrInvalidStateSize
	}

	b = b[len(magic):]
	var h [5]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	var buf [BlockSize]byte
	copy(buf[:], b[:BlockSize])
	b = b[BlockSize:]
	length := binary.BigEndian.Uint64(b)
	if length > MaxMessageLen {
		return ErrMessageTooLong
	}

	c.h = h
	c.buf = buf
	c.len = length
	c.nbuf = int(length % BlockSize)
	// Bytes past nbuf are ignored by the engine; clear them so a restored
	// context never carries stale input.
	clear(c.buf[c.nbuf:])
	if length == 0 {
		c.state = StateInitialized
	} else {
		c.state = StateAccumulating
	}
	return nil
}
