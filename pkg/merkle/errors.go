package merkle

import "errors"

// Merkle tree errors.
var (
	// ErrNoLeaves indicates a tree was requested over zero leaves.
	ErrNoLeaves = errors.New("merkle: no leaves")

	// ErrIndexOutOfRange indicates a proof was requested for a missing leaf.
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("merkle: invalid worker count")
)
