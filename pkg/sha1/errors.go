package sha1

import "errors"

// Errors returned by the SHA-1 engine and its derived operations.
var (
	// ErrInvalidDigestSize indicates a Combine input that is not a 20-byte digest.
	ErrInvalidDigestSize = errors.New("sha1: invalid digest size, must be 20 bytes")

	// ErrMessageTooLong indicates a write that would push the total message
	// length past MaxMessageLen. The context is left unchanged.
	ErrMessageTooLong = errors.New("sha1: message too long")

	// ErrInvalidStateIdentifier indicates a checkpoint without the SHA-1 magic.
	ErrInvalidStateIdentifier = errors.New("sha1: invalid hash state identifier")

	// ErrInvalidStateSize indicates a checkpoint of the wrong length.
	ErrInvalidStateSize = errors.New("sha1: invalid hash state size")

	// ErrInactiveContext indicates a checkpoint was requested from a context
	// that is uninitialized or already finalized.
	ErrInactiveContext = errors.New("sha1: context is not initialized")
)
