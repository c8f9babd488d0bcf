package random

import "errors"

// Random source errors.
var (
	// ErrInvalidLength indicates a negative byte count.
	ErrInvalidLength = errors.New("random: invalid length")

	// ErrNoSource indicates that no backend could be selected.
	ErrNoSource = errors.New("random: no usable source")

	// ErrReseedRequired indicates the DRBG reached its reseed interval.
	ErrReseedRequired = errors.New("random: reseed required")

	// ErrRequestTooLarge indicates a single Generate call above the
	// per-request limit.
	ErrRequestTooLarge = errors.New("random: request too large")

	// ErrShortEntropy indicates the entropy input is below the minimum.
	ErrShortEntropy = errors.New("random: insufficient entropy")
)
