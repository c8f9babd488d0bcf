package random

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/backkem/sha1kit/pkg/hmac"
	"github.com/backkem/sha1kit/pkg/sha1"
)

// HMAC_DRBG parameters for SHA-1 (NIST SP 800-90A Rev. 1, Table 2).
const (
	// MinEntropyLen is the minimum entropy input for 128-bit security.
	MinEntropyLen = 16

	// SeedLen is the entropy plus nonce read from the entropy source on
	// instantiate and reseed.
	SeedLen = 32

	// MaxRequestLen is the largest single Generate request (2^19 bits).
	MaxRequestLen = 1 << 16

	// ReseedInterval is the number of Generate calls between reseeds.
	ReseedInterval = 1 << 48
)

// hmacDRBG is the deterministic core of SP 800-90A Section 10.1.2. It is
// not safe for concurrent use; DRBG wraps it with a mutex.
type hmacDRBG struct {
	k       []byte
	v       []byte
	counter uint64
}

// newHMACDRBG instantiates the generator from entropy, nonce and an
// optional personalization string.
func newHMACDRBG(entropy, nonce, personalization []byte) (*hmacDRBG, error) {
	if len(entropy) < MinEntropyLen {
		return nil, ErrShortEntropy
	}

	d := &hmacDRBG{
		k: make([]byte, sha1.Size),
		v: make([]byte, sha1.Size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}

	d.update(entropy, nonce, personalization)
	d.counter = 1
	return d, nil
}

// update is HMAC_DRBG_Update over the concatenation of provided.
func (d *hmacDRBG) update(provided ...[]byte) {
	empty := true
	for _, p := range provided {
		if len(p) > 0 {
			empty = false
			break
		}
	}

	for _, sep := range []byte{0x00, 0x01} {
		m := hmac.New(sha1.NewHash, d.k)
		m.Write(d.v)
		m.Write([]byte{sep})
		for _, p := range provided {
			m.Write(p)
		}
		d.k = m.Sum(d.k[:0])
		d.v = hmac.Sum(sha1.NewHash, d.k, d.v)

		if empty {
			return
		}
	}
}

// reseed mixes fresh entropy into the state and resets the counter.
func (d *hmacDRBG) reseed(entropy, additional []byte) error {
	if len(entropy) < MinEntropyLen {
		return ErrShortEntropy
	}
	d.update(entropy, additional)
	d.counter = 1
	return nil
}

// generate fills out with pseudorandom bytes.
func (d *hmacDRBG) generate(out, additional []byte) error {
	if len(out) > MaxRequestLen {
		return ErrRequestTooLarge
	}
	if d.counter > ReseedInterval {
		return ErrReseedRequired
	}

	if len(additional) > 0 {
		d.update(additional)
	}

	m := hmac.New(sha1.NewHash, d.k)
	for n := 0; n < len(out); {
		m.Reset()
		m.Write(d.v)
		d.v = m.Sum(d.v[:0])
		n += copy(out[n:], d.v)
	}

	d.update(additional)
	d.counter++
	return nil
}

// DRBG is an HMAC-SHA1 deterministic random bit generator seeded from an
// entropy reader. It reseeds itself from the same reader when the reseed
// interval is reached. DRBG is safe for concurrent use.
type DRBG struct {
	mu      sync.Mutex
	state   *hmacDRBG
	entropy io.Reader
}

var _ Source = (*DRBG)(nil)

// NewDRBG instantiates a DRBG by reading SeedLen bytes from entropy.
func NewDRBG(entropy io.Reader, personalization []byte) (*DRBG, error) {
	seed := make([]byte, SeedLen)
	if _, err := io.ReadFull(entropy, seed); err != nil {
		return nil, fmt.Errorf("random: read seed: %w", err)
	}

	state, err := newHMACDRBG(seed[:MinEntropyLen+8], seed[MinEntropyLen+8:], personalization)
	if err != nil {
		return nil, err
	}

	return &DRBG{state: state, entropy: entropy}, nil
}

// Bytes returns n pseudorandom bytes, split into requests of at most
// MaxRequestLen bytes.
func (d *DRBG) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]byte, n)
	for off := 0; off < n; off += MaxRequestLen {
		end := min(off+MaxRequestLen, n)
		err := d.state.generate(out[off:end], nil)
		if errors.Is(err, ErrReseedRequired) {
			if err = d.reseedLocked(); err == nil {
				err = d.state.generate(out[off:end], nil)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Reseed mixes SeedLen fresh bytes from the entropy reader into the state.
func (d *DRBG) Reseed() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reseedLocked()
}

func (d *DRBG) reseedLocked() error {
	seed := make([]byte, SeedLen)
	if _, err := io.ReadFull(d.entropy, seed); err != nil {
		return fmt.Errorf("random: read reseed entropy: %w", err)
	}
	return d.state.reseed(seed, nil)
}
