// Package random supplies cryptographically unpredictable bytes behind a
// single Source interface.
//
// Select picks a backend once at startup, in preference order: the
// operating system CSPRNG when it is available, an explicit override, or a
// portable HMAC-SHA1 DRBG fallback seeded from a caller-supplied entropy
// reader.
package random

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/pion/logging"
)

// Source produces n cryptographically unpredictable bytes on demand.
type Source interface {
	Bytes(n int) ([]byte, error)
}

// SystemSource reads from the operating system CSPRNG.
type SystemSource struct {
	r io.Reader
}

var _ Source = (*SystemSource)(nil)

// NewSystemSource returns a Source backed by crypto/rand.
func NewSystemSource() *SystemSource {
	return &SystemSource{r: rand.Reader}
}

// Bytes returns n bytes from the system CSPRNG.
func (s *SystemSource) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("random: system source: %w", err)
	}
	return b, nil
}

// Backend names reported by Select.
const (
	BackendSystem   = "system"
	BackendOverride = "override"
	BackendDRBG     = "hmac-drbg"
)

// probeLen is the number of bytes read to decide whether a backend works.
const probeLen = 16

// SelectConfig configures Select.
type SelectConfig struct {
	// System is the accelerated backend reader.
	// Defaults to crypto/rand.Reader if nil.
	System io.Reader

	// DisableSystem skips the accelerated backend.
	DisableSystem bool

	// Override is used when the accelerated backend is unavailable or
	// disabled. Optional.
	Override Source

	// Entropy seeds the portable DRBG fallback. Optional; without it the
	// fallback is unavailable.
	Entropy io.Reader

	// Personalization is mixed into the DRBG seed. Optional.
	Personalization []byte

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// applyDefaults fills in default values for unset fields.
func (c *SelectConfig) applyDefaults() {
	if c.System == nil {
		c.System = rand.Reader
	}
}

// Select returns the most preferred working Source and the name of its
// backend.
func Select(config SelectConfig) (Source, string, error) {
	config.applyDefaults()

	var log logging.LeveledLogger
	if config.LoggerFactory != nil {
		log = config.LoggerFactory.NewLogger("random")
	}

	if !config.DisableSystem {
		sys := &SystemSource{r: config.System}
		if _, err := sys.Bytes(probeLen); err == nil {
			if log != nil {
				log.Debugf("selected %s backend", BackendSystem)
			}
			return sys, BackendSystem, nil
		} else if log != nil {
			log.Warnf("system backend unavailable: %v", err)
		}
	}

	if config.Override != nil {
		if log != nil {
			log.Debugf("selected %s backend", BackendOverride)
		}
		return config.Override, BackendOverride, nil
	}

	if config.Entropy != nil {
		drbg, err := NewDRBG(config.Entropy, config.Personalization)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrNoSource, err)
		}
		if log != nil {
			log.Debugf("selected %s backend", BackendDRBG)
		}
		return drbg, BackendDRBG, nil
	}

	return nil, "", ErrNoSource
}
