package merkle

import (
	"context"
	"runtime"
	"sync"

	"github.com/backkem/sha1kit/pkg/sha1"
	"github.com/pion/logging"
)

// Config configures Build.
type Config struct {
	// Workers is the number of goroutines hashing leaves.
	// Defaults to runtime.GOMAXPROCS(0) if 0.
	Workers int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	return nil
}

// applyDefaults fills in default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Build hashes every leaf and assembles the tree. Leaves are hashed in
// parallel; every goroutine uses its own hash context. Build stops early
// and returns ctx.Err() if ctx is cancelled.
func Build(ctx context.Context, leaves [][]byte, config Config) (*Tree, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	var log logging.LeveledLogger
	if config.LoggerFactory != nil {
		log = config.LoggerFactory.NewLogger("merkle")
	}

	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	workers := config.Workers
	if workers > len(leaves) {
		workers = len(leaves)
	}
	if log != nil {
		log.Debugf("hashing %d leaves with %d workers", len(leaves), workers)
	}

	digests := make([]Digest, len(leaves))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				digests[i] = sha1.Sum(leaves[i])
			}
		}()
	}

	var err error
feed:
	for i := range leaves {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case indices <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if err != nil {
		if log != nil {
			log.Warnf("build cancelled: %v", err)
		}
		return nil, err
	}

	t, err := NewTree(digests)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Infof("built tree: leaves=%d depth=%d root=%x", t.Leaves(), t.Depth(), t.Root())
	}
	return t, nil
}
