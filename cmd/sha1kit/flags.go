package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
)

// Options holds the global CLI flags.
type Options struct {
	// Verbose raises the log level to debug.
	Verbose bool
}

// parseGlobal parses flags that precede the subcommand and returns the
// remaining arguments.
func parseGlobal(args []string, stderr io.Writer) (Options, []string, error) {
	var o Options

	fs := flag.NewFlagSet("sha1kit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&o.Verbose, "v", false, "Verbose (debug) logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sha1kit [-v] <command> [options] [args]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  sum     SHA-1 digest of files (stdin if none)\n")
		fmt.Fprintf(stderr, "  hmac    HMAC-SHA1 of files (stdin if none)\n")
		fmt.Fprintf(stderr, "  merkle  Merkle root over files as leaves\n")
		fmt.Fprintf(stderr, "  rand    random bytes, hex encoded\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

// hmacOptions are the flags of the hmac subcommand.
type hmacOptions struct {
	Key   []byte
	Files []string
}

func parseHMAC(args []string, stderr io.Writer) (hmacOptions, error) {
	var o hmacOptions
	var keySet bool

	fs := flag.NewFlagSet("hmac", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Func("key", "MAC key as a string", func(s string) error {
		o.Key = []byte(s)
		keySet = true
		return nil
	})
	fs.Func("hexkey", "MAC key, hex encoded", func(s string) error {
		k, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("invalid hex key: %w", err)
		}
		o.Key = k
		keySet = true
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if !keySet {
		return o, fmt.Errorf("hmac: -key or -hexkey is required")
	}
	o.Files = fs.Args()
	return o, nil
}

// merkleOptions are the flags of the merkle subcommand.
type merkleOptions struct {
	Workers int
	Proof   int
	Files   []string
}

func parseMerkle(args []string, stderr io.Writer) (merkleOptions, error) {
	o := merkleOptions{Proof: -1}

	fs := flag.NewFlagSet("merkle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Func("workers", "Leaf hashing goroutines (default: GOMAXPROCS)", func(s string) error {
		var v int
		if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", v)
		}
		o.Workers = v
		return nil
	})
	fs.IntVar(&o.Proof, "proof", -1, "Also print the inclusion proof for this leaf index")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.Files = fs.Args()
	if len(o.Files) == 0 {
		return o, fmt.Errorf("merkle: at least one file is required")
	}
	return o, nil
}

// randOptions are the flags of the rand subcommand.
type randOptions struct {
	N    int
	DRBG bool
}

func parseRand(args []string, stderr io.Writer) (randOptions, error) {
	var o randOptions

	fs := flag.NewFlagSet("rand", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.N, "n", 20, "Number of bytes")
	fs.BoolVar(&o.DRBG, "drbg", false, "Use the HMAC-DRBG fallback instead of the system source")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.N < 0 {
		return o, fmt.Errorf("rand: -n must not be negative, got %d", o.N)
	}
	return o, nil
}
