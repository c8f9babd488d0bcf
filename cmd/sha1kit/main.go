// sha1kit computes SHA-1 digests, HMAC-SHA1 tags and SHA-1 Merkle roots.
//
// Usage:
//
//	sha1kit [-v] <command> [options] [args]
//
// Commands:
//
//	sum    [files...]                       SHA-1 of each file (stdin if none)
//	hmac   -key K | -hexkey H [files...]    HMAC-SHA1 of each file
//	merkle [-workers N] [-proof I] files... Merkle root with files as leaves
//	rand   [-n N] [-drbg]                   N random bytes, hex encoded
//
// Example:
//
//	sha1kit merkle -proof 2 a.bin b.bin c.bin
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/backkem/sha1kit/pkg/crypto"
	"github.com/backkem/sha1kit/pkg/merkle"
	"github.com/backkem/sha1kit/pkg/random"
	"github.com/backkem/sha1kit/pkg/sha1"
	"github.com/pion/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if code := exitCode(err); code != 0 {
		log.Printf("sha1kit: %v", err)
		os.Exit(code)
	}
}

// exitCode maps a run error to the process status. A help request is not a
// failure.
func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 1
}

// app carries the streams and logger factory shared by the subcommands.
type app struct {
	stdin         io.Reader
	stdout        io.Writer
	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, rest, err := parseGlobal(args, stderr)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("missing command, see sha1kit -h")
	}

	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = stderr
	if opts.Verbose {
		factory.DefaultLogLevel = logging.LogLevelDebug
	}

	a := &app{
		stdin:         stdin,
		stdout:        stdout,
		loggerFactory: factory,
		log:           factory.NewLogger("sha1kit"),
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "sum":
		return a.cmdSum(cmdArgs)
	case "hmac":
		o, err := parseHMAC(cmdArgs, stderr)
		if err != nil {
			return err
		}
		return a.cmdHMAC(o)
	case "merkle":
		o, err := parseMerkle(cmdArgs, stderr)
		if err != nil {
			return err
		}
		return a.cmdMerkle(ctx, o)
	case "rand":
		o, err := parseRand(cmdArgs, stderr)
		if err != nil {
			return err
		}
		return a.cmdRand(o)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// forEachInput calls fn with each named file, or with stdin as "-" when no
// files are given.
func (a *app) forEachInput(files []string, fn func(name string, r io.Reader) error) error {
	if len(files) == 0 {
		return fn("-", a.stdin)
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = fn(name, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (a *app) cmdSum(files []string) error {
	h := sha1.New()
	return a.forEachInput(files, func(name string, r io.Reader) error {
		h.Reset()
		n, err := io.Copy(h, r)
		if err != nil {
			return err
		}
		a.log.Debugf("hashed %d bytes from %s", n, name)
		digest := h.Finalize()
		_, err = fmt.Fprintf(a.stdout, "%x  %s\n", digest, name)
		return err
	})
}

func (a *app) cmdHMAC(o hmacOptions) error {
	return a.forEachInput(o.Files, func(name string, r io.Reader) error {
		mac := crypto.NewHMACSHA1(o.Key)
		if _, err := io.Copy(mac, r); err != nil {
			return err
		}
		_, err := fmt.Fprintf(a.stdout, "%x  %s\n", mac.Sum(nil), name)
		return err
	})
}

func (a *app) cmdMerkle(ctx context.Context, o merkleOptions) error {
	leaves := make([][]byte, 0, len(o.Files))
	for _, name := range o.Files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		leaves = append(leaves, data)
	}

	tree, err := merkle.Build(ctx, leaves, merkle.Config{
		Workers:       o.Workers,
		LoggerFactory: a.loggerFactory,
	})
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}

	if _, err := fmt.Fprintf(a.stdout, "%x\n", tree.Root()); err != nil {
		return err
	}

	if o.Proof < 0 {
		return nil
	}
	proof, err := tree.Proof(o.Proof)
	if err != nil {
		return err
	}
	for i, s := range proof.Siblings {
		if _, err := fmt.Fprintf(a.stdout, "%d %x\n", i, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) cmdRand(o randOptions) error {
	config := random.SelectConfig{LoggerFactory: a.loggerFactory}
	if o.DRBG {
		config.DisableSystem = true
		config.Entropy = rand.Reader
	}

	src, backend, err := random.Select(config)
	if err != nil {
		return err
	}
	a.log.Debugf("using %s random backend", backend)

	b, err := src.Bytes(o.N)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, hex.EncodeToString(b))
	return err
}
