package random

import (
	"bytes"
	stdhmac "crypto/hmac"
	stdsha1 "crypto/sha1"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/pion/logging"
)

func refHMAC(key []byte, parts ...[]byte) []byte {
	m := stdhmac.New(stdsha1.New, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

// refUpdate is HMAC_DRBG_Update written directly against the standard
// library, used as an oracle.
func refUpdate(k, v, data []byte) ([]byte, []byte) {
	k = refHMAC(k, v, []byte{0x00}, data)
	v = refHMAC(k, v)
	if len(data) == 0 {
		return k, v
	}
	k = refHMAC(k, v, []byte{0x01}, data)
	v = refHMAC(k, v)
	return k, v
}

func seedBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*13 + 1)
	}
	return b
}

func TestHMACDRBG_MatchesReference(t *testing.T) {
	entropy := seedBytes(24)
	nonce := seedBytes(8)
	pers := []byte("sha1kit test")

	d, err := newHMACDRBG(entropy, nonce, pers)
	if err != nil {
		t.Fatalf("newHMACDRBG failed: %v", err)
	}

	k := make([]byte, 20)
	v := bytes.Repeat([]byte{0x01}, 20)
	k, v = refUpdate(k, v, append(append(append([]byte{}, entropy...), nonce...), pers...))

	for round := 0; round < 3; round++ {
		got := make([]byte, 50)
		if err := d.generate(got, nil); err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		var want []byte
		for len(want) < len(got) {
			v = refHMAC(k, v)
			want = append(want, v...)
		}
		want = want[:len(got)]
		k, v = refUpdate(k, v, nil)

		if !bytes.Equal(got, want) {
			t.Fatalf("round %d mismatch\ngot:  %x\nwant: %x", round, got, want)
		}
	}
	if d.counter != 4 {
		t.Errorf("counter = %d, want 4", d.counter)
	}
}

func TestHMACDRBG_AdditionalInput(t *testing.T) {
	a, _ := newHMACDRBG(seedBytes(24), nil, nil)
	b, _ := newHMACDRBG(seedBytes(24), nil, nil)

	outA := make([]byte, 20)
	outB := make([]byte, 20)
	a.generate(outA, nil)
	b.generate(outB, []byte("extra"))

	if bytes.Equal(outA, outB) {
		t.Error("additional input did not change the output")
	}
}

func TestHMACDRBG_Limits(t *testing.T) {
	if _, err := newHMACDRBG(seedBytes(MinEntropyLen-1), nil, nil); !errors.Is(err, ErrShortEntropy) {
		t.Errorf("short entropy err = %v, want ErrShortEntropy", err)
	}

	d, _ := newHMACDRBG(seedBytes(24), nil, nil)
	if err := d.generate(make([]byte, MaxRequestLen+1), nil); !errors.Is(err, ErrRequestTooLarge) {
		t.Errorf("large request err = %v, want ErrRequestTooLarge", err)
	}

	d.counter = ReseedInterval + 1
	if err := d.generate(make([]byte, 1), nil); !errors.Is(err, ErrReseedRequired) {
		t.Errorf("exhausted counter err = %v, want ErrReseedRequired", err)
	}
	if err := d.reseed(seedBytes(MinEntropyLen), nil); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}
	if err := d.generate(make([]byte, 1), nil); err != nil {
		t.Errorf("generate after reseed failed: %v", err)
	}
}

func TestDRBG_Deterministic(t *testing.T) {
	seed := seedBytes(SeedLen)

	a, err := NewDRBG(bytes.NewReader(seed), nil)
	if err != nil {
		t.Fatalf("NewDRBG failed: %v", err)
	}
	b, err := NewDRBG(bytes.NewReader(seed), nil)
	if err != nil {
		t.Fatalf("NewDRBG failed: %v", err)
	}
	c, err := NewDRBG(bytes.NewReader(seed), []byte("other"))
	if err != nil {
		t.Fatalf("NewDRBG failed: %v", err)
	}

	outA, _ := a.Bytes(64)
	outB, _ := b.Bytes(64)
	outC, _ := c.Bytes(64)

	if !bytes.Equal(outA, outB) {
		t.Error("same seed produced different output")
	}
	if bytes.Equal(outA, outC) {
		t.Error("personalization did not change the output")
	}

	next, _ := a.Bytes(64)
	if bytes.Equal(outA, next) {
		t.Error("consecutive requests returned identical bytes")
	}
}

func TestDRBG_LargeRequest(t *testing.T) {
	d, err := NewDRBG(bytes.NewReader(seedBytes(SeedLen)), nil)
	if err != nil {
		t.Fatalf("NewDRBG failed: %v", err)
	}
	out, err := d.Bytes(2*MaxRequestLen + 7)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if len(out) != 2*MaxRequestLen+7 {
		t.Errorf("len = %d, want %d", len(out), 2*MaxRequestLen+7)
	}
}

func TestDRBG_AutoReseed(t *testing.T) {
	d, err := NewDRBG(bytes.NewReader(seedBytes(2*SeedLen)), nil)
	if err != nil {
		t.Fatalf("NewDRBG failed: %v", err)
	}

	d.state.counter = ReseedInterval + 1
	if _, err := d.Bytes(10); err != nil {
		t.Fatalf("Bytes with reseed failed: %v", err)
	}
	if d.state.counter != 2 {
		t.Errorf("counter after reseed = %d, want 2", d.state.counter)
	}

	// Entropy reader is now exhausted.
	d.state.counter = ReseedInterval + 1
	if _, err := d.Bytes(10); err == nil {
		t.Error("expected error when reseed entropy is exhausted")
	}
	if err := d.Reseed(); err == nil {
		t.Error("expected Reseed error with exhausted entropy")
	}
}

func TestDRBG_Errors(t *testing.T) {
	if _, err := NewDRBG(bytes.NewReader(seedBytes(SeedLen-1)), nil); err == nil {
		t.Error("expected error for short seed reader")
	}

	d, _ := NewDRBG(bytes.NewReader(seedBytes(SeedLen)), nil)
	if _, err := d.Bytes(-1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("negative length err = %v, want ErrInvalidLength", err)
	}
}

type fixedSource struct{}

func (fixedSource) Bytes(n int) ([]byte, error) { return make([]byte, n), nil }

func TestSelect(t *testing.T) {
	broken := iotest.ErrReader(errors.New("no device"))

	tests := []struct {
		name    string
		config  SelectConfig
		backend string
		err     error
	}{
		{
			name:    "system_default",
			config:  SelectConfig{Override: fixedSource{}},
			backend: BackendSystem,
		},
		{
			name:    "override_when_system_disabled",
			config:  SelectConfig{DisableSystem: true, Override: fixedSource{}, Entropy: bytes.NewReader(seedBytes(SeedLen))},
			backend: BackendOverride,
		},
		{
			name:    "override_when_system_broken",
			config:  SelectConfig{System: broken, Override: fixedSource{}},
			backend: BackendOverride,
		},
		{
			name:    "fallback_drbg",
			config:  SelectConfig{System: broken, Entropy: bytes.NewReader(seedBytes(SeedLen))},
			backend: BackendDRBG,
		},
		{
			name:   "fallback_short_entropy",
			config: SelectConfig{DisableSystem: true, Entropy: bytes.NewReader(seedBytes(4))},
			err:    ErrNoSource,
		},
		{
			name:   "nothing_available",
			config: SelectConfig{System: broken},
			err:    ErrNoSource,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.config.LoggerFactory = logging.NewDefaultLoggerFactory()

			src, backend, err := Select(tc.config)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("err = %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			if backend != tc.backend {
				t.Errorf("backend = %q, want %q", backend, tc.backend)
			}

			b, err := src.Bytes(32)
			if err != nil {
				t.Fatalf("Bytes failed: %v", err)
			}
			if len(b) != 32 {
				t.Errorf("len = %d, want 32", len(b))
			}
		})
	}
}

func TestSystemSource(t *testing.T) {
	s := NewSystemSource()

	a, err := s.Bytes(32)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	b, _ := s.Bytes(32)
	if bytes.Equal(a, b) {
		t.Error("two system reads returned identical bytes")
	}

	if _, err := s.Bytes(-1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("negative length err = %v, want ErrInvalidLength", err)
	}

	empty, err := s.Bytes(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("Bytes(0) = %x, %v", empty, err)
	}
}
