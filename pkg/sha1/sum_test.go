package sha1

import (
	"bytes"
	stdsha1 "crypto/sha1"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pion/transport/v3/test"
)

func TestCombine(t *testing.T) {
	left := Sum([]byte("left child"))
	right := Sum([]byte("right child"))

	got, err := Combine(left[:], right[:])
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	want := Sum(append(left[:], right[:]...))
	if got != want {
		t.Errorf("Combine mismatch\ngot:  %x\nwant: %x", got, want)
	}

	// Order matters.
	swapped, err := Combine(right[:], left[:])
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if swapped == got {
		t.Error("Combine(right, left) == Combine(left, right)")
	}
}

func TestCombine_InvalidSizes(t *testing.T) {
	valid := Sum([]byte("x"))

	tests := []struct {
		name        string
		left, right []byte
	}{
		{"left_nil", nil, valid[:]},
		{"right_nil", valid[:], nil},
		{"left_short", valid[:19], valid[:]},
		{"right_long", valid[:], append(valid[:], 0)},
		{"both_empty", []byte{}, []byte{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Combine(tc.left, tc.right)
			if !errors.Is(err, ErrInvalidDigestSize) {
				t.Fatalf("err = %v, want ErrInvalidDigestSize", err)
			}
			if got != [Size]byte{} {
				t.Errorf("got non-zero digest %x on error", got)
			}
		})
	}
}

func TestSum_Concurrent(t *testing.T) {
	lim := test.TimeOut(10 * time.Second)
	defer lim.Stop()

	report := test.CheckRoutines(t)
	defer report()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				msg := bytes.Repeat([]byte(fmt.Sprintf("%d/%d;", w, i)), i+1)
				if got, want := Sum(msg), stdsha1.Sum(msg); got != want {
					errs <- fmt.Errorf("worker %d message %d: got %x, want %x", w, i, got, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkCombine(b *testing.B) {
	left := Sum([]byte("left"))
	right := Sum([]byte("right"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Combine(left[:], right[:])
	}
}
