// Package fakerand provides a predictable Random implementation for testing.
package fakerand

import (
	"sync"

	"github.com/acolita/genpass/internal/ports"
)

// Random is a fake random generator that produces predictable output.
type Random struct {
	mu       sync.Mutex
	sequence []byte
	offset   int

	// Chunk caps the number of bytes returned per Read (0 = no cap).
	Chunk int
	// Err, when set, is returned by every Read after FailAfter bytes.
	Err error
	// FailAfter is the number of bytes served before Err takes effect.
	FailAfter int
	// Stall makes Read return (0, nil) once FailAfter bytes were served.
	Stall bool

	reads int
}

// New creates a new fake random with the given sequence.
// If the sequence is nil, it defaults to sequential bytes 0-255.
func New(sequence []byte) *Random {
	if sequence == nil {
		sequence = make([]byte, 256)
		for i := range sequence {
			sequence[i] = byte(i)
		}
	}
	return &Random{sequence: sequence}
}

// NewSequential creates a fake random that returns 0, 1, 2, ..., 255, 0, 1, ...
func NewSequential() *Random {
	return New(nil)
}

// NewFixed creates a fake random that cycles through the same bytes.
func NewFixed(b []byte) *Random {
	return New(b)
}

// NewFailing creates a fake random whose every Read fails with err.
func NewFailing(err error) *Random {
	r := New([]byte{0})
	r.Err = err
	return r
}

// Read fills b with predictable bytes from the sequence.
func (r *Random) Read(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads++

	n := len(b)
	if r.Chunk > 0 && n > r.Chunk {
		n = r.Chunk
	}
	if r.Err != nil || r.Stall {
		left := r.FailAfter - r.offset
		if left <= 0 {
			if r.Err != nil {
				return 0, r.Err
			}
			return 0, nil
		}
		if n > left {
			n = left
		}
	}

	for i := 0; i < n; i++ {
		b[i] = r.sequence[r.offset%len(r.sequence)]
		r.offset++
	}
	return n, nil
}

// Consumed returns the number of bytes served so far.
func (r *Random) Consumed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

// Reads returns the number of Read calls so far.
func (r *Random) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// Reset resets the random generator to the beginning of its sequence.
func (r *Random) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = 0
	r.reads = 0
}

// Ensure Random implements ports.Random.
var _ ports.Random = (*Random)(nil)
