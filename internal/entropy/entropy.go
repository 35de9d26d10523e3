// Package entropy turns operating-system random bytes into unbiased integers
// and permutations.
//
// There is no deterministic fallback: when the underlying source fails, every
// operation fails with ErrEntropyUnavailable.
package entropy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/acolita/genpass/internal/ports"
	"github.com/acolita/genpass/internal/security"
)

var (
	// ErrEntropyUnavailable is returned when the entropy source cannot supply bytes.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")

	// ErrInvalidRange is returned by UniformRange when low > high.
	ErrInvalidRange = errors.New("invalid range")
)

const (
	// maxFillAttempts bounds consecutive reads that make no progress.
	maxFillAttempts = 8

	// maxRejections bounds consecutive rejected samples. Every sample is
	// accepted with probability > 1/2, so hitting this means the source is stuck.
	maxRejections = 128
)

// Source draws unbiased values from a ports.Random.
// It holds no state between calls and is safe for concurrent use when the
// underlying ports.Random is.
type Source struct {
	rnd ports.Random
}

// New returns a Source reading from rnd.
func New(rnd ports.Random) *Source {
	return &Source{rnd: rnd}
}

// Fill fills buf entirely with random bytes. It is all-or-nothing: on failure
// buf is zeroed and an error wrapping ErrEntropyUnavailable is returned.
func (s *Source) Fill(buf []byte) error {
	filled, stalls := 0, 0
	for filled < len(buf) {
		n, err := s.rnd.Read(buf[filled:])
		if n > 0 {
			filled += n
			stalls = 0
		}
		if filled >= len(buf) {
			return nil
		}
		if err != nil {
			security.Wipe(buf)
			return fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
		}
		if n <= 0 {
			stalls++
			if stalls >= maxFillAttempts {
				security.Wipe(buf)
				return fmt.Errorf("%w: short read (%d of %d bytes)", ErrEntropyUnavailable, filled, len(buf))
			}
		}
	}
	return nil
}

// UniformRange returns an integer uniformly distributed over [low, high].
//
// It draws the smallest number of bytes whose value space covers the span and
// rejects any draw at or above the largest multiple of the span in that width,
// so the final modulo reduction carries no bias. low == high returns low
// without drawing.
func (s *Source) UniformRange(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	if low == high {
		return low, nil
	}

	// Two's complement arithmetic keeps this correct for negative bounds.
	span := uint64(high) - uint64(low) + 1
	width := byteWidth(span)
	threshold, acceptAll := rejectionThreshold(width, span)

	var raw [8]byte
	buf := raw[8-width:]
	defer security.Wipe(raw[:])

	for range maxRejections {
		if err := s.Fill(buf); err != nil {
			return 0, err
		}
		v := binary.BigEndian.Uint64(raw[:])
		if acceptAll {
			if span != 0 {
				v %= span
			}
			return int(uint64(low) + v), nil
		}
		if v < threshold {
			return int(uint64(low) + v%span), nil
		}
	}
	return 0, fmt.Errorf("%w: %d consecutive samples rejected", ErrEntropyUnavailable, maxRejections)
}

// Shuffle permutes n elements in place with the Fisher-Yates algorithm,
// calling swap to exchange elements. Every ordering is equally likely.
func (s *Source) Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := s.UniformRange(0, i)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// ShuffleSlice permutes x in place.
func ShuffleSlice[T any](s *Source, x []T) error {
	return s.Shuffle(len(x), func(i, j int) {
		x[i], x[j] = x[j], x[i]
	})
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: pick from empty set", ErrInvalidRange)
	}
	i, err := s.UniformRange(0, len(items)-1)
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// byteWidth returns the smallest number of bytes whose value space is >= span.
// A span of 0 stands for the full 2^64 range.
func byteWidth(span uint64) int {
	if span == 0 {
		return 8
	}
	width := 1
	for width < 8 && span > uint64(1)<<(8*width) {
		width++
	}
	return width
}

// rejectionThreshold returns the largest multiple of span representable in
// width bytes. Samples below it are accepted. acceptAll is set when the whole
// value space is already a multiple of span.
func rejectionThreshold(width int, span uint64) (threshold uint64, acceptAll bool) {
	if width == 8 {
		if span == 0 {
			return 0, true
		}
		rem := (math.MaxUint64%span + 1) % span
		if rem == 0 {
			return 0, true
		}
		return -rem, false
	}
	space := uint64(1) << (8 * width)
	return space - space%span, false
}
