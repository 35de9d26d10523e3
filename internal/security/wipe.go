// Package security holds helpers for handling password material in memory.
package security

// Wipe zeroes a buffer holding password material.
//
// Go strings are immutable and cannot be wiped, so generated passwords are
// assembled in a rune or byte slice that is wiped once the final string exists.
func Wipe[T ~byte | ~rune](data []T) {
	clear(data)
}

// Runes wraps a rune buffer and wipes it when done.
type Runes struct {
	data []rune
}

// NewRunes allocates a wipeable rune buffer with capacity n.
func NewRunes(n int) *Runes {
	return &Runes{data: make([]rune, 0, n)}
}

// Append adds r to the buffer.
func (r *Runes) Append(c rune) {
	r.data = append(r.data, c)
}

// Data returns the underlying slice.
func (r *Runes) Data() []rune {
	return r.data
}

// Len returns the number of runes in the buffer.
func (r *Runes) Len() int {
	return len(r.data)
}

// String returns a copy of the buffer as a string.
func (r *Runes) String() string {
	return string(r.data)
}

// Wipe zeroes the buffer and releases it.
func (r *Runes) Wipe() {
	Wipe(r.data[:cap(r.data)])
	r.data = nil
}
