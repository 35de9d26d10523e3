// Package ports defines interfaces for external dependencies (Ports and Adapters pattern).
package ports

// Random is the operating-system entropy capability: a source of
// cryptographically secure bytes that fails explicitly when unavailable.
type Random interface {
	// Read fills b with random bytes and returns the number of bytes read.
	// A short read with a nil error is allowed; callers retry.
	Read(b []byte) (n int, err error)
}
