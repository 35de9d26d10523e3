package ports

import "time"

// Clock abstracts the wall clock for testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
