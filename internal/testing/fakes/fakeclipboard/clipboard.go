// Package fakeclipboard provides a test fake for ports.Clipboard.
package fakeclipboard

import "sync"

// Clipboard records what was copied.
type Clipboard struct {
	mu     sync.Mutex
	text   string
	writes int

	// Err, when set, is returned by WriteAll and nothing is recorded.
	Err error
}

// New returns an empty fake clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// WriteAll stores text as the clipboard content.
func (c *Clipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	c.writes++
	return nil
}

// Text returns the current clipboard content.
func (c *Clipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Writes returns the number of successful WriteAll calls.
func (c *Clipboard) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
