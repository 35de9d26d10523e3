// Package realclipboard provides a real implementation of the Clipboard port
// using github.com/atotto/clipboard (pbcopy, xclip/xsel/wl-copy, or the Win32 API).
package realclipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/acolita/genpass/internal/ports"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not available on this system")

// Clipboard implements ports.Clipboard.
type Clipboard struct{}

// New returns a new system clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// WriteAll replaces the clipboard contents with text.
func (c *Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Ensure Clipboard implements ports.Clipboard.
var _ ports.Clipboard = (*Clipboard)(nil)
