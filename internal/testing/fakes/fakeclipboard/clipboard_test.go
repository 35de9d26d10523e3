package fakeclipboard

import (
	"errors"
	"testing"

	"github.com/acolita/genpass/internal/ports"
)

var _ ports.Clipboard = (*Clipboard)(nil)

func TestClipboard_WriteAll(t *testing.T) {
	c := New()
	if err := c.WriteAll("first"); err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}
	if err := c.WriteAll("second"); err != nil {
		t.Fatalf("WriteAll() error: %v", err)
	}
	if c.Text() != "second" {
		t.Errorf("Text() = %q, want %q", c.Text(), "second")
	}
	if c.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", c.Writes())
	}
}

func TestClipboard_Err(t *testing.T) {
	c := New()
	c.Err = errors.New("no display")
	if err := c.WriteAll("x"); err == nil {
		t.Fatal("WriteAll() expected error")
	}
	if c.Text() != "" || c.Writes() != 0 {
		t.Errorf("failed write recorded: text=%q writes=%d", c.Text(), c.Writes())
	}
}
