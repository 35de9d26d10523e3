package fakeclock

import (
	"testing"
	"time"
)

func TestClock_Now(t *testing.T) {
	initial := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(initial)

	if got := c.Now(); !got.Equal(initial) {
		t.Errorf("Now() = %v, want %v", got, initial)
	}
}

func TestClock_Advance(t *testing.T) {
	initial := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(initial)

	c.Advance(5 * time.Minute)

	expected := initial.Add(5 * time.Minute)
	if got := c.Now(); !got.Equal(expected) {
		t.Errorf("Now() after Advance = %v, want %v", got, expected)
	}
}

func TestClock_Set(t *testing.T) {
	c := New(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	target := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Set(target)

	if got := c.Now(); !got.Equal(target) {
		t.Errorf("Now() after Set = %v, want %v", got, target)
	}
}
