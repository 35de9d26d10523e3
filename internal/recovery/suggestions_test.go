package recovery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/acolita/genpass/internal/entropy"
	"github.com/acolita/genpass/internal/generator"
	"github.com/acolita/genpass/internal/profile"
)

func TestNewAnalyzer(t *testing.T) {
	a := NewAnalyzer()
	if a == nil {
		t.Fatal("NewAnalyzer returned nil")
	}
	if len(a.rules) == 0 {
		t.Error("Analyzer should have default rules")
	}
}

func TestAnalyzer_Categories(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name       string
		err        error
		wantCat    string
		wantOption string
	}{
		{"length conflict", profile.ErrLengthConflict, "length", "min_length"},
		{"minimums", &generator.ConstraintError{Kind: generator.ErrMinimumsExceedLength, Detail: "20 > 16"}, "length", "length"},
		{"maximums", &generator.ConstraintError{Kind: generator.ErrMaximumsBelowLength, Detail: "4 < 16"}, "length", "max_numeric"},
		{"bounds", &generator.ConstraintError{Kind: generator.ErrInvalidBounds, Detail: "lower 5 > 2"}, "bounds", "max_lower"},
		{"length bounds", &generator.ConstraintError{Kind: generator.ErrLengthBoundsInvalid, Detail: "16 > 8"}, "length", "max_length"},
		{"alphabet", &generator.ConstraintError{Kind: generator.ErrEmptyAlphabet, Detail: "symbol"}, "alphabet", "max_symbol"},
		{"not found", fmt.Errorf("%w: work", profile.ErrNotFound), "profile", ""},
		{"bad name", fmt.Errorf("%w: \"../x\"", profile.ErrInvalidName), "profile", ""},
		{"entropy", fmt.Errorf("generating password: %w", entropy.ErrEntropyUnavailable), "system", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := a.Best(tt.err)
			if s == nil {
				t.Fatalf("Best(%v) = nil", tt.err)
			}
			if s.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", s.Category, tt.wantCat)
			}
			if s.Explanation == "" {
				t.Error("Explanation is empty")
			}
			if tt.wantOption == "" {
				return
			}
			found := false
			for _, o := range s.Options {
				if o == tt.wantOption {
					found = true
				}
			}
			if !found {
				t.Errorf("Options = %v, want containing %q", s.Options, tt.wantOption)
			}
		})
	}
}

func TestAnalyzer_NoMatch(t *testing.T) {
	a := NewAnalyzer()

	if got := a.Analyze(nil); got != nil {
		t.Errorf("Analyze(nil) = %v, want nil", got)
	}
	if got := a.Analyze(errors.New("disk full")); len(got) != 0 {
		t.Errorf("Analyze(unrelated) = %v, want none", got)
	}
	if got := a.Best(errors.New("disk full")); got != nil {
		t.Errorf("Best(unrelated) = %v, want nil", got)
	}
}

func TestAnalyzer_SortsByConfidence(t *testing.T) {
	a := NewAnalyzer()
	err := errors.Join(
		fmt.Errorf("%w: x", generator.ErrInfeasibleConstraints),
		profile.ErrLengthConflict,
	)

	got := a.Analyze(err)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Confidence < got[1].Confidence {
		t.Errorf("suggestions not sorted: %v then %v", got[0].Confidence, got[1].Confidence)
	}
	if got[0].Category != "length" {
		t.Errorf("first category = %q, want length", got[0].Category)
	}
}

func TestAnalyzer_ValidationErrors(t *testing.T) {
	a := NewAnalyzer()
	four, three := 4, 3
	p := &profile.Profile{Length: &four, MinNumeric: &three, MinUpper: &three}

	_, err := p.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	s := a.Best(err)
	if s == nil || s.Category != "length" {
		t.Errorf("Best(%v) = %+v, want length suggestion", err, s)
	}
}
