// Package generator builds passwords that satisfy per-class count constraints.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Class is a character category with its own alphabet and count bounds.
type Class int

// Character classes, in allocation order.
const (
	Numeric Class = iota
	Lower
	Upper
	Symbol

	numClasses = 4
)

var allClasses = [numClasses]Class{Numeric, Lower, Upper, Symbol}

// Classes returns the character classes in allocation order.
func Classes() []Class {
	return allClasses[:]
}

func (c Class) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Symbol:
		return "symbol"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Built-in alphabets.
const (
	NumericAlphabet = "0123456789"
	LowerAlphabet   = "abcdefghijklmnopqrstuvwxyz"
	UpperAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultSymbols  = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// AmbiguousChars are removed from every alphabet when ExcludeAmbiguous is set.
	AmbiguousChars = "0O1lI"
)

// Constraint error kinds. A *ConstraintError unwraps to exactly one of them.
var (
	ErrInvalidBounds        = errors.New("invalid bounds")
	ErrLengthBoundsInvalid  = errors.New("invalid length bounds")
	ErrMinimumsExceedLength = errors.New("minimums exceed length")
	ErrMaximumsBelowLength  = errors.New("maximums below length")
	ErrEmptyAlphabet        = errors.New("empty alphabet")
)

// ConstraintError reports why a Constraints value was rejected.
type ConstraintError struct {
	Kind   error
	Detail string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *ConstraintError) Unwrap() error {
	return e.Kind
}

func constraintErr(kind error, format string, args ...any) error {
	return &ConstraintError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Bounds is an optional min/max count pair. A nil field is unset.
type Bounds struct {
	Min *int
	Max *int
}

// MinOrZero returns the minimum, or 0 when unset.
func (b Bounds) MinOrZero() int {
	if b.Min == nil {
		return 0
	}
	return *b.Min
}

// Permits reports whether the class may appear at all.
func (b Bounds) Permits() bool {
	return b.Max == nil || *b.Max > 0
}

func (b Bounds) clone() Bounds {
	return Bounds{Min: cloneInt(b.Min), Max: cloneInt(b.Max)}
}

// Int returns a pointer to n, for filling Bounds literals.
func Int(n int) *int {
	return &n
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	return Int(*p)
}

// Constraints describes the passwords to generate.
type Constraints struct {
	Numeric Bounds
	Lower   Bounds
	Upper   Bounds
	Symbol  Bounds

	MinLength int
	MaxLength int

	// Symbols overrides DefaultSymbols when non-nil.
	Symbols *string

	ExcludeAmbiguous bool
}

// Bounds returns the bounds of class c.
func (c *Constraints) Bounds(cl Class) Bounds {
	switch cl {
	case Numeric:
		return c.Numeric
	case Lower:
		return c.Lower
	case Upper:
		return c.Upper
	default:
		return c.Symbol
	}
}

// SymbolAlphabet returns the symbol set in effect before ambiguous filtering.
func (c *Constraints) SymbolAlphabet() string {
	if c.Symbols != nil {
		return *c.Symbols
	}
	return DefaultSymbols
}

func (c *Constraints) clone() Constraints {
	out := *c
	out.Numeric = c.Numeric.clone()
	out.Lower = c.Lower.clone()
	out.Upper = c.Upper.clone()
	out.Symbol = c.Symbol.clone()
	if c.Symbols != nil {
		s := *c.Symbols
		out.Symbols = &s
	}
	return out
}

// Validated is a Constraints value that passed Validate. It is immutable.
type Validated struct {
	c  Constraints
	ok bool
}

// Constraints returns a copy of the validated constraints.
func (v Validated) Constraints() Constraints {
	return v.c.clone()
}

// LengthRange returns the inclusive password length range.
func (v Validated) LengthRange() (minLen, maxLen int) {
	return v.c.MinLength, v.c.MaxLength
}

// Validate checks c for internal consistency. It is a pure function: no I/O,
// no entropy, and the same input always yields the same outcome.
func Validate(c Constraints) (Validated, error) {
	for _, cl := range allClasses {
		b := c.Bounds(cl)
		if b.Min != nil && *b.Min < 0 {
			return Validated{}, constraintErr(ErrInvalidBounds, "min-%s (%d) is negative", cl, *b.Min)
		}
		if b.Max != nil && *b.Max < 0 {
			return Validated{}, constraintErr(ErrInvalidBounds, "max-%s (%d) is negative", cl, *b.Max)
		}
		if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
			return Validated{}, constraintErr(ErrInvalidBounds,
				"min-%s (%d) is greater than max-%s (%d)", cl, *b.Min, cl, *b.Max)
		}
	}

	if c.MinLength <= 0 || c.MaxLength <= 0 {
		return Validated{}, constraintErr(ErrLengthBoundsInvalid,
			"length bounds must be positive (min %d, max %d)", c.MinLength, c.MaxLength)
	}
	if c.MinLength > c.MaxLength {
		return Validated{}, constraintErr(ErrLengthBoundsInvalid,
			"min-length (%d) is greater than max-length (%d)", c.MinLength, c.MaxLength)
	}

	totalMin, totalMax, capped := 0, 0, true
	for _, cl := range allClasses {
		b := c.Bounds(cl)
		totalMin += b.MinOrZero()
		if b.Max == nil {
			capped = false
		} else {
			totalMax += *b.Max
		}
	}
	if totalMin > c.MaxLength {
		return Validated{}, constraintErr(ErrMinimumsExceedLength,
			"sum of minimum character requirements (%d) exceeds max-length (%d)", totalMin, c.MaxLength)
	}
	// Every drawn length must be able to hold the minimums.
	if totalMin > c.MinLength {
		return Validated{}, constraintErr(ErrMinimumsExceedLength,
			"sum of minimum character requirements (%d) exceeds min-length (%d)", totalMin, c.MinLength)
	}
	if capped && totalMax < c.MaxLength {
		return Validated{}, constraintErr(ErrMaximumsBelowLength,
			"sum of maximum character limits (%d) is below max-length (%d)", totalMax, c.MaxLength)
	}

	alphabets := resolveAlphabets(&c)
	for _, cl := range allClasses {
		if c.Bounds(cl).Permits() && len(alphabets[cl]) == 0 {
			return Validated{}, constraintErr(ErrEmptyAlphabet, "%s", emptyAlphabetDetail(&c, cl))
		}
	}

	return Validated{c: c.clone(), ok: true}, nil
}

func emptyAlphabetDetail(c *Constraints, cl Class) string {
	if cl == Symbol && c.ExcludeAmbiguous && c.SymbolAlphabet() != "" {
		return fmt.Sprintf("no %s characters remain after excluding ambiguous characters (set max-%s=0 to disable them)", cl, cl)
	}
	return fmt.Sprintf("no %s characters available (set max-%s=0 to disable them)", cl, cl)
}

// resolveAlphabets returns the per-class alphabets after custom symbol and
// ambiguous-character handling. Characters are unique within each class.
func resolveAlphabets(c *Constraints) [numClasses][]rune {
	var out [numClasses][]rune
	out[Numeric] = alphabet(NumericAlphabet, c.ExcludeAmbiguous)
	out[Lower] = alphabet(LowerAlphabet, c.ExcludeAmbiguous)
	out[Upper] = alphabet(UpperAlphabet, c.ExcludeAmbiguous)
	out[Symbol] = alphabet(c.SymbolAlphabet(), c.ExcludeAmbiguous)
	return out
}

func alphabet(chars string, excludeAmbiguous bool) []rune {
	seen := make(map[rune]bool, len(chars))
	out := make([]rune, 0, len(chars))
	for _, r := range chars {
		if seen[r] {
			continue
		}
		if excludeAmbiguous && strings.ContainsRune(AmbiguousChars, r) {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
