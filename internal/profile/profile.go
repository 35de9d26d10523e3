// Package profile manages named generation profiles: saved sets of options
// that can be merged with command-line flags.
package profile

import (
	"errors"
	"fmt"

	"github.com/acolita/genpass/internal/generator"
)

const (
	// DefaultName is the profile used when no name is given.
	DefaultName = "default"

	// DefaultMinLength applies when neither length nor min_length is set.
	DefaultMinLength = 16

	// DefaultCount applies when count is unset.
	DefaultCount = 1
)

// ErrLengthConflict is returned when length is combined with min/max length.
var ErrLengthConflict = errors.New("length cannot be combined with min_length or max_length")

// Profile holds generation options. Every field is optional; nil means unset.
type Profile struct {
	MinNumeric *int `yaml:"min_numeric,omitempty" json:"min_numeric,omitempty"`
	MaxNumeric *int `yaml:"max_numeric,omitempty" json:"max_numeric,omitempty"`
	MinLower   *int `yaml:"min_lower,omitempty" json:"min_lower,omitempty"`
	MaxLower   *int `yaml:"max_lower,omitempty" json:"max_lower,omitempty"`
	MinUpper   *int `yaml:"min_upper,omitempty" json:"min_upper,omitempty"`
	MaxUpper   *int `yaml:"max_upper,omitempty" json:"max_upper,omitempty"`
	MinSymbol  *int `yaml:"min_symbol,omitempty" json:"min_symbol,omitempty"`
	MaxSymbol  *int `yaml:"max_symbol,omitempty" json:"max_symbol,omitempty"`

	Length    *int `yaml:"length,omitempty" json:"length,omitempty"`
	MinLength *int `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength *int `yaml:"max_length,omitempty" json:"max_length,omitempty"`

	Symbols          *string `yaml:"symbols,omitempty" json:"symbols,omitempty"`
	ExcludeAmbiguous *bool   `yaml:"exclude_ambiguous,omitempty" json:"exclude_ambiguous,omitempty"`
	Count            *int    `yaml:"count,omitempty" json:"count,omitempty"`
}

// IsEmpty reports whether no option is set.
func (p *Profile) IsEmpty() bool {
	return *p == Profile{}
}

// Merge overlays the options set in o onto p. Setting length in o clears
// min/max length in p and vice versa, so the override always wins.
func (p *Profile) Merge(o *Profile) {
	if o == nil {
		return
	}
	mergeInt(&p.MinNumeric, o.MinNumeric)
	mergeInt(&p.MaxNumeric, o.MaxNumeric)
	mergeInt(&p.MinLower, o.MinLower)
	mergeInt(&p.MaxLower, o.MaxLower)
	mergeInt(&p.MinUpper, o.MinUpper)
	mergeInt(&p.MaxUpper, o.MaxUpper)
	mergeInt(&p.MinSymbol, o.MinSymbol)
	mergeInt(&p.MaxSymbol, o.MaxSymbol)

	if o.Length != nil {
		p.MinLength, p.MaxLength = nil, nil
	}
	if o.MinLength != nil || o.MaxLength != nil {
		p.Length = nil
	}
	mergeInt(&p.Length, o.Length)
	mergeInt(&p.MinLength, o.MinLength)
	mergeInt(&p.MaxLength, o.MaxLength)

	if o.Symbols != nil {
		s := *o.Symbols
		p.Symbols = &s
	}
	if o.ExcludeAmbiguous != nil {
		b := *o.ExcludeAmbiguous
		p.ExcludeAmbiguous = &b
	}
	mergeInt(&p.Count, o.Count)
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// LengthRange resolves the password length range. length sets both ends;
// otherwise min_length defaults to 16 (or max_length when that is smaller)
// and max_length defaults to min_length.
func (p *Profile) LengthRange() (minLen, maxLen int, err error) {
	if p.Length != nil {
		if p.MinLength != nil || p.MaxLength != nil {
			return 0, 0, ErrLengthConflict
		}
		return *p.Length, *p.Length, nil
	}

	switch {
	case p.MinLength != nil:
		minLen = *p.MinLength
	case p.MaxLength != nil:
		minLen = min(DefaultMinLength, *p.MaxLength)
	default:
		minLen = DefaultMinLength
	}
	maxLen = minLen
	if p.MaxLength != nil {
		maxLen = *p.MaxLength
	}
	return minLen, maxLen, nil
}

// Constraints converts the profile into generator constraints. The result
// still has to go through generator.Validate.
func (p *Profile) Constraints() (generator.Constraints, error) {
	minLen, maxLen, err := p.LengthRange()
	if err != nil {
		return generator.Constraints{}, err
	}

	c := generator.Constraints{
		Numeric:   generator.Bounds{Min: p.MinNumeric, Max: p.MaxNumeric},
		Lower:     generator.Bounds{Min: p.MinLower, Max: p.MaxLower},
		Upper:     generator.Bounds{Min: p.MinUpper, Max: p.MaxUpper},
		Symbol:    generator.Bounds{Min: p.MinSymbol, Max: p.MaxSymbol},
		MinLength: minLen,
		MaxLength: maxLen,
		Symbols:   p.Symbols,
	}
	if p.ExcludeAmbiguous != nil {
		c.ExcludeAmbiguous = *p.ExcludeAmbiguous
	}
	return c, nil
}

// Validate resolves and validates the profile's constraints and count.
func (p *Profile) Validate() (generator.Validated, error) {
	if p.Count != nil && *p.Count < 1 {
		return generator.Validated{}, fmt.Errorf("count must be at least 1, got %d", *p.Count)
	}
	c, err := p.Constraints()
	if err != nil {
		return generator.Validated{}, err
	}
	return generator.Validate(c)
}

// CountOrDefault returns the number of passwords to generate.
func (p *Profile) CountOrDefault() int {
	if p.Count == nil {
		return DefaultCount
	}
	return *p.Count
}
