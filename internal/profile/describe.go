package profile

import (
	"fmt"
	"io"
	"strings"

	"github.com/acolita/genpass/internal/generator"
)

// Describe writes a human-readable summary of p.
func Describe(w io.Writer, name string, p *Profile) error {
	if name == "" {
		name = DefaultName
	}
	var b strings.Builder

	fmt.Fprintf(&b, "Profile: %s\n\n", name)

	b.WriteString("Character Type Constraints:\n")
	fmt.Fprintf(&b, "  Numeric (0-9): %s\n", describeBounds(p.MinNumeric, p.MaxNumeric))
	fmt.Fprintf(&b, "  Lowercase (a-z): %s\n", describeBounds(p.MinLower, p.MaxLower))
	fmt.Fprintf(&b, "  Uppercase (A-Z): %s\n", describeBounds(p.MinUpper, p.MaxUpper))
	fmt.Fprintf(&b, "  Symbols: %s\n\n", describeBounds(p.MinSymbol, p.MaxSymbol))

	b.WriteString("Password Length:\n")
	if p.Length != nil {
		fmt.Fprintf(&b, "  Exact length: %d\n", *p.Length)
	} else {
		if p.MinLength != nil {
			fmt.Fprintf(&b, "  Minimum: %d\n", *p.MinLength)
		} else {
			fmt.Fprintf(&b, "  Minimum: %d (default)\n", DefaultMinLength)
		}
		if p.MaxLength != nil {
			fmt.Fprintf(&b, "  Maximum: %d\n", *p.MaxLength)
		}
	}
	b.WriteString("\n")

	b.WriteString("Symbol Characters:\n")
	if p.Symbols != nil {
		fmt.Fprintf(&b, "  %s\n\n", *p.Symbols)
	} else {
		fmt.Fprintf(&b, "  %s (default)\n\n", generator.DefaultSymbols)
	}

	b.WriteString("Options:\n")
	switch {
	case p.ExcludeAmbiguous == nil:
		b.WriteString("  Exclude ambiguous characters: no (default)\n")
	case *p.ExcludeAmbiguous:
		b.WriteString("  Exclude ambiguous characters: yes\n")
	default:
		b.WriteString("  Exclude ambiguous characters: no\n")
	}
	if p.Count != nil {
		fmt.Fprintf(&b, "  Password count: %d\n", *p.Count)
	} else {
		fmt.Fprintf(&b, "  Password count: %d (default)\n", DefaultCount)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describeBounds(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil && *lo == *hi:
		return fmt.Sprintf("exactly %d", *lo)
	case lo != nil && hi != nil:
		return fmt.Sprintf("%d to %d", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("minimum %d", *lo)
	case hi != nil:
		return fmt.Sprintf("maximum %d", *hi)
	default:
		return "no constraint"
	}
}
