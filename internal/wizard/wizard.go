// Package wizard builds a profile interactively through a ports.DialogProvider.
package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/acolita/genpass/internal/ports"
	"github.com/acolita/genpass/internal/profile"
)

// ErrCancelled is returned when the user does not confirm the form.
var ErrCancelled = errors.New("wizard cancelled")

// Result is the outcome of a completed wizard.
type Result struct {
	Profile *profile.Profile
	// Name is the profile the result was saved under; empty when not saved.
	Name string
}

// Wizard runs the profile form and saves the result on request.
type Wizard struct {
	dialog ports.DialogProvider
	store  *profile.Store
}

// New returns a Wizard.
func New(dialog ports.DialogProvider, store *profile.Store) *Wizard {
	return &Wizard{dialog: dialog, store: store}
}

// Run shows the form prefilled from p (which may be nil), validates the
// answers and saves them when the user asked to.
func (w *Wizard) Run(p *profile.Profile) (*Result, error) {
	if p == nil {
		p = &profile.Profile{}
	}

	answers, err := w.dialog.ProfileWizard(ToWizardData(p))
	if err != nil {
		return nil, err
	}
	if !answers.Confirmed {
		return nil, ErrCancelled
	}

	result, err := FromWizardData(answers)
	if err != nil {
		return nil, err
	}
	if _, err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	out := &Result{Profile: result}
	if answers.Save {
		name, err := profile.NormalizeName(answers.ProfileName)
		if err != nil {
			return nil, err
		}
		if err := w.store.Save(name, result); err != nil {
			return nil, err
		}
		out.Name = name
	}

	slog.Debug("wizard completed", slog.String("profile", out.Name))
	return out, nil
}

// ToWizardData converts a profile into form prefill.
func ToWizardData(p *profile.Profile) ports.WizardData {
	d := ports.WizardData{
		ExactLength: p.Length != nil,
		Length:      itoa(p.Length),
		MinLength:   itoa(p.MinLength),
		MaxLength:   itoa(p.MaxLength),
		MinNumeric:  itoa(p.MinNumeric),
		MaxNumeric:  itoa(p.MaxNumeric),
		MinLower:    itoa(p.MinLower),
		MaxLower:    itoa(p.MaxLower),
		MinUpper:    itoa(p.MinUpper),
		MaxUpper:    itoa(p.MaxUpper),
		MinSymbol:   itoa(p.MinSymbol),
		MaxSymbol:   itoa(p.MaxSymbol),
		Count:       itoa(p.Count),
	}
	if p.Symbols != nil {
		d.CustomSymbols = true
		d.Symbols = *p.Symbols
	}
	if p.ExcludeAmbiguous != nil {
		d.ExcludeAmbiguous = *p.ExcludeAmbiguous
	}
	return d
}

type answer struct {
	label string
	text  string
	dst   **int
}

// FromWizardData parses form answers into a profile. Empty answers leave the
// option unset.
func FromWizardData(d ports.WizardData) (*profile.Profile, error) {
	p := &profile.Profile{}
	var err error

	fields := []answer{
		{"minimum numeric", d.MinNumeric, &p.MinNumeric},
		{"maximum numeric", d.MaxNumeric, &p.MaxNumeric},
		{"minimum lowercase", d.MinLower, &p.MinLower},
		{"maximum lowercase", d.MaxLower, &p.MaxLower},
		{"minimum uppercase", d.MinUpper, &p.MinUpper},
		{"maximum uppercase", d.MaxUpper, &p.MaxUpper},
		{"minimum symbol", d.MinSymbol, &p.MinSymbol},
		{"maximum symbol", d.MaxSymbol, &p.MaxSymbol},
		{"count", d.Count, &p.Count},
	}
	if d.ExactLength {
		fields = append(fields, answer{"length", d.Length, &p.Length})
	} else {
		fields = append(fields,
			answer{"minimum length", d.MinLength, &p.MinLength},
			answer{"maximum length", d.MaxLength, &p.MaxLength},
		)
	}

	for _, f := range fields {
		if *f.dst, err = parseOptional(f.label, f.text); err != nil {
			return nil, err
		}
	}

	if d.CustomSymbols && d.Symbols != "" {
		s := d.Symbols
		p.Symbols = &s
	}
	exclude := d.ExcludeAmbiguous
	p.ExcludeAmbiguous = &exclude

	return p, nil
}

func parseOptional(label, text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s: %q is not a non-negative whole number", label, text)
	}
	return &n, nil
}

func itoa(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
