package realdialog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/acolita/genpass/internal/ports"
)

// Prefill values used when a field is empty and must have an answer.
const (
	defaultExactLength = "16"
	defaultMinLength   = "12"
	defaultMaxLength   = "20"
	defaultCount       = "1"
)

// withDefaults fills required fields the prefill leaves empty. An empty
// prefill starts in exact-length mode.
func withDefaults(d ports.WizardData) ports.WizardData {
	if d.Length == "" && d.MinLength == "" && d.MaxLength == "" {
		d.ExactLength = true
	}
	if d.Length == "" {
		d.Length = defaultExactLength
	}
	if d.MinLength == "" {
		d.MinLength = defaultMinLength
	}
	if d.MaxLength == "" {
		d.MaxLength = defaultMaxLength
	}
	if d.Count == "" {
		d.Count = defaultCount
	}
	if d.Symbols != "" {
		d.CustomSymbols = true
	}
	return d
}

func buildForm(d *ports.WizardData) *huh.Form {
	boundInput := func(title string, value *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Placeholder("no constraint").
			Validate(validateOptionalCount).
			Value(value)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Password Length").
				Options(
					huh.NewOption("Exact length (recommended)", true),
					huh.NewOption("Range (min to max)", false),
				).
				Value(&d.ExactLength),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Password length").
				Validate(validatePositive).
				Value(&d.Length),
		).WithHideFunc(func() bool { return !d.ExactLength }),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum length").
				Validate(validatePositive).
				Value(&d.MinLength),
			huh.NewInput().
				Title("Maximum length").
				Validate(validatePositive).
				Value(&d.MaxLength),
		).WithHideFunc(func() bool { return d.ExactLength }),
		huh.NewGroup(
			huh.NewNote().
				Title("Character Type Requirements").
				Description("Leave a field empty to skip that constraint."),
			boundInput("Minimum numeric characters (0-9)", &d.MinNumeric),
			boundInput("Maximum numeric characters (0-9)", &d.MaxNumeric),
			boundInput("Minimum lowercase letters (a-z)", &d.MinLower),
			boundInput("Maximum lowercase letters (a-z)", &d.MaxLower),
		),
		huh.NewGroup(
			boundInput("Minimum uppercase letters (A-Z)", &d.MinUpper),
			boundInput("Maximum uppercase letters (A-Z)", &d.MaxUpper),
			boundInput("Minimum symbol characters", &d.MinSymbol),
			boundInput("Maximum symbol characters", &d.MaxSymbol),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use custom symbols?").
				Description("Default: !@#$%^&*()_+-=[]{}|;:,.<>?").
				Value(&d.CustomSymbols),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Symbols to use").
				Validate(validateSymbols).
				Value(&d.Symbols),
		).WithHideFunc(func() bool { return !d.CustomSymbols }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Exclude ambiguous characters (0/O, 1/l/I)?").
				Value(&d.ExcludeAmbiguous),
			huh.NewInput().
				Title("Number of passwords to generate").
				Validate(validatePositive).
				Value(&d.Count),
			huh.NewConfirm().
				Title("Save this profile?").
				Value(&d.Save),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Placeholder("default").
				Validate(validateProfileName).
				Value(&d.ProfileName),
		).WithHideFunc(func() bool { return !d.Save }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use this profile?").
				Affirmative("Yes").
				Negative("Cancel").
				Value(&d.Confirmed),
		),
	)
}

var (
	errNotNumber   = errors.New("enter a whole number")
	errNegative    = errors.New("must not be negative")
	errNotPositive = errors.New("must be at least 1")
)

// validateOptionalCount accepts an empty answer or a non-negative integer.
func validateOptionalCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errNotNumber
	}
	if n < 0 {
		return errNegative
	}
	return nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errNotNumber
	}
	if n < 1 {
		return errNotPositive
	}
	return nil
}

func validateSymbols(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter at least one symbol")
	}
	return nil
}

func validateProfileName(s string) error {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, `/\`) || strings.HasPrefix(s, ".") {
		return errors.New("name must not contain path separators or start with a dot")
	}
	return nil
}
