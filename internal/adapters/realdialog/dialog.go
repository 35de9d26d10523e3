// Package realdialog provides a TUI-based DialogProvider using charmbracelet/huh.
//
// The form runs in-process on the controlling terminal. Accessible mode swaps
// the TUI for plain line prompts, which also works when input is piped.
package realdialog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/acolita/genpass/internal/ports"
)

// ErrAborted is returned when the user cancels the form.
var ErrAborted = errors.New("wizard aborted")

// Provider implements ports.DialogProvider with a huh form.
type Provider struct {
	accessible bool
	in         io.Reader
	out        io.Writer
}

// Option configures a Provider.
type Option func(*Provider)

// WithAccessible selects line-based prompts instead of the TUI.
func WithAccessible(accessible bool) Option {
	return func(p *Provider) { p.accessible = accessible }
}

// WithIO sets the form's input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Provider) {
		p.in = in
		p.out = out
	}
}

// New returns a dialog provider. Accessible mode defaults to on when the
// ACCESSIBLE environment variable is set.
func New(opts ...Option) *Provider {
	p := &Provider{
		accessible: os.Getenv("ACCESSIBLE") != "",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProfileWizard runs the profile form prefilled with the given answers.
func (p *Provider) ProfileWizard(prefill ports.WizardData) (ports.WizardData, error) {
	result := withDefaults(prefill)

	form := buildForm(&result).WithAccessible(p.accessible)
	if p.in != nil {
		form = form.WithInput(p.in)
	}
	if p.out != nil {
		form = form.WithOutput(p.out)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return prefill, ErrAborted
		}
		return prefill, fmt.Errorf("form: %w", err)
	}

	if !result.CustomSymbols {
		result.Symbols = ""
	}
	if !result.Save {
		result.ProfileName = ""
	}
	return result, nil
}
