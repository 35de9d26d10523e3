// Package fakedialog provides a test fake for ports.DialogProvider.
package fakedialog

import "github.com/acolita/genpass/internal/ports"

// Provider is a controllable fake DialogProvider for testing.
type Provider struct {
	// Result is the form data returned by ProfileWizard.
	Result ports.WizardData
	// Edit, when set, derives the result from the prefill instead of Result.
	Edit func(prefill ports.WizardData) ports.WizardData
	// Err is the error returned by ProfileWizard.
	Err error
	// Calls counts ProfileWizard invocations.
	Calls int
	// ReceivedPrefill captures the prefill data passed to ProfileWizard.
	ReceivedPrefill ports.WizardData
}

// New returns a new fake dialog provider.
func New() *Provider {
	return &Provider{}
}

// ProfileWizard returns the pre-configured Result (or Edit's output) and Err.
func (p *Provider) ProfileWizard(prefill ports.WizardData) (ports.WizardData, error) {
	p.Calls++
	p.ReceivedPrefill = prefill
	if p.Err != nil {
		return prefill, p.Err
	}
	if p.Edit != nil {
		return p.Edit(prefill), nil
	}
	return p.Result, nil
}
