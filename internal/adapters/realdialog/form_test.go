package realdialog

import (
	"testing"

	"github.com/acolita/genpass/internal/ports"
)

func TestValidateOptionalCount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"  ", false},
		{"0", false},
		{" 12 ", false},
		{"-1", true},
		{"abc", true},
		{"1.5", true},
	}
	for _, tt := range tests {
		err := validateOptionalCount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateOptionalCount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1", false},
		{" 16", false},
		{"0", true},
		{"", true},
		{"-4", true},
		{"x", true},
	}
	for _, tt := range tests {
		err := validatePositive(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validatePositive(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateSymbols(t *testing.T) {
	if err := validateSymbols("#$"); err != nil {
		t.Errorf("validateSymbols(%q) error: %v", "#$", err)
	}
	if err := validateSymbols(" "); err == nil {
		t.Error("validateSymbols(blank) expected error")
	}
}

func TestValidateProfileName(t *testing.T) {
	for _, ok := range []string{"", "work", "work-vpn"} {
		if err := validateProfileName(ok); err != nil {
			t.Errorf("validateProfileName(%q) error: %v", ok, err)
		}
	}
	for _, bad := range []string{"../x", "a/b", ".hidden", `a\b`} {
		if err := validateProfileName(bad); err == nil {
			t.Errorf("validateProfileName(%q) expected error", bad)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	t.Run("empty prefill", func(t *testing.T) {
		d := withDefaults(ports.WizardData{})
		if !d.ExactLength {
			t.Error("ExactLength = false, want true")
		}
		if d.Length != "16" || d.MinLength != "12" || d.MaxLength != "20" || d.Count != "1" {
			t.Errorf("defaults = %+v", d)
		}
		if d.CustomSymbols {
			t.Error("CustomSymbols = true, want false")
		}
	})

	t.Run("range prefill kept", func(t *testing.T) {
		d := withDefaults(ports.WizardData{MinLength: "8", MaxLength: "10", Symbols: "#", Count: "3"})
		if d.ExactLength {
			t.Error("ExactLength = true, want false")
		}
		if d.MinLength != "8" || d.MaxLength != "10" || d.Count != "3" {
			t.Errorf("prefill overwritten: %+v", d)
		}
		if !d.CustomSymbols {
			t.Error("CustomSymbols = false, want true for prefilled symbols")
		}
	})
}

func TestBuildForm(t *testing.T) {
	d := withDefaults(ports.WizardData{})
	if buildForm(&d) == nil {
		t.Fatal("buildForm() returned nil")
	}
}

func TestNewOptions(t *testing.T) {
	t.Setenv("ACCESSIBLE", "")
	p := New()
	if p.accessible {
		t.Error("accessible = true without ACCESSIBLE")
	}
	p = New(WithAccessible(true))
	if !p.accessible {
		t.Error("WithAccessible(true) not applied")
	}

	t.Setenv("ACCESSIBLE", "1")
	if !New().accessible {
		t.Error("ACCESSIBLE=1 did not enable accessible mode")
	}
}

var _ ports.DialogProvider = (*Provider)(nil)
