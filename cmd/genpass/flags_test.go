package main

import (
	"io"
	"reflect"
	"testing"
)

func TestParseArgs_Interspersed(t *testing.T) {
	var opts options
	fs := newFlagSet(&opts, io.Discard)

	positional, err := parseArgs(fs, []string{"work", "--length", "12", "extra", "-c", "3", "--exclude-ambiguous"})
	if err != nil {
		t.Fatalf("parseArgs() error: %v", err)
	}
	if !reflect.DeepEqual(positional, []string{"work", "extra"}) {
		t.Errorf("positional = %v, want [work extra]", positional)
	}
	p := opts.override
	if p.Length == nil || *p.Length != 12 {
		t.Errorf("Length = %v, want 12", p.Length)
	}
	if p.Count == nil || *p.Count != 3 {
		t.Errorf("Count = %v, want 3", p.Count)
	}
	if p.ExcludeAmbiguous == nil || !*p.ExcludeAmbiguous {
		t.Errorf("ExcludeAmbiguous = %v, want true", p.ExcludeAmbiguous)
	}
}

func TestParseArgs_OnlyGivenFlagsSet(t *testing.T) {
	var opts options
	fs := newFlagSet(&opts, io.Discard)

	if _, err := parseArgs(fs, []string{"--max-symbol", "0", "--symbols", "#$"}); err != nil {
		t.Fatalf("parseArgs() error: %v", err)
	}
	p := opts.override
	if p.MaxSymbol == nil || *p.MaxSymbol != 0 {
		t.Errorf("MaxSymbol = %v, want 0", p.MaxSymbol)
	}
	if p.Symbols == nil || *p.Symbols != "#$" {
		t.Errorf("Symbols = %v, want #$", p.Symbols)
	}
	p.MaxSymbol, p.Symbols = nil, nil
	if !p.IsEmpty() {
		t.Errorf("unexpected options set: %+v", p)
	}
}

func TestParseArgs_ExplicitFalse(t *testing.T) {
	var opts options
	fs := newFlagSet(&opts, io.Discard)

	if _, err := parseArgs(fs, []string{"--exclude-ambiguous=false", "-p", "work", "--workers", "4"}); err != nil {
		t.Fatalf("parseArgs() error: %v", err)
	}
	if opts.override.ExcludeAmbiguous == nil || *opts.override.ExcludeAmbiguous {
		t.Errorf("ExcludeAmbiguous = %v, want explicit false", opts.override.ExcludeAmbiguous)
	}
	if opts.profileName != "work" || opts.workers != 4 {
		t.Errorf("opts = %+v", opts)
	}
}

func TestFlagValues(t *testing.T) {
	var n *int
	f := intFlag{&n}
	if f.String() != "" {
		t.Errorf("unset String() = %q", f.String())
	}
	if err := f.Set("7"); err != nil || f.String() != "7" {
		t.Errorf("Set(7) = %v, String() = %q", err, f.String())
	}
	if err := f.Set("-7"); err == nil {
		t.Error("Set(-7) expected error")
	}
	if (intFlag{}).String() != "" || (stringFlag{}).String() != "" || (boolFlag{}).String() != "false" {
		t.Error("zero flag values must render as their defaults")
	}

	var b *bool
	bf := boolFlag{&b}
	if err := bf.Set("maybe"); err == nil {
		t.Error("Set(maybe) expected error")
	}
	if !bf.IsBoolFlag() {
		t.Error("IsBoolFlag() = false")
	}
}
