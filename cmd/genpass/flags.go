package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/acolita/genpass/internal/profile"
)

// options holds everything parsed from the command line. Only flags that
// were actually given end up in override.
type options struct {
	override    profile.Profile
	profileName string
	clipboard   bool
	workers     int
	configPath  string
	debug       bool
}

// intFlag sets an optional non-negative integer only when the flag is given.
type intFlag struct{ dst **int }

func (f intFlag) String() string {
	if f.dst == nil || *f.dst == nil {
		return ""
	}
	return strconv.Itoa(**f.dst)
}

func (f intFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	*f.dst = &n
	return nil
}

type stringFlag struct{ dst **string }

func (f stringFlag) String() string {
	if f.dst == nil || *f.dst == nil {
		return ""
	}
	return **f.dst
}

func (f stringFlag) Set(s string) error {
	*f.dst = &s
	return nil
}

type boolFlag struct{ dst **bool }

func (f boolFlag) String() string {
	if f.dst == nil || *f.dst == nil {
		return "false"
	}
	return strconv.FormatBool(**f.dst)
}

func (f boolFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*f.dst = &b
	return nil
}

func (f boolFlag) IsBoolFlag() bool { return true }

const usageHeader = `genpass - a lightweight, flexible password generator

Usage:
  genpass [flags]                 generate passwords
  genpass list [pattern]          list saved profiles (glob pattern, e.g. 'work-*')
  genpass show [name]             show a profile
  genpass save <name> [flags]     save the given flags as a profile
  genpass delete <name>           delete a profile
  genpass wizard [name]           build a profile interactively
  genpass serve                   run the MCP server on stdio
  genpass version                 show version information

Flags:
`

func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("genpass", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageHeader)
		fs.PrintDefaults()
	}

	p := &opts.override
	fs.Var(intFlag{&p.MinNumeric}, "min-numeric", "Minimum number of numeric characters (0-9)")
	fs.Var(intFlag{&p.MaxNumeric}, "max-numeric", "Maximum number of numeric characters (0-9)")
	fs.Var(intFlag{&p.MinLower}, "min-lower", "Minimum number of lowercase letters (a-z)")
	fs.Var(intFlag{&p.MaxLower}, "max-lower", "Maximum number of lowercase letters (a-z)")
	fs.Var(intFlag{&p.MinUpper}, "min-upper", "Minimum number of uppercase letters (A-Z)")
	fs.Var(intFlag{&p.MaxUpper}, "max-upper", "Maximum number of uppercase letters (A-Z)")
	fs.Var(intFlag{&p.MinSymbol}, "min-symbol", "Minimum number of symbol characters")
	fs.Var(intFlag{&p.MaxSymbol}, "max-symbol", "Maximum number of symbol characters")
	fs.Var(intFlag{&p.Length}, "length", "Exact password length (conflicts with --min-length/--max-length)")
	fs.Var(intFlag{&p.MinLength}, "min-length", "Minimum total password length (default 16)")
	fs.Var(intFlag{&p.MaxLength}, "max-length", "Maximum total password length (default: min length)")
	fs.Var(stringFlag{&p.Symbols}, "symbols", "Symbol characters to use (default \"!@#$%^&*()_+-=[]{}|;:,.<>?\")")
	fs.Var(boolFlag{&p.ExcludeAmbiguous}, "exclude-ambiguous", "Exclude visually ambiguous characters (0/O, 1/l/I)")
	fs.Var(intFlag{&p.Count}, "count", "Number of passwords to generate (default 1)")
	fs.Var(intFlag{&p.Count}, "c", "Shorthand for --count")

	fs.StringVar(&opts.profileName, "profile", "", "Profile to start from (default: the configured default profile)")
	fs.StringVar(&opts.profileName, "p", "", "Shorthand for --profile")
	fs.BoolVar(&opts.clipboard, "clipboard", false, "Also copy the generated passwords to the clipboard")
	fs.IntVar(&opts.workers, "workers", 0, "Parallel generation workers (default from config)")
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")

	return fs
}

// parseArgs parses flags interleaved with positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
