package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/acolita/genpass/internal/config"
	"github.com/acolita/genpass/internal/entropy"
	"github.com/acolita/genpass/internal/generator"
	"github.com/acolita/genpass/internal/mcp"
	"github.com/acolita/genpass/internal/ports"
	"github.com/acolita/genpass/internal/profile"
	"github.com/acolita/genpass/internal/recovery"
	"github.com/acolita/genpass/internal/wizard"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by a malformed command line.
var errUsage = errors.New("usage error")

type app struct {
	stdout io.Writer
	stderr io.Writer

	fs        ports.FileSystem
	random    ports.Random
	clipboard ports.Clipboard
	dialog    ports.DialogProvider

	setupLogging func(level string, sanitize bool)
}

var commands = map[string]func(*app, context.Context, *env, []string) error{
	"generate": (*app).cmdGenerate,
	"list":     (*app).cmdList,
	"show":     (*app).cmdShow,
	"save":     (*app).cmdSave,
	"delete":   (*app).cmdDelete,
	"wizard":   (*app).cmdWizard,
	"serve":    (*app).cmdServe,
}

// env is the per-invocation state shared by commands.
type env struct {
	opts       options
	cfg        *config.Config
	configPath string
	store      *profile.Store
}

func (a *app) run(args []string) int {
	cmd := "generate"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	if cmd == "version" {
		fmt.Fprintf(a.stdout, "genpass version %s\n", Version)
		fmt.Fprintf(a.stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	}

	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(a.stderr, "Error: unknown command %q (run 'genpass -h' for usage)\n", cmd)
		return exitUsage
	}

	e := &env{}
	fs := newFlagSet(&e.opts, a.stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if err := a.loadEnv(e); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handler(a, ctx, e, positional); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		a.printHint(err)
		return exitError
	}
	return exitOK
}

func (a *app) printHint(err error) {
	s := recovery.NewAnalyzer().Best(err)
	if s == nil {
		return
	}
	fmt.Fprintf(a.stderr, "Hint: %s\n", s.Explanation)
	if len(s.Options) > 0 {
		flags := make([]string, len(s.Options))
		for i, o := range s.Options {
			flags[i] = "--" + strings.ReplaceAll(o, "_", "-")
		}
		fmt.Fprintf(a.stderr, "      Related flags: %s\n", strings.Join(flags, " "))
	}
}

func (a *app) loadEnv(e *env) error {
	e.configPath = e.opts.configPath
	if e.configPath == "" {
		e.configPath = config.DefaultConfigPath(a.fs)
	}

	cfg, err := config.Load(e.configPath, a.fs)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, e.opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.setupLogging(cfg.Logging.Level, cfg.Logging.Sanitize)

	e.cfg = cfg
	e.store = profile.NewStore(cfg.ProfileDir(a.fs), a.fs)
	return nil
}

// applyOverrides applies command-line settings to a loaded config. It runs
// again on every hot reload.
func applyOverrides(cfg *config.Config, opts options) {
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
	if opts.workers > 0 {
		cfg.Generate.Workers = opts.workers
	}
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func expectArgs(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		switch {
		case lo == hi && lo == 0:
			return usageErr("%s takes no arguments", cmd)
		case lo == hi:
			return usageErr("%s takes exactly %d argument(s)", cmd, lo)
		default:
			return usageErr("%s takes at most %d argument(s)", cmd, hi)
		}
	}
	return nil
}

func (e *env) profileName() string {
	if e.opts.profileName != "" {
		return e.opts.profileName
	}
	return e.cfg.Profiles.Default
}

// resolve loads the selected profile and layers the command-line options on it.
func (e *env) resolve() (*profile.Profile, error) {
	p, err := e.store.Load(e.profileName())
	if err != nil {
		return nil, err
	}
	p.Merge(&e.opts.override)
	return p, nil
}

func (a *app) cmdGenerate(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("generate", args, 0, 0); err != nil {
		return err
	}
	p, err := e.resolve()
	if err != nil {
		return err
	}
	return a.generate(ctx, e, p)
}

func (a *app) generate(ctx context.Context, e *env, p *profile.Profile) error {
	v, err := p.Validate()
	if err != nil {
		return err
	}

	count := p.CountOrDefault()
	if count > e.cfg.Generate.MaxCount {
		return fmt.Errorf("count %d exceeds the maximum of %d (generate.max_count)", count, e.cfg.Generate.MaxCount)
	}

	gen := generator.New(entropy.New(a.random), generator.WithWorkers(e.cfg.Generate.Workers))
	passwords, err := gen.GenerateN(ctx, v, count)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}

	for _, pw := range passwords {
		fmt.Fprintln(a.stdout, pw)
	}

	if e.opts.clipboard {
		if err := a.clipboard.WriteAll(strings.Join(passwords, "\n")); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(a.stderr, "Copied %d password(s) to the clipboard.\n", len(passwords))
	}
	return nil
}

func (a *app) cmdList(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("list", args, 0, 1); err != nil {
		return err
	}
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	names, err := e.store.List(pattern)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(a.stderr, "No saved profiles in %s.\n", e.store.Dir())
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(a.stdout, name)
	}
	return nil
}

func (a *app) cmdShow(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("show", args, 0, 1); err != nil {
		return err
	}
	name := e.profileName()
	if len(args) == 1 {
		name = args[0]
	}
	name, err := profile.NormalizeName(name)
	if err != nil {
		return err
	}

	p, err := e.store.Load(name)
	if err != nil {
		return err
	}
	return profile.Describe(a.stdout, name, p)
}

func (a *app) cmdSave(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("save", args, 1, 1); err != nil {
		return err
	}
	p := e.opts.override
	if _, err := p.Validate(); err != nil {
		return fmt.Errorf("profile not saved: %w", err)
	}
	if err := e.store.Save(args[0], &p); err != nil {
		return err
	}
	path, _ := e.store.Path(args[0])
	fmt.Fprintf(a.stderr, "Saved profile to %s.\n", path)
	return nil
}

func (a *app) cmdDelete(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("delete", args, 1, 1); err != nil {
		return err
	}
	if err := e.store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "Deleted profile %q.\n", args[0])
	return nil
}

func (a *app) cmdWizard(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("wizard", args, 0, 1); err != nil {
		return err
	}
	name := e.opts.profileName
	if len(args) == 1 {
		name = args[0]
	}

	var prefill *profile.Profile
	if name != "" {
		p, err := e.store.Load(name)
		if err != nil {
			return err
		}
		prefill = p
	}

	res, err := wizard.New(a.dialog, e.store).Run(prefill)
	if err != nil {
		return err
	}

	shown := res.Name
	if shown == "" {
		shown = "(unsaved)"
	}
	if err := profile.Describe(a.stderr, shown, res.Profile); err != nil {
		return err
	}
	fmt.Fprintln(a.stderr)

	return a.generate(ctx, e, res.Profile)
}

func (a *app) cmdServe(ctx context.Context, e *env, args []string) error {
	if err := expectArgs("serve", args, 0, 0); err != nil {
		return err
	}

	slog.Info("starting genpass MCP server", slog.String("version", Version))

	server := mcp.NewServer(e.cfg,
		mcp.WithVersion(Version),
		mcp.WithFileSystem(a.fs),
		mcp.WithRandom(a.random),
		mcp.WithClipboard(a.clipboard),
	)

	profileWatcher, err := profile.NewWatcher(server.ProfileStore(), server.InvalidateProfile)
	if err != nil {
		slog.Warn("profile watching disabled", slog.String("error", err.Error()))
	} else {
		defer profileWatcher.Close()
	}

	if _, statErr := a.fs.Stat(e.configPath); statErr == nil {
		configWatcher, err := config.NewWatcher(e.configPath, server.UpdateConfig,
			config.WithAdjust(func(c *config.Config) { applyOverrides(c, e.opts) }),
		)
		if err != nil {
			slog.Warn("config hot-reload disabled", slog.String("error", err.Error()))
		} else {
			defer configWatcher.Close()
			slog.Info("config hot-reload enabled", slog.String("path", e.configPath))
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
