package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/acolita/genpass/internal/profile"
	"github.com/acolita/genpass/internal/recovery"
)

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(passwordGenerateTool(), s.handlePasswordGenerate)
	s.mcpServer.AddTool(passwordProfileListTool(), s.handleProfileList)
	s.mcpServer.AddTool(passwordProfileShowTool(), s.handleProfileShow)
	s.mcpServer.AddTool(passwordProfileSaveTool(), s.handleProfileSave)
}

// intOptions maps tool arguments to the profile fields they set.
var intOptions = []struct {
	arg  string
	desc string
	dst  func(*profile.Profile) **int
}{
	{"min_numeric", "Minimum number of digits (0-9)", func(p *profile.Profile) **int { return &p.MinNumeric }},
	{"max_numeric", "Maximum number of digits (0-9)", func(p *profile.Profile) **int { return &p.MaxNumeric }},
	{"min_lower", "Minimum number of lowercase letters", func(p *profile.Profile) **int { return &p.MinLower }},
	{"max_lower", "Maximum number of lowercase letters", func(p *profile.Profile) **int { return &p.MaxLower }},
	{"min_upper", "Minimum number of uppercase letters", func(p *profile.Profile) **int { return &p.MinUpper }},
	{"max_upper", "Maximum number of uppercase letters", func(p *profile.Profile) **int { return &p.MaxUpper }},
	{"min_symbol", "Minimum number of symbols", func(p *profile.Profile) **int { return &p.MinSymbol }},
	{"max_symbol", "Maximum number of symbols (0 disables symbols)", func(p *profile.Profile) **int { return &p.MaxSymbol }},
	{"length", "Exact password length (conflicts with min_length/max_length)", func(p *profile.Profile) **int { return &p.Length }},
	{"min_length", "Minimum password length (default 16)", func(p *profile.Profile) **int { return &p.MinLength }},
	{"max_length", "Maximum password length (default: min_length)", func(p *profile.Profile) **int { return &p.MaxLength }},
	{"count", "Number of passwords (default 1)", func(p *profile.Profile) **int { return &p.Count }},
}

func profileToolOptions() []mcp.ToolOption {
	opts := make([]mcp.ToolOption, 0, len(intOptions)+2)
	for _, o := range intOptions {
		opts = append(opts, mcp.WithNumber(o.arg, mcp.Description(o.desc), mcp.Min(0)))
	}
	opts = append(opts,
		mcp.WithString("symbols",
			mcp.Description("Symbol alphabet (default: !@#$%^&*()_+-=[]{}|;:,.<>?)"),
		),
		mcp.WithBoolean("exclude_ambiguous",
			mcp.Description("Exclude look-alike characters 0, O, 1, l and I"),
		),
	)
	return opts
}

// Tool definitions

func passwordGenerateTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(`Generate random passwords with per-class character constraints.

Arguments override the options stored in the selected profile. Passwords are drawn
from the operating system's secure random source; nothing is stored.

Set copy_to_clipboard to place the passwords on the user's clipboard instead of
returning them, keeping them out of the conversation.`),
		mcp.WithString("profile", mcp.Description(descProfile)),
		mcp.WithBoolean("copy_to_clipboard",
			mcp.Description("Copy the passwords to the clipboard instead of returning them (default: false)"),
		),
	}
	return mcp.NewTool(toolGenerate, append(opts, profileToolOptions()...)...)
}

func passwordProfileListTool() mcp.Tool {
	return mcp.NewTool(toolProfileList,
		mcp.WithDescription("List saved generation profiles"),
		mcp.WithString("pattern",
			mcp.Description("Optional glob filter, e.g. 'work-*' or '{home,work}'"),
		),
	)
}

func passwordProfileShowTool() mcp.Tool {
	return mcp.NewTool(toolProfileShow,
		mcp.WithDescription("Show the options of a saved generation profile"),
		mcp.WithString("name", mcp.Description(descProfile)),
	)
}

func passwordProfileSaveTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(`Save generation options as a named profile.

The options are validated before saving. With merge=true the given options are
layered over the existing profile; otherwise the profile is replaced.`),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Profile name ('default' is used when no profile is selected)"),
		),
		mcp.WithBoolean("merge",
			mcp.Description("Layer the options over the existing profile (default: false)"),
		),
	}
	return mcp.NewTool(toolProfileSave, append(opts, profileToolOptions()...)...)
}

// Tool handlers

type generateResult struct {
	Profile     string   `json:"profile"`
	Passwords   []string `json:"passwords,omitempty"`
	Copied      int      `json:"copied,omitempty"`
	LengthRange [2]int   `json:"length_range"`
}

func (s *Server) handlePasswordGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, _, limiter, gen := s.snapshot()
	log := requestLogger(toolGenerate)

	if !limiter.AllowN(s.clock.Now(), 1) {
		log.Warn("rate limited")
		return mcp.NewToolResultError(errRateLimited), nil
	}

	name, err := profile.NormalizeName(mcp.ParseString(req, "profile", cfg.Profiles.Default))
	if err != nil {
		return toolError(err), nil
	}

	override, err := profileFromArgs(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := s.loadProfile(name)
	if err != nil {
		return toolError(fmt.Errorf("load profile %q: %w", name, err)), nil
	}
	p.Merge(override)

	v, err := p.Validate()
	if err != nil {
		return toolError(err), nil
	}

	lo, hi := v.LengthRange()
	if hi > maxPasswordLength {
		return mcp.NewToolResultError(fmt.Sprintf(errLengthTooLarge, hi, maxPasswordLength)), nil
	}

	count := p.CountOrDefault()
	if count > cfg.MCP.MaxCount {
		return mcp.NewToolResultError(fmt.Sprintf(errCountTooLarge, count, cfg.MCP.MaxCount)), nil
	}

	passwords, err := gen.GenerateN(ctx, v, count)
	if err != nil {
		log.Error("password generation failed", slog.String("error", err.Error()))
		return toolError(fmt.Errorf("generate: %w", err)), nil
	}

	result := generateResult{Profile: name, LengthRange: [2]int{lo, hi}}

	if mcp.ParseBoolean(req, "copy_to_clipboard", false) {
		if err := s.clipboard.WriteAll(strings.Join(passwords, "\n")); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf(errClipboardFailed, err)), nil
		}
		result.Copied = len(passwords)
	} else {
		result.Passwords = passwords
	}

	log.Info("passwords generated",
		slog.String("profile", name),
		slog.Int("count", count),
		slog.Bool("clipboard", result.Copied > 0),
	)

	return jsonResult(result)
}

func (s *Server) handleProfileList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, store, _, _ := s.snapshot()

	names, err := store.List(mcp.ParseString(req, "pattern", ""))
	if err != nil {
		return toolError(err), nil
	}

	return jsonResult(map[string]any{
		"profiles": names,
		"dir":      store.Dir(),
	})
}

func (s *Server) handleProfileShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, _, _, _ := s.snapshot()

	name, err := profile.NormalizeName(mcp.ParseString(req, "name", cfg.Profiles.Default))
	if err != nil {
		return toolError(err), nil
	}

	p, err := s.loadProfile(name)
	if err != nil {
		return toolError(fmt.Errorf("load profile %q: %w", name, err)), nil
	}

	var b strings.Builder
	if err := profile.Describe(&b, name, p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleProfileSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, store, _, _ := s.snapshot()

	name, err := profile.NormalizeName(mcp.ParseString(req, "name", ""))
	if err != nil {
		return toolError(err), nil
	}

	p, err := profileFromArgs(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if mcp.ParseBoolean(req, "merge", false) {
		existing, err := s.loadProfile(name)
		if err != nil {
			return toolError(fmt.Errorf("load profile %q: %w", name, err)), nil
		}
		existing.Merge(p)
		p = existing
	}

	if _, err := p.Validate(); err != nil {
		return toolError(fmt.Errorf("profile not saved: %w", err)), nil
	}

	if err := store.Save(name, p); err != nil {
		requestLogger(toolProfileSave).Error("profile save failed",
			slog.String("profile", name),
			slog.String("error", err.Error()),
		)
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.InvalidateProfile(name)

	path, _ := store.Path(name)
	return jsonResult(map[string]any{
		"saved": name,
		"path":  path,
	})
}

// profileFromArgs reads the profile options present in a tool call.
func profileFromArgs(args map[string]any) (*profile.Profile, error) {
	p := &profile.Profile{}

	for _, o := range intOptions {
		raw, ok := args[o.arg]
		if !ok || raw == nil {
			continue
		}
		n, err := toCount(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.arg, err)
		}
		*o.dst(p) = &n
	}

	if raw, ok := args["symbols"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("symbols: expected a string, got %T", raw)
		}
		p.Symbols = &s
	}

	if raw, ok := args["exclude_ambiguous"]; ok && raw != nil {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("exclude_ambiguous: expected a boolean, got %T", raw)
		}
		p.ExcludeAmbiguous = &b
	}

	return p, nil
}

// toCount accepts JSON numbers and numeric strings holding a non-negative
// whole number.
func toCount(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", x)
		}
		f = parsed
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", x)
		}
		f = float64(n)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}

	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("expected a whole number, got %v", f)
	}
	if f < 0 {
		return 0, fmt.Errorf("must not be negative, got %v", f)
	}
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("too large: %v", f)
	}
	return int(f), nil
}

// requestLogger returns a logger tagged with the tool name and a fresh
// request ID, so all records of one call can be correlated.
func requestLogger(tool string) *slog.Logger {
	return slog.With(
		slog.String("tool", tool),
		slog.String("request_id", uuid.NewString()),
	)
}

// toolError reports err to the client, followed by a recovery hint when one
// applies.
func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if s := recovery.NewAnalyzer().Best(err); s != nil {
		msg += "\nHint: " + s.Explanation
		if len(s.Options) > 0 {
			msg += " (options: " + strings.Join(s.Options, ", ") + ")"
		}
	}
	return mcp.NewToolResultError(msg)
}

// jsonResult converts a value to a JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
