// Package mcp implements the MCP protocol server for genpass.
package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"

	"github.com/acolita/genpass/internal/adapters/realclipboard"
	"github.com/acolita/genpass/internal/adapters/realclock"
	"github.com/acolita/genpass/internal/adapters/realfs"
	"github.com/acolita/genpass/internal/adapters/realrand"
	"github.com/acolita/genpass/internal/config"
	"github.com/acolita/genpass/internal/entropy"
	"github.com/acolita/genpass/internal/generator"
	"github.com/acolita/genpass/internal/ports"
	"github.com/acolita/genpass/internal/profile"
)

// Server wraps the MCP server implementation.
type Server struct {
	mcpServer *server.MCPServer
	version   string

	fs        ports.FileSystem
	random    ports.Random
	clipboard ports.Clipboard
	clock     ports.Clock

	mu        sync.RWMutex
	config    *config.Config
	store     *profile.Store
	profiles  map[string]*profile.Profile
	limiter   *rate.Limiter
	generator *generator.Generator
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithFileSystem sets the filesystem used for profiles.
func WithFileSystem(fs ports.FileSystem) ServerOption {
	return func(s *Server) {
		s.fs = fs
	}
}

// WithRandom sets the entropy source.
func WithRandom(r ports.Random) ServerOption {
	return func(s *Server) {
		s.random = r
	}
}

// WithClipboard sets the clipboard used by copy_to_clipboard.
func WithClipboard(c ports.Clipboard) ServerOption {
	return func(s *Server) {
		s.clipboard = c
	}
}

// WithClock sets the time source used for rate limiting.
func WithClock(c ports.Clock) ServerOption {
	return func(s *Server) {
		s.clock = c
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		version:   "dev",
		fs:        realfs.New(),
		random:    realrand.New(),
		clipboard: realclipboard.New(),
		clock:     realclock.New(),
		profiles:  make(map[string]*profile.Profile),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		s.version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s.applyConfig(cfg)
	s.registerTools()

	return s
}

// Run starts the MCP server on stdio transport.
func (s *Server) Run() error {
	slog.Info("starting MCP server on stdio transport")
	return server.ServeStdio(s.mcpServer)
}

// ProfileStore returns the store currently in use.
func (s *Server) ProfileStore() *profile.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// UpdateConfig applies a new configuration at runtime. The rate limiter is
// rebuilt, and the profile cache is dropped when the profile directory moves.
func (s *Server) UpdateConfig(cfg *config.Config) {
	slog.Debug("applying config update")
	s.applyConfig(cfg)
	slog.Info("configuration hot-reloaded successfully")
}

func (s *Server) applyConfig(cfg *config.Config) {
	dir := cfg.ProfileDir(s.fs)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil || s.store.Dir() != dir {
		s.store = profile.NewStore(dir, s.fs)
		clear(s.profiles)
		slog.Debug("profile store updated", slog.String("dir", dir))
	}
	s.limiter = rate.NewLimiter(rate.Limit(cfg.MCP.RatePerSecond), cfg.MCP.Burst)
	s.generator = generator.New(entropy.New(s.random), generator.WithWorkers(cfg.Generate.Workers))
	s.config = cfg
}

// InvalidateProfile drops a cached profile so the next use rereads it.
func (s *Server) InvalidateProfile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, name)
	slog.Debug("profile cache invalidated", slog.String("profile", name))
}

// loadProfile returns a copy of the named profile, reading through the cache.
func (s *Server) loadProfile(name string) (*profile.Profile, error) {
	name, err := profile.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.profiles[name]
	store := s.store
	s.mu.RUnlock()
	if ok {
		p := *cached
		return &p, nil
	}

	p, err := store.Load(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.store == store {
		cp := *p
		s.profiles[name] = &cp
	}
	s.mu.Unlock()

	return p, nil
}

// snapshot returns the settings and collaborators for one request.
func (s *Server) snapshot() (*config.Config, *profile.Store, *rate.Limiter, *generator.Generator) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.store, s.limiter, s.generator
}
