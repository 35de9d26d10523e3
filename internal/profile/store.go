package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/acolita/genpass/internal/ports"
)

// Extension is the file extension of stored profiles.
const Extension = ".yaml"

var (
	// ErrInvalidName is returned for names that cannot be used as a file name.
	ErrInvalidName = errors.New("invalid profile name")

	// ErrNotFound is returned by Delete when the profile does not exist.
	ErrNotFound = errors.New("profile not found")
)

// Store reads and writes profiles as YAML files in a directory.
type Store struct {
	dir string
	fs  ports.FileSystem
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string, fsys ports.FileSystem) *Store {
	return &Store{dir: dir, fs: fsys}
}

// Dir returns the profile directory.
func (s *Store) Dir() string {
	return s.dir
}

// NormalizeName maps "" to the default profile and rejects names that
// would escape the profile directory.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName, nil
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// Path returns the file path for the named profile.
func (s *Store) Path(name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+Extension), nil
}

// Load reads the named profile. A missing file yields an empty profile.
func (s *Store) Load(name string) (*Profile, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("profile not found, using empty profile", slog.String("path", path))
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// Save writes the profile, creating the directory and overwriting any
// existing file.
func (s *Store) Save(name string, p *Profile) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	// Write then rename so readers and the watcher never see a partial file.
	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write profile: %w", err)
	}

	slog.Info("profile saved", slog.String("path", path))
	return nil
}

// List returns the sorted names of stored profiles. A non-empty pattern
// filters names with doublestar syntax, e.g. "work-*".
func (s *Store) List(pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read profile directory: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Extension)
		if _, err := NormalizeName(name); err != nil || name == "" {
			continue
		}
		if pattern != "" {
			ok, _ := doublestar.Match(pattern, name)
			if !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	slog.Info("profile deleted", slog.String("path", path))
	return nil
}

// NameFromPath returns the profile name for a file path inside the store,
// or false when the path is not a profile file.
func NameFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, Extension) {
		return "", false
	}
	name := strings.TrimSuffix(base, Extension)
	if name == "" || strings.HasPrefix(name, ".") {
		return "", false
	}
	return name, true
}
