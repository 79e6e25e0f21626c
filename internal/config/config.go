package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/perms"
)

// Defaults returns settings for the current user and platform.
func Defaults() (*Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return DefaultsFor(home, runtime.GOOS, files.IsDir), nil
}

// DefaultsFor returns settings for the given home directory and OS.
func DefaultsFor(home string, goos string, exists func(path string) bool) *Settings {
	return &Settings{
		BaseDir: DefaultBaseDir(home, goos, exists),
		Clients: DefaultClients(home, goos),
		Search: SearchSettings{
			Languages: slices.Clone(DefaultSearchLanguages),
		},
	}
}

// Init creates the skeleton settings file, populated with the platform defaults.
func (d *DefaultLoader) Init(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("settings file path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	s, err := Defaults()
	if err != nil {
		return err
	}

	if err := files.EnsureAtLeastRegularDir(filepath.Dir(path)); err != nil {
		return err
	}

	s.configFilePath = path

	return s.saveConfig()
}

// Load reads the settings file at path on top of the platform defaults.
// A missing file is not an error: the defaults are returned.
func (d *DefaultLoader) Load(path string) (*Settings, error) {
	s, err := Defaults()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return s, nil
	}

	return loadInto(s, path)
}

// loadInto overlays the keys defined in the file at path onto s.
// A key the file declares replaces the default as a whole; the clients table is never merged entry by entry.
func loadInto(s *Settings, path string) (*Settings, error) {
	s.configFilePath = path

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: failed to stat settings file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var file Settings
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode settings from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if md.IsDefined("base_dir") {
		s.BaseDir = file.BaseDir
	}
	if md.IsDefined("clients") {
		s.Clients = file.Clients
	}
	if md.IsDefined("search", "languages") {
		s.Search.Languages = file.Search.Languages
	}

	s.BaseDir = expandHome(s.BaseDir)
	for i := range s.Clients {
		s.Clients[i].Path = expandHome(s.Clients[i].Path)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate settings (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return s, nil
}

// WithBaseDir overrides the base directory, e.g. from a command line flag.
// An empty value leaves the settings untouched.
func (s *Settings) WithBaseDir(dir string) *Settings {
	dir = strings.TrimSpace(dir)
	if dir != "" {
		s.BaseDir = expandHome(dir)
	}
	return s
}

// BaseConfigPath returns the path of the base client config file inside the base directory.
func (s *Settings) BaseConfigPath() string {
	return filepath.Join(s.BaseDir, BaseConfigFileName)
}

// ConfigFilePath returns the path the settings were loaded from (or will be saved to).
func (s *Settings) ConfigFilePath() string {
	return s.configFilePath
}

// SaveConfig saves the current settings to the settings file.
func (s *Settings) SaveConfig() error {
	return s.saveConfig()
}

func (s *Settings) saveConfig() error {
	if s.configFilePath == "" {
		return fmt.Errorf("settings file path not present")
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFilePath, data, perms.RegularFile)
}

// validate ensures the base directory is set and client entries are usable.
func (s *Settings) validate() error {
	if strings.TrimSpace(s.BaseDir) == "" {
		return NewErrInvalidValue("base_dir", s.BaseDir)
	}
	if !filepath.IsAbs(s.BaseDir) {
		return fmt.Errorf("%w: 'base_dir' must be an absolute path (value: '%s')", ErrInvalidValue, s.BaseDir)
	}

	seen := map[string]struct{}{}
	for _, c := range s.Clients {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("client entry has empty name")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate client name '%s'", name)
		}
		seen[name] = struct{}{}
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("client '%s' has empty path", name)
		}
	}

	return nil
}

// expandHome replaces a leading '~' with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
