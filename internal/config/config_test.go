package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvibe/mcp-installer/internal/perms"
)

func TestDefaultBaseDir(t *testing.T) {
	t.Parallel()

	home := filepath.FromSlash("/home/dev")

	tests := []struct {
		name     string
		goos     string
		exists   func(string) bool
		expected string
	}{
		{
			name:     "linux uses Documents",
			goos:     "linux",
			exists:   func(string) bool { return true },
			expected: filepath.Join(home, "Documents", "Flowvibe", "MCP"),
		},
		{
			name:     "windows prefers OneDrive when present",
			goos:     "windows",
			exists:   func(string) bool { return true },
			expected: filepath.Join(home, "OneDrive", "Documents", "Flowvibe", "MCP"),
		},
		{
			name:     "windows without OneDrive uses Documents",
			goos:     "windows",
			exists:   func(string) bool { return false },
			expected: filepath.Join(home, "Documents", "Flowvibe", "MCP"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, DefaultBaseDir(home, tc.goos, tc.exists))
		})
	}
}

func TestDefaultClients(t *testing.T) {
	t.Parallel()

	home := filepath.FromSlash("/home/dev")
	clients := DefaultClients(home, "windows")

	byName := map[string]Client{}
	for _, c := range clients {
		_, dup := byName[c.Name]
		require.False(t, dup, "duplicate client %s", c.Name)
		byName[c.Name] = c
	}

	require.Len(t, clients, 11)
	assert.True(t, byName["flowvibe"].Base)
	assert.True(t, byName["flowvibe-onedrive"].Base)
	assert.False(t, byName["claude"].Base)
	assert.Equal(t,
		filepath.Join(home, "AppData", "Roaming", "Claude", "claude_desktop_config.json"),
		byName["claude"].Path,
	)
	assert.Equal(t, filepath.Join(home, ".cursor", "mcp.json"), byName["cursor"].Path)
	assert.Equal(t,
		filepath.Join(home, "AppData", "Roaming", "Codeium", "windsurf", "mcp_config.json"),
		byName["windsurf"].Path,
	)
	assert.Equal(t,
		filepath.Join(
			home, "AppData", "Roaming", "Code - Insiders", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json",
		),
		byName["cline-vscode-insiders"].Path,
	)
	assert.Equal(t,
		filepath.Join(
			home, "AppData", "Roaming", "Cursor", "User", "globalStorage",
			"rooveterinaryinc.roo-cline", "settings", "mcp_settings.json",
		),
		byName["roocode-cursor"].Path,
	)
}

func TestDefaultClients_Darwin(t *testing.T) {
	t.Parallel()

	home := filepath.FromSlash("/Users/dev")
	for _, c := range DefaultClients(home, "darwin") {
		if c.Name == "claude" {
			require.Equal(t,
				filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"),
				c.Path,
			)
			return
		}
	}
	t.Fatal("claude client not found")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	loader := &DefaultLoader{}

	path := filepath.Join(t.TempDir(), "config.toml")
	s, err := loader.Load(path)
	require.NoError(t, err)

	defaults, err := Defaults()
	require.NoError(t, err)
	require.Equal(t, defaults.BaseDir, s.BaseDir)
	require.Equal(t, defaults.Clients, s.Clients)
	require.Equal(t, DefaultSearchLanguages, s.Search.Languages)
	require.Equal(t, path, s.ConfigFilePath())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "servers")
	path := filepath.Join(dir, "config.toml")

	content := `base_dir = "` + filepath.ToSlash(base) + `"

[[clients]]
name = "claude"
path = "` + filepath.ToSlash(filepath.Join(dir, "claude.json")) + `"

[search]
languages = ["go"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), perms.RegularFile))

	s, err := (&DefaultLoader{}).Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(base), filepath.Clean(s.BaseDir))
	require.Len(t, s.Clients, 1)
	require.Equal(t, "claude", s.Clients[0].Name)
	require.Equal(t, []string{"go"}, s.Search.Languages)
	require.Equal(t, filepath.Join(filepath.Clean(base), BaseConfigFileName), filepath.Clean(s.BaseConfigPath()))
}

func TestLoad_ClientsReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	defaults, err := Defaults()
	require.NoError(t, err)
	require.NotEmpty(t, defaults.Clients)
	require.True(t, defaults.Clients[0].Base)

	cursor := filepath.ToSlash(filepath.Join(dir, "cursor", "mcp.json"))
	claude := filepath.ToSlash(filepath.Join(dir, "claude", "claude_desktop_config.json"))
	content := `
[[clients]]
name = "cursor"
path = "` + cursor + `"

[[clients]]
name = "claude"
path = "` + claude + `"
base = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), perms.RegularFile))

	s, err := (&DefaultLoader{}).Load(path)
	require.NoError(t, err)
	require.Equal(t, []Client{
		{Name: "cursor", Path: cursor, Base: false},
		{Name: "claude", Path: claude, Base: true},
	}, s.Clients)

	// Keys the file leaves out keep their defaults.
	require.Equal(t, defaults.BaseDir, s.BaseDir)
	require.Equal(t, defaults.Search.Languages, s.Search.Languages)
}

func TestLoad_NoClientsKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nlanguages = [\"python\"]\n"), perms.RegularFile))

	defaults, err := Defaults()
	require.NoError(t, err)

	s, err := (&DefaultLoader{}).Load(path)
	require.NoError(t, err)
	require.Equal(t, defaults.Clients, s.Clients)
	require.Equal(t, []string{"python"}, s.Search.Languages)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "malformed toml",
			content: `base_dir = `,
			errMsg:  "failed to decode settings",
		},
		{
			name:    "blank base dir",
			content: `base_dir = "  "`,
			errMsg:  "invalid settings value: 'base_dir' is empty",
		},
		{
			name:    "relative base dir",
			content: `base_dir = "relative/dir"`,
			errMsg:  "must be an absolute path",
		},
		{
			name: "duplicate clients",
			content: `
[[clients]]
name = "cursor"
path = "/a.json"

[[clients]]
name = "cursor"
path = "/b.json"
`,
			errMsg: "duplicate client name 'cursor'",
		},
		{
			name: "client without path",
			content: `
[[clients]]
name = "cursor"
`,
			errMsg: "client 'cursor' has empty path",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), perms.RegularFile))

			_, err := (&DefaultLoader{}).Load(path)
			require.ErrorIs(t, err, ErrConfigLoadFailed)
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	loader := &DefaultLoader{}

	require.NoError(t, loader.Init(path))

	s, err := loader.Load(path)
	require.NoError(t, err)
	defaults, err := Defaults()
	require.NoError(t, err)
	require.Equal(t, defaults.BaseDir, s.BaseDir)
	require.Equal(t, defaults.Clients, s.Clients)

	err = loader.Init(path)
	require.ErrorContains(t, err, "already exists")
}

func TestSettings_WithBaseDir(t *testing.T) {
	t.Parallel()

	s := &Settings{BaseDir: "/original"}
	s.WithBaseDir("  ")
	require.Equal(t, "/original", s.BaseDir)

	s.WithBaseDir("/override")
	require.Equal(t, "/override", s.BaseDir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, "Documents"), expandHome("~/Documents"))
	require.Equal(t, "/abs/path", expandHome("/abs/path"))
	require.Equal(t, "~user/path", expandHome("~user/path"))
}
