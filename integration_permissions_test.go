package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/flowvibe/mcp-installer/internal/clientconfig"
	"github.com/flowvibe/mcp-installer/internal/cmd"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/flags"
	"github.com/flowvibe/mcp-installer/internal/perms"
)

// TestSettingsFilePermissions verifies that the settings file
// is created with regular permissions.
func TestSettingsFilePermissions(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "settings", "config.toml")

	loader := &config.DefaultLoader{}
	require.NoError(t, loader.Init(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, perms.RegularFile, info.Mode().Perm(),
		"Settings file should be created with regular permissions (0644)")

	dirInfo, err := os.Stat(filepath.Dir(configPath))
	require.NoError(t, err)
	require.Equal(t, perms.RegularDir, dirInfo.Mode().Perm(),
		"Settings directory should be created with regular permissions (0755)")
}

// TestClientConfigPermissions verifies that the base config file
// written on install is created with regular permissions.
func TestClientConfigPermissions(t *testing.T) {
	t.Parallel()

	baseDir := filepath.Join(t.TempDir(), "MCP")
	require.NoError(t, files.EnsureAtLeastRegularDir(baseDir))

	basePath := filepath.Join(baseDir, config.BaseConfigFileName)
	w := clientconfig.NewWriter(hclog.NewNullLogger(), basePath, nil)

	updated, err := w.Install("weather-mcp", clientconfig.ServerEntry{
		Command: "node",
		Args:    []string{filepath.Join(baseDir, "weather-mcp", "build", "index.js")},
	})
	require.NoError(t, err)
	require.Equal(t, []string{basePath}, updated)

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	require.Equal(t, perms.RegularFile, info.Mode().Perm(),
		"Base config file should be created with regular permissions (0644)")

	dirInfo, err := os.Stat(baseDir)
	require.NoError(t, err)
	require.Equal(t, perms.RegularDir, dirInfo.Mode().Perm(),
		"Base directory should be created with regular permissions (0755)")
}

// TestLogFilePermissions verifies that the log file opened
// for --log-path is created with regular permissions.
func TestLogFilePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mcp-installer.log")

	prev := flags.LogPath
	flags.LogPath = logPath
	t.Cleanup(func() { flags.LogPath = prev })

	base := &cmd.BaseCmd{}
	base.Logger().Info("test log entry")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, perms.RegularFile, info.Mode().Perm(),
		"Log file should be created with regular permissions (0644)")
}

// TestRemoveTreeReadOnly verifies that read-only trees left by git or npm
// can still be removed on uninstall.
func TestRemoveTreeReadOnly(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "weather-mcp")
	objects := filepath.Join(dir, ".git", "objects")
	require.NoError(t, os.MkdirAll(objects, perms.RegularDir))
	require.NoError(t, os.WriteFile(filepath.Join(objects, "pack"), []byte("x"), 0o444))
	require.NoError(t, os.Chmod(objects, 0o555))

	require.NoError(t, files.RemoveTree(dir))
	require.NoDirExists(t, dir)
}
