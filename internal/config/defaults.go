package config

import (
	"path/filepath"
)

const (
	// BaseConfigFileName is the name of the base client config file kept in the base directory.
	BaseConfigFileName = "mcp_configs.json"

	flowvibeDir = "Flowvibe"
	mcpDir      = "MCP"
)

// DefaultSearchLanguages is used when neither the caller nor the settings file supply a language filter.
var DefaultSearchLanguages = []string{"typescript", "javascript", "HTML"}

// DefaultBaseDir returns the default install directory for the given home directory and OS.
// On Windows the OneDrive-synced Documents folder is preferred when it exists.
func DefaultBaseDir(home string, goos string, exists func(path string) bool) string {
	if goos == "windows" {
		oneDrive := filepath.Join(home, "OneDrive", "Documents")
		if exists != nil && exists(oneDrive) {
			return filepath.Join(oneDrive, flowvibeDir, mcpDir)
		}
	}

	return filepath.Join(home, "Documents", flowvibeDir, mcpDir)
}

// DefaultClients returns the known MCP client config file locations for the given home directory and OS.
func DefaultClients(home string, goos string) []Client {
	clients := []Client{
		{
			Name: "flowvibe-onedrive",
			Path: filepath.Join(home, "OneDrive", "Documents", flowvibeDir, mcpDir, BaseConfigFileName),
			Base: true,
		},
		{
			Name: "flowvibe",
			Path: filepath.Join(home, "Documents", flowvibeDir, mcpDir, BaseConfigFileName),
			Base: true,
		},
		{
			Name: "claude",
			Path: filepath.Join(appDataDir(home, goos), "Claude", "claude_desktop_config.json"),
		},
		{
			Name: "cursor",
			Path: filepath.Join(home, ".cursor", "mcp.json"),
		},
		{
			Name: "windsurf",
			Path: windsurfConfigPath(home, goos),
		},
	}

	editors := []struct {
		suffix string
		dir    string
	}{
		{suffix: "vscode", dir: "Code"},
		{suffix: "vscode-insiders", dir: "Code - Insiders"},
		{suffix: "cursor", dir: "Cursor"},
	}

	for _, e := range editors {
		globalStorage := filepath.Join(appDataDir(home, goos), e.dir, "User", "globalStorage")
		clients = append(clients, Client{
			Name: "roocode-" + e.suffix,
			Path: filepath.Join(globalStorage, "rooveterinaryinc.roo-cline", "settings", "mcp_settings.json"),
		})
	}

	for _, e := range editors {
		globalStorage := filepath.Join(appDataDir(home, goos), e.dir, "User", "globalStorage")
		clients = append(clients, Client{
			Name: "cline-" + e.suffix,
			Path: filepath.Join(globalStorage, "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"),
		})
	}

	return clients
}

// appDataDir returns the per-user application data directory used by Electron based clients.
func appDataDir(home string, goos string) string {
	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	default:
		return filepath.Join(home, ".config")
	}
}

func windsurfConfigPath(home string, goos string) string {
	if goos == "windows" {
		return filepath.Join(home, "AppData", "Roaming", "Codeium", "windsurf", "mcp_config.json")
	}

	return filepath.Join(home, ".codeium", "windsurf", "mcp_config.json")
}
