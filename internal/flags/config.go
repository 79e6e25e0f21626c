package flags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/flowvibe/mcp-installer/internal/files"
)

const (
	// Env vars
	EnvVarConfigFile = "MCP_INSTALLER_CONFIG_FILE"
	EnvVarBaseDir    = "MCP_INSTALLER_BASE_DIR"
	EnvVarLogPath    = "MCP_INSTALLER_LOG_PATH"
	EnvVarLogLevel   = "MCP_INSTALLER_LOG_LEVEL"

	// Defaults
	DefaultConfigFile = "config.toml"
	DefaultBaseDir    = ""
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameBaseDir    = "base-dir"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
)

var (
	ConfigFile string
	BaseDir    string
	LogPath    string
	LogLevel   string
)

// InitFlags registers the global flags on fs.
// Values already set take precedence over env vars, which take precedence over defaults.
func InitFlags(fs *pflag.FlagSet) error {
	if err := initConfigFile(fs); err != nil {
		return err
	}
	initBaseDir(fs)
	initLogger(fs)

	return nil
}

func initConfigFile(fs *pflag.FlagSet) error {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			dir, err := files.UserSpecificConfigDir()
			if err != nil {
				return err
			}
			ConfigFile = filepath.Join(dir, DefaultConfigFile)
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to the mcp-installer settings file")

	return nil
}

func initBaseDir(fs *pflag.FlagSet) {
	if BaseDir == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarBaseDir)); env != "" {
			BaseDir = env
		} else {
			BaseDir = DefaultBaseDir
		}
	}
	fs.StringVar(&BaseDir, FlagNameBaseDir, BaseDir, "directory MCP servers are installed into (overrides settings)")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcp-installer logs (trace, debug, info, warn, error, off)")
}
