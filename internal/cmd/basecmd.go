package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/flags"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/perms"
	"github.com/flowvibe/mcp-installer/internal/search"
	"github.com/flowvibe/mcp-installer/internal/token"
)

var (
	_ OperationsBuilder = (*BaseCmd)(nil)
	_ SearcherBuilder   = (*BaseCmd)(nil)
)

// OperationsBuilder creates the installer workflows for the given settings.
type OperationsBuilder interface {
	BuildOperations(settings *config.Settings) (installer.Operations, error)
}

// SearcherBuilder creates a repository searcher, resolving the GitHub token from the environment or store.
type SearcherBuilder interface {
	BuildSearcher(settings *config.Settings, store token.Store) (search.Searcher, error)
}

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Stdout carries MCP traffic when serving over stdio, so nothing is logged unless a file is given.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   AppName,
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// LoadSettings loads the settings file named by the global flags and applies the base directory override.
func (c *BaseCmd) LoadSettings(loader config.Loader) (*config.Settings, error) {
	settings, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	return settings.WithBaseDir(flags.BaseDir), nil
}

// BuildOperations creates an installer.Manager for the settings.
func (c *BaseCmd) BuildOperations(settings *config.Settings) (installer.Operations, error) {
	deps, err := installer.NewDependencies(c.Logger(), settings)
	if err != nil {
		return nil, err
	}

	return installer.New(deps)
}

// BuildSearcher creates a GitHub searcher using the settings' default languages.
func (c *BaseCmd) BuildSearcher(settings *config.Settings, store token.Store) (search.Searcher, error) {
	tok, err := token.Resolve(store)
	if err != nil {
		return nil, err
	}

	return search.NewGitHubSearcher(
		c.Logger(),
		tok,
		search.WithDefaultLanguages(settings.Search.Languages),
	)
}
