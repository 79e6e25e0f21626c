package config

var (
	_ Provider = (*DefaultLoader)(nil)
)

type Loader interface {
	Load(path string) (*Settings, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

// DefaultLoader reads settings from a TOML file, falling back to platform defaults.
type DefaultLoader struct{}

// Settings represents the config.toml file structure, merged with platform defaults.
// It is the single configuration object passed to the installer, the searcher and the MCP server.
type Settings struct {
	// BaseDir is the directory servers are installed into.
	// It also holds the base client config file (mcp_configs.json).
	BaseDir string `toml:"base_dir"`

	// Clients lists the client config files that receive server entries.
	Clients []Client `toml:"clients"`

	// Search configures the GitHub repository search.
	Search SearchSettings `toml:"search"`

	configFilePath string `toml:"-"`
}

// Client is a single MCP client config file location.
type Client struct {
	// Name identifies the client, e.g. 'claude' or 'cline-vscode'.
	Name string `toml:"name"`

	// Path is the absolute path to the client's JSON config file.
	Path string `toml:"path"`

	// Base marks the designated base files, which install creates if missing and uninstall never prunes.
	Base bool `toml:"base,omitempty"`
}

// SearchSettings holds defaults for the 'search' operation.
type SearchSettings struct {
	// Languages filters results when the caller does not supply a language filter.
	Languages []string `toml:"languages"`
}
