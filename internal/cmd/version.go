package cmd

// AppName is the binary name, also used for the root logger and the MCP server name.
const AppName = "mcp-installer"

var version = "dev" // Set at build time using -ldflags

// Version returns the build version.
func Version() string {
	return version
}
