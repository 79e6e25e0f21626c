// Package errors defines domain-level errors used throughout the application.
// These errors represent workflow failures and are mapped to MCP error codes at the tool boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be reported when returned from an MCP tool.
//
// Unmapped errors will default to the internal error code (-32603).
//
// Don't forget to:
// 1. Add your error to codeFor (internal/mcpserver/errors.go)
// 2. Add a test case to TestCodeFor (internal/mcpserver/errors_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the caller provided invalid input, e.g. a missing or empty argument.
	// Recommended to map to -32600 Invalid Request.
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidURL indicates that a repository or package URL could not be parsed into an install source.
	// Recommended to map to -32600 Invalid Request.
	ErrInvalidURL = errors.New("invalid repository URL")

	// ErrNoRuntime indicates that neither Node.js nor uv is available on the machine.
	// Nothing can be installed without at least one of them.
	// Recommended to map to -32603 Internal Error.
	ErrNoRuntime = errors.New("no supported runtime found (install Node.js or uv)")

	// ErrEntryPointNotFound indicates that a server was fetched and built, but no startup file could be resolved.
	// Recommended to map to -32603 Internal Error.
	ErrEntryPointNotFound = errors.New("entry point not found")

	// ErrDependencyInstallFailed indicates that installing Python dependencies failed.
	// Node dependency failures are soft and never surface as this error.
	// Recommended to map to -32603 Internal Error.
	ErrDependencyInstallFailed = errors.New("dependency installation failed")

	// ErrFetchFailed indicates that cloning a repository or downloading a package failed.
	// Recommended to map to -32603 Internal Error.
	ErrFetchFailed = errors.New("fetching server source failed")

	// ErrServerNotFound indicates that no installed server directory matches the requested name.
	// Uninstall reports this as a message, repair without a URL returns it as an error.
	// Recommended to map to -32600 Invalid Request.
	ErrServerNotFound = errors.New("server not found")

	// ErrSourceUnknown indicates that the original source of an installed server could not be recovered.
	// Recommended to map to -32600 Invalid Request.
	ErrSourceUnknown = errors.New("server source could not be determined")

	// ErrTokenRequired indicates that a GitHub token is needed but none was configured.
	// Recommended to map to -32600 Invalid Request.
	ErrTokenRequired = errors.New("GitHub token is required (set GITHUB_TOKEN or run 'mcp-installer token set')")

	// ErrSearchFailed indicates that the GitHub repository search request failed.
	// Recommended to map to -32603 Internal Error.
	ErrSearchFailed = errors.New("repository search failed")

	// ErrUnknownTool indicates that an MCP tool call named a tool that does not exist.
	// Recommended to map to -32601 Method Not Found.
	ErrUnknownTool = errors.New("unknown tool")
)
