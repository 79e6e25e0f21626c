package mcpserver

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/search"
)

// SearcherFunc builds a Searcher on demand, so a token stored after start-up is picked up by the next search.
type SearcherFunc func() (search.Searcher, error)

// Dependencies contains the required external dependencies for the MCP server.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// Logger for tool calls and transports.
	Logger hclog.Logger

	// Operations runs install, uninstall, repair and list.
	Operations installer.Operations

	// Searchers provides the repository searcher for search calls.
	Searchers SearcherFunc
}

// NewDependencies creates and validates Dependencies.
func NewDependencies(logger hclog.Logger, ops installer.Operations, searchers SearcherFunc) (Dependencies, error) {
	deps := Dependencies{
		Logger:     logger,
		Operations: ops,
		Searchers:  searchers,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if d.Operations == nil || reflect.ValueOf(d.Operations).IsNil() {
		return fmt.Errorf("operations cannot be nil")
	}
	if d.Searchers == nil {
		return fmt.Errorf("searcher provider cannot be nil")
	}
	return nil
}
