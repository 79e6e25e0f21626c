package installer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/config"
)

// Dependencies contains required dependencies for the Manager.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// Logger for install, uninstall and repair operations.
	Logger hclog.Logger

	// Settings provide the base directory and the client config files.
	Settings *config.Settings
}

// NewDependencies creates validated Dependencies.
func NewDependencies(logger hclog.Logger, settings *config.Settings) (Dependencies, error) {
	deps := Dependencies{
		Logger:   logger,
		Settings: settings,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}

	if d.Settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	if strings.TrimSpace(d.Settings.BaseDir) == "" {
		return fmt.Errorf("base directory cannot be empty")
	}

	return nil
}
