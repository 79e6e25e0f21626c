package installer

import (
	"fmt"
	goruntime "runtime"

	"github.com/flowvibe/mcp-installer/internal/runner"
)

// Options contains optional configuration for the Manager.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Runner executes git, npm, node and uv. Defaults to an os/exec backed runner.
	Runner runner.Runner

	// GOOS selects platform specific commands (npm.cmd, the Windows build shell, directory removal).
	GOOS string
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		GOOS: goruntime.GOOS,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithRunner configures the subprocess runner.
func WithRunner(r runner.Runner) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("runner cannot be nil")
		}
		o.Runner = r
		return nil
	}
}

// WithGOOS configures the target operating system, e.g. 'windows'.
func WithGOOS(goos string) Option {
	return func(o *Options) error {
		if goos == "" {
			return fmt.Errorf("GOOS cannot be empty")
		}
		o.GOOS = goos
		return nil
	}
}
