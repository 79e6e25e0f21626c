package mcpserver

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Options contains optional configuration for the MCP server.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Name is reported to clients during initialization.
	Name string

	// Version is reported to clients during initialization.
	Version string

	// CORS configuration for the HTTP transport.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for the HTTP transport to shut down.
	ShutdownTimeout time.Duration
}

// CORSConfig defines Cross-Origin Resource Sharing settings for the HTTP transport.
type CORSConfig struct {
	// Enabled determines whether CORS headers are added to responses.
	Enabled bool

	// AllowCredentials indicates whether the request can include credentials.
	// Forced to false when AllowOrigins contains "*".
	AllowCredentials bool

	AllowedHeaders []string

	// AllowMethods uses strings to match the go-chi/cors API.
	AllowMethods []string

	// AllowOrigins specifies which origins can reach the server. Use ["*"] to allow all.
	AllowOrigins []string

	ExposedHeaders []string

	// MaxAge specifies how long browsers can cache preflight responses.
	MaxAge time.Duration
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options with defaults, then applies opts in order.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		Name:    DefaultName,
		Version: "dev",
		CORS: CORSConfig{
			AllowMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         5 * time.Minute,
		},
		ShutdownTimeout: 5 * time.Second,
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

// WithName sets the server name reported to clients.
func WithName(name string) Option {
	return func(o *Options) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("server name cannot be empty")
		}
		o.Name = name
		return nil
	}
}

// WithVersion sets the server version reported to clients.
func WithVersion(version string) Option {
	return func(o *Options) error {
		o.Version = version
		return nil
	}
}

// WithCORSAllowOrigins enables CORS for the given origins. No origins disables CORS.
func WithCORSAllowOrigins(origins []string) Option {
	return func(o *Options) error {
		o.CORS.Enabled = len(origins) > 0
		o.CORS.AllowOrigins = origins
		return nil
	}
}

// WithCORSAllowCredentials sets whether credentials are allowed in CORS requests.
func WithCORSAllowCredentials(allowed bool) Option {
	return func(o *Options) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	return nil
}
