// Package mcpserver exposes the installer operations as MCP tools over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/semaphore"

	"github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

// DefaultName is the server name reported to clients.
const DefaultName = "mcp-installer"

// Server serves the installer tools.
// New should be used to create instances of Server.
type Server struct {
	logger    hclog.Logger
	ops       installer.Operations
	searchers SearcherFunc
	opts      Options

	mcp   *server.MCPServer
	tools map[string]*tool

	// sem allows a single operation at a time, tool calls may arrive concurrently.
	sem *semaphore.Weighted
}

// New creates a Server with every tool registered.
func New(deps Dependencies, opt ...Option) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for MCP server: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid MCP server options: %w", err)
	}

	s := &Server{
		logger:    deps.Logger.Named("mcp"),
		ops:       deps.Operations,
		searchers: deps.Searchers,
		opts:      opts,
		tools:     map[string]*tool{},
		sem:       semaphore.NewWeighted(1),
	}

	s.mcp = server.NewMCPServer(
		opts.Name,
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// ServeStdio serves MCP over in and out until ctx is canceled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.Named("stdio").StandardLogger(&hclog.StandardLoggerOptions{
		ForceLevel: hclog.Error,
	}))

	s.logger.Info("Serving MCP over stdio", "tools", len(s.tools))

	return stdio.Listen(ctx, in, out)
}

// Handler returns the HTTP handler for the streamable HTTP transport.
// MCP is served on /mcp and a liveness check on /health.
func (s *Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if s.opts.CORS.Enabled {
		s.applyCORS(mux)
	}

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcp))

	return mux
}

// Serve serves the streamable HTTP transport on addr and blocks until ctx is canceled or an error occurs.
func (s *Server) Serve(ctx context.Context, addr string) error {
	if err := validateAddr(addr); err != nil {
		return fmt.Errorf("invalid HTTP address '%s': %w", addr, err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Serving MCP over HTTP", "address", addr, "path", "/mcp")
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP transport...")
		_ = srv.Shutdown(shutdownCtx)
		s.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Call runs the named tool. It is the single handler registered for every tool.
func (s *Server) Call(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.Params.Name
	t, ok := s.tools[name]
	if !ok {
		return errorResult(s.logger, fmt.Errorf("%w: %s", errors.ErrUnknownTool, name)), nil
	}

	args := request.GetArguments()
	if args == nil {
		args = map[string]any{}
	}

	if err := t.validate(args); err != nil {
		return errorResult(s.logger, err), nil
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return errorResult(s.logger, err), nil
	}
	defer s.sem.Release(1)

	s.logger.Debug("Calling tool", "tool", name)

	text, err := t.run(ctx, args)
	if err != nil {
		return errorResult(s.logger, err), nil
	}

	return mcp.NewToolResultText(text), nil
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (s *Server) applyCORS(mux *chi.Mux) {
	s.logger.Info("Enabling CORS", "origins", s.opts.CORS.AllowOrigins)

	corsOptions := cors.Options{
		AllowedOrigins:   s.opts.CORS.AllowOrigins,
		AllowedMethods:   s.opts.CORS.AllowMethods,
		AllowedHeaders:   s.opts.CORS.AllowedHeaders,
		ExposedHeaders:   s.opts.CORS.ExposedHeaders,
		AllowCredentials: s.opts.CORS.AllowCredentials,
		MaxAge:           int(s.opts.CORS.MaxAge.Seconds()),
	}

	// Handle wildcard origins properly.
	for i, origin := range corsOptions.AllowedOrigins {
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	mux.Use(cors.Handler(corsOptions))
}
