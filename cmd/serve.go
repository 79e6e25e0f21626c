package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/mcpserver"
	"github.com/flowvibe/mcp-installer/internal/search"
	"github.com/flowvibe/mcp-installer/internal/token"
)

// ServeCmd represents the 'serve' command.
// NOTE: Use NewServeCmd to create a ServeCmd.
type ServeCmd struct {
	*cmd.BaseCmd
	cfgLoader       config.Loader
	opsBuilder      cmd.OperationsBuilder
	searcherBuilder cmd.SearcherBuilder
	tokenStore      token.Store

	// httpAddr selects the streamable HTTP transport when set, stdio otherwise.
	httpAddr    string
	corsOrigins []string
}

// NewServeCmd creates the serve command.
func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ServeCmd{
		BaseCmd:         baseCmd,
		cfgLoader:       opts.ConfigLoader,
		opsBuilder:      opts.OperationsBuilder,
		searcherBuilder: opts.SearcherBuilder,
		tokenStore:      opts.TokenStore,
	}

	cobraCommand := &cobra.Command{
		Use:   "serve",
		Short: "Runs the installer as an MCP server",
		Long: fmt.Sprintf(`Runs the installer as an MCP server exposing the tools %s, %s, %s, %s and %s.

By default MCP is spoken over stdin/stdout, which is how MCP clients launch local servers.
With --http-addr the streamable HTTP transport is served on /mcp instead, with a /health liveness check.`,
			mcpserver.ToolInstall,
			mcpserver.ToolUninstall,
			mcpserver.ToolRepair,
			mcpserver.ToolSearch,
			mcpserver.ToolList,
		),
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.httpAddr,
		"http-addr",
		"",
		"Serve streamable HTTP on this address (e.g. localhost:8090) instead of stdio",
	)

	cobraCommand.Flags().StringSliceVar(
		&c.corsOrigins,
		"cors-origin",
		nil,
		"Allowed CORS origin for the HTTP transport (can be repeated, '*' allows any)",
	)

	return cobraCommand, nil
}

func (c *ServeCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	if len(c.corsOrigins) > 0 && strings.TrimSpace(c.httpAddr) == "" {
		return fmt.Errorf("--cors-origin requires --http-addr")
	}

	srv, err := c.buildServer()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		cobraCmd.Context(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if addr := strings.TrimSpace(c.httpAddr); addr != "" {
		err = srv.Serve(ctx, addr)
	} else {
		err = srv.ServeStdio(ctx, cobraCmd.InOrStdin(), cobraCmd.OutOrStdout())
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server stopped", "error", err)
		return err
	}

	return nil
}

func (c *ServeCmd) buildServer() (*mcpserver.Server, error) {
	settings, err := c.LoadSettings(c.cfgLoader)
	if err != nil {
		return nil, err
	}

	ops, err := c.opsBuilder.BuildOperations(settings)
	if err != nil {
		return nil, err
	}

	searchers := func() (search.Searcher, error) {
		return c.searcherBuilder.BuildSearcher(settings, c.tokenStore)
	}

	deps, err := mcpserver.NewDependencies(c.Logger(), ops, searchers)
	if err != nil {
		return nil, err
	}

	return mcpserver.New(
		deps,
		mcpserver.WithName(cmd.AppName),
		mcpserver.WithVersion(cmd.Version()),
		mcpserver.WithCORSAllowOrigins(c.corsOrigins),
	)
}
