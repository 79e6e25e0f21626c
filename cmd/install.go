package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/printer"
)

// InstallCmd represents the 'install' command.
// NOTE: Use NewInstallCmd to create an InstallCmd.
type InstallCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	opsBuilder cmd.OperationsBuilder
	printer    output.Printer[installer.Result]
	format     cmd.OutputFormat
}

// NewInstallCmd creates the install command.
func NewInstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InstallCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		opsBuilder: opts.OperationsBuilder,
		printer:    &printer.InstallPrinter{},
		format:     cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "install <repo-url>",
		Short: "Installs an MCP server from GitHub or npm and adds it to your MCP clients",
		Long: `Installs an MCP server from a GitHub repository, a subdirectory of a GitHub monorepo or an npm package.

The server is fetched into the base directory, its dependencies are installed, it is built when it
has a build script, and its launch command is written to every configured MCP client file.`,
		Example: `  mcp-installer install https://github.com/overstarry/qweather-mcp
  mcp-installer install owner/repo
  mcp-installer install https://github.com/modelcontextprotocol/servers/tree/main/src/brave-search
  mcp-installer install https://www.npmjs.com/package/@modelcontextprotocol/server-filesystem`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	addFormatFlag(cobraCommand, &c.format)

	return cobraCommand, nil
}

func (c *InstallCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := cmd.FormatHandler(cobraCmd.OutOrStdout(), c.format, c.printer)
	if err != nil {
		return err
	}

	settings, err := c.LoadSettings(c.cfgLoader)
	if err != nil {
		return handleFailure(handler, err)
	}

	ops, err := c.opsBuilder.BuildOperations(settings)
	if err != nil {
		return handleFailure(handler, err)
	}

	result, err := ops.Install(cobraCmd.Context(), args[0])
	if err != nil {
		c.Logger().Error("Install failed", "source", args[0], "error", err)
		return handleFailure(handler, fmt.Errorf("installation failed: %w", err))
	}

	return handler.HandleResult(result)
}

// addFormatFlag registers the --format flag.
func addFormatFlag(cobraCmd *cobra.Command, format *cmd.OutputFormat) {
	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)
}
