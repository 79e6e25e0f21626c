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

// UninstallCmd represents the 'uninstall' command.
// NOTE: Use NewUninstallCmd to create an UninstallCmd.
type UninstallCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	opsBuilder cmd.OperationsBuilder
	printer    output.Printer[installer.UninstallResult]
	format     cmd.OutputFormat
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &UninstallCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		opsBuilder: opts.OperationsBuilder,
		printer:    &printer.UninstallPrinter{},
		format:     cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "uninstall <server-name>",
		Short: "Removes an installed MCP server and its client config entries",
		Long: `Removes an installed MCP server.

The name is matched case-insensitively against the directories in the base directory, partial names are
accepted. When more than one directory matches nothing is removed and the candidates are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	addFormatFlag(cobraCommand, &c.format)

	return cobraCommand, nil
}

func (c *UninstallCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	result, err := ops.Uninstall(cobraCmd.Context(), args[0])
	if err != nil {
		return handleFailure(handler, fmt.Errorf("uninstall failed: %w", err))
	}

	if err := handler.HandleResult(result); err != nil {
		return err
	}

	switch result.Status {
	case installer.UninstallStatusUninstalled:
		return nil
	case installer.UninstallStatusPartial:
		return fmt.Errorf("%w: directory %s could not be removed", ErrReported, result.Dir)
	default:
		return fmt.Errorf("%w: nothing was uninstalled", ErrReported)
	}
}
