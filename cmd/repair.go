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

// RepairCmd represents the 'repair' command.
// NOTE: Use NewRepairCmd to create a RepairCmd.
type RepairCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	opsBuilder cmd.OperationsBuilder
	printer    output.Printer[installer.RepairResult]
	format     cmd.OutputFormat
}

// NewRepairCmd creates the repair command.
func NewRepairCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &RepairCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		opsBuilder: opts.OperationsBuilder,
		printer:    &printer.RepairPrinter{},
		format:     cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "repair <server-keyword> [repo-url]",
		Short: "Reinstalls an MCP server by uninstalling it and installing it again",
		Long: `Reinstalls an MCP server by uninstalling it and installing it again.

When the repository URL is omitted it is recovered from the installed server: its git 'origin' remote,
its npm package name or the repository field of its package.json.`,
		Example: `  mcp-installer repair weather https://github.com/owner/weather-mcp
  mcp-installer repair brave`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.run,
	}

	addFormatFlag(cobraCommand, &c.format)

	return cobraCommand, nil
}

func (c *RepairCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	var repoURL string
	if len(args) > 1 {
		repoURL = args[1]
	}

	result, err := ops.Repair(cobraCmd.Context(), args[0], repoURL)
	if err != nil {
		c.Logger().Error("Repair failed", "keyword", args[0], "error", err)
		return handleFailure(handler, err)
	}

	if err := handler.HandleResult(result); err != nil {
		return err
	}

	if !result.Reinstalled() {
		return fmt.Errorf("%w: reinstall skipped, uninstall phase was %s", ErrReported, result.Uninstall.Status)
	}

	return nil
}
