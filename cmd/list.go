package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/printer"
)

// ListCmd represents the 'list' command.
// NOTE: Use NewListCmd to create a ListCmd.
type ListCmd struct {
	*cmd.BaseCmd
	cfgLoader  config.Loader
	opsBuilder cmd.OperationsBuilder
	printer    output.Printer[installer.InstalledServer]
	format     cmd.OutputFormat
}

// NewListCmd creates the list command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:    baseCmd,
		cfgLoader:  opts.ConfigLoader,
		opsBuilder: opts.OperationsBuilder,
		printer:    printer.NewServerListPrinter(),
		format:     cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the MCP servers installed in the base directory",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	addFormatFlag(cobraCommand, &c.format)

	return cobraCommand, nil
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
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

	servers, err := ops.List(cobraCmd.Context())
	if err != nil {
		return handleFailure(handler, err)
	}

	return handler.HandleResults(servers...)
}
