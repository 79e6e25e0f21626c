package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute builds the root command and runs it.
func Execute() error {
	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: &cmd.BaseCmd{}})
	if err != nil {
		return fmt.Errorf("error creating root command: %w", err)
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command with every subcommand attached.
// Options are forwarded to each subcommand.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           cmd.AppName + " <command> [args]",
		Short:         "Installs, repairs and removes MCP servers from GitHub repositories",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	if err := flags.InitFlags(rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error initializing global flags: %w", err)
	}

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewInstallCmd,
		NewUninstallCmd,
		NewRepairCmd,
		NewSearchCmd,
		NewListCmd,
		NewServeCmd,
		NewTokenCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'mcp-installer' CLI fetches MCP server repositories from GitHub, detects how to run them,
installs their dependencies and registers them in the config files of MCP clients
(Claude Desktop, Cursor, Windsurf and others).

Every operation is also available to MCP clients through 'mcp-installer serve'.`
}
