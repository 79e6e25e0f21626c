package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/flags"
)

type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
	cfgLoader      config.Loader
}

func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
		cfgLoader:      opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates the mcp-installer settings file and base directory",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	return cobraCommand, nil
}

func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates the mcp-installer settings file populated with the platform defaults "+
			"(base directory, MCP client config files and default search languages), "+
			"then creates the base directory servers are installed into.\n\n"+
			"The settings file path can be overridden using the `--%s` flag or the `%s` environment variable",
		flags.FlagNameConfigFile,
		flags.EnvVarConfigFile,
	)
}

func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()
	out := cobraCmd.OutOrStdout()

	if _, err := fmt.Fprintf(out, "🚀 Initializing mcp-installer settings at: %s\n", flags.ConfigFile); err != nil {
		return err
	}

	if err := c.cfgInitializer.Init(flags.ConfigFile); err != nil {
		logger.Error("Settings initialization failed", "error", err)
		return fmt.Errorf("error initializing settings: %w", err)
	}

	if _, err := fmt.Fprintf(out, "✅ Settings file created: %s\n", flags.ConfigFile); err != nil {
		return err
	}

	settings, err := c.LoadSettings(c.cfgLoader)
	if err != nil {
		return err
	}

	if err := files.EnsureAtLeastRegularDir(settings.BaseDir); err != nil {
		logger.Error("Base directory creation failed", "path", settings.BaseDir, "error", err)
		return fmt.Errorf("error creating base directory: %w", err)
	}

	if _, err := fmt.Fprintf(out, "📁 Servers will be installed into: %s\n", settings.BaseDir); err != nil {
		return err
	}

	return nil
}
