package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/token"
)

// TokenCmd represents the 'token' command group.
type TokenCmd struct {
	*cmd.BaseCmd
	store token.Store
}

// NewTokenCmd creates the token command and its set and clear subcommands.
func NewTokenCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &TokenCmd{
		BaseCmd: baseCmd,
		store:   opts.TokenStore,
	}

	cobraCommand := &cobra.Command{
		Use:   "token",
		Short: "Manages the GitHub token used by search",
		Long: fmt.Sprintf(`Manages the GitHub token used by search, stored in the OS keychain.

The %s environment variable takes precedence over the stored token.`, token.EnvVarGitHubToken),
	}

	cobraCommand.AddCommand(&cobra.Command{
		Use:   "set [token]",
		Short: "Stores a GitHub token in the OS keychain (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runSet,
	})

	cobraCommand.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Removes the stored GitHub token",
		Args:  cobra.NoArgs,
		RunE:  c.runClear,
	})

	return cobraCommand, nil
}

func (c *TokenCmd) runSet(cobraCmd *cobra.Command, args []string) error {
	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		line, err := bufio.NewReader(cobraCmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("error reading token from stdin: %w", err)
		}
		value = line
	}

	if err := c.store.Set(strings.TrimSpace(value)); err != nil {
		c.Logger().Error("Storing token failed", "error", err)
		return err
	}

	_, _ = fmt.Fprintln(cobraCmd.OutOrStdout(), "✓ GitHub token stored in the OS keychain")

	return nil
}

func (c *TokenCmd) runClear(cobraCmd *cobra.Command, _ []string) error {
	err := c.store.Delete()
	switch {
	case errors.Is(err, token.ErrNotFound):
		_, _ = fmt.Fprintln(cobraCmd.OutOrStdout(), "No GitHub token is stored")
		return nil
	case err != nil:
		return err
	}

	_, _ = fmt.Fprintln(cobraCmd.OutOrStdout(), "✓ GitHub token removed from the OS keychain")

	return nil
}
