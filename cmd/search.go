package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/printer"
	"github.com/flowvibe/mcp-installer/internal/search"
	"github.com/flowvibe/mcp-installer/internal/token"
)

// SearchCmd represents the 'search' command.
// NOTE: Use NewSearchCmd to create a SearchCmd.
type SearchCmd struct {
	*cmd.BaseCmd
	cfgLoader       config.Loader
	searcherBuilder cmd.SearcherBuilder
	tokenStore      token.Store
	printer         output.Printer[search.Repository]
	format          cmd.OutputFormat
	languages       []string
}

// NewSearchCmd creates the search command.
func NewSearchCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	p := &printer.RepositoryTablePrinter{}
	p.SetHeader(func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "Found %d repositories:\n", count)
	})

	c := &SearchCmd{
		BaseCmd:         baseCmd,
		cfgLoader:       opts.ConfigLoader,
		searcherBuilder: opts.SearcherBuilder,
		tokenStore:      opts.TokenStore,
		printer:         p,
		format:          cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "search <query>",
		Short: "Searches GitHub for MCP server repositories",
		Long: fmt.Sprintf(`Searches GitHub for MCP server repositories, most starred first.

A GitHub token is required, read from the %s environment variable or from the OS keychain
(see 'mcp-installer token set').`, token.EnvVarGitHubToken),
		Example: `  mcp-installer search weather
  mcp-installer search "slack mcp" --langcode py --langcode go
  mcp-installer search browser --langcode ts,js`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cobraCommand.Flags().StringSliceVar(
		&c.languages,
		"langcode",
		nil,
		"Filter by language code or name, e.g. ts, js, py, go (can be repeated; defaults to the settings file)",
	)

	addFormatFlag(cobraCommand, &c.format)

	return cobraCommand, nil
}

func (c *SearchCmd) run(cobraCmd *cobra.Command, args []string) error {
	handler, err := cmd.FormatHandler(cobraCmd.OutOrStdout(), c.format, c.printer)
	if err != nil {
		return err
	}

	settings, err := c.LoadSettings(c.cfgLoader)
	if err != nil {
		return handleFailure(handler, err)
	}

	searcher, err := c.searcherBuilder.BuildSearcher(settings, c.tokenStore)
	if err != nil {
		return handleFailure(handler, err)
	}

	repos, err := searcher.Search(cobraCmd.Context(), args[0], c.languages)
	if err != nil {
		return handleFailure(handler, err)
	}

	return handler.HandleResults(repos...)
}
