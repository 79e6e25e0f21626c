package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/printer"
	"github.com/flowvibe/mcp-installer/internal/search"
)

// Tool names.
const (
	ToolInstall   = "install_mcp_server"
	ToolUninstall = "uninstall_mcp_server"
	ToolRepair    = "repair_mcp_server"
	ToolSearch    = "search_mcp_server"
	ToolList      = "list_mcp_servers"
)

// tool is a registered tool with its compiled argument schema.
type tool struct {
	def    mcp.Tool
	schema *gojsonschema.Schema
	run    func(ctx context.Context, args map[string]any) (string, error)
}

// validate checks args against the tool's input schema.
func (t *tool) validate(args map[string]any) error {
	result, err := t.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("%w: arguments for %s could not be validated: %w", errors.ErrBadRequest, t.def.Name, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}

	return fmt.Errorf("%w: invalid arguments for %s: %s", errors.ErrBadRequest, t.def.Name, strings.Join(problems, "; "))
}

func stringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"minLength":   1,
		"description": description,
	}
}

func (s *Server) registerTools() error {
	defs := []struct {
		tool mcp.Tool
		run  func(ctx context.Context, args map[string]any) (string, error)
	}{
		{
			tool: mcp.Tool{
				Name: ToolInstall,
				Description: "Install a new MCP server from a GitHub repository URL " +
					"(e.g. https://github.com/overstarry/qweather-mcp), a monorepo subdirectory " +
					"(e.g. https://github.com/modelcontextprotocol/servers/tree/main/src/brave-search) or an npm package.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"repo_url": stringProperty("GitHub URL, shorthand (owner/repo), or npm URL (https://www.npmjs.com/package/@modelcontextprotocol/server-name)"),
					},
					Required: []string{"repo_url"},
				},
			},
			run: s.install,
		},
		{
			tool: mcp.Tool{
				Name:        ToolUninstall,
				Description: "Uninstall an MCP server, removing it from client configs and deleting its directory.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"server_name": stringProperty("Name of the server to uninstall (case-insensitive, partial match)"),
					},
					Required: []string{"server_name"},
				},
			},
			run: s.uninstall,
		},
		{
			tool: mcp.Tool{
				Name: ToolRepair,
				Description: "Repair an MCP server by uninstalling and reinstalling it. " +
					"Requires the keyword to find the server and the original installation URL.",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"server_keyword": stringProperty("Keyword or name to find the server to repair (case-insensitive, partial match)"),
						"repo_url":       stringProperty("The original GitHub URL or npm URL used to install the server"),
					},
					Required: []string{"server_keyword", "repo_url"},
				},
			},
			run: s.repair,
		},
		{
			tool: mcp.Tool{
				Name:        ToolSearch,
				Description: "Search for MCP servers on GitHub. Requires a GitHub token (GITHUB_TOKEN or the OS keychain).",
				InputSchema: mcp.ToolInputSchema{
					Type: "object",
					Properties: map[string]any{
						"query": stringProperty(`Search query for GitHub repositories (e.g. "mcp-server", "weather mcp")`),
						"languages": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Language codes or names to filter by (e.g. ts, py, go); defaults to TypeScript, JavaScript and HTML",
						},
					},
					Required: []string{"query"},
				},
			},
			run: s.search,
		},
		{
			tool: mcp.Tool{
				Name:        ToolList,
				Description: "List the MCP servers installed in the base directory.",
				InputSchema: mcp.ToolInputSchema{
					Type:       "object",
					Properties: map[string]any{},
				},
			},
			run: s.list,
		},
	}

	for _, d := range defs {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(d.tool.InputSchema))
		if err != nil {
			return fmt.Errorf("invalid input schema for %s: %w", d.tool.Name, err)
		}

		s.tools[d.tool.Name] = &tool{def: d.tool, schema: schema, run: d.run}
		s.mcp.AddTool(d.tool, s.Call)
	}

	return nil
}

func (s *Server) install(ctx context.Context, args map[string]any) (string, error) {
	result, err := s.ops.Install(ctx, stringArg(args, "repo_url"))
	if err != nil {
		return "", err
	}

	return render[installer.Result](&printer.InstallPrinter{}, result)
}

func (s *Server) uninstall(ctx context.Context, args map[string]any) (string, error) {
	result, err := s.ops.Uninstall(ctx, stringArg(args, "server_name"))
	if err != nil {
		return "", err
	}

	return render[installer.UninstallResult](&printer.UninstallPrinter{}, result)
}

func (s *Server) repair(ctx context.Context, args map[string]any) (string, error) {
	result, err := s.ops.Repair(ctx, stringArg(args, "server_keyword"), stringArg(args, "repo_url"))
	if err != nil {
		return "", err
	}

	return render[installer.RepairResult](&printer.RepairPrinter{}, result)
}

func (s *Server) search(ctx context.Context, args map[string]any) (string, error) {
	searcher, err := s.searchers()
	if err != nil {
		return "", err
	}

	repos, err := searcher.Search(ctx, stringArg(args, "query"), stringsArg(args, "languages"))
	if err != nil {
		return "", err
	}

	return render[search.Repository](printer.NewRepositoryPrinter(), repos...)
}

func (s *Server) list(ctx context.Context, _ map[string]any) (string, error) {
	servers, err := s.ops.List(ctx)
	if err != nil {
		return "", err
	}

	if len(servers) == 0 {
		return "No MCP servers are installed.", nil
	}

	return render[installer.InstalledServer](printer.NewServerListPrinter(), servers...)
}

// render prints items with p and returns the text without trailing newlines.
func render[T any](p output.Printer[T], items ...T) (string, error) {
	var sb strings.Builder
	if err := output.Render(&sb, p, items...); err != nil {
		return "", err
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func stringsArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
