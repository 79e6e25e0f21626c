package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

var _ output.Printer[installer.Result] = (*InstallPrinter)(nil)

// installDetails is the summary block shown below the written config.
type installDetails struct {
	ServerName       string `json:"server_name"`
	Command          string `json:"command"`
	StartupArgs      string `json:"startup_args"`
	InstallationPath string `json:"installation_path"`
	ServerType       string `json:"server_type"`
}

// InstallPrinter renders the outcome of an install.
type InstallPrinter struct {
	headerFunc output.WriteFunc[installer.Result]
	footerFunc output.WriteFunc[installer.Result]
}

func (p *InstallPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *InstallPrinter) SetHeader(fn output.WriteFunc[installer.Result]) {
	p.headerFunc = fn
}

func (p *InstallPrinter) Item(w io.Writer, r installer.Result) error {
	return writeInstall(
		w,
		r,
		fmt.Sprintf("The MCP server %s has been successfully installed!", r.Name),
		"Updated server config:",
	)
}

func (p *InstallPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *InstallPrinter) SetFooter(fn output.WriteFunc[installer.Result]) {
	p.footerFunc = fn
}

// writeInstall prints an install result under the given title.
// Results that changed nothing only print their message.
func writeInstall(w io.Writer, r installer.Result, title string, configLabel string) error {
	if r.Status == installer.StatusAlreadyInstalled {
		_, _ = fmt.Fprintln(w, r.Message)
		return nil
	}

	cfg, err := json.MarshalIndent(r.Config, "", "  ")
	if err != nil {
		return fmt.Errorf("error rendering server config: %w", err)
	}

	entry, _ := r.Entry()
	details, err := json.MarshalIndent(installDetails{
		ServerName:       r.Name,
		Command:          entry.Command,
		StartupArgs:      strings.Join(entry.Args, " "),
		InstallationPath: r.Dir,
		ServerType:       r.ProjectType.String(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("error rendering installation details: %w", err)
	}

	_, _ = fmt.Fprintln(w, title)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, configLabel)
	_, _ = fmt.Fprintln(w, string(cfg))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Installation Details:")
	_, _ = fmt.Fprintln(w, string(details))

	if len(r.UpdatedConfigs) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Client configs updated:")
		for _, path := range r.UpdatedConfigs {
			_, _ = fmt.Fprintf(w, "  %s\n", path)
		}
	}

	if len(r.EnvVars) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Environment variables mentioned in the README (review before use):")
		for _, k := range slices.Sorted(maps.Keys(r.EnvVars)) {
			_, _ = fmt.Fprintf(w, "  %s=%s\n", k, r.EnvVars[k])
		}
	}

	return nil
}
