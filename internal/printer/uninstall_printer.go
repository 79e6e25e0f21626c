package printer

import (
	"fmt"
	"io"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

var _ output.Printer[installer.UninstallResult] = (*UninstallPrinter)(nil)

// UninstallPrinter renders the outcome of an uninstall.
type UninstallPrinter struct {
	headerFunc output.WriteFunc[installer.UninstallResult]
	footerFunc output.WriteFunc[installer.UninstallResult]
}

func (p *UninstallPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *UninstallPrinter) SetHeader(fn output.WriteFunc[installer.UninstallResult]) {
	p.headerFunc = fn
}

func (p *UninstallPrinter) Item(w io.Writer, r installer.UninstallResult) error {
	switch r.Status {
	case installer.UninstallStatusUninstalled:
		_, _ = fmt.Fprintf(w, "Server '%s' has been completely uninstalled:\n", r.Name)
		_, _ = fmt.Fprintln(w, "✓ Removed from configuration file")
		_, _ = fmt.Fprintf(w, "✓ Removed directory: %s\n", r.Dir)
	case installer.UninstallStatusPartial:
		_, _ = fmt.Fprintf(w, "Partial uninstall of server '%s':\n", r.Name)
		_, _ = fmt.Fprintln(w, "✓ Removed from configuration file")
		_, _ = fmt.Fprintf(w, "✗ Could not remove directory: %s\n", r.RemoveError)
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "Please try manually deleting the directory: %s\n", r.Dir)
	case installer.UninstallStatusNotFound:
		_, _ = fmt.Fprintf(w, "No server matching '%s' was found in %s\n", r.Name, r.BaseDir)
	case installer.UninstallStatusAmbiguous:
		_, _ = fmt.Fprintln(w, "Multiple matching servers found. Please specify which one to uninstall:")
		for _, c := range r.Candidates {
			_, _ = fmt.Fprintf(w, "- %s\n", c)
		}
	default:
		return fmt.Errorf("unknown uninstall status '%s'", r.Status)
	}

	return nil
}

func (p *UninstallPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *UninstallPrinter) SetFooter(fn output.WriteFunc[installer.UninstallResult]) {
	p.footerFunc = fn
}
