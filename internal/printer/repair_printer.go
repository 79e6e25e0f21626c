package printer

import (
	"fmt"
	"io"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

var _ output.Printer[installer.RepairResult] = (*RepairPrinter)(nil)

// RepairPrinter renders both phases of a repair.
type RepairPrinter struct {
	headerFunc output.WriteFunc[installer.RepairResult]
	footerFunc output.WriteFunc[installer.RepairResult]
	uninstall  UninstallPrinter
}

func (p *RepairPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *RepairPrinter) SetHeader(fn output.WriteFunc[installer.RepairResult]) {
	p.headerFunc = fn
}

func (p *RepairPrinter) Item(w io.Writer, r installer.RepairResult) error {
	_, _ = fmt.Fprintf(w, "Repair process for keyword '%s' using URL '%s':\n\n", r.Keyword, r.RepoURL)

	_, _ = fmt.Fprint(w, "--- Uninstall Phase ---\n\n")
	if err := p.uninstall.Item(w, r.Uninstall); err != nil {
		return err
	}

	_, _ = fmt.Fprint(w, "\n--- Reinstall Phase ---\n\n")

	if !r.Reinstalled() {
		_, _ = fmt.Fprintf(w, "Skipped: uninstall phase ended with status '%s'.\n", r.Uninstall.Status)
		return nil
	}

	return writeInstall(
		w,
		r.Install,
		fmt.Sprintf("Reinstallation of %s successful!", r.Install.Name),
		"New server config:",
	)
}

func (p *RepairPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *RepairPrinter) SetFooter(fn output.WriteFunc[installer.RepairResult]) {
	p.footerFunc = fn
}
