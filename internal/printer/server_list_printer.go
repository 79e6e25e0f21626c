package printer

import (
	"cmp"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/installer"
)

var _ output.Printer[installer.InstalledServer] = (*ServerListPrinter)(nil)

// ServerListPrinter renders installed servers as a table.
type ServerListPrinter struct {
	headerFunc output.WriteFunc[installer.InstalledServer]
	footerFunc output.WriteFunc[installer.InstalledServer]
	table      table.Writer
}

func NewServerListPrinter() *ServerListPrinter {
	return &ServerListPrinter{
		footerFunc: func(w io.Writer, count int) {
			_, _ = fmt.Fprintf(w, "%d server%s installed\n", count, map[bool]string{true: "s"}[count != 1])
		},
	}
}

func (p *ServerListPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}

	p.table = newTable()
	p.table.AppendHeader(table.Row{"Name", "Type", "Entry Point", "Configured"})
}

func (p *ServerListPrinter) SetHeader(fn output.WriteFunc[installer.InstalledServer]) {
	p.headerFunc = fn
}

func (p *ServerListPrinter) Item(_ io.Writer, s installer.InstalledServer) error {
	if p.table == nil {
		return errTableNotStarted
	}

	configured := "no"
	if s.Configured {
		configured = "yes"
	}

	p.table.AppendRow(table.Row{
		s.Name,
		s.ProjectType.String(),
		cmp.Or(s.EntryPoint, "-"),
		configured,
	})

	return nil
}

func (p *ServerListPrinter) Footer(w io.Writer, count int) {
	if p.table != nil {
		_, _ = fmt.Fprintln(w, p.table.Render())
		p.table = nil
	}

	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ServerListPrinter) SetFooter(fn output.WriteFunc[installer.InstalledServer]) {
	p.footerFunc = fn
}
