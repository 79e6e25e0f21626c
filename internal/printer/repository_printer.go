package printer

import (
	"cmp"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/search"
)

var (
	_ output.Printer[search.Repository] = (*RepositoryPrinter)(nil)
	_ output.Printer[search.Repository] = (*RepositoryTablePrinter)(nil)
)

const (
	noDescription   = "No description available"
	unknownLanguage = "Unknown"
)

// RepositoryPrinter renders search hits as plain text blocks.
type RepositoryPrinter struct {
	headerFunc output.WriteFunc[search.Repository]
	footerFunc output.WriteFunc[search.Repository]
}

func NewRepositoryPrinter() *RepositoryPrinter {
	return &RepositoryPrinter{
		headerFunc: func(w io.Writer, count int) {
			_, _ = fmt.Fprintf(w, "Found %d repositories:\n\n", count)
		},
	}
}

func (p *RepositoryPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *RepositoryPrinter) SetHeader(fn output.WriteFunc[search.Repository]) {
	p.headerFunc = fn
}

func (p *RepositoryPrinter) Item(w io.Writer, repo search.Repository) error {
	_, _ = fmt.Fprintf(w, "Repository: %s\n", repo.Name)
	_, _ = fmt.Fprintf(w, "Description: %s\n", cmp.Or(repo.Description, noDescription))
	_, _ = fmt.Fprintf(w, "Language: %s\n", cmp.Or(repo.Language, unknownLanguage))
	_, _ = fmt.Fprintf(w, "Stars: %d\n", repo.Stars)
	_, _ = fmt.Fprintf(w, "Forks: %d\n", repo.Forks)
	_, _ = fmt.Fprintf(w, "URL: %s\n\n", repo.URL)

	return nil
}

func (p *RepositoryPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *RepositoryPrinter) SetFooter(fn output.WriteFunc[search.Repository]) {
	p.footerFunc = fn
}

// RepositoryTablePrinter renders search hits as a table.
// Rows are collected by Item and the table is written by Footer.
type RepositoryTablePrinter struct {
	headerFunc output.WriteFunc[search.Repository]
	footerFunc output.WriteFunc[search.Repository]
	table      table.Writer
}

func (p *RepositoryTablePrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}

	p.table = newTable()
	p.table.AppendHeader(table.Row{"Repository", "Language", "Stars", "Forks", "URL"})
}

func (p *RepositoryTablePrinter) SetHeader(fn output.WriteFunc[search.Repository]) {
	p.headerFunc = fn
}

func (p *RepositoryTablePrinter) Item(_ io.Writer, repo search.Repository) error {
	if p.table == nil {
		return errTableNotStarted
	}

	p.table.AppendRow(table.Row{
		repo.FullName,
		cmp.Or(repo.Language, unknownLanguage),
		repo.Stars,
		repo.Forks,
		repo.URL,
	})

	return nil
}

func (p *RepositoryTablePrinter) Footer(w io.Writer, count int) {
	if p.table != nil {
		_, _ = fmt.Fprintln(w, p.table.Render())
		p.table = nil
	}

	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *RepositoryTablePrinter) SetFooter(fn output.WriteFunc[search.Repository]) {
	p.footerFunc = fn
}
