package printer

import (
	"errors"

	"github.com/jedib0t/go-pretty/v6/table"
)

var errTableNotStarted = errors.New("table printer: Item called before Header")

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}
