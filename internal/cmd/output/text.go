package output

import (
	"io"
)

// TextHandler renders results for humans using a Printer.
// Errors are handed back to the caller so Cobra can report them.
type TextHandler[T any] struct {
	out     io.Writer
	printer Printer[T]
}

func NewTextHandler[T any](w io.Writer, p Printer[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:     w,
		printer: p,
	}
}

// Writer returns the underlying io.Writer where text will be written.
func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

func (h *TextHandler[T]) HandleResult(item T) error {
	return Render(h.out, h.printer, item)
}

func (h *TextHandler[T]) HandleResults(items ...T) error {
	if len(items) == 0 {
		_, _ = io.WriteString(h.out, "No items found\n")
		return nil
	}

	return Render(h.out, h.printer, items...)
}

func (h *TextHandler[T]) HandleError(err error) error {
	return err
}

// Render writes the header, every item and the footer of p to w.
func Render[T any](w io.Writer, p Printer[T], items ...T) error {
	p.Header(w, len(items))

	for _, it := range items {
		if err := p.Item(w, it); err != nil {
			return err
		}
	}

	p.Footer(w, len(items))

	return nil
}
