package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLHandler renders installer results, server listings and failures as YAML documents.
// Results sit under a `result` or `results` key and failures under `error`, matching JSONHandler.
type YAMLHandler[T any] struct {
	out    io.Writer
	indent int
}

// NewYAMLHandler returns a YAMLHandler that nests mappings by indentSpaces.
func NewYAMLHandler[T any](w io.Writer, indentSpaces int) *YAMLHandler[T] {
	return &YAMLHandler[T]{
		out:    w,
		indent: indentSpaces,
	}
}

func (h *YAMLHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult writes a single install, uninstall or repair outcome.
func (h *YAMLHandler[T]) HandleResult(item T) error {
	return h.encode(ResultPayload[T]{Result: item})
}

// HandleResults writes a list such as search hits or installed servers.
func (h *YAMLHandler[T]) HandleResults(items ...T) error {
	return h.encode(ResultsPayload[T]{Results: items})
}

func (h *YAMLHandler[T]) HandleError(err error) error {
	return h.encode(ErrorPayload{Error: err.Error()})
}

// encode writes one document. Close flushes the encoder, so its error is returned too.
func (h *YAMLHandler[T]) encode(v any) (err error) {
	enc := yaml.NewEncoder(h.out)
	enc.SetIndent(h.indent)
	defer func() {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}()

	return enc.Encode(v)
}
