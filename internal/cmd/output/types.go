package output

import "io"

// Handler renders command outcomes in one output format.
// Every installer command writes through a Handler so that text, JSON and YAML stay in step.
type Handler[T any] interface {
	Writer() io.Writer

	// HandleResult renders a single outcome, such as an install or uninstall report.
	HandleResult(item T) error

	// HandleResults renders a listing, such as search hits or installed servers.
	HandleResults(items ...T) error

	// HandleError renders a failure in place of a result.
	HandleError(err error) error
}

// WriteFunc writes text around a listing, given the number of items in it.
type WriteFunc[T any] func(w io.Writer, count int)

// Printer produces the human readable form of T for the text handler.
type Printer[T any] interface {
	// Header runs once before the first item.
	Header(w io.Writer, count int)
	SetHeader(fn WriteFunc[T])

	// Item writes one item.
	Item(w io.Writer, elem T) error

	// Footer runs once after the last item.
	Footer(w io.Writer, count int)
	SetFooter(fn WriteFunc[T])
}

// ResultsPayload is the structured envelope for listings: {"results": [...]}.
type ResultsPayload[T any] struct {
	Results []T `json:"results" yaml:"results"`
}

// ResultPayload is the structured envelope for a single install, uninstall or repair report: {"result": ...}.
type ResultPayload[T any] struct {
	Result T `json:"result" yaml:"result"`
}

// ErrorPayload is the structured envelope for a failed command: {"error": "..."}.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}
