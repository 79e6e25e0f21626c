package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
)

// OutputFormat selects how a command renders its result: readable text, or a JSON/YAML payload for scripts.
type OutputFormat string

// OutputFormats is the set accepted by the --format flag.
type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// AllowedOutputFormats lists the accepted formats in alphabetical order.
func AllowedOutputFormats() OutputFormats {
	formats := OutputFormats{FormatJSON, FormatText, FormatYAML}
	slices.Sort(formats)
	return formats
}

// String joins the formats for flag help and error messages, e.g. "json, text, yaml".
func (f *OutputFormats) String() string {
	names := make([]string, 0, len(*f))
	for _, format := range *f {
		names = append(names, format.String())
	}
	return strings.Join(names, ", ")
}

// String, Set and Type make *OutputFormat a pflag.Value for the --format flag.
func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set accepts any case and surrounding whitespace.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()
	if !slices.Contains(allowed, OutputFormat(v)) {
		return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
	}

	*f = OutputFormat(v)
	return nil
}

func (f *OutputFormat) Type() string {
	return "format"
}

// FormatHandler returns the output handler for format.
// The printer is only used for text output.
func FormatHandler[T any](w io.Writer, format OutputFormat, printer output.Printer[T]) (output.Handler[T], error) {
	switch format {
	case FormatJSON:
		return output.NewJSONHandler[T](w, 2), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, 2), nil
	case FormatText:
		return output.NewTextHandler[T](w, printer), nil
	default:
		allowed := AllowedOutputFormats()
		return nil, fmt.Errorf("invalid format '%s', must be one of %v", format, allowed.String())
	}
}
