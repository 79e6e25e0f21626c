package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type repoSample struct {
	FullName string `yaml:"full_name"`
	Stars    int    `yaml:"stars"`
}

func TestNewYAMLHandler_Writer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[repoSample](buf, 2)
	require.Equal(t, buf, h.Writer())
}

func TestYAMLHandler_HandleResult(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[repoSample](buf, 2)

	require.NoError(t, h.HandleResult(repoSample{FullName: "owner/weather-mcp", Stars: 12}))

	expected := "result:\n" +
		"  full_name: owner/weather-mcp\n" +
		"  stars: 12\n"
	require.Equal(t, expected, buf.String())
}

func TestYAMLHandler_HandleResults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[repoSample](buf, 2)

	err := h.HandleResults(
		repoSample{FullName: "owner/a", Stars: 3},
		repoSample{FullName: "owner/b", Stars: 1},
	)
	require.NoError(t, err)

	expected := "results:\n" +
		"  - full_name: owner/a\n" +
		"    stars: 3\n" +
		"  - full_name: owner/b\n" +
		"    stars: 1\n"
	require.Equal(t, expected, buf.String())
}

func TestYAMLHandler_HandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "message", err: errors.New("GitHub token required"), expected: "error: GitHub token required\n"},
		{name: "empty message", err: errors.New(""), expected: "error: \"\"\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			h := NewYAMLHandler[repoSample](buf, 2)
			require.NoError(t, h.HandleError(tc.err))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestYAMLHandler_WriteFailure(t *testing.T) {
	t.Parallel()

	h := NewYAMLHandler[repoSample](brokenWriter{}, 2)
	require.ErrorContains(t, h.HandleResult(repoSample{FullName: "owner/a"}), "pipe closed")
}
