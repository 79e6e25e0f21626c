package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowvibe/mcp-installer/internal/cmd/output"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/runtime"
)

func TestServerListPrinter(t *testing.T) {
	t.Parallel()

	servers := []installer.InstalledServer{
		{
			Name:        "brave-search",
			ProjectType: runtime.NodeJS,
			EntryPoint:  "node dist/index.js",
			Configured:  true,
		},
		{
			Name:        "fetch",
			ProjectType: runtime.PythonPyProject,
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, output.Render[installer.InstalledServer](buf, NewServerListPrinter(), servers...))

	out := buf.String()
	require.Contains(t, out, "ENTRY POINT")
	require.Contains(t, out, "brave-search")
	require.Contains(t, out, "node dist/index.js")
	require.Contains(t, out, "python-pyproject")
	require.Contains(t, out, "yes")
	require.Contains(t, out, "no")
	require.Contains(t, out, "2 servers installed\n")
}

func TestServerListPrinter_Single(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := NewServerListPrinter()
	require.NoError(t, output.Render[installer.InstalledServer](buf, p, installer.InstalledServer{Name: "only"}))
	require.Contains(t, buf.String(), "1 server installed\n")
}
