package clientconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/flowvibe/mcp-installer/internal/config"
)

type writerFixture struct {
	base     string
	cursor   string
	claude   string
	missing  string
	broken   string
	baseCopy string
	writer   *Writer
}

func newWriterFixture(t *testing.T) writerFixture {
	t.Helper()

	dir := t.TempDir()
	f := writerFixture{
		base:     filepath.Join(dir, "Documents", "Flowvibe", "MCP", "mcp_configs.json"),
		baseCopy: filepath.Join(dir, "OneDrive", "Documents", "Flowvibe", "MCP", "mcp_configs.json"),
		cursor:   filepath.Join(dir, ".cursor", "mcp.json"),
		claude:   filepath.Join(dir, "Claude", "claude_desktop_config.json"),
		missing:  filepath.Join(dir, "Codeium", "windsurf", "mcp_config.json"),
		broken:   filepath.Join(dir, "Code", "cline_mcp_settings.json"),
	}

	writeConfig(t, f.baseCopy, `{"mcpServers": {"brave-search": {"command": "node", "args": []}}}`)
	writeConfig(t, f.cursor, `{"mcpServers": {"brave-search": {"command": "node", "args": []}}}`)
	writeConfig(t, f.claude, `{"globalShortcut": "Ctrl+Space"}`)
	writeConfig(t, f.broken, `{not json`)

	f.writer = NewWriter(hclog.NewNullLogger(), f.base, []config.Client{
		{Name: "flowvibe-onedrive", Path: f.baseCopy, Base: true},
		{Name: "flowvibe", Path: f.base, Base: true},
		{Name: "claude", Path: f.claude},
		{Name: "cursor", Path: f.cursor},
		{Name: "windsurf", Path: f.missing},
		{Name: "cline-vscode", Path: f.broken},
	})

	return f
}

func TestWriter_Install(t *testing.T) {
	t.Parallel()

	f := newWriterFixture(t)
	entry := ServerEntry{Command: "node", Args: []string{"index.js"}}

	updated, err := f.writer.Install("weather", entry)
	require.NoError(t, err)
	require.Equal(t, []string{f.base, f.claude, f.cursor}, updated)

	for _, path := range []string{f.base, f.claude, f.cursor} {
		doc, err := Load(path)
		require.NoError(t, err)
		got, ok := doc.Get("weather")
		require.True(t, ok, path)
		require.Equal(t, entry, got)
	}

	require.NoFileExists(t, f.missing)

	copyDoc, err := Load(f.baseCopy)
	require.NoError(t, err)
	require.False(t, copyDoc.Has("weather"))

	claude := readJSON(t, f.claude)
	require.Equal(t, "Ctrl+Space", claude["globalShortcut"])

	base, err := Load(f.base)
	require.NoError(t, err)
	require.Equal(t, []string{"weather"}, base.Names())
}

func TestWriter_InstallBaseFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := filepath.Join(dir, "mcp_configs.json")
	writeConfig(t, base, `[]`)

	w := NewWriter(hclog.NewNullLogger(), base, nil)
	_, err := w.Install("weather", ServerEntry{Command: "node"})
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestWriter_Uninstall(t *testing.T) {
	t.Parallel()

	f := newWriterFixture(t)
	_, err := f.writer.Install("weather", ServerEntry{Command: "node", Args: []string{"index.js"}})
	require.NoError(t, err)

	updated := f.writer.Uninstall("brave-search", "server-brave-search")
	require.Equal(t, []string{f.cursor}, updated)

	cursor, err := Load(f.cursor)
	require.NoError(t, err)
	require.Equal(t, []string{"weather"}, cursor.Names())

	baseCopy, err := Load(f.baseCopy)
	require.NoError(t, err)
	require.True(t, baseCopy.Has("brave-search"))

	updated = f.writer.Uninstall("weather")
	require.Equal(t, []string{f.claude, f.cursor}, updated)

	base, err := Load(f.base)
	require.NoError(t, err)
	require.True(t, base.Has("weather"))

	data, err := os.ReadFile(f.broken)
	require.NoError(t, err)
	require.Equal(t, "{not json", string(data))
}
