package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/perms"
)

func mkdirs(t *testing.T, base string, names ...string) {
	t.Helper()

	for _, n := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(base, n), perms.RegularDir))
	}
}

func writeFile(t *testing.T, dir string, rel string, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), perms.RegularDir))
	require.NoError(t, os.WriteFile(path, []byte(content), perms.RegularFile))
}

func TestFinder_FindServerDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	mkdirs(t, base, "brave-search", "weather-mcp", "git_hub", "zz-brave")
	writeFile(t, base, "weather", "not a directory")

	tests := []struct {
		name     string
		term     string
		expected string
		found    bool
	}{
		{name: "substring", term: "brave", expected: "brave-search", found: true},
		{name: "lexical order decides ties", term: "BRAVE", expected: "brave-search", found: true},
		{name: "separator stripped", term: "git-hub", expected: "git_hub", found: true},
		{name: "term contains directory name", term: "weather-mcp-server", expected: "weather-mcp", found: true},
		{name: "files are ignored", term: "weather", expected: "weather-mcp", found: true},
		{name: "no match", term: "nonexistent", found: false},
		{name: "empty term", term: "  ", found: false},
	}

	f := New(hclog.NewNullLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir, ok := f.FindServerDir(tc.term, base)
			require.Equal(t, tc.found, ok)
			if tc.found {
				require.Equal(t, filepath.Join(base, tc.expected), dir)
			} else {
				require.Empty(t, dir)
			}
		})
	}
}

func TestFinder_FindServerDir_InaccessibleBase(t *testing.T) {
	t.Parallel()

	dir, ok := New(hclog.NewNullLogger()).FindServerDir("brave", filepath.Join(t.TempDir(), "missing"))
	require.False(t, ok)
	require.Empty(t, dir)
}

func TestFinder_FindServerDir_ScopedGlobalInstall(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "@modelcontextprotocol")
	mkdirs(t, base, "aaa-memory-tools", "server-memory")

	dir, ok := New(hclog.NewNullLogger()).FindServerDir("memory", base)
	require.True(t, ok)
	require.Equal(t, filepath.Join(base, "server-memory"), dir)
}

func TestFinder_MatchingDirs(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	mkdirs(t, base, "weather-api", "weather-mcp", "brave-search", ".temp-weather")

	f := New(hclog.NewNullLogger())
	require.Equal(t, []string{
		filepath.Join(base, "weather-api"),
		filepath.Join(base, "weather-mcp"),
	}, f.MatchingDirs("weather", base))
	require.Empty(t, f.MatchingDirs("slack", base))
}

func TestFinder_NodeEntryPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		expected string
	}{
		{
			name: "bin wins over main",
			files: map[string]string{
				"package.json":  `{"name":"x","bin":"dist/cli.js","main":"dist/index.js"}`,
				"dist/cli.js":   "",
				"dist/index.js": "",
			},
			expected: "dist/cli.js",
		},
		{
			name: "bin map prefers -server entry",
			files: map[string]string{
				"package.json":   `{"name":"x","bin":{"tool":"bin/tool.js","x-server":"bin/server.js"}}`,
				"bin/tool.js":    "",
				"bin/server.js":  "",
				"build/index.js": "",
			},
			expected: "bin/server.js",
		},
		{
			name: "missing bin falls through to main",
			files: map[string]string{
				"package.json": `{"name":"x","bin":"dist/missing.js","main":"lib/main.js"}`,
				"lib/main.js":  "",
			},
			expected: "lib/main.js",
		},
		{
			name: "start script",
			files: map[string]string{
				"package.json":  `{"name":"x","scripts":{"start":"node --no-warnings out/server.js"}}`,
				"out/server.js": "",
				"dist/index.js": "",
			},
			expected: "out/server.js",
		},
		{
			name: "dist before build, shallowest first",
			files: map[string]string{
				"package.json":         `{"name":"x"}`,
				"dist/nested/index.js": "",
				"dist/index.js":        "",
				"build/index.js":       "",
			},
			expected: "dist/index.js",
		},
		{
			name: "dist ignores node_modules",
			files: map[string]string{
				"package.json":                 `{"name":"x"}`,
				"dist/node_modules/a/index.js": "",
				"build/index.js":               "",
			},
			expected: "build/index.js",
		},
		{
			name: "root index.js",
			files: map[string]string{
				"package.json": `{"name":"x"}`,
				"index.js":     "",
				"src/index.js": "",
			},
			expected: "index.js",
		},
		{
			name: "src index.js",
			files: map[string]string{
				"package.json":        `{"name":"x"}`,
				"src/server/index.js": "",
			},
			expected: "src/server/index.js",
		},
		{
			name: "cli.js as last resort",
			files: map[string]string{
				"package.json":            `{"name":"x"}`,
				"node_modules/dep/cli.js": "",
				"tools/cli.js":            "",
			},
			expected: "tools/cli.js",
		},
		{
			name: "no manifest still searches files",
			files: map[string]string{
				"build/index.js": "",
			},
			expected: "build/index.js",
		},
	}

	f := New(hclog.NewNullLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for rel, content := range tc.files {
				writeFile(t, dir, rel, content)
			}

			path, err := f.NodeEntryPoint(dir)
			require.NoError(t, err)
			require.Equal(t, filepath.Join(dir, filepath.FromSlash(tc.expected)), path)
			require.True(t, filepath.IsAbs(path))
		})
	}
}

func TestFinder_NodeEntryPoint_NotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"x","main":"missing.js"}`)
	writeFile(t, dir, "src/index.ts", "")

	_, err := New(hclog.NewNullLogger()).NodeEntryPoint(dir)
	require.ErrorIs(t, err, errs.ErrEntryPointNotFound)
}

func TestFinder_PythonEntryPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		files          map[string]string
		expectedScript string
		expectedPath   string
	}{
		{
			name: "project script",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"fetch\"\n\n[project.scripts]\nmcp-server-fetch = \"fetch:main\"\n",
				"server.py":      "",
			},
			expectedScript: "mcp-server-fetch",
		},
		{
			name: "poetry script",
			files: map[string]string{
				"pyproject.toml": "[tool.poetry.scripts]\nweather = \"weather:main\"\n",
			},
			expectedScript: "weather",
		},
		{
			name: "server.py before main.py",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"plain\"\n",
				"main.py":        "",
				"server.py":      "",
			},
			expectedPath: "server.py",
		},
		{
			name: "requirements project with app.py",
			files: map[string]string{
				"requirements.txt": "mcp\n",
				"app.py":           "",
			},
			expectedPath: "app.py",
		},
		{
			name: "cli.py",
			files: map[string]string{
				"cli.py": "",
			},
			expectedPath: "cli.py",
		},
	}

	f := New(hclog.NewNullLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for rel, content := range tc.files {
				writeFile(t, dir, rel, content)
			}

			ep, err := f.PythonEntryPoint(dir)
			require.NoError(t, err)
			require.Equal(t, tc.expectedScript, ep.Script)
			if tc.expectedPath != "" {
				require.Equal(t, filepath.Join(dir, tc.expectedPath), ep.Path)
				require.Equal(t, ep.Path, ep.Target())
			} else {
				require.Equal(t, tc.expectedScript, ep.Target())
			}
		})
	}
}

func TestFinder_PythonEntryPoint_NotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "mcp\n")

	_, err := New(hclog.NewNullLogger()).PythonEntryPoint(dir)
	require.ErrorIs(t, err, errs.ErrEntryPointNotFound)
}

func TestFinder_SourceFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{name: "root", files: []string{"index.ts", "src/index.ts"}, expected: "index.ts"},
		{name: "src", files: []string{"src/index.ts", "lib/index.ts"}, expected: "src/index.ts"},
		{name: "src/server", files: []string{"src/server/index.ts"}, expected: "src/server/index.ts"},
		{name: "nested under src", files: []string{"src/tools/github/index.ts"}, expected: "src/tools/github/index.ts"},
		{name: "build output ignored", files: []string{"src/dist/index.ts"}},
		{name: "none", files: []string{"README.md"}},
	}

	f := New(hclog.NewNullLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for _, rel := range tc.files {
				writeFile(t, dir, rel, "")
			}

			path, ok := f.SourceFile(dir)
			if tc.expected == "" {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, filepath.Join(dir, filepath.FromSlash(tc.expected)), path)
		})
	}
}
