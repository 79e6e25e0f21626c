package finder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/manifest"
)

// pythonCandidates are checked in order when pyproject.toml declares no scripts.
var pythonCandidates = []string{"server.py", "main.py", "app.py", "cli.py"}

// sourceDirs are searched in order for a TypeScript index.ts.
var sourceDirs = []string{"", "src", filepath.Join("src", "server"), "lib"}

// EntryPoint is how a Python server is started: either a console script or a file.
type EntryPoint struct {
	// Script is a console script name declared in pyproject.toml.
	Script string

	// Path is the absolute path of a Python file.
	Path string
}

// Target returns the argument passed to 'uv run'.
func (e EntryPoint) Target() string {
	if e.Script != "" {
		return e.Script
	}
	return e.Path
}

// NodeEntryPoint resolves the JavaScript file a Node server is started from.
// Candidates, in order: bin, main, the file run by 'node' in the start script,
// index.js under dist/ then build/, index.js in the root, index.js under src/, and finally any cli.js.
// Each candidate must exist. The returned path is absolute.
func (f *Finder) NodeEntryPoint(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	pkg, err := manifest.ReadPackageJSON(dir)
	if err != nil {
		f.logger.Debug("package.json unavailable, using file search only", "dir", dir, "error", err)
		pkg = &manifest.PackageJSON{}
	}

	steps := []struct {
		name string
		find func() string
	}{
		{"bin", func() string { return existing(dir, pkg.BinPath()) }},
		{"main", func() string { return existing(dir, pkg.Main) }},
		{"start script", func() string { return existing(dir, pkg.StartScriptTarget()) }},
		{"dist", func() string { return first(globFiles(filepath.Join(dir, "dist"), "**/index.js")) }},
		{"build", func() string { return first(globFiles(filepath.Join(dir, "build"), "**/index.js")) }},
		{"root index.js", func() string { return existing(dir, "index.js") }},
		{"src", func() string { return first(globFiles(filepath.Join(dir, "src"), "**/index.js")) }},
		{"cli.js", func() string { return first(globFiles(dir, "**/cli.js")) }},
	}

	for _, step := range steps {
		if path := step.find(); path != "" {
			f.logger.Debug("Resolved Node entry point", "dir", dir, "strategy", step.name, "path", path)
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: no JavaScript entry point in %s", errs.ErrEntryPointNotFound, dir)
}

// PythonEntryPoint resolves how a Python server is started.
// The first console script of [project.scripts] or [tool.poetry.scripts] wins,
// otherwise server.py, main.py, app.py and cli.py are tried in that order.
func (f *Finder) PythonEntryPoint(dir string) (EntryPoint, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return EntryPoint{}, err
	}

	py, err := manifest.ReadPyProject(dir)
	switch {
	case err == nil:
		if script, ok := py.FirstScript(); ok {
			f.logger.Debug("Resolved Python entry point", "dir", dir, "script", script.Name, "target", script.Target)
			return EntryPoint{Script: script.Name}, nil
		}
	case !manifest.IsNotExist(err):
		f.logger.Warn("Failed to read pyproject.toml", "dir", dir, "error", err)
	}

	for _, name := range pythonCandidates {
		if path := existing(dir, name); path != "" {
			f.logger.Debug("Resolved Python entry point", "dir", dir, "path", path)
			return EntryPoint{Path: path}, nil
		}
	}

	return EntryPoint{}, fmt.Errorf("%w: no Python entry point in %s", errs.ErrEntryPointNotFound, dir)
}

// SourceFile locates the TypeScript index.ts of a server, in the root, src, src/server or lib.
// Build output and dependencies are not searched.
func (f *Finder) SourceFile(dir string) (string, bool) {
	for _, sub := range sourceDirs {
		if path := existing(dir, filepath.Join(sub, "index.ts")); path != "" {
			return path, true
		}
	}

	for _, sub := range sourceDirs[1:] {
		if path := first(globFiles(filepath.Join(dir, sub), "**/index.ts", "dist", "build")); path != "" {
			return path, true
		}
	}

	return "", false
}

// existing returns the absolute path of dir/rel if it is a regular file, otherwise "".
func existing(dir string, rel string) string {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return ""
	}

	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, filepath.FromSlash(rel))
	}

	if !files.IsRegularFile(path) {
		return ""
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	return abs
}

// globFiles returns the files under root matching the doublestar pattern, shallowest first.
// node_modules and any extra directory names in skip are never descended into.
func globFiles(root string, pattern string, skip ...string) []string {
	if !files.IsDir(root) {
		return nil
	}

	skip = append(skip, "node_modules")

	var matches []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && slices.Contains(skip, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			matches = append(matches, path)
		}
		return nil
	})

	slices.SortStableFunc(matches, func(a, b string) int {
		return strings.Count(a, string(filepath.Separator)) - strings.Count(b, string(filepath.Separator))
	})

	return matches
}

func first(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	abs, err := filepath.Abs(paths[0])
	if err != nil {
		return paths[0]
	}
	return abs
}
