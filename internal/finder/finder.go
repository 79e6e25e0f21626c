// Package finder locates installed server directories and resolves the file a server is started from.
package finder

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/filter"
	"github.com/flowvibe/mcp-installer/internal/manifest"
	"github.com/flowvibe/mcp-installer/internal/source"
)

// Finder implements the discovery heuristics.
type Finder struct {
	logger hclog.Logger
}

// New returns a Finder.
func New(logger hclog.Logger) *Finder {
	return &Finder{logger: logger.Named("finder")}
}

// FindServerDir returns the first directory under base whose name fuzzily matches term.
// Directories are visited in lexical order. An inaccessible base or no match yields ("", false).
func (f *Finder) FindServerDir(term string, base string) (string, bool) {
	matches := f.match(term, base, true)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// MatchingDirs returns every directory under base whose name fuzzily matches term, in lexical order.
func (f *Finder) MatchingDirs(term string, base string) []string {
	return f.match(term, base, false)
}

func (f *Finder) match(term string, base string, firstOnly bool) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	// Global npm installs of the official servers live under the scope directory as 'server-<name>'.
	if filepath.Base(base) == source.OfficialScope {
		scoped := filepath.Join(base, "server-"+term)
		if files.IsDir(scoped) {
			f.logger.Debug("Found scoped server directory", "term", term, "dir", scoped)
			if firstOnly {
				return []string{scoped}
			}
		}
	}

	dirs, err := files.SubDirs(base)
	if err != nil {
		f.logger.Debug("Base directory is not readable", "base", base, "error", err)
		return nil
	}

	var matches []string
	for _, name := range dirs {
		if !filter.Fuzzy(name, term) {
			continue
		}

		dir := filepath.Join(base, name)
		if !files.IsRegularFile(filepath.Join(dir, manifest.PackageJSONFile)) {
			f.logger.Warn("Matched directory has no package.json", "term", term, "dir", dir)
		}

		matches = append(matches, dir)
		if firstOnly {
			break
		}
	}

	f.logger.Debug("Directory search finished", "term", term, "base", base, "matches", len(matches))

	return matches
}
