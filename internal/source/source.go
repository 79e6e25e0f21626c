// Package source turns the repository URL given to install into a fetchable source.
package source

import (
	"fmt"
	"regexp"
	"strings"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
)

// Kind identifies how a source is fetched.
type Kind string

const (
	// KindGit sources are cloned with git.
	KindGit Kind = "git"

	// KindNPM sources are downloaded with 'npm pack' and extracted.
	KindNPM Kind = "npm"
)

// OfficialScope is the npm scope of the reference MCP servers.
const OfficialScope = "@modelcontextprotocol"

// Usage describes the accepted URL forms. It is appended to parse errors.
const Usage = `Supported formats:
  https://github.com/owner/repo
  git@github.com:owner/repo.git
  owner/repo
  https://www.npmjs.com/package/@modelcontextprotocol/server-<name>
  https://github.com/modelcontextprotocol/servers/tree/main/src/<name>`

var (
	npmPackageRe  = regexp.MustCompile(`/package/@modelcontextprotocol/server-([^/]+)/?$`)
	officialSrcRe = regexp.MustCompile(`/src/([^/]+)/?$`)
	githubURLRe   = regexp.MustCompile(`^(?:https://github\.com/|git@github\.com:)([^/\s]+/[^/\s]+?)(?:\.git)?/?$`)
	shorthandRe   = regexp.MustCompile(`^([^/\s:]+/[^/\s]+?)(?:\.git)?$`)
)

// Source is a parsed install source.
type Source struct {
	Kind Kind

	// Input is the URL as given by the caller.
	Input string

	// Repo is 'owner/repo' for git sources.
	Repo string

	// CloneURL is the https clone URL for git sources.
	CloneURL string

	// PackageName is the npm package for npm sources, e.g. '@modelcontextprotocol/server-brave-search'.
	PackageName string

	// DirName is the directory the server is installed into, relative to the base directory.
	DirName string
}

// Parse recognises GitHub URLs (https or ssh), 'owner/repo' shorthand, npm package pages of
// the official scope and source folders of the official servers monorepo.
func Parse(input string) (Source, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Source{}, fmt.Errorf("%w: repository URL is empty\n%s", errs.ErrInvalidURL, Usage)
	}

	if isOfficial(raw) {
		if name, ok := officialServerName(raw); ok {
			return Source{
				Kind:        KindNPM,
				Input:       raw,
				PackageName: OfficialScope + "/server-" + name,
				DirName:     "server-" + name,
			}, nil
		}
	}

	var repo string
	if m := githubURLRe.FindStringSubmatch(raw); m != nil {
		repo = m[1]
	} else if m := shorthandRe.FindStringSubmatch(raw); m != nil {
		repo = m[1]
	}

	switch repo[strings.LastIndex(repo, "/")+1:] {
	case "", ".", "..":
		return Source{}, fmt.Errorf("%w: '%s'\n%s", errs.ErrInvalidURL, raw, Usage)
	}

	return Source{
		Kind:     KindGit,
		Input:    raw,
		Repo:     repo,
		CloneURL: "https://github.com/" + repo + ".git",
		DirName:  repo[strings.LastIndex(repo, "/")+1:],
	}, nil
}

// isOfficial reports whether the input points at npmjs.com or the modelcontextprotocol organisation.
func isOfficial(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "npmjs.com") || strings.Contains(lower, "modelcontextprotocol")
}

// officialServerName extracts '<name>' from an npm package page or a monorepo 'src/<name>' folder.
func officialServerName(raw string) (string, bool) {
	u := strings.SplitN(raw, "?", 2)[0]
	u = strings.SplitN(u, "#", 2)[0]

	if m := npmPackageRe.FindStringSubmatch(u); m != nil {
		return m[1], true
	}
	if strings.Contains(u, "github.com") {
		if m := officialSrcRe.FindStringSubmatch(u); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// FromPackageName returns the npm source for an official package name, or false for any other package.
func FromPackageName(name string) (Source, bool) {
	prefix := OfficialScope + "/server-"
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return Source{}, false
	}

	short := strings.TrimPrefix(name, prefix)

	return Source{
		Kind:        KindNPM,
		Input:       "https://www.npmjs.com/package/" + name,
		PackageName: name,
		DirName:     "server-" + short,
	}, true
}
