package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/manifest"
	"github.com/flowvibe/mcp-installer/internal/runner"
	"github.com/flowvibe/mcp-installer/internal/runtime"
	"github.com/flowvibe/mcp-installer/internal/source"
)

// Repair uninstalls the server matching keyword and installs it again from repoURL.
// When repoURL is empty it is recovered from the installed server first.
// The URL is validated before anything is removed. A failed reinstall is returned as an error.
// Nothing is reinstalled when the uninstall phase is ambiguous or left the directory behind;
// the result then carries only the uninstall report.
func (m *Manager) Repair(ctx context.Context, keyword string, repoURL string) (RepairResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return RepairResult{}, fmt.Errorf("%w: server keyword is required", errs.ErrBadRequest)
	}

	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		recovered, err := m.RecoverSourceURL(ctx, keyword)
		if err != nil {
			return RepairResult{}, err
		}
		m.logger.Info("Recovered source URL", "keyword", keyword, "url", recovered)
		repoURL = recovered
	}

	if _, err := source.Parse(repoURL); err != nil {
		return RepairResult{}, err
	}

	result := RepairResult{Keyword: keyword, RepoURL: repoURL}

	uninstall, err := m.Uninstall(ctx, keyword)
	if err != nil {
		return RepairResult{}, err
	}
	result.Uninstall = uninstall
	m.logger.Info("Repair uninstall phase complete", "keyword", keyword, "status", uninstall.Status)

	if !uninstall.AllowsReinstall() {
		m.logger.Warn("Skipping reinstall", "keyword", keyword, "status", uninstall.Status)
		return result, nil
	}

	install, err := m.Install(ctx, repoURL)
	if err != nil {
		return result, fmt.Errorf("reinstallation from '%s' failed (uninstall phase: %s): %w", repoURL, uninstall.Status, err)
	}
	result.Install = install

	return result, nil
}

// RecoverSourceURL works out where the server matching keyword was installed from:
// the git 'origin' remote, an official npm package name, or the package.json repository field.
func (m *Manager) RecoverSourceURL(ctx context.Context, keyword string) (string, error) {
	dir, ok := m.finder.FindServerDir(keyword, m.settings.BaseDir)
	if !ok {
		return "", fmt.Errorf("%w: could not find a directory matching '%s' in %s", errs.ErrServerNotFound, keyword, m.settings.BaseDir)
	}

	if files.Exists(filepath.Join(dir, ".git")) {
		out, err := m.runner.Run(ctx, runner.Command{
			Name: runtime.Git.Command(m.goos),
			Args: []string{"-C", dir, "remote", "get-url", "origin"},
		})
		if err == nil {
			if u := strings.TrimSpace(out); u != "" {
				if _, err := source.Parse(u); err == nil {
					return u, nil
				}
				m.logger.Debug("Ignoring unsupported git remote", "dir", dir, "remote", u)
			}
		} else {
			m.logger.Debug("Reading git remote failed", "dir", dir, "error", err)
		}
	}

	pkg, err := manifest.ReadPackageJSON(dir)
	if err == nil {
		if src, ok := source.FromPackageName(pkg.Name); ok {
			return src.Input, nil
		}
		if u := normalizeRepositoryURL(pkg.RepositoryURL()); u != "" {
			if _, err := source.Parse(u); err == nil {
				return u, nil
			}
		}
	}

	return "", fmt.Errorf("%w: '%s' (pass the repository URL explicitly)", errs.ErrSourceUnknown, filepath.Base(dir))
}

// normalizeRepositoryURL turns npm repository shorthands like 'git+https://github.com/o/r.git' or 'github:o/r'
// into a form source.Parse accepts.
func normalizeRepositoryURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimPrefix(u, "git+")
	u = strings.TrimPrefix(u, "github:")
	u = strings.Replace(u, "git://github.com/", "https://github.com/", 1)
	u = strings.Replace(u, "ssh://git@github.com/", "git@github.com:", 1)
	return u
}
