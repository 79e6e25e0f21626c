package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/manifest"
	"github.com/flowvibe/mcp-installer/internal/readme"
	"github.com/flowvibe/mcp-installer/internal/runner"
)

const serverPrefix = "server-"

// Uninstall finds the single directory matching name, removes every name the server may be
// configured under from the client config files, then deletes the directory.
// No match and several matches are reported through the result status, not as errors.
// Base config files are never pruned.
func (m *Manager) Uninstall(ctx context.Context, name string) (UninstallResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UninstallResult{}, fmt.Errorf("%w: server name is required", errs.ErrBadRequest)
	}

	baseDir := m.settings.BaseDir
	result := UninstallResult{Name: name, BaseDir: baseDir}

	dirs := m.finder.MatchingDirs(name, baseDir)
	switch len(dirs) {
	case 0:
		m.logger.Info("No matching server directory", "name", name, "base", baseDir)
		result.Status = UninstallStatusNotFound
		return result, nil
	case 1:
	default:
		m.logger.Info("Multiple matching server directories", "name", name, "count", len(dirs))
		result.Status = UninstallStatusAmbiguous
		for _, d := range dirs {
			result.Candidates = append(result.Candidates, filepath.Base(d))
		}
		return result, nil
	}

	dir := dirs[0]
	result.Dir = dir

	names := m.configNames(name, dir)
	result.UpdatedConfigs = m.writer.Uninstall(names...)
	result.ConfigNames = names

	if err := m.removeDir(ctx, dir); err != nil {
		m.logger.Warn("Failed to remove server directory", "dir", dir, "error", err)
		result.Status = UninstallStatusPartial
		result.RemoveError = err.Error()
		return result, nil
	}

	m.logger.Info("Server uninstalled", "name", name, "dir", dir)
	result.Status = UninstallStatusUninstalled

	return result, nil
}

// configNames returns the keys a server may be configured under: the given name with and without
// the 'server-' prefix, the directory name, and the names declared by package.json or the README.
func (m *Manager) configNames(name string, dir string) []string {
	candidates := []string{
		name,
		serverPrefix + name,
		strings.TrimPrefix(name, serverPrefix),
		filepath.Base(dir),
	}

	if pkg, err := manifest.ReadPackageJSON(dir); err == nil && pkg.Name != "" {
		scopeless := pkg.ScopelessName()
		candidates = append(candidates, pkg.Name, scopeless, strings.TrimPrefix(scopeless, serverPrefix))
	}

	if official, ok := readme.OfficialName(readme.Read(dir)); ok {
		candidates = append(candidates, official)
	}

	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	return out
}

// removeDir deletes dir, falling back to the platform's removal command when Go cannot.
func (m *Manager) removeDir(ctx context.Context, dir string) error {
	err := files.RemoveTree(dir)
	if err == nil && !files.Exists(dir) {
		return nil
	}

	m.logger.Debug("Removing directory with platform command", "dir", dir, "error", err)

	cmd := runner.Command{Name: "rm", Args: []string{"-rf", dir}}
	if m.goos == "windows" {
		cmd = runner.Command{Name: "cmd", Args: []string{"/c", "rd", "/s", "/q", dir}}
	}

	if _, cmdErr := m.runner.Run(ctx, cmd); cmdErr != nil {
		return errors.Join(err, cmdErr)
	}

	if files.Exists(dir) {
		return fmt.Errorf("directory still exists after removal: %s", dir)
	}

	return nil
}
