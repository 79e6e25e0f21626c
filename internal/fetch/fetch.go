// Package fetch retrieves server sources: git repositories and npm package tarballs.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/runner"
	"github.com/flowvibe/mcp-installer/internal/runtime"
)

// tempDirPattern is used for npm pack scratch directories inside the base directory.
// Hidden names keep them out of fuzzy directory matching.
const tempDirPattern = ".temp-*"

// Fetcher downloads server sources into target directories.
type Fetcher struct {
	logger hclog.Logger
	runner runner.Runner
	goos   string
}

// New returns a Fetcher that shells out through r.
func New(logger hclog.Logger, r runner.Runner, goos string) *Fetcher {
	return &Fetcher{
		logger: logger.Named("fetch"),
		runner: r,
		goos:   goos,
	}
}

// Clone runs 'git clone cloneURL targetDir'. The parent of targetDir must exist.
func (f *Fetcher) Clone(ctx context.Context, cloneURL string, targetDir string) error {
	f.logger.Info("Cloning repository", "url", cloneURL, "dir", targetDir)

	_, err := f.runner.Run(ctx, runner.Command{
		Name: runtime.Git.Command(f.goos),
		Args: []string{"clone", cloneURL, targetDir},
		Dir:  filepath.Dir(targetDir),
	})
	if err != nil {
		return fmt.Errorf("%w: cloning %s: %w", errs.ErrFetchFailed, cloneURL, err)
	}

	return nil
}

// Pack downloads packageName with 'npm pack' into a scratch directory under baseDir,
// then extracts the tarball into targetDir with its leading 'package/' component stripped.
// The scratch directory is always removed.
func (f *Fetcher) Pack(ctx context.Context, packageName string, baseDir string, targetDir string) error {
	tempDir, err := os.MkdirTemp(baseDir, tempDirPattern)
	if err != nil {
		return fmt.Errorf("%w: creating temporary directory: %w", errs.ErrFetchFailed, err)
	}
	defer func() {
		if err := files.RemoveTree(tempDir); err != nil {
			f.logger.Warn("Failed to remove temporary directory", "dir", tempDir, "error", err)
		}
	}()

	f.logger.Info("Downloading package", "package", packageName, "dir", tempDir)

	_, err = f.runner.Run(ctx, runner.Command{
		Name: runtime.NPM.Command(f.goos),
		Args: []string{"pack", packageName},
		Dir:  tempDir,
	})
	if err != nil {
		return fmt.Errorf("%w: downloading %s: %w", errs.ErrFetchFailed, packageName, err)
	}

	tarball, err := findTarball(tempDir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrFetchFailed, packageName, err)
	}

	if err := files.EnsureDir(targetDir); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrFetchFailed, err)
	}

	if err := ExtractTarGz(tarball, targetDir, 1); err != nil {
		return fmt.Errorf("%w: extracting %s: %w", errs.ErrFetchFailed, filepath.Base(tarball), err)
	}

	f.logger.Debug("Package extracted", "package", packageName, "dir", targetDir)

	return nil
}

// findTarball returns the first .tgz file in dir.
func findTarball(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".tgz") {
			return filepath.Join(dir, e.Name()), nil
		}
	}

	return "", fmt.Errorf("no package tarball found in %s", dir)
}
