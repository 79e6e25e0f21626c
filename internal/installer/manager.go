// Package installer implements the install, uninstall, repair and list workflows.
package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/clientconfig"
	"github.com/flowvibe/mcp-installer/internal/config"
	errs "github.com/flowvibe/mcp-installer/internal/errors"
	"github.com/flowvibe/mcp-installer/internal/fetch"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/finder"
	"github.com/flowvibe/mcp-installer/internal/manifest"
	"github.com/flowvibe/mcp-installer/internal/readme"
	"github.com/flowvibe/mcp-installer/internal/runner"
	"github.com/flowvibe/mcp-installer/internal/runtime"
	"github.com/flowvibe/mcp-installer/internal/source"
)

// windowsScriptShell is used by npm to run build scripts on Windows.
const windowsScriptShell = `C:\Windows\System32\cmd.exe`

// devDependencies are installed so TypeScript servers can be built after 'npm install --ignore-scripts'.
var devDependencies = []string{"typescript", "@types/node"}

// Manager runs the workflows against a base directory and a set of client config files.
type Manager struct {
	logger   hclog.Logger
	settings *config.Settings
	runner   runner.Runner
	goos     string
	fetcher  *fetch.Fetcher
	finder   *finder.Finder
	writer   *clientconfig.Writer
}

// New creates a Manager.
func New(deps Dependencies, opt ...Option) (*Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger.Named("installer")

	r := opts.Runner
	if r == nil {
		r = runner.NewExecRunner(deps.Logger)
	}

	return &Manager{
		logger:   logger,
		settings: deps.Settings,
		runner:   r,
		goos:     opts.GOOS,
		fetcher:  fetch.New(deps.Logger, r, opts.GOOS),
		finder:   finder.New(deps.Logger),
		writer:   clientconfig.NewWriter(deps.Logger, deps.Settings.BaseConfigPath(), deps.Settings.Clients),
	}, nil
}

// Install fetches the server at repoURL into the base directory, installs its dependencies,
// builds it, resolves its entry point and writes its launch configuration.
//
// A non-empty target directory is left untouched and reported with StatusAlreadyInstalled.
// Node dependency, dev dependency and build failures are logged and skipped.
func (m *Manager) Install(ctx context.Context, repoURL string) (Result, error) {
	src, err := source.Parse(repoURL)
	if err != nil {
		return Result{}, err
	}

	logger := m.logger.With("server", src.DirName)
	logger.Info("Starting installation", "url", src.Input, "kind", src.Kind)

	hasNode := runner.Available(ctx, m.runner, runtime.Node, m.goos)
	hasUV := runner.Available(ctx, m.runner, runtime.UV, m.goos)
	if !hasNode && !hasUV {
		return Result{}, errs.ErrNoRuntime
	}

	baseDir := m.settings.BaseDir
	if err := files.EnsureDir(baseDir); err != nil {
		return Result{}, err
	}

	target := filepath.Join(baseDir, src.DirName)
	result := Result{Name: src.DirName, Dir: target}

	if files.Exists(target) {
		empty, err := files.IsEmptyDir(target)
		if err != nil {
			return Result{}, fmt.Errorf("inspecting existing install directory: %w", err)
		}
		if !empty {
			logger.Info("Server already installed", "dir", target)
			result.Status = StatusAlreadyInstalled
			result.Message = alreadyInstalledMessage(src.DirName)
			return result, nil
		}
		logger.Debug("Reusing empty install directory", "dir", target)
	}

	if err := m.fetch(ctx, src, target); err != nil {
		if rmErr := files.RemoveTree(target); rmErr != nil {
			logger.Warn("Failed to clean up install directory", "dir", target, "error", rmErr)
		}
		return Result{}, err
	}

	projectType := manifest.DetectProjectType(target)
	logger.Info("Detected project type", "type", projectType)

	var entry clientconfig.ServerEntry
	switch {
	case projectType.IsPython():
		if !hasUV {
			return Result{}, fmt.Errorf("%w: Python (uv) is required but not installed", errs.ErrNoRuntime)
		}
		entry, err = m.installPython(ctx, target, projectType)
	default:
		if !hasNode {
			return Result{}, fmt.Errorf("%w: Node.js is required but not installed", errs.ErrNoRuntime)
		}
		projectType = runtime.NodeJS
		entry, err = m.installNode(ctx, target, projectType)
	}
	if err != nil {
		return Result{}, err
	}

	env, err := readme.ExtractEnv(readme.Read(target))
	switch {
	case err == nil:
		logger.Info("Found environment variables in README", "count", len(env))
		entry.Env = env
	case errors.Is(err, readme.ErrNoEnvVars):
		logger.Debug("No environment variables found in README")
	}

	updated, err := m.writer.Install(src.DirName, entry)
	if err != nil {
		return Result{}, err
	}

	result.Status = StatusSuccess
	result.ProjectType = projectType
	result.Config = map[string]clientconfig.ServerEntry{src.DirName: entry}
	result.EnvVars = env
	result.UpdatedConfigs = updated

	logger.Info("Installation complete", "command", entry.Command, "args", entry.Args)

	return result, nil
}

func (m *Manager) fetch(ctx context.Context, src source.Source, target string) error {
	switch src.Kind {
	case source.KindNPM:
		return m.fetcher.Pack(ctx, src.PackageName, m.settings.BaseDir, target)
	default:
		return m.fetcher.Clone(ctx, src.CloneURL, target)
	}
}

// installNode installs dependencies, builds the project and resolves the JavaScript entry point.
// node_modules is kept since the server needs its runtime dependencies.
func (m *Manager) installNode(
	ctx context.Context,
	dir string,
	projectType runtime.ProjectType,
) (clientconfig.ServerEntry, error) {
	npm := runtime.NPM.Command(m.goos)
	ignoreScripts := map[string]string{"npm_config_ignore_scripts": "true"}

	if _, err := m.runner.Run(ctx, runner.Command{
		Name: npm,
		Args: []string{"install", "--ignore-scripts"},
		Dir:  dir,
	}); err != nil {
		m.logger.Warn("npm install failed, continuing", "dir", dir, "error", err)
	}

	if _, err := m.runner.Run(ctx, runner.Command{
		Name: npm,
		Args: append([]string{"install", "--save-dev"}, devDependencies...),
		Dir:  dir,
		Env:  ignoreScripts,
	}); err != nil {
		m.logger.Warn("Installing build dependencies failed, continuing", "dir", dir, "error", err)
	}

	pkg, err := manifest.ReadPackageJSON(dir)
	switch {
	case err != nil:
		m.logger.Warn("Skipping build, package.json unavailable", "dir", dir, "error", err)
	case !pkg.HasScript("build"):
		m.logger.Debug("No build script", "dir", dir)
	default:
		build := runner.Command{Name: npm, Args: []string{"run", "build"}, Dir: dir}
		if m.goos == "windows" {
			build.Env = map[string]string{
				"npm_config_script_shell":   windowsScriptShell,
				"npm_config_ignore_scripts": "true",
			}
		}
		if _, err := m.runner.Run(ctx, build); err != nil {
			m.logger.Warn("Build failed, the package may already include built files", "dir", dir, "error", err)
		}
	}

	entryPoint, err := m.finder.NodeEntryPoint(dir)
	if err != nil {
		return clientconfig.ServerEntry{}, err
	}

	return clientconfig.ServerEntry{
		Command: projectType.LaunchRuntime().String(),
		Args:    []string{entryPoint},
	}, nil
}

// installPython installs dependencies with uv and resolves the script or file to run.
// When neither a console script nor a known file exists, the launch command of the README's
// 'mcpServers' snippet is used instead. Dependency failures are fatal.
func (m *Manager) installPython(
	ctx context.Context,
	dir string,
	projectType runtime.ProjectType,
) (clientconfig.ServerEntry, error) {
	uv := runtime.UV.Command(m.goos)

	var steps []runner.Command
	if projectType == runtime.PythonPyProject {
		steps = append(steps, runner.Command{Name: uv, Args: []string{"sync"}, Dir: dir})
	} else {
		steps = append(steps,
			runner.Command{Name: uv, Args: []string{"venv"}, Dir: dir},
			runner.Command{Name: uv, Args: []string{"pip", "install", "-r", manifest.RequirementsFile}, Dir: dir},
		)
	}

	for _, step := range steps {
		if _, err := m.runner.Run(ctx, step); err != nil {
			return clientconfig.ServerEntry{}, fmt.Errorf("%w: %w", errs.ErrDependencyInstallFailed, err)
		}
	}

	ep, err := m.finder.PythonEntryPoint(dir)
	if err != nil {
		if entry, ok := m.readmeLaunch(dir); ok {
			return entry, nil
		}
		return clientconfig.ServerEntry{}, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return clientconfig.ServerEntry{}, err
	}

	return clientconfig.ServerEntry{
		Command: projectType.LaunchRuntime().String(),
		Args:    []string{"--directory", absDir, "run", ep.Target()},
	}, nil
}

// readmeLaunch returns the command and args published in the README of dir, if any.
func (m *Manager) readmeLaunch(dir string) (clientconfig.ServerEntry, bool) {
	snippet, ok := readme.ExtractPythonSnippet(readme.Read(dir))
	if !ok {
		return clientconfig.ServerEntry{}, false
	}

	command, args, ok := snippet.Launch()
	if !ok {
		return clientconfig.ServerEntry{}, false
	}

	m.logger.Info(
		"Using launch command from README",
		"dir", dir,
		"command", command,
		"pip_install", snippet.PipInstall,
		"url", snippet.URL,
	)

	return clientconfig.ServerEntry{Command: command, Args: args}, true
}
