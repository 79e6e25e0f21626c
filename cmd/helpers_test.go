package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/flowvibe/mcp-installer/internal/clientconfig"
	"github.com/flowvibe/mcp-installer/internal/cmd"
	cmdopts "github.com/flowvibe/mcp-installer/internal/cmd/options"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/installer"
	"github.com/flowvibe/mcp-installer/internal/runtime"
	"github.com/flowvibe/mcp-installer/internal/search"
	"github.com/flowvibe/mcp-installer/internal/token"
)

type fakeLoader struct {
	settings *config.Settings
	err      error
}

func (f *fakeLoader) Load(_ string) (*config.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeOperations struct {
	mu sync.Mutex

	installed   []string
	uninstalled []string
	repaired    [][2]string

	result          installer.Result
	uninstallResult installer.UninstallResult
	repairResult    installer.RepairResult
	servers         []installer.InstalledServer
	err             error
}

func (f *fakeOperations) Install(_ context.Context, repoURL string) (installer.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installed = append(f.installed, repoURL)
	return f.result, f.err
}

func (f *fakeOperations) Uninstall(_ context.Context, name string) (installer.UninstallResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uninstalled = append(f.uninstalled, name)
	return f.uninstallResult, f.err
}

func (f *fakeOperations) Repair(_ context.Context, keyword string, repoURL string) (installer.RepairResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repaired = append(f.repaired, [2]string{keyword, repoURL})
	return f.repairResult, f.err
}

func (f *fakeOperations) List(_ context.Context) ([]installer.InstalledServer, error) {
	return f.servers, f.err
}

type fakeOpsBuilder struct {
	ops *fakeOperations
	err error
}

func (f *fakeOpsBuilder) BuildOperations(_ *config.Settings) (installer.Operations, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ops, nil
}

type fakeSearcher struct {
	query     string
	languages []string
	repos     []search.Repository
	err       error
}

func (f *fakeSearcher) Search(_ context.Context, query string, languages []string) ([]search.Repository, error) {
	f.query = query
	f.languages = languages
	return f.repos, f.err
}

type fakeSearcherBuilder struct {
	searcher *fakeSearcher
	err      error
}

func (f *fakeSearcherBuilder) BuildSearcher(_ *config.Settings, _ token.Store) (search.Searcher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.searcher, nil
}

type fakeStore struct {
	value     string
	setErr    error
	deleteErr error
	deleted   bool
}

func (f *fakeStore) Get() (string, error) {
	if f.value == "" {
		return "", token.ErrNotFound
	}
	return f.value, nil
}

func (f *fakeStore) Set(v string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value = v
	return nil
}

func (f *fakeStore) Delete() error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	f.value = ""
	return nil
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	return &config.Settings{BaseDir: t.TempDir()}
}

func weatherInstall(baseDir string) installer.Result {
	dir := baseDir + "/weather-mcp"
	return installer.Result{
		Status:      installer.StatusSuccess,
		Name:        "weather-mcp",
		Dir:         dir,
		ProjectType: runtime.NodeJS,
		Config: map[string]clientconfig.ServerEntry{
			"weather-mcp": {Command: "node", Args: []string{dir + "/build/index.js"}},
		},
		EnvVars:        map[string]string{"API_KEY": "your_api_key"},
		UpdatedConfigs: []string{baseDir + "/config.json"},
	}
}

// execute builds a command with newFn and runs it with args, returning what it wrote to stdout.
func execute(
	t *testing.T,
	newFn func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error),
	args []string,
	opt ...cmdopts.CmdOption,
) (string, error) {
	t.Helper()

	c, err := newFn(testBaseCmd(), opt...)
	require.NoError(t, err)

	// Match the root command, which leaves error reporting to main.
	c.SilenceUsage = true
	c.SilenceErrors = true

	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)

	err = c.Execute()
	return out.String(), err
}
