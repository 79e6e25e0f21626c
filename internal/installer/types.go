package installer

import (
	"context"
	"fmt"

	"github.com/flowvibe/mcp-installer/internal/clientconfig"
	"github.com/flowvibe/mcp-installer/internal/runtime"
)

var _ Operations = (*Manager)(nil)

// Operations are the workflows exposed by both the CLI and the MCP server.
type Operations interface {
	// Install fetches, builds and configures the server at repoURL.
	Install(ctx context.Context, repoURL string) (Result, error)

	// Uninstall removes the single installed server matching name.
	Uninstall(ctx context.Context, name string) (UninstallResult, error)

	// Repair uninstalls the server matching keyword and installs it again from repoURL.
	// An empty repoURL is recovered from the installed server.
	Repair(ctx context.Context, keyword string, repoURL string) (RepairResult, error)

	// List reports the servers installed in the base directory.
	List(ctx context.Context) ([]InstalledServer, error)
}

// Status is the outcome of an install.
type Status string

const (
	// StatusSuccess means the server was fetched, built and configured.
	StatusSuccess Status = "success"

	// StatusAlreadyInstalled means the target directory already held files; nothing was changed.
	StatusAlreadyInstalled Status = "already_installed"
)

// Result describes an install.
type Result struct {
	Status Status `json:"status" yaml:"status"`

	// Name is the server key written to the client configs, also the install directory name.
	Name string `json:"server_name" yaml:"server_name"`

	// Dir is the absolute install directory.
	Dir string `json:"installation_path" yaml:"installation_path"`

	ProjectType runtime.ProjectType `json:"server_type,omitempty" yaml:"server_type,omitempty"`

	// Config holds the written entry, keyed by Name.
	Config map[string]clientconfig.ServerEntry `json:"config,omitempty" yaml:"config,omitempty"`

	// EnvVars are the environment variables suggested by the README. They are advisory.
	EnvVars map[string]string `json:"env_vars" yaml:"env_vars"`

	// UpdatedConfigs lists the config files the entry was written to.
	UpdatedConfigs []string `json:"updated_configs,omitempty" yaml:"updated_configs,omitempty"`

	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Entry returns the launch configuration written for the server.
func (r Result) Entry() (clientconfig.ServerEntry, bool) {
	e, ok := r.Config[r.Name]
	return e, ok
}

// UninstallStatus is the outcome of an uninstall.
type UninstallStatus string

const (
	// UninstallStatusUninstalled means config entries and the directory were removed.
	UninstallStatusUninstalled UninstallStatus = "uninstalled"

	// UninstallStatusPartial means config entries were removed but the directory could not be.
	UninstallStatusPartial UninstallStatus = "partial"

	// UninstallStatusNotFound means no directory matched the name.
	UninstallStatusNotFound UninstallStatus = "not_found"

	// UninstallStatusAmbiguous means several directories matched the name; nothing was removed.
	UninstallStatusAmbiguous UninstallStatus = "ambiguous"
)

// UninstallResult describes an uninstall.
type UninstallResult struct {
	Status UninstallStatus `json:"status" yaml:"status"`

	// Name is the name the caller asked to uninstall.
	Name string `json:"server_name" yaml:"server_name"`

	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// Dir is the matched server directory.
	Dir string `json:"directory,omitempty" yaml:"directory,omitempty"`

	// Candidates holds the names of all matching directories when the name was ambiguous.
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`

	// ConfigNames are the server keys that were removed from client configs.
	ConfigNames []string `json:"config_names,omitempty" yaml:"config_names,omitempty"`

	// UpdatedConfigs lists the client config files that were rewritten.
	UpdatedConfigs []string `json:"updated_configs,omitempty" yaml:"updated_configs,omitempty"`

	// RemoveError explains why the directory is still present after a partial uninstall.
	RemoveError string `json:"remove_error,omitempty" yaml:"remove_error,omitempty"`
}

// AllowsReinstall reports whether a server may be installed again after this uninstall.
// An ambiguous name removed nothing and a partial uninstall left the directory in place.
func (r UninstallResult) AllowsReinstall() bool {
	switch r.Status {
	case UninstallStatusUninstalled, UninstallStatusNotFound:
		return true
	default:
		return false
	}
}

// RepairResult describes an uninstall followed by a reinstall.
type RepairResult struct {
	Keyword   string          `json:"server_keyword" yaml:"server_keyword"`
	RepoURL   string          `json:"repo_url"       yaml:"repo_url"`
	Uninstall UninstallResult `json:"uninstall"      yaml:"uninstall"`

	// Install is empty when the reinstall was skipped.
	Install Result `json:"install,omitzero" yaml:"install,omitempty"`
}

// Reinstalled reports whether the reinstall phase ran.
func (r RepairResult) Reinstalled() bool {
	return r.Install.Status != ""
}

// InstalledServer describes a directory in the base directory.
type InstalledServer struct {
	Name        string              `json:"name"         yaml:"name"`
	Dir         string              `json:"directory"    yaml:"directory"`
	ProjectType runtime.ProjectType `json:"project_type" yaml:"project_type"`

	// EntryPoint is how the server is started, empty if it could not be resolved.
	EntryPoint string `json:"entry_point,omitempty" yaml:"entry_point,omitempty"`

	// HasSource reports whether a TypeScript index.ts was found, i.e. whether the server can be rebuilt.
	HasSource bool `json:"has_source" yaml:"has_source"`

	// Configured reports whether the server is present in the base config file.
	Configured bool `json:"configured" yaml:"configured"`
}

func alreadyInstalledMessage(name string) string {
	return fmt.Sprintf(
		"The MCP server %q is already installed.\n"+
			"If you have any issues, you can try the repair command.\n"+
			"To remove it, use the uninstall command.",
		name,
	)
}
