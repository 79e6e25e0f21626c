// Package manifest reads the project manifests of fetched MCP servers and detects their project type.
package manifest

import (
	"errors"
	"path/filepath"

	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/runtime"
)

// RequirementsFile is the name of the pip requirements file.
const RequirementsFile = "requirements.txt"

// ErrInvalidManifest is returned when a manifest exists but cannot be decoded.
var ErrInvalidManifest = errors.New("invalid manifest")

// DetectProjectType inspects dir for package.json, pyproject.toml and requirements.txt, in that order.
func DetectProjectType(dir string) runtime.ProjectType {
	switch {
	case files.IsRegularFile(filepath.Join(dir, PackageJSONFile)):
		return runtime.NodeJS
	case files.IsRegularFile(filepath.Join(dir, PyProjectFile)):
		return runtime.PythonPyProject
	case files.IsRegularFile(filepath.Join(dir, RequirementsFile)):
		return runtime.PythonRequirements
	default:
		return runtime.Unknown
	}
}
