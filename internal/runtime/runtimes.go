package runtime

// Runtime represents an executable the installer shells out to.
type Runtime string

const (
	// Node represents the 'node' executable used to launch JavaScript servers.
	Node Runtime = "node"

	// NPM represents the 'npm' package manager used to fetch, install and build JavaScript servers.
	NPM Runtime = "npm"

	// UV represents the 'uv' Python project manager used to install and launch Python servers.
	UV Runtime = "uv"

	// Git represents the 'git' executable used to clone repositories.
	Git Runtime = "git"
)

// Command returns the executable name for the runtime on the given OS.
// npm ships as a batch script on Windows, which exec cannot resolve without the extension.
func (r Runtime) Command(goos string) string {
	if r == NPM && goos == "windows" {
		return "npm.cmd"
	}
	return string(r)
}

func (r Runtime) String() string {
	return string(r)
}

// ProjectType identifies how a fetched server is installed and launched.
type ProjectType string

const (
	// NodeJS is a project with a package.json.
	NodeJS ProjectType = "nodejs"

	// PythonPyProject is a project with a pyproject.toml.
	PythonPyProject ProjectType = "python-pyproject"

	// PythonRequirements is a project with a requirements.txt.
	PythonRequirements ProjectType = "python-requirements"

	// Unknown is a project with none of the recognised manifests.
	Unknown ProjectType = "unknown"
)

// IsPython reports whether the project is installed and launched with uv.
func (p ProjectType) IsPython() bool {
	return p == PythonPyProject || p == PythonRequirements
}

// LaunchRuntime returns the runtime used in the client config 'command' for this project type.
// Unknown projects are treated as Node projects.
func (p ProjectType) LaunchRuntime() Runtime {
	if p.IsPython() {
		return UV
	}
	return Node
}

func (p ProjectType) String() string {
	return string(p)
}
