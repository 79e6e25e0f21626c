package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PyProjectFile is the name of the Python project manifest.
const PyProjectFile = "pyproject.toml"

// Script is one console script declared in pyproject.toml.
type Script struct {
	// Name is the command installed into the environment, e.g. 'mcp-server-fetch'.
	Name string

	// Target is the 'module:function' reference it runs.
	Target string
}

// PyProject is the subset of a pyproject.toml the installer reads.
type PyProject struct {
	Name string

	// Scripts holds [project.scripts] followed by [tool.poetry.scripts], in document order.
	Scripts []Script
}

type pyProjectDoc struct {
	Project struct {
		Name    string            `toml:"name"`
		Scripts map[string]string `toml:"scripts"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string         `toml:"name"`
			Scripts map[string]any `toml:"scripts"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ReadPyProject reads and decodes dir/pyproject.toml.
// The returned error wraps fs.ErrNotExist when the manifest is missing.
func ReadPyProject(dir string) (*PyProject, error) {
	path := filepath.Join(dir, PyProjectFile)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", PyProjectFile, err)
	}

	var doc pyProjectDoc
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, PyProjectFile, err)
	}

	p := &PyProject{Name: doc.Project.Name}
	if p.Name == "" {
		p.Name = doc.Tool.Poetry.Name
	}

	// Map iteration order is random, so walk the decoded keys to keep document order.
	var project, poetry []Script
	for _, key := range md.Keys() {
		switch {
		case len(key) == 3 && key[0] == "project" && key[1] == "scripts":
			project = append(project, Script{Name: key[2], Target: doc.Project.Scripts[key[2]]})
		case len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == "scripts":
			poetry = append(poetry, Script{Name: key[3], Target: poetryTarget(doc.Tool.Poetry.Scripts[key[3]])})
		}
	}

	p.Scripts = append(project, poetry...)

	return p, nil
}

// poetryTarget returns the reference of a poetry script, which is either a string
// or a table with a 'callable' or 'reference' field.
func poetryTarget(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, k := range []string{"callable", "reference"} {
			if s, ok := t[k].(string); ok {
				return s
			}
		}
	}
	return ""
}

// FirstScript returns the first declared console script.
func (p *PyProject) FirstScript() (Script, bool) {
	if len(p.Scripts) == 0 {
		return Script{}, false
	}
	return p.Scripts[0], true
}
