package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// PackageJSONFile is the name of the Node package manifest.
const PackageJSONFile = "package.json"

// PackageJSON is the subset of a package.json the installer reads.
type PackageJSON struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Main    string            `json:"main"`
	Bin     Bin               `json:"bin"`
	Scripts map[string]string `json:"scripts"`

	// Repository is either a string or an object with a 'url' field.
	Repository json.RawMessage `json:"repository"`
}

// Bin holds the 'bin' field, which may be a single path or a map of command name to path.
// Map entries keep the order they appear in the manifest.
type Bin struct {
	Path    string
	Entries []BinEntry
}

// BinEntry is one command of a 'bin' map.
type BinEntry struct {
	Name string
	Path string
}

// UnmarshalJSON accepts either a string or an object for the 'bin' field.
func (b *Bin) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &b.Path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("bin must be a string or an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		path, ok := value.(string)
		if !ok {
			continue
		}
		b.Entries = append(b.Entries, BinEntry{Name: key, Path: path})
	}

	return nil
}

// IsZero reports whether no bin was declared.
func (b Bin) IsZero() bool {
	return b.Path == "" && len(b.Entries) == 0
}

// ReadPackageJSON reads and decodes dir/package.json.
// The returned error wraps fs.ErrNotExist when the manifest is missing.
func ReadPackageJSON(dir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, PackageJSONFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", PackageJSONFile, err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, PackageJSONFile, err)
	}

	return &pkg, nil
}

// BinPath returns the preferred executable from the 'bin' field.
// A string bin is returned as is. For a map, the entry named after the package wins,
// then the first entry whose name ends in '-server', then the first entry.
func (p *PackageJSON) BinPath() string {
	if p.Bin.Path != "" {
		return p.Bin.Path
	}
	if len(p.Bin.Entries) == 0 {
		return ""
	}

	for _, e := range p.Bin.Entries {
		if p.Name != "" && e.Name == p.Name {
			return e.Path
		}
	}

	for _, e := range p.Bin.Entries {
		if strings.HasSuffix(e.Name, "-server") {
			return e.Path
		}
	}

	return p.Bin.Entries[0].Path
}

// HasScript reports whether the manifest declares the named script.
func (p *PackageJSON) HasScript(name string) bool {
	_, ok := p.Scripts[name]
	return ok
}

// StartScriptTarget returns the file passed to 'node' in the 'start' script, if any.
// Flags between 'node' and the file are skipped, e.g. "node --enable-source-maps dist/index.js".
func (p *PackageJSON) StartScriptTarget() string {
	start := strings.TrimSpace(p.Scripts["start"])
	if start == "" {
		return ""
	}

	words, err := shellquote.Split(start)
	if err != nil {
		return ""
	}

	for i, w := range words {
		if w != "node" && !strings.HasSuffix(w, "/node") {
			continue
		}
		for _, arg := range words[i+1:] {
			if strings.HasPrefix(arg, "-") {
				continue
			}
			return arg
		}
	}

	return ""
}

// ScopelessName returns the package name without an npm scope, e.g. '@org/server-x' becomes 'server-x'.
func (p *PackageJSON) ScopelessName() string {
	name := p.Name
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return name
}

// RepositoryURL returns the repository URL from either the string or object form.
func (p *PackageJSON) RepositoryURL() string {
	if len(p.Repository) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(p.Repository, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(p.Repository, &obj); err == nil {
		return strings.TrimSpace(obj.URL)
	}

	return ""
}

// IsNotExist reports whether err was caused by a missing manifest.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
