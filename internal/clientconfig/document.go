// Package clientconfig reads and rewrites MCP client configuration files,
// JSON documents holding a single 'mcpServers' object keyed by server name.
package clientconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/perms"
)

const (
	serversKey = "mcpServers"
	commandKey = "command"
	argsKey    = "args"
	envKey     = "env"
)

// ErrInvalidDocument is returned when a config file is not a JSON object or its 'mcpServers' value is not an object.
var ErrInvalidDocument = errors.New("invalid client config document")

// ServerEntry is the launch configuration of a single server.
type ServerEntry struct {
	Command string            `json:"command"       yaml:"command"`
	Args    []string          `json:"args"          yaml:"args"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Document is a client config file loaded into memory.
// Top-level keys other than 'mcpServers', and per-server keys other than command, args and env,
// are kept as raw JSON and written back unchanged.
type Document struct {
	path    string
	top     map[string]json.RawMessage
	servers map[string]map[string]json.RawMessage
}

// Load reads the document at path. A missing or blank file yields an empty document.
func Load(path string) (*Document, error) {
	doc := &Document{
		path:    path,
		top:     map[string]json.RawMessage{},
		servers: map[string]map[string]json.RawMessage{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read client config (%s): %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc.top); err != nil || doc.top == nil {
		return nil, fmt.Errorf("%w (%s): top level must be a JSON object", ErrInvalidDocument, path)
	}

	raw, ok := doc.top[serversKey]
	delete(doc.top, serversKey)
	if !ok || isNull(raw) {
		return doc, nil
	}

	var servers map[string]json.RawMessage
	if err := json.Unmarshal(raw, &servers); err != nil {
		return nil, fmt.Errorf("%w (%s): '%s' must be an object", ErrInvalidDocument, path, serversKey)
	}

	for name, v := range servers {
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(v, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w (%s): server '%s' must be an object", ErrInvalidDocument, path, name)
		}
		doc.servers[name] = fields
	}

	return doc, nil
}

// Path returns the file the document is loaded from and saved to.
func (d *Document) Path() string {
	return d.path
}

// Names returns the configured server names in lexical order.
func (d *Document) Names() []string {
	return slices.Sorted(maps.Keys(d.servers))
}

// Has reports whether a server named name is configured.
func (d *Document) Has(name string) bool {
	_, ok := d.servers[name]
	return ok
}

// Get returns the launch configuration of the named server.
func (d *Document) Get(name string) (ServerEntry, bool) {
	fields, ok := d.servers[name]
	if !ok {
		return ServerEntry{}, false
	}

	var entry ServerEntry
	_ = json.Unmarshal(fields[commandKey], &entry.Command)
	_ = json.Unmarshal(fields[argsKey], &entry.Args)
	_ = json.Unmarshal(fields[envKey], &entry.Env)

	return entry, true
}

// Set adds or replaces the named server's command and args.
// Env values already present in the document are kept; keys only known to entry are added.
// Other keys of an existing entry (e.g. 'disabled' or 'autoApprove') are left untouched.
func (d *Document) Set(name string, entry ServerEntry) error {
	fields, ok := d.servers[name]
	if !ok {
		fields = map[string]json.RawMessage{}
	}

	command, err := json.Marshal(entry.Command)
	if err != nil {
		return err
	}
	args := entry.Args
	if args == nil {
		args = []string{}
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return err
	}
	fields[commandKey] = command
	fields[argsKey] = rawArgs

	env := map[string]string{}
	_ = json.Unmarshal(fields[envKey], &env)
	for k, v := range entry.Env {
		if _, exists := env[k]; !exists {
			env[k] = v
		}
	}
	if len(env) > 0 {
		rawEnv, err := json.Marshal(env)
		if err != nil {
			return err
		}
		fields[envKey] = rawEnv
	}

	d.servers[name] = fields

	return nil
}

// Remove deletes every named server that is present and returns the names actually removed, in argument order.
func (d *Document) Remove(names ...string) []string {
	var removed []string
	for _, name := range names {
		if _, ok := d.servers[name]; !ok {
			continue
		}
		delete(d.servers, name)
		removed = append(removed, name)
	}
	return removed
}

// Save writes the document back to its path with two-space indentation, creating parent directories as needed.
func (d *Document) Save() error {
	out := make(map[string]any, len(d.top)+1)
	for k, v := range d.top {
		out[k] = v
	}
	out[serversKey] = d.servers

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode client config (%s): %w", d.path, err)
	}
	data = append(data, '\n')

	if err := files.EnsureDir(filepath.Dir(d.path)); err != nil {
		return err
	}

	if err := os.WriteFile(d.path, data, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write client config (%s): %w", d.path, err)
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
