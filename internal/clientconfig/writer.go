package clientconfig

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/files"
)

// Writer applies install and uninstall changes across the base config file and the client config files.
type Writer struct {
	logger   hclog.Logger
	basePath string
	clients  []config.Client
}

// NewWriter returns a Writer for the base config file at basePath and the given clients.
func NewWriter(logger hclog.Logger, basePath string, clients []config.Client) *Writer {
	return &Writer{
		logger:   logger.Named("clientconfig"),
		basePath: basePath,
		clients:  clients,
	}
}

// BasePath returns the path of the base config file.
func (w *Writer) BasePath() string {
	return w.basePath
}

// Install writes entry under name into the base config file, creating it if missing,
// then into every existing client config file that is not a base file.
// Only a failure to update the base file is returned; client failures are logged and skipped.
// The returned paths are the files that were written.
func (w *Writer) Install(name string, entry ServerEntry) ([]string, error) {
	doc, err := Load(w.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to update MCP config: %w", err)
	}
	if err := doc.Set(name, entry); err != nil {
		return nil, fmt.Errorf("failed to update MCP config: %w", err)
	}
	if err := doc.Save(); err != nil {
		return nil, fmt.Errorf("failed to update MCP config: %w", err)
	}

	updated := []string{w.basePath}
	w.logger.Info("Updated base config", "path", w.basePath, "server", name)

	for _, c := range w.targets() {
		doc, err := Load(c.Path)
		if err != nil {
			w.logger.Warn("Skipping client config", "client", c.Name, "path", c.Path, "error", err)
			continue
		}
		if err := doc.Set(name, entry); err != nil {
			w.logger.Warn("Skipping client config", "client", c.Name, "path", c.Path, "error", err)
			continue
		}
		if err := doc.Save(); err != nil {
			w.logger.Warn("Skipping client config", "client", c.Name, "path", c.Path, "error", err)
			continue
		}
		w.logger.Info("Updated client config", "client", c.Name, "path", c.Path, "server", name)
		updated = append(updated, c.Path)
	}

	return updated, nil
}

// Uninstall removes every given name from each existing client config file that is not a base file.
// Files in which nothing matched are left untouched. Failures are logged and skipped.
// The returned paths are the files that were rewritten.
func (w *Writer) Uninstall(names ...string) []string {
	var updated []string

	for _, c := range w.targets() {
		doc, err := Load(c.Path)
		if err != nil {
			w.logger.Warn("Skipping client config", "client", c.Name, "path", c.Path, "error", err)
			continue
		}

		removed := doc.Remove(names...)
		if len(removed) == 0 {
			continue
		}

		if err := doc.Save(); err != nil {
			w.logger.Warn("Skipping client config", "client", c.Name, "path", c.Path, "error", err)
			continue
		}
		w.logger.Info("Removed servers from client config", "client", c.Name, "path", c.Path, "servers", removed)
		updated = append(updated, c.Path)
	}

	return updated
}

// targets returns the clients whose config file exists and is not a base file.
func (w *Writer) targets() []config.Client {
	var out []config.Client
	for _, c := range w.clients {
		if c.Base || w.isBasePath(c.Path) {
			continue
		}
		if !files.IsRegularFile(c.Path) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (w *Writer) isBasePath(path string) bool {
	return filepath.Clean(path) == filepath.Clean(w.basePath)
}
