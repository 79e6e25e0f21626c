package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/flowvibe/mcp-installer/internal/clientconfig"
	"github.com/flowvibe/mcp-installer/internal/files"
	"github.com/flowvibe/mcp-installer/internal/manifest"
)

// List reports every server directory in the base directory, in lexical order.
// A missing base directory yields an empty list.
func (m *Manager) List(_ context.Context) ([]InstalledServer, error) {
	dirs, err := files.SubDirs(m.settings.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []InstalledServer{}, nil
		}
		return nil, err
	}

	doc, err := clientconfig.Load(m.writer.BasePath())
	if err != nil {
		m.logger.Warn("Failed to read base config", "path", m.writer.BasePath(), "error", err)
		doc = nil
	}

	servers := make([]InstalledServer, 0, len(dirs))
	for _, name := range dirs {
		dir := filepath.Join(m.settings.BaseDir, name)
		s := InstalledServer{
			Name:        name,
			Dir:         dir,
			ProjectType: manifest.DetectProjectType(dir),
		}

		if s.ProjectType.IsPython() {
			if ep, err := m.finder.PythonEntryPoint(dir); err == nil {
				s.EntryPoint = ep.Target()
			}
		} else if ep, err := m.finder.NodeEntryPoint(dir); err == nil {
			s.EntryPoint = ep
		}

		_, s.HasSource = m.finder.SourceFile(dir)
		s.Configured = doc != nil && doc.Has(name)

		servers = append(servers, s)
	}

	return servers, nil
}
