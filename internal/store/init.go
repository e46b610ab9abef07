package store

import (
	"os"
	"path/filepath"
	"strings"

	"trail-cli/internal/model"
)

// InitProject scaffolds a fresh trail/ directory under root and returns
// the loaded empty project. An empty name defaults to the root directory's
// base name.
func InitProject(root, name string) (*model.Project, error) {
	if _, err := os.Stat(ConfigPath(root)); err == nil {
		return nil, ErrProjectExists
	}

	name = strings.TrimSpace(name)
	if name == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		name = filepath.Base(abs)
	}

	if err := os.MkdirAll(filepath.Join(TrailDir(root), tracksDirName), 0o755); err != nil {
		return nil, err
	}
	if err := SaveConfig(root, model.DefaultConfig(name)); err != nil {
		return nil, err
	}
	dir := TrailDir(root)
	if err := atomicWriteFile(dir, inboxName+".*.tmp", InboxPath(root), []byte("# Inbox\n"), 0o644); err != nil {
		return nil, err
	}

	return LoadProject(root)
}
