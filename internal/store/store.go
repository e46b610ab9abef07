// Package store reads and writes trail projects on disk.
//
// A project is a directory containing a trail/ data directory:
//
//	<root>/trail/project.toml
//	<root>/trail/inbox.md
//	<root>/trail/tracks/<id>.md
//	<root>/trail/archive/<id>.md
//	<root>/trail/ACTIVE.md
//
// Everything is plain text; the store never holds files open between
// calls, so external editors and version control stay first-class.
package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	TrailDirName = "trail"

	configName     = "project.toml"
	inboxName      = "inbox.md"
	tracksDirName  = "tracks"
	archiveDirName = "archive"
	summaryName    = "ACTIVE.md"
	lockName       = ".lock"
)

// ErrNoProject reports that no trail project was found at or above the
// requested directory.
var ErrNoProject = errors.New("no trail project found")

// ErrProjectExists reports that InitProject was pointed at a directory
// that already holds a project.
var ErrProjectExists = errors.New("trail project already initialized")

// TrailDir returns the trail/ data directory under a project root.
func TrailDir(root string) string {
	return filepath.Join(root, TrailDirName)
}

// ConfigPath returns the project.toml path under a project root.
func ConfigPath(root string) string {
	return filepath.Join(TrailDir(root), configName)
}

// InboxPath returns the inbox.md path under a project root.
func InboxPath(root string) string {
	return filepath.Join(TrailDir(root), inboxName)
}

// SummaryPath returns the generated ACTIVE.md path under a project root.
func SummaryPath(root string) string {
	return filepath.Join(TrailDir(root), summaryName)
}

// TrackPath resolves a config-relative track file ("tracks/effects.md")
// against the project root.
func TrackPath(root, file string) string {
	return filepath.Join(TrailDir(root), filepath.FromSlash(file))
}

// DiscoverRoot walks up from start looking for a trail/project.toml and
// returns the containing directory.
func DiscoverRoot(start string) (string, bool) {
	dir := start
	for {
		if st, err := os.Stat(ConfigPath(dir)); err == nil && !st.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveRoot returns the project root to operate on. An explicit dir is
// trusted (it must hold a project); otherwise discovery starts at the CWD.
func ResolveRoot(dir string) (string, error) {
	if strings.TrimSpace(dir) != "" {
		if st, err := os.Stat(ConfigPath(dir)); err != nil || st.IsDir() {
			return "", ErrNoProject
		}
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverRoot(cwd); ok {
		return found, nil
	}
	return "", ErrNoProject
}

// ConfigDir returns the per-user trail config directory. TRAIL_CONFIG_DIR
// overrides it (keeps unit tests from touching ~/.trail).
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TRAIL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trail"), nil
}

// atomicWriteFile writes b to path via a uniquely named temp file in dir
// plus rename, so concurrent writers never interleave partial content.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
