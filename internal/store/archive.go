package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"trail-cli/internal/diag"
	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// ArchivePath returns the archive file tasks from a track are appended
// to. With archive_per_track disabled every track shares one file.
func ArchivePath(root string, cfg model.CleanConfig, trackID string) string {
	name := trackID + ".md"
	if !cfg.ArchivePerTrack {
		name = "done.md"
	}
	return filepath.Join(TrailDir(root), archiveDirName, name)
}

// AppendArchive appends done tasks to the track's archive file, creating
// it with a parseable header on first use. Archive files use the track
// file shape (a title plus a Done section) so tooling can re-read them.
func AppendArchive(root string, cfg model.CleanConfig, trackID, trackName string, tasks []*model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	path := ArchivePath(root, cfg, trackID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		title := trackName
		if !cfg.ArchivePerTrack {
			title = "Archive"
		}
		header := "# " + title + "\n\n## Done\n"
		if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		diag.Warn("archive append failed", "path", path, "err", err)
		return err
	}
	defer func() { _ = f.Close() }()

	block := strings.Join(parse.SerializeTasks(tasks, 0), "\n") + "\n"
	if _, err := f.WriteString(block); err != nil {
		diag.Warn("archive append failed", "path", path, "err", err)
		return err
	}
	return f.Close()
}
