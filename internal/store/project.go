package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"trail-cli/internal/diag"
	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// LoadProject reads the config and every configured track plus the inbox.
// Archived tracks whose file has been removed are skipped; active and
// shelved tracks must load.
func LoadProject(root string) (*model.Project, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoProject
		}
		return nil, err
	}

	p := &model.Project{
		Root:     root,
		TrailDir: TrailDir(root),
		Config:   cfg,
	}

	for _, tc := range cfg.Tracks {
		b, err := os.ReadFile(TrackPath(root, tc.File))
		if err != nil {
			if tc.State == model.TrackStateArchived && errors.Is(err, os.ErrNotExist) {
				diag.Debug("archived track file missing", "track", tc.ID, "file", tc.File)
				continue
			}
			return nil, fmt.Errorf("track %s: %w", tc.ID, err)
		}
		p.Tracks = append(p.Tracks, model.TrackEntry{ID: tc.ID, Track: parse.Track(string(b))})
	}

	if b, err := os.ReadFile(InboxPath(root)); err == nil {
		p.Inbox = parse.Inbox(string(b))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return p, nil
}

// SaveTrack serializes one track to its config-relative file.
func SaveTrack(root, file string, track *model.Track) error {
	path := TrackPath(root, file)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b := []byte(parse.SerializeTrack(track))
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644)
}

// SaveInbox serializes the inbox to trail/inbox.md.
func SaveInbox(root string, inbox *model.Inbox) error {
	dir := TrailDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b := []byte(parse.SerializeInbox(inbox))
	return atomicWriteFile(dir, inboxName+".*.tmp", InboxPath(root), b, 0o644)
}

// SaveSummary writes the generated ACTIVE.md.
func SaveSummary(root, text string) error {
	dir := TrailDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, summaryName+".*.tmp", SummaryPath(root), []byte(text), 0o644)
}

// SaveProject writes the config, every loaded track, and the inbox.
// Serialization is round-trip safe for untouched tasks, so rewriting
// everything is cheap and avoids per-file dirty bookkeeping.
func SaveProject(p *model.Project) error {
	if err := SaveConfig(p.Root, p.Config); err != nil {
		return err
	}
	for _, e := range p.Tracks {
		tc := p.Config.TrackByID(e.ID)
		if tc == nil {
			return fmt.Errorf("track %s: not in config", e.ID)
		}
		if err := SaveTrack(p.Root, tc.File, e.Track); err != nil {
			return err
		}
	}
	if p.Inbox != nil {
		if err := SaveInbox(p.Root, p.Inbox); err != nil {
			return err
		}
	}
	return nil
}
