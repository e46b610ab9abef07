package ident

import (
	"fmt"
	"strings"

	"trail-cli/internal/model"
)

type TrackNotFoundError struct {
	ID string
}

func (e TrackNotFoundError) Error() string {
	return fmt.Sprintf("track not found: %s", e.ID)
}

type PrefixInUseError struct {
	Prefix  string
	TrackID string
}

func (e PrefixInUseError) Error() string {
	return fmt.Sprintf("prefix already in use: %s (track %s)", e.Prefix, e.TrackID)
}

// RenameResult reports what a prefix rename touched.
type RenameResult struct {
	TasksRenamed int `json:"tasksRenamed"`
	DepsUpdated  int `json:"depsUpdated"`
	OtherTracks  int `json:"otherTracksAffected"`
}

// Impact is the dry-run counterpart of RenameResult. TasksRenamed includes
// task IDs under the old prefix found in the track's archive file, so the
// count covers the full historical blast radius; ArchivedIDs is that
// archive portion broken out.
type Impact struct {
	TasksRenamed int `json:"tasksRenamed"`
	DepsUpdated  int `json:"depsUpdated"`
	OtherTracks  int `json:"otherTracksAffected"`
	ArchivedIDs  int `json:"archivedIds"`
}

// RenamePrefix rewrites every task ID in the named track from OLD- to NEW-,
// then every dep reference to a renamed ID in every track, and updates the
// config prefix map. The whole operation is rejected before any mutation
// when the new prefix case-insensitively matches another track's prefix.
// Self references count toward DepsUpdated but not OtherTracks.
func RenamePrefix(project *model.Project, trackID, oldPrefix, newPrefix string) (RenameResult, error) {
	track, ok := project.Track(trackID)
	if !ok {
		return RenameResult{}, TrackNotFoundError{ID: trackID}
	}
	if err := checkPrefixFree(project, trackID, newPrefix); err != nil {
		return RenameResult{}, err
	}

	oldDash := oldPrefix + "-"
	newDash := newPrefix + "-"

	var res RenameResult
	track.WalkTasks(func(task *model.Task) {
		if rest, ok := strings.CutPrefix(task.ID, oldDash); ok {
			task.ID = newDash + rest
			task.MarkDirty()
			res.TasksRenamed++
		}
	})

	for _, entry := range project.Tracks {
		updated := 0
		entry.Track.WalkTasks(func(task *model.Task) {
			changed := false
			for mi := range task.Metadata {
				m := &task.Metadata[mi]
				if m.Kind != model.MetaDep {
					continue
				}
				for li, dep := range m.List {
					if rest, ok := strings.CutPrefix(dep, oldDash); ok {
						m.List[li] = newDash + rest
						updated++
						changed = true
					}
				}
			}
			if changed {
				task.MarkDirty()
			}
		})
		res.DepsUpdated += updated
		if updated > 0 && entry.ID != trackID {
			res.OtherTracks++
		}
	}

	if project.Config.IDs.Prefixes != nil {
		project.Config.IDs.Prefixes[trackID] = newPrefix
	}
	return res, nil
}

// RenameImpact runs the same traversal as RenamePrefix without mutating
// anything. archiveText is the track's archive file content, empty when the
// file does not exist.
func RenameImpact(project *model.Project, trackID, oldPrefix, newPrefix, archiveText string) (Impact, error) {
	track, ok := project.Track(trackID)
	if !ok {
		return Impact{}, TrackNotFoundError{ID: trackID}
	}
	if err := checkPrefixFree(project, trackID, newPrefix); err != nil {
		return Impact{}, err
	}

	oldDash := oldPrefix + "-"

	var imp Impact
	track.WalkTasks(func(task *model.Task) {
		if strings.HasPrefix(task.ID, oldDash) {
			imp.TasksRenamed++
		}
	})

	for _, entry := range project.Tracks {
		updated := 0
		entry.Track.WalkTasks(func(task *model.Task) {
			for _, m := range task.Metadata {
				if m.Kind != model.MetaDep {
					continue
				}
				for _, dep := range m.List {
					if strings.HasPrefix(dep, oldDash) {
						updated++
					}
				}
			}
		})
		imp.DepsUpdated += updated
		if updated > 0 && entry.ID != trackID {
			imp.OtherTracks++
		}
	}

	// Archived task IDs appear as `OLD-...` spans in the archive text.
	imp.ArchivedIDs = strings.Count(archiveText, "`"+oldDash)
	imp.TasksRenamed += imp.ArchivedIDs

	return imp, nil
}

func checkPrefixFree(project *model.Project, trackID, newPrefix string) error {
	for id, prefix := range project.Config.IDs.Prefixes {
		if id != trackID && strings.EqualFold(prefix, newPrefix) {
			return PrefixInUseError{Prefix: prefix, TrackID: id}
		}
	}
	return nil
}
