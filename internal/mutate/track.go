package mutate

import (
	"strings"

	"trail-cli/internal/ident"
	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// NewTrackResult reports a created track.
type NewTrackResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	File   string `json:"file"`
}

// NewTrack registers a track: slug ID from the display name, a derived
// prefix, a seeded document with empty Backlog and Done sections, and a
// config entry. The caller persists the new file and the config.
func NewTrack(project *model.Project, name string) (NewTrackResult, error) {
	id := Slugify(name)
	if id == "" {
		return NewTrackResult{}, ErrEmptyTrackName
	}
	if project.Config.TrackByID(id) != nil {
		return NewTrackResult{}, AlreadyExistsError{Kind: "track", ID: id}
	}

	taken := map[string]bool{}
	for _, p := range project.Config.IDs.Prefixes {
		taken[p] = true
	}
	prefix := ident.DerivePrefix(id, taken)

	file := "tracks/" + id + ".md"
	project.Config.Tracks = append(project.Config.Tracks, model.TrackConfig{
		ID:    id,
		Name:  name,
		State: model.TrackStateActive,
		File:  file,
	})
	if project.Config.IDs.Prefixes == nil {
		project.Config.IDs.Prefixes = map[string]string{}
	}
	project.Config.IDs.Prefixes[id] = prefix

	track := parse.Track("# " + name + "\n\n## Backlog\n\n## Done\n")
	project.Tracks = append(project.Tracks, model.TrackEntry{ID: id, Track: track})

	return NewTrackResult{ID: id, Name: name, Prefix: prefix, File: file}, nil
}

// Slugify turns a display name into a track ID: lowercase, runs of
// non-alphanumerics collapse to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// RenameTrack updates the display name in the config and the document
// title. The track ID, file name, and prefix are untouched.
func RenameTrack(project *model.Project, id, name string) error {
	cfg := project.Config.TrackByID(id)
	if cfg == nil {
		return NotFoundError{Kind: "track", ID: id}
	}
	cfg.Name = name
	if track, ok := project.Track(id); ok {
		setTrackTitle(track, name)
	}
	return nil
}

func setTrackTitle(track *model.Track, name string) {
	track.Title = name
	for _, node := range track.Nodes {
		if node.Literal == nil {
			continue
		}
		for i, line := range node.Literal {
			if strings.HasPrefix(line, "# ") {
				node.Literal[i] = "# " + name
				return
			}
		}
	}
	title := &model.Node{Literal: []string{"# " + name, ""}}
	track.Nodes = append([]*model.Node{title}, track.Nodes...)
}

// SetTrackState transitions a track's lifecycle state. Shelving an archived
// track is refused; activating one is allowed.
func SetTrackState(project *model.Project, id string, state model.TrackState) (bool, error) {
	cfg := project.Config.TrackByID(id)
	if cfg == nil {
		return false, NotFoundError{Kind: "track", ID: id}
	}
	if cfg.State == state {
		return false, nil
	}
	if state == model.TrackStateShelved && cfg.State == model.TrackStateArchived {
		return false, ErrTrackArchived
	}
	cfg.State = state
	return true, nil
}

// ReorderTracks applies a new order to the active tracks. orderedIDs must
// name every active track exactly once; shelved and archived entries keep
// their positions in the config.
func ReorderTracks(project *model.Project, orderedIDs []string) error {
	var activeIdx []int
	for i, tc := range project.Config.Tracks {
		if tc.State == model.TrackStateActive {
			activeIdx = append(activeIdx, i)
		}
	}
	if len(orderedIDs) != len(activeIdx) {
		return ErrIncompleteOrder
	}

	byID := map[string]model.TrackConfig{}
	for _, i := range activeIdx {
		byID[project.Config.Tracks[i].ID] = project.Config.Tracks[i]
	}
	picked := map[string]bool{}
	ordered := make([]model.TrackConfig, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		tc, ok := byID[id]
		if !ok {
			return NotFoundError{Kind: "track", ID: id}
		}
		if picked[id] {
			return ErrIncompleteOrder
		}
		picked[id] = true
		ordered = append(ordered, tc)
	}

	for n, i := range activeIdx {
		project.Config.Tracks[i] = ordered[n]
	}

	// Loaded entries mirror config order.
	var entries []model.TrackEntry
	for _, tc := range project.Config.Tracks {
		for _, e := range project.Tracks {
			if e.ID == tc.ID {
				entries = append(entries, e)
				break
			}
		}
	}
	project.Tracks = entries
	return nil
}

// TrackStats counts a track's tasks by state, subtasks included.
type TrackStats struct {
	Total   int `json:"total"`
	Todo    int `json:"todo"`
	Active  int `json:"active"`
	Blocked int `json:"blocked"`
	Done    int `json:"done"`
	Parked  int `json:"parked"`
}

// Stats tallies the track.
func Stats(track *model.Track) TrackStats {
	var s TrackStats
	track.WalkTasks(func(task *model.Task) {
		s.Total++
		switch task.State {
		case model.StateTodo:
			s.Todo++
		case model.StateActive:
			s.Active++
		case model.StateBlocked:
			s.Blocked++
		case model.StateDone:
			s.Done++
		case model.StateParked:
			s.Parked++
		}
	})
	return s
}
