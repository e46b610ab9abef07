package model

// TrackEntry pairs a track ID with its parsed file.
type TrackEntry struct {
	ID    string
	Track *Track
}

// Project is a fully loaded trail project.
type Project struct {
	// Root is the project root (the parent of the trail directory).
	Root string
	// TrailDir is the trail/ data directory.
	TrailDir string
	Config   ProjectConfig
	// Tracks holds loaded tracks in config order.
	Tracks []TrackEntry
	Inbox  *Inbox
}

// Track returns the loaded track with the given ID.
func (p *Project) Track(id string) (*Track, bool) {
	for _, e := range p.Tracks {
		if e.ID == id {
			return e.Track, true
		}
	}
	return nil, false
}

// FindTask locates a task by ID across all loaded tracks, returning the
// owning track's ID.
func (p *Project) FindTask(id string) (*Task, string, bool) {
	for _, e := range p.Tracks {
		if t, ok := e.Track.FindTask(id); ok {
			return t, e.ID, true
		}
	}
	return nil, "", false
}
