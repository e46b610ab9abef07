package model

// ProjectConfig is the parsed trail/project.toml.
type ProjectConfig struct {
	Project ProjectInfo   `toml:"project" json:"project"`
	Tracks  []TrackConfig `toml:"tracks" json:"tracks"`
	Clean   CleanConfig   `toml:"clean" json:"clean"`
	IDs     IDConfig      `toml:"ids" json:"ids"`
}

type ProjectInfo struct {
	Name string `toml:"name" json:"name"`
}

type TrackConfig struct {
	ID    string     `toml:"id" json:"id"`
	Name  string     `toml:"name" json:"name"`
	State TrackState `toml:"state" json:"state"`
	File  string     `toml:"file" json:"file"`
}

// CleanConfig controls the clean pipeline.
type CleanConfig struct {
	AutoClean       bool `toml:"auto_clean" json:"autoClean"`
	DoneThreshold   int  `toml:"done_threshold" json:"doneThreshold"`
	DoneRetain      int  `toml:"done_retain" json:"doneRetain"`
	ArchivePerTrack bool `toml:"archive_per_track" json:"archivePerTrack"`
}

// DefaultCleanConfig returns the defaults applied when [clean] keys are
// absent from project.toml.
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		AutoClean:       true,
		DoneThreshold:   100,
		DoneRetain:      10,
		ArchivePerTrack: true,
	}
}

// IDConfig maps track IDs to their task ID prefixes.
type IDConfig struct {
	Prefixes map[string]string `toml:"prefixes" json:"prefixes"`
}

// DefaultConfig returns the config a fresh project starts with.
func DefaultConfig(name string) ProjectConfig {
	return ProjectConfig{
		Project: ProjectInfo{Name: name},
		Clean:   DefaultCleanConfig(),
		IDs:     IDConfig{Prefixes: map[string]string{}},
	}
}

// TrackByID returns the config entry for a track, or nil.
func (c *ProjectConfig) TrackByID(id string) *TrackConfig {
	for i := range c.Tracks {
		if c.Tracks[i].ID == id {
			return &c.Tracks[i]
		}
	}
	return nil
}

// Prefix returns the task ID prefix configured for a track.
func (c *ProjectConfig) Prefix(trackID string) (string, bool) {
	p, ok := c.IDs.Prefixes[trackID]
	return p, ok
}

// ActiveTracks returns the active-track config entries in file order.
func (c *ProjectConfig) ActiveTracks() []TrackConfig {
	var out []TrackConfig
	for _, tc := range c.Tracks {
		if tc.State == TrackStateActive {
			out = append(out, tc)
		}
	}
	return out
}
