package mutate

import (
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

// buildProject assembles an in-memory project from (trackID, prefix,
// source) triples, in order. An empty prefix leaves the track without one.
func buildProject(specs ...[3]string) *model.Project {
	project := &model.Project{
		Config: model.ProjectConfig{
			Project: model.ProjectInfo{Name: "demo"},
			Clean:   model.DefaultCleanConfig(),
			IDs:     model.IDConfig{Prefixes: map[string]string{}},
		},
	}
	for _, s := range specs {
		id, prefix, src := s[0], s[1], s[2]
		project.Config.Tracks = append(project.Config.Tracks, model.TrackConfig{
			ID:    id,
			Name:  id,
			State: model.TrackStateActive,
			File:  "tracks/" + id + ".md",
		})
		if prefix != "" {
			project.Config.IDs.Prefixes[id] = prefix
		}
		project.Tracks = append(project.Tracks, model.TrackEntry{ID: id, Track: parse.Track(src)})
	}
	return project
}

func effectsProject() *model.Project {
	return buildProject([3]string{"effects", "EFF", effectsSrc})
}

const effectsSrc = "# Effects\n" +
	"\n" +
	"## Backlog\n" +
	"\n" +
	"- [ ] `EFF-001` Relay design #core\n" +
	"  - added: 2025-01-10\n" +
	"  - dep: EFF-002\n" +
	"  - [ ] `EFF-001.1` Draft syntax\n" +
	"- [>] `EFF-002` Handler codegen\n" +
	"  - added: 2025-01-11\n" +
	"- [ ] `EFF-003` Docs pass\n" +
	"\n" +
	"## Parked\n" +
	"\n" +
	"- [~] `EFF-010` Effect tracing\n" +
	"\n" +
	"## Done\n" +
	"\n" +
	"- [x] `EFF-004` Bootstrap repo\n" +
	"  - added: 2025-01-02\n" +
	"  - resolved: 2025-01-05\n"

const infraSrc = "# Infra\n" +
	"\n" +
	"## Backlog\n" +
	"\n" +
	"- [ ] `INF-001` CI cache\n" +
	"  - dep: EFF-001\n" +
	"\n" +
	"## Done\n"

func backlogIDs(project *model.Project, trackID string) []string {
	track, _ := project.Track(trackID)
	var ids []string
	for _, task := range track.Backlog() {
		ids = append(ids, task.ID)
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
