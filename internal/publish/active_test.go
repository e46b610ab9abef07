package publish

import (
	"strings"
	"testing"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

func summaryProject() *model.Project {
	effects := parse.Track("# Effect System\n" +
		"\n" +
		"## Backlog\n" +
		"\n" +
		"- [ ] `EFF-001` Relay design #core\n" +
		"  - added: 2025-01-10\n" +
		"  - [ ] `EFF-001.1` Sub work\n" +
		"- [>] Unlabeled follow-up\n" +
		"\n" +
		"## Done\n" +
		"\n" +
		"- [x] `EFF-002` Shipped\n")
	infra := parse.Track("# Infra\n\n## Backlog\n\n## Done\n")
	side := parse.Track("# Side\n\n## Backlog\n\n- [ ] `SID-001` Hidden\n")

	return &model.Project{
		Config: model.ProjectConfig{
			Project: model.ProjectInfo{Name: "demo"},
			Tracks: []model.TrackConfig{
				{ID: "effects", Name: "Effect System", State: model.TrackStateActive, File: "tracks/effects.md"},
				{ID: "infra", Name: "Infra", State: model.TrackStateActive, File: "tracks/infra.md"},
				{ID: "side", Name: "Side", State: model.TrackStateShelved, File: "tracks/side.md"},
			},
		},
		Tracks: []model.TrackEntry{
			{ID: "effects", Track: effects},
			{ID: "infra", Track: infra},
			{ID: "side", Track: side},
		},
	}
}

func TestActiveSummary(t *testing.T) {
	got := ActiveSummary(summaryProject())

	want := "# demo — Active Tasks\n" +
		"\n" +
		"> Auto-generated by `trail clean`. Do not edit.\n" +
		"\n" +
		"## Effect System\n" +
		"\n" +
		"- [ ] `EFF-001` Relay design #core\n" +
		"- [>] Unlabeled follow-up\n" +
		"\n" +
		"## Infra\n" +
		"\n" +
		"(empty backlog)"
	if got != want {
		t.Errorf("expected summary:\n%s\ngot:\n%s", want, got)
	}
}

func TestActiveSummarySkipsShelved(t *testing.T) {
	got := ActiveSummary(summaryProject())
	if strings.Contains(got, "Hidden") || strings.Contains(got, "## Side") {
		t.Errorf("expected shelved track excluded; got:\n%s", got)
	}
}

func TestActiveSummarySubtasksNotListed(t *testing.T) {
	got := ActiveSummary(summaryProject())
	if strings.Contains(got, "EFF-001.1") {
		t.Errorf("expected only top-level backlog tasks; got:\n%s", got)
	}
}

func TestActiveSummaryDoneNotListed(t *testing.T) {
	got := ActiveSummary(summaryProject())
	if strings.Contains(got, "EFF-002") {
		t.Errorf("expected done tasks excluded; got:\n%s", got)
	}
}
