package check

import (
	"os"
	"path/filepath"
	"testing"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

func checkProject(t *testing.T) *model.Project {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "doc"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "doc", "spec.md"), []byte("# ok\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	effects := parse.Track("# Effects\n" +
		"\n" +
		"## Backlog\n" +
		"\n" +
		"- [ ] `EFF-001` Good task\n" +
		"  - added: 2025-05-01\n" +
		"  - dep: EFF-002\n" +
		"  - spec: doc/spec.md#closure-effects\n" +
		"  - ref: https://example.com/handler-paper\n" +
		"- [ ] `EFF-002` Dangling dep holder\n" +
		"  - added: 2025-05-01\n" +
		"  - dep: EFF-999\n" +
		"  - ref: doc/missing.md\n" +
		"- [ ] No id here\n" +
		"- [x] `EFF-003` Done in backlog\n" +
		"  - added: 2025-05-01\n" +
		"\n" +
		"## Done\n" +
		"\n" +
		"- [x] `EFF-004` Done ok\n" +
		"  - added: 2025-05-01\n" +
		"  - resolved: 2025-05-02\n")
	infra := parse.Track("# Infra\n" +
		"\n" +
		"## Backlog\n" +
		"\n" +
		"- [ ] `EFF-001` Duplicate across tracks\n" +
		"  - added: 2025-05-01\n" +
		"- [ ] `INF-001` Broken spec\n" +
		"  - added: 2025-05-01\n" +
		"  - spec: doc/nope.md#sec\n" +
		"\n" +
		"## Done\n")

	return &model.Project{
		Root: root,
		Config: model.ProjectConfig{
			Project: model.ProjectInfo{Name: "lace"},
			Tracks: []model.TrackConfig{
				{ID: "effects", Name: "Effects", State: model.TrackStateActive, File: "tracks/effects.md"},
				{ID: "infra", Name: "Infra", State: model.TrackStateActive, File: "tracks/infra.md"},
			},
			IDs: model.IDConfig{Prefixes: map[string]string{"effects": "EFF", "infra": "INF"}},
		},
		Tracks: []model.TrackEntry{
			{ID: "effects", Track: effects},
			{ID: "infra", Track: infra},
		},
	}
}

func findIssues(issues []Issue, kind string) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}

func TestCheckProjectErrors(t *testing.T) {
	report := CheckProject(checkProject(t))

	if report.Valid {
		t.Error("report should not be valid")
	}
	if len(report.Errors) != 4 {
		t.Fatalf("expected 4 errors; got %d: %+v", len(report.Errors), report.Errors)
	}

	dangling := findIssues(report.Errors, "dangling_dep")
	if len(dangling) != 1 || dangling[0].TaskID != "EFF-002" || dangling[0].Detail != "EFF-999" {
		t.Errorf("unexpected dangling deps %+v", dangling)
	}

	brokenRef := findIssues(report.Errors, "broken_ref")
	if len(brokenRef) != 1 || brokenRef[0].Detail != "doc/missing.md" {
		t.Errorf("unexpected broken refs %+v", brokenRef)
	}

	brokenSpec := findIssues(report.Errors, "broken_spec")
	if len(brokenSpec) != 1 || brokenSpec[0].Detail != "doc/nope.md#sec" {
		t.Errorf("fragment should be reported intact: %+v", brokenSpec)
	}

	dup := findIssues(report.Errors, "duplicate_id")
	if len(dup) != 1 || dup[0].TaskID != "EFF-001" {
		t.Fatalf("unexpected duplicates %+v", dup)
	}
	if len(dup[0].Tracks) != 2 || dup[0].Tracks[0] != "effects" || dup[0].Tracks[1] != "infra" {
		t.Errorf("duplicate should list every track: %v", dup[0].Tracks)
	}
}

func TestCheckProjectWarnings(t *testing.T) {
	report := CheckProject(checkProject(t))

	if len(report.Warnings) != 3 {
		t.Fatalf("expected 3 warnings; got %d: %+v", len(report.Warnings), report.Warnings)
	}
	if report.Warnings[0].Kind != "missing_id" || report.Warnings[0].Detail != "No id here" {
		t.Errorf("unexpected warning %+v", report.Warnings[0])
	}
	if report.Warnings[1].Kind != "missing_resolved" || report.Warnings[1].TaskID != "EFF-003" {
		t.Errorf("unexpected warning %+v", report.Warnings[1])
	}
	if report.Warnings[2].Kind != "done_in_backlog" || report.Warnings[2].TaskID != "EFF-003" {
		t.Errorf("unexpected warning %+v", report.Warnings[2])
	}
}

func TestCheckProjectDuplicateWithinTrack(t *testing.T) {
	track := parse.Track("# T\n" +
		"\n" +
		"## Backlog\n" +
		"\n" +
		"- [ ] `T-001` First\n" +
		"  - added: 2025-05-01\n" +
		"- [ ] `T-001` Second with same id\n" +
		"  - added: 2025-05-01\n" +
		"\n" +
		"## Done\n")
	project := &model.Project{
		Root:   t.TempDir(),
		Tracks: []model.TrackEntry{{ID: "t", Track: track}},
	}
	report := CheckProject(project)
	dup := findIssues(report.Errors, "duplicate_id")
	if len(dup) != 1 {
		t.Fatalf("expected 1 duplicate; got %+v", report.Errors)
	}
	if len(dup[0].Tracks) != 2 || dup[0].Tracks[0] != "t" || dup[0].Tracks[1] != "t" {
		t.Errorf("within-track repeats should be counted: %v", dup[0].Tracks)
	}
}

func TestCheckProjectReportsDroppedInboxLines(t *testing.T) {
	project := &model.Project{
		Root: t.TempDir(),
		Inbox: parse.Inbox("# Inbox\n" +
			"\n" +
			"- Real item\n" +
			"\n" +
			"stray prose between items\n" +
			"\n" +
			"- Another item\n"),
	}
	report := CheckProject(project)
	if !report.Valid {
		t.Errorf("dropped lines are warnings, not errors: %+v", report.Errors)
	}
	dropped := findIssues(report.Warnings, "inbox_dropped")
	if len(dropped) != 1 {
		t.Fatalf("expected 1 dropped-line warning; got %+v", report.Warnings)
	}
	if dropped[0].Detail != "line 5: stray prose between items" {
		t.Errorf("unexpected detail %q", dropped[0].Detail)
	}
}

func TestCheckProjectValid(t *testing.T) {
	track := parse.Track("# T\n" +
		"\n" +
		"## Backlog\n" +
		"\n" +
		"- [ ] `T-001` Fine\n" +
		"  - added: 2025-05-01\n" +
		"\n" +
		"## Done\n")
	project := &model.Project{
		Root:   t.TempDir(),
		Tracks: []model.TrackEntry{{ID: "t", Track: track}},
	}
	report := CheckProject(project)
	if !report.Valid {
		t.Errorf("expected valid; got errors %+v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("expected no warnings; got %+v", report.Warnings)
	}
}
