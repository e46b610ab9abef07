package parse

import (
	"strings"
	"testing"

	"trail-cli/internal/model"
)

const effectTrack = `# Effect System

> Design and implement the algebraic effect system.

Some freeform prose that stays literal.

## Backlog

- [>] ` + "`EFF-014`" + ` Implement effect inference for closures #core
  - added: 2025-05-10
  - dep: EFF-003
  - note:
    Tricky bits:

    ` + "```lace" + `
    handle(e) { ... }
    ` + "```" + `

    Needs careful tests.
- [ ] ` + "`EFF-015`" + ` Effect handler optimization pass
  - dep: EFF-014
  - [ ] ` + "`EFF-015.1`" + ` Benchmark baseline
    - added: 2025-05-11
  - [ ] ` + "`EFF-015.2`" + ` Inline simple handlers

## Parked

- [~] ` + "`EFF-020`" + ` Higher-order effect handlers #research

## Notes

Free text section kept verbatim.

## Done

- [x] ` + "`EFF-003`" + ` Implement effect handler desugaring #core
  - resolved: 2025-05-14
- [x] ` + "`EFF-002`" + ` Parse effect declarations #parser
  - added: 2025-05-10
  - resolved: 2025-05-12
`

func TestParseTrackStructure(t *testing.T) {
	track := Track(effectTrack)

	if track.Title != "Effect System" {
		t.Errorf("unexpected title %q", track.Title)
	}
	if track.Description != "Design and implement the algebraic effect system." {
		t.Errorf("unexpected description %q", track.Description)
	}

	sections := track.Sections()
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections; got %d", len(sections))
	}
	if sections[0].Kind != model.SectionBacklog || sections[1].Kind != model.SectionParked || sections[2].Kind != model.SectionDone {
		t.Errorf("unexpected section order %v %v %v", sections[0].Kind, sections[1].Kind, sections[2].Kind)
	}

	backlog := sections[0]
	if len(backlog.Tasks) != 2 {
		t.Fatalf("expected 2 backlog tasks; got %d", len(backlog.Tasks))
	}
	if backlog.Tasks[0].ID != "EFF-014" || backlog.Tasks[0].State != model.StateActive {
		t.Errorf("unexpected first task %q %s", backlog.Tasks[0].ID, backlog.Tasks[0].State)
	}
	if note, ok := backlog.Tasks[0].Note(); !ok || !strings.Contains(note, "```lace") {
		t.Errorf("fenced note lost: %q", note)
	}
	if len(backlog.Tasks[1].Subtasks) != 2 {
		t.Errorf("expected 2 subtasks on EFF-015; got %d", len(backlog.Tasks[1].Subtasks))
	}

	if len(sections[2].Tasks) != 2 {
		t.Errorf("expected 2 done tasks; got %d", len(sections[2].Tasks))
	}

	// The unknown "## Notes" heading stays a literal node, not a section.
	literals := 0
	for _, node := range track.Nodes {
		if node.Literal != nil {
			literals++
		}
	}
	if literals != 3 {
		t.Errorf("expected 3 literal nodes; got %d", literals)
	}

	task, ok := track.FindTask("EFF-015.2")
	if !ok || task.Title != "Inline simple handlers" {
		t.Errorf("FindTask failed: %v %+v", ok, task)
	}
}

func TestParseTrackHeadingCaseInsensitive(t *testing.T) {
	track := Track("# T\n\n## BACKLOG\n\n- [ ] Task one\n")
	if track.Backlog() == nil {
		t.Fatal("uppercase heading should still parse as a section")
	}
	if len(track.Backlog()) != 1 {
		t.Errorf("expected 1 task; got %d", len(track.Backlog()))
	}
}

func TestParseTrackLastTitleWins(t *testing.T) {
	track := Track("# First\n\n# Second\n\n## Backlog\n")
	if track.Title != "Second" {
		t.Errorf("expected last title to win; got %q", track.Title)
	}
}

func TestRoundTripFullTrack(t *testing.T) {
	track := Track(effectTrack)
	out := SerializeTrack(track)
	if out != effectTrack {
		t.Fatalf("round trip changed the file:\n--- in ---\n%s\n--- out ---\n%s", effectTrack, out)
	}
}

func TestRoundTripEmptySections(t *testing.T) {
	src := "# New Track\n\n## Backlog\n\n## Done\n"
	if out := SerializeTrack(Track(src)); out != src {
		t.Fatalf("round trip changed the file: %q", out)
	}
}

func TestRoundTripNoTrailingNewline(t *testing.T) {
	src := "# New Track\n\n## Backlog\n\n- [ ] `T-001` Only task\n\n## Done"
	if out := SerializeTrack(Track(src)); out != src {
		t.Fatalf("round trip changed the file: %q", out)
	}
}

func TestRoundTripOddSpacing(t *testing.T) {
	// Hand-edited files keep their quirks as long as no task is touched.
	src := "# Track\n\n## Backlog\n\n- [ ]   `T-001`    Extra spaces everywhere\n  - added:   2025-01-01\n\n## Done\n"
	if out := SerializeTrack(Track(src)); out != src {
		t.Fatalf("round trip changed the file: %q", out)
	}
}

func TestSelectiveRewrite(t *testing.T) {
	track := Track(effectTrack)
	task, ok := track.FindTask("EFF-015.2")
	if !ok {
		t.Fatal("EFF-015.2 not found")
	}
	task.Title = "Inline trivial handlers"
	task.MarkDirty()

	out := SerializeTrack(track)
	want := strings.Replace(effectTrack,
		"  - [ ] `EFF-015.2` Inline simple handlers",
		"  - [ ] `EFF-015.2` Inline trivial handlers", 1)
	if out != want {
		t.Fatalf("selective rewrite touched more than the dirty task:\n%s", out)
	}
	if !strings.Contains(out, "    handle(e) { ... }") {
		t.Error("untouched fenced note should survive verbatim")
	}
}

func TestDirtyParentKeepsCleanSubtasksVerbatim(t *testing.T) {
	track := Track(effectTrack)
	task, ok := track.FindTask("EFF-015")
	if !ok {
		t.Fatal("EFF-015 not found")
	}
	task.State = model.StateActive
	task.MarkDirty()

	out := SerializeTrack(track)
	if !strings.Contains(out, "- [>] `EFF-015` Effect handler optimization pass") {
		t.Error("dirty parent should re-emit canonically")
	}
	if !strings.Contains(out, "  - [ ] `EFF-015.1` Benchmark baseline") {
		t.Error("clean subtask lines should survive")
	}
	if !strings.Contains(out, "    - added: 2025-05-11") {
		t.Error("subtask metadata should survive verbatim")
	}
}
