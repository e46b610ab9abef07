package undo

import (
	"testing"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/parse"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

const trackSrc = "# Effects\n" +
	"\n" +
	"## Backlog\n" +
	"\n" +
	"- [ ] `EFF-001` Relay design\n" +
	"  - added: 2025-01-10\n" +
	"- [ ] `EFF-002` Handler codegen\n" +
	"  - added: 2025-01-11\n" +
	"- [ ] `EFF-003` Docs pass\n" +
	"  - added: 2025-01-12\n" +
	"\n" +
	"## Done\n"

func testProject() *model.Project {
	return &model.Project{
		Config: model.ProjectConfig{
			Project: model.ProjectInfo{Name: "demo"},
			Clean:   model.DefaultCleanConfig(),
			IDs:     model.IDConfig{Prefixes: map[string]string{"effects": "EFF"}},
			Tracks: []model.TrackConfig{
				{ID: "effects", Name: "Effects", State: model.TrackStateActive, File: "tracks/effects.md"},
			},
		},
		Tracks: []model.TrackEntry{{ID: "effects", Track: parse.Track(trackSrc)}},
	}
}

func backlog(p *model.Project) []string {
	track, _ := p.Track("effects")
	var ids []string
	for _, task := range track.Backlog() {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestUndoRedoStateChange(t *testing.T) {
	p := testProject()
	log := New()

	change, err := mutate.SetState(p, "EFF-001", model.StateDone, testNow)
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
	log.Push("done EFF-001", FromChange(change))

	label, ok, err := log.Undo(p)
	if err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if label != "done EFF-001" {
		t.Fatalf("expected label; got %q", label)
	}
	task, _, _ := p.FindTask("EFF-001")
	if task.State != model.StateTodo {
		t.Fatalf("expected todo after undo; got %s", task.State)
	}
	if _, has := task.ResolvedDate(); has {
		t.Fatal("expected resolved date removed by undo")
	}

	if _, ok, err := log.Redo(p); err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if task.State != model.StateDone {
		t.Fatalf("expected done after redo; got %s", task.State)
	}
	if got, _ := task.ResolvedDate(); got != "2025-03-14" {
		t.Fatalf("expected resolved restored; got %q", got)
	}
}

func TestUndoRestoresOldResolvedDate(t *testing.T) {
	p := testProject()
	log := New()

	first, _ := mutate.SetState(p, "EFF-001", model.StateDone, testNow)
	log.Push("done", FromChange(first))

	later := testNow.AddDate(0, 0, 7)
	second, _ := mutate.SetState(p, "EFF-001", model.StateTodo, later)
	log.Push("reopen", FromChange(second))

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	task, _, _ := p.FindTask("EFF-001")
	if task.State != model.StateDone {
		t.Fatalf("expected done restored; got %s", task.State)
	}
	if got, _ := task.ResolvedDate(); got != "2025-03-14" {
		t.Fatalf("expected original resolved date back; got %q", got)
	}
}

func TestUndoRefusesSyncMarker(t *testing.T) {
	p := testProject()
	log := New()

	change, _ := mutate.SetState(p, "EFF-001", model.StateActive, testNow)
	log.Push("start", FromChange(change))
	log.PushSyncMarker("external reload")

	if log.CanUndo() {
		t.Fatal("expected CanUndo false behind a marker")
	}
	label, ok, err := log.Undo(p)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if ok {
		t.Fatal("expected undo refused at the marker")
	}
	if label != "external reload" {
		t.Fatalf("expected marker label; got %q", label)
	}
	task, _, _ := p.FindTask("EFF-001")
	if task.State != model.StateActive {
		t.Fatal("expected state untouched")
	}

	// The marker stays put: a second attempt refuses again.
	if _, ok, _ := log.Undo(p); ok {
		t.Fatal("expected marker to keep refusing")
	}
}

func TestPushClearsRedo(t *testing.T) {
	p := testProject()
	log := New()

	c1, _ := mutate.SetState(p, "EFF-001", model.StateActive, testNow)
	log.Push("start 1", FromChange(c1))
	if _, ok, _ := log.Undo(p); !ok {
		t.Fatal("expected undo")
	}
	if !log.CanRedo() {
		t.Fatal("expected redo available")
	}

	c2, _ := mutate.SetState(p, "EFF-002", model.StateActive, testNow)
	log.Push("start 2", FromChange(c2))
	if log.CanRedo() {
		t.Fatal("expected redo cleared by push")
	}
}

func TestBatchUndoesAsUnit(t *testing.T) {
	p := testProject()
	log := New()

	if _, err := mutate.AddTag(p, "EFF-001", "alpha"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if _, err := mutate.AddTag(p, "EFF-001", "beta"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	log.PushBatch("tag twice",
		TagOp{TaskID: "EFF-001", Tag: "alpha", Added: true},
		TagOp{TaskID: "EFF-001", Tag: "beta", Added: true},
	)

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	task, _, _ := p.FindTask("EFF-001")
	if task.HasTag("alpha") || task.HasTag("beta") {
		t.Fatalf("expected both tags removed; got %v", task.Tags)
	}

	if _, ok, err := log.Redo(p); err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if !task.HasTag("alpha") || !task.HasTag("beta") {
		t.Fatalf("expected both tags restored; got %v", task.Tags)
	}
}

func TestAddOpUndoRedo(t *testing.T) {
	p := testProject()
	log := New()

	res, err := mutate.AddTask(p, "effects", "New work", mutate.After("EFF-001"), testNow)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	log.Push("add "+res.Task.ID, NewAddOp(res.Task.ID))

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if _, _, found := p.FindTask(res.Task.ID); found {
		t.Fatal("expected added task removed by undo")
	}

	if _, ok, err := log.Redo(p); err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	want := []string{"EFF-001", res.Task.ID, "EFF-002", "EFF-003"}
	got := backlog(p)
	if len(got) != 4 || got[1] != res.Task.ID {
		t.Fatalf("expected backlog %v; got %v", want, got)
	}
}

func TestMoveOpUndoRedo(t *testing.T) {
	p := testProject()
	log := New()

	res, err := mutate.MoveTask(p, "EFF-001", mutate.Bottom)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	log.Push("move", MoveOp{TaskID: "EFF-001", OldIndex: res.OldIndex, NewIndex: res.NewIndex})

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if got := backlog(p); got[0] != "EFF-001" {
		t.Fatalf("expected EFF-001 back at the top; got %v", got)
	}

	if _, ok, err := log.Redo(p); err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if got := backlog(p); got[2] != "EFF-001" {
		t.Fatalf("expected EFF-001 at the bottom; got %v", got)
	}
}

func TestSectionMoveOpUndoRestoresIndex(t *testing.T) {
	p := testProject()
	log := New()

	res, err := mutate.MoveTaskBetweenSections(p, "EFF-002", model.SectionDone)
	if err != nil {
		t.Fatalf("MoveTaskBetweenSections: %v", err)
	}
	log.Push("finish", SectionMoveOp{
		TaskID:    "EFF-002",
		From:      model.SectionBacklog,
		To:        model.SectionDone,
		FromIndex: 1,
		ToIndex:   res.Index,
	})

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	want := []string{"EFF-001", "EFF-002", "EFF-003"}
	got := backlog(p)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected backlog %v; got %v", want, got)
		}
	}
}

func TestTriageOpUndoRedo(t *testing.T) {
	p := testProject()
	p.Inbox = parse.Inbox("# Inbox\n\n- First idea\n- Crash report #bug\n  Stack trace attached.\n")
	log := New()

	res, err := mutate.TriageInboxItem(p, 2, "effects", mutate.Bottom, testNow)
	if err != nil {
		t.Fatalf("TriageInboxItem: %v", err)
	}
	log.Push("triage", NewTriageOp(res))

	if _, ok, err := log.Undo(p); err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	if _, _, found := p.FindTask(res.Task.ID); found {
		t.Fatal("expected triaged task removed by undo")
	}
	if len(p.Inbox.Items) != 2 || p.Inbox.Items[1].Title != "Crash report" {
		t.Fatalf("expected item restored at position 2; got %v", p.Inbox.Items)
	}

	if _, ok, err := log.Redo(p); err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	if len(p.Inbox.Items) != 1 {
		t.Fatal("expected item re-triaged")
	}
	if _, _, found := p.FindTask(res.Task.ID); !found {
		t.Fatal("expected task restored by redo")
	}
}

func TestUndoEmptyLog(t *testing.T) {
	p := testProject()
	log := New()
	if _, ok, err := log.Undo(p); ok || err != nil {
		t.Fatalf("expected silent no-op; got ok=%v err=%v", ok, err)
	}
	if _, ok, err := log.Redo(p); ok || err != nil {
		t.Fatalf("expected silent no-op; got ok=%v err=%v", ok, err)
	}
}

func TestUndoFailureDropsEntry(t *testing.T) {
	p := testProject()
	log := New()
	log.Push("ghost", StateOp{TaskID: "EFF-999", From: model.StateTodo, To: model.StateDone})

	if _, ok, err := log.Undo(p); ok || err == nil {
		t.Fatalf("expected failure; got ok=%v err=%v", ok, err)
	}
	if log.CanUndo() || log.CanRedo() {
		t.Fatal("expected failed entry dropped from both stacks")
	}
}
