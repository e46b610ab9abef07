package mutate

import (
	"errors"
	"testing"

	"trail-cli/internal/model"
)

func TestHardDeleteTopLevel(t *testing.T) {
	p := effectsProject()
	del, err := HardDelete(p, "EFF-002")
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if del.TrackID != "effects" || del.Section != model.SectionBacklog || del.Index != 1 {
		t.Fatalf("expected backlog index 1 on effects; got %+v", del)
	}
	if _, _, ok := p.FindTask("EFF-002"); ok {
		t.Fatal("expected EFF-002 gone")
	}
	want := []string{"EFF-001", "EFF-003"}
	if got := backlogIDs(p, "effects"); !equalStrings(got, want) {
		t.Fatalf("expected backlog %v; got %v", want, got)
	}
}

func TestHardDeleteSubtask(t *testing.T) {
	p := effectsProject()
	del, err := HardDelete(p, "EFF-001.1")
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if del.ParentID != "EFF-001" || del.Index != 0 {
		t.Fatalf("expected parent EFF-001 index 0; got %+v", del)
	}
	parent, _, _ := p.FindTask("EFF-001")
	if len(parent.Subtasks) != 0 {
		t.Fatal("expected subtask removed")
	}
}

func TestHardDeleteRemovesSubtree(t *testing.T) {
	p := effectsProject()
	if _, err := HardDelete(p, "EFF-001"); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if _, _, ok := p.FindTask("EFF-001.1"); ok {
		t.Fatal("expected subtree gone with the parent")
	}
}

func TestHardDeleteUnknown(t *testing.T) {
	p := effectsProject()
	_, err := HardDelete(p, "EFF-999")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestReinsertRestoresTopLevel(t *testing.T) {
	p := effectsProject()
	del, err := HardDelete(p, "EFF-002")
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if err := Reinsert(p, del); err != nil {
		t.Fatalf("Reinsert: %v", err)
	}
	want := []string{"EFF-001", "EFF-002", "EFF-003"}
	if got := backlogIDs(p, "effects"); !equalStrings(got, want) {
		t.Fatalf("expected backlog restored %v; got %v", want, got)
	}
}

func TestReinsertRestoresSubtask(t *testing.T) {
	p := effectsProject()
	del, err := HardDelete(p, "EFF-001.1")
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if err := Reinsert(p, del); err != nil {
		t.Fatalf("Reinsert: %v", err)
	}
	parent, _, _ := p.FindTask("EFF-001")
	if len(parent.Subtasks) != 1 || parent.Subtasks[0].ID != "EFF-001.1" {
		t.Fatal("expected subtask restored under EFF-001")
	}
}

func TestReinsertClampsIndex(t *testing.T) {
	p := effectsProject()
	del, err := HardDelete(p, "EFF-003")
	if err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if _, err := HardDelete(p, "EFF-001"); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if err := Reinsert(p, del); err != nil {
		t.Fatalf("Reinsert: %v", err)
	}
	want := []string{"EFF-002", "EFF-003"}
	if got := backlogIDs(p, "effects"); !equalStrings(got, want) {
		t.Fatalf("expected backlog %v; got %v", want, got)
	}
}
