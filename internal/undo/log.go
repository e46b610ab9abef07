// Package undo keeps an in-session command log so interactive surfaces can
// step mutations backward and forward. Ops carry the old and the new facts
// and re-find their task by ID when applied, so the log survives list
// reordering but refuses to cross a sync marker.
package undo

import "trail-cli/internal/model"

// Op is one invertible mutation.
type Op interface {
	// Undo applies the old facts.
	Undo(project *model.Project) error
	// Redo applies the new facts.
	Redo(project *model.Project) error
}

type entry struct {
	label  string
	ops    []Op
	marker bool
}

// Log holds the undo and redo stacks.
type Log struct {
	undo []entry
	redo []entry
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Push records an applied operation under a label and clears the redo
// stack.
func (l *Log) Push(label string, op Op) {
	l.PushBatch(label, op)
}

// PushBatch records several ops as one atomic entry: they undo (in reverse
// order) and redo (in order) as a unit.
func (l *Log) PushBatch(label string, ops ...Op) {
	if len(ops) == 0 {
		return
	}
	l.undo = append(l.undo, entry{label: label, ops: ops})
	l.redo = nil
}

// PushSyncMarker records a boundary the log refuses to undo across, for
// external reloads and non-invertible bulk operations.
func (l *Log) PushSyncMarker(label string) {
	l.undo = append(l.undo, entry{label: label, marker: true})
	l.redo = nil
}

// CanUndo reports whether an undoable entry is on top of the stack.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0 && !l.undo[len(l.undo)-1].marker
}

// CanRedo reports whether a redoable entry is available.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// Undo reverses the most recent entry. It returns the entry's label and
// whether anything was undone; a sync marker on top stays put and reports
// false. A failing op aborts and drops the entry rather than leaving it
// available for a second partial application.
func (l *Log) Undo(project *model.Project) (string, bool, error) {
	if len(l.undo) == 0 {
		return "", false, nil
	}
	top := l.undo[len(l.undo)-1]
	if top.marker {
		return top.label, false, nil
	}
	l.undo = l.undo[:len(l.undo)-1]
	for i := len(top.ops) - 1; i >= 0; i-- {
		if err := top.ops[i].Undo(project); err != nil {
			return top.label, false, err
		}
	}
	l.redo = append(l.redo, top)
	return top.label, true, nil
}

// Redo re-applies the most recently undone entry.
func (l *Log) Redo(project *model.Project) (string, bool, error) {
	if len(l.redo) == 0 {
		return "", false, nil
	}
	top := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	for _, op := range top.ops {
		if err := op.Redo(project); err != nil {
			return top.label, false, err
		}
	}
	l.undo = append(l.undo, top)
	return top.label, true, nil
}
