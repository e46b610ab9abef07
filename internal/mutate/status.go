package mutate

import (
	"time"

	"trail-cli/internal/model"
)

// StateChange reports a state transition with the facts needed to reverse
// it.
type StateChange struct {
	Task        *model.Task `json:"task"`
	TrackID     string      `json:"trackId"`
	From        model.State `json:"from"`
	To          model.State `json:"to"`
	OldResolved string      `json:"oldResolved,omitempty"`
	NewResolved string      `json:"newResolved,omitempty"`
	Changed     bool        `json:"changed"`
}

// SetState moves a task to the given state. Setting the current state is a
// no-op. Entering done stamps today's resolved date, replacing any stale
// one; leaving done removes it.
func SetState(project *model.Project, id string, state model.State, now time.Time) (StateChange, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return StateChange{}, err
	}
	return applyState(task, trackID, state, now), nil
}

func applyState(task *model.Task, trackID string, state model.State, now time.Time) StateChange {
	change := StateChange{Task: task, TrackID: trackID, From: task.State, To: state}
	if old, ok := task.ResolvedDate(); ok {
		change.OldResolved = old
	}
	if task.State == state {
		return change
	}

	task.State = state
	task.RemoveMeta(model.MetaResolved)
	if state == model.StateDone {
		change.NewResolved = now.Format(dateLayout)
		task.Metadata = append(task.Metadata, model.Resolved(change.NewResolved))
	}
	task.MarkDirty()
	change.Changed = true
	return change
}

// CycleState advances todo to active, active to done, and done back to
// todo. Blocked and parked tasks reset to todo.
func CycleState(project *model.Project, id string, now time.Time) (StateChange, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return StateChange{}, err
	}
	var next model.State
	switch task.State {
	case model.StateTodo:
		next = model.StateActive
	case model.StateActive:
		next = model.StateDone
	default:
		next = model.StateTodo
	}
	return applyState(task, trackID, next, now), nil
}

// ToggleBlocked flips a task between blocked and todo.
func ToggleBlocked(project *model.Project, id string, now time.Time) (StateChange, error) {
	return toggleState(project, id, model.StateBlocked, now)
}

// ToggleParked flips a task between parked and todo.
func ToggleParked(project *model.Project, id string, now time.Time) (StateChange, error) {
	return toggleState(project, id, model.StateParked, now)
}

func toggleState(project *model.Project, id string, state model.State, now time.Time) (StateChange, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return StateChange{}, err
	}
	next := state
	if task.State == state {
		next = model.StateTodo
	}
	return applyState(task, trackID, next, now), nil
}

// SoftDelete marks a task done with a wontdo tag instead of removing it, so
// the record survives in the file.
func SoftDelete(project *model.Project, id string, now time.Time) (StateChange, error) {
	task, trackID, err := findTask(project, id)
	if err != nil {
		return StateChange{}, err
	}
	change := applyState(task, trackID, model.StateDone, now)
	if !task.HasTag("wontdo") {
		task.Tags = append(task.Tags, "wontdo")
		task.MarkDirty()
		change.Changed = true
	}
	return change, nil
}
