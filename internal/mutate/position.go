package mutate

import "trail-cli/internal/model"

type positionKind int

const (
	positionInvalid positionKind = iota
	positionBottom
	positionTop
	positionAfter
)

// Position addresses where an insertion or move lands within a task list.
// The zero value is invalid; use Bottom, Top, or After.
type Position struct {
	kind  positionKind
	after string
}

// Bottom appends to the end of the list.
var Bottom = Position{kind: positionBottom}

// Top prepends to the front of the list.
var Top = Position{kind: positionTop}

// After inserts immediately after the named sibling. The operation fails
// when the sibling is not in the destination list; there is no fallback.
func After(id string) Position {
	return Position{kind: positionAfter, after: id}
}

// insertTask returns the list with task placed per pos and the index it
// landed at.
func insertTask(list []*model.Task, task *model.Task, pos Position) ([]*model.Task, int, error) {
	switch pos.kind {
	case positionBottom:
		return append(list, task), len(list), nil
	case positionTop:
		return append([]*model.Task{task}, list...), 0, nil
	case positionAfter:
		for i, sibling := range list {
			if sibling.ID == pos.after && pos.after != "" {
				out := make([]*model.Task, 0, len(list)+1)
				out = append(out, list[:i+1]...)
				out = append(out, task)
				out = append(out, list[i+1:]...)
				return out, i + 1, nil
			}
		}
		return nil, 0, NotFoundError{Kind: "task", ID: pos.after}
	}
	return nil, 0, ErrInvalidPosition
}

// siblingPresent reports whether pos can be satisfied against list without
// mutating anything. Bottom and Top always can.
func siblingPresent(list []*model.Task, pos Position) error {
	if pos.kind == positionInvalid {
		return ErrInvalidPosition
	}
	if pos.kind != positionAfter {
		return nil
	}
	for _, sibling := range list {
		if sibling.ID == pos.after && pos.after != "" {
			return nil
		}
	}
	return NotFoundError{Kind: "task", ID: pos.after}
}
