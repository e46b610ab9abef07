package mutate

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a task, track, inbox item, or insertion
// sibling cannot be resolved.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// AlreadyExistsError is returned when creating something whose identifier
// is taken.
type AlreadyExistsError struct {
	Kind string
	ID   string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.ID)
}

// NoPrefixError is returned when an operation needs to mint IDs for a track
// that has no prefix configured.
type NoPrefixError struct {
	TrackID string
}

func (e NoPrefixError) Error() string {
	return fmt.Sprintf("no prefix configured for track: %s", e.TrackID)
}

var (
	ErrMaxDepth        = errors.New("maximum nesting depth reached")
	ErrDepthExceeded   = errors.New("subtree too deep for the new parent")
	ErrCycle           = errors.New("cannot move a task into its own subtree")
	ErrInvalidPosition = errors.New("invalid insertion position")
	ErrTrackArchived   = errors.New("track is archived")
	ErrEmptyTrackName  = errors.New("track name is empty")
	ErrIncompleteOrder = errors.New("order must name every active track exactly once")
)
