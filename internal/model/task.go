package model

// State is a task's checkbox state.
type State string

const (
	StateTodo    State = "todo"
	StateActive  State = "active"
	StateBlocked State = "blocked"
	StateDone    State = "done"
	StateParked  State = "parked"
)

// Char returns the character written inside the checkbox brackets.
func (s State) Char() byte {
	switch s {
	case StateActive:
		return '>'
	case StateBlocked:
		return '-'
	case StateDone:
		return 'x'
	case StateParked:
		return '~'
	default:
		return ' '
	}
}

// StateForChar maps a checkbox character back to a state.
func StateForChar(c byte) (State, bool) {
	switch c {
	case ' ':
		return StateTodo, true
	case '>':
		return StateActive, true
	case '-':
		return StateBlocked, true
	case 'x':
		return StateDone, true
	case '~':
		return StateParked, true
	}
	return StateTodo, false
}

// MetaKind identifies a metadata entry. The set is closed; lines with other
// keys are not metadata.
type MetaKind string

const (
	MetaDep      MetaKind = "dep"
	MetaRef      MetaKind = "ref"
	MetaSpec     MetaKind = "spec"
	MetaNote     MetaKind = "note"
	MetaAdded    MetaKind = "added"
	MetaResolved MetaKind = "resolved"
)

// Metadata is one metadata entry on a task, in document order. Dep and Ref
// carry a list of values; the other kinds carry a single text value.
type Metadata struct {
	Kind MetaKind `json:"kind"`
	List []string `json:"list,omitempty"`
	Text string   `json:"text,omitempty"`
}

func Dep(ids ...string) Metadata      { return Metadata{Kind: MetaDep, List: ids} }
func Ref(paths ...string) Metadata    { return Metadata{Kind: MetaRef, List: paths} }
func Spec(path string) Metadata       { return Metadata{Kind: MetaSpec, Text: path} }
func Note(text string) Metadata       { return Metadata{Kind: MetaNote, Text: text} }
func Added(date string) Metadata      { return Metadata{Kind: MetaAdded, Text: date} }
func Resolved(date string) Metadata   { return Metadata{Kind: MetaResolved, Text: date} }

// Task is a parsed task with its metadata, subtasks, and source tracking.
// A task parsed from disk keeps its own verbatim lines (the task line plus
// its metadata lines, never subtask lines) so an unedited task re-serializes
// byte for byte; tasks built by operations have no source text and start
// dirty.
type Task struct {
	State    State      `json:"state"`
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title"`
	Tags     []string   `json:"tags,omitempty"`
	Metadata []Metadata `json:"metadata,omitempty"`
	Subtasks []*Task    `json:"subtasks,omitempty"`
	Depth    int        `json:"depth"`

	SourceStart int      `json:"-"`
	SourceEnd   int      `json:"-"`
	SourceText  []string `json:"-"`
	Dirty       bool     `json:"-"`
}

// NewTask builds a fresh task with no source text, marked dirty.
func NewTask(state State, id, title string) *Task {
	return &Task{State: state, ID: id, Title: title, Dirty: true}
}

// MarkDirty flags the task for canonical re-serialization.
func (t *Task) MarkDirty() {
	t.Dirty = true
}

// Deps returns every dep target across all dep entries, in order.
func (t *Task) Deps() []string {
	var out []string
	for _, m := range t.Metadata {
		if m.Kind == MetaDep {
			out = append(out, m.List...)
		}
	}
	return out
}

// Refs returns every ref path across all ref entries, in order.
func (t *Task) Refs() []string {
	var out []string
	for _, m := range t.Metadata {
		if m.Kind == MetaRef {
			out = append(out, m.List...)
		}
	}
	return out
}

func (t *Task) metaText(kind MetaKind) (string, bool) {
	for _, m := range t.Metadata {
		if m.Kind == kind {
			return m.Text, true
		}
	}
	return "", false
}

func (t *Task) Note() (string, bool)         { return t.metaText(MetaNote) }
func (t *Task) Spec() (string, bool)         { return t.metaText(MetaSpec) }
func (t *Task) AddedDate() (string, bool)    { return t.metaText(MetaAdded) }
func (t *Task) ResolvedDate() (string, bool) { return t.metaText(MetaResolved) }

// HasMeta reports whether the task carries at least one entry of the kind.
func (t *Task) HasMeta(kind MetaKind) bool {
	for _, m := range t.Metadata {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// RemoveMeta drops every metadata entry of the given kind.
func (t *Task) RemoveMeta(kind MetaKind) {
	kept := t.Metadata[:0]
	for _, m := range t.Metadata {
		if m.Kind != kind {
			kept = append(kept, m)
		}
	}
	t.Metadata = kept
}

// HasTag reports whether the task carries the tag (without '#').
func (t *Task) HasTag(tag string) bool {
	for _, x := range t.Tags {
		if x == tag {
			return true
		}
	}
	return false
}

// Walk visits the task and every descendant in document order.
func (t *Task) Walk(f func(*Task)) {
	f(t)
	for _, sub := range t.Subtasks {
		sub.Walk(f)
	}
}
