package model

// TrackState is a track's lifecycle state in project.toml.
type TrackState string

const (
	TrackStateActive   TrackState = "active"
	TrackStateShelved  TrackState = "shelved"
	TrackStateArchived TrackState = "archived"
)

// SectionKind identifies a task section in a track file.
type SectionKind string

const (
	SectionBacklog SectionKind = "backlog"
	SectionParked  SectionKind = "parked"
	SectionDone    SectionKind = "done"
)

// Heading returns the canonical section heading text.
func (k SectionKind) Heading() string {
	switch k {
	case SectionParked:
		return "Parked"
	case SectionDone:
		return "Done"
	default:
		return "Backlog"
	}
}

// Section is a task section: the header line (with any blank lines that
// follow it), the tasks, and trailing blank lines kept for round-trips.
type Section struct {
	Kind     SectionKind
	Header   []string
	Tasks    []*Task
	Trailing []string
}

// Node is one region of a track file. Exactly one field is set: a literal
// block of lines emitted verbatim, or a task section.
type Node struct {
	Literal []string
	Section *Section
}

// Track is a parsed track file.
type Track struct {
	Title       string
	Description string
	Nodes       []*Node

	// SourceLines holds the original file split on newlines.
	SourceLines []string
}

// Section returns the section of the given kind, or nil.
func (t *Track) Section(kind SectionKind) *Section {
	for _, n := range t.Nodes {
		if n.Section != nil && n.Section.Kind == kind {
			return n.Section
		}
	}
	return nil
}

// EnsureSection returns the section of the given kind, appending an empty
// one at the end of the file when missing.
func (t *Track) EnsureSection(kind SectionKind) *Section {
	if sec := t.Section(kind); sec != nil {
		return sec
	}
	sec := &Section{
		Kind:   kind,
		Header: []string{"## " + kind.Heading(), ""},
	}
	t.Nodes = append(t.Nodes, &Node{Section: sec})
	return sec
}

// SectionTasks returns the tasks of the given section, or nil when the
// section is absent.
func (t *Track) SectionTasks(kind SectionKind) []*Task {
	if sec := t.Section(kind); sec != nil {
		return sec.Tasks
	}
	return nil
}

func (t *Track) Backlog() []*Task { return t.SectionTasks(SectionBacklog) }
func (t *Track) Parked() []*Task  { return t.SectionTasks(SectionParked) }
func (t *Track) Done() []*Task    { return t.SectionTasks(SectionDone) }

// Sections returns every section node in file order.
func (t *Track) Sections() []*Section {
	var out []*Section
	for _, n := range t.Nodes {
		if n.Section != nil {
			out = append(out, n.Section)
		}
	}
	return out
}

// WalkTasks visits every task in every section, including subtasks, in
// document order.
func (t *Track) WalkTasks(f func(*Task)) {
	for _, sec := range t.Sections() {
		for _, task := range sec.Tasks {
			task.Walk(f)
		}
	}
}

// FindTask returns the task with the given ID anywhere in the track.
func (t *Track) FindTask(id string) (*Task, bool) {
	if id == "" {
		return nil, false
	}
	var found *Task
	t.WalkTasks(func(task *Task) {
		if found == nil && task.ID == id {
			found = task
		}
	})
	return found, found != nil
}
