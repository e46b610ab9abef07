package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/statusutil"
	"trail-cli/internal/store"
	"trail-cli/internal/undo"
)

type view int

const (
	viewTracks view = iota
	viewTasks
)

type appModel struct {
	project *model.Project
	log     *undo.Log

	width  int
	height int

	view            view
	tracksList      list.Model
	tasksList       list.Model
	selectedTrackID string

	preview bool
	adding  bool
	input   textinput.Model

	status  string
	isError bool

	// save is swapped out in tests; it defaults to store.SaveProject.
	save func(p *model.Project) error
}

func newAppModel(p *model.Project) appModel {
	m := appModel{
		project: p,
		log:     undo.New(),
		view:    viewTracks,
		save:    store.SaveProject,
	}

	m.tracksList = newList(nil)
	m.tasksList = newList(nil)

	m.input = textinput.New()
	m.input.Placeholder = "task title #tags"
	m.input.CharLimit = 200

	m.refreshTracks()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) refreshTracks() {
	items := []list.Item{}
	for _, tc := range m.project.Config.ActiveTracks() {
		it := trackItem{cfg: tc}
		if track, ok := m.project.Track(tc.ID); ok {
			it.stats = mutate.Stats(track)
		}
		items = append(items, it)
	}
	m.tracksList.SetItems(items)
}

// refreshTasks rebuilds the task rows for the open track: backlog first,
// then parked, then done, each flattened in file order.
func (m *appModel) refreshTasks() {
	track, ok := m.project.Track(m.selectedTrackID)
	if !ok {
		m.tasksList.SetItems([]list.Item{})
		return
	}
	items := []list.Item{}
	for _, tasks := range [][]*model.Task{track.Backlog(), track.Parked(), track.Done()} {
		for _, row := range flattenTasks(tasks) {
			items = append(items, taskRowItem{row: row})
		}
	}
	m.tasksList.SetItems(items)
	if m.tasksList.Index() >= len(items) && len(items) > 0 {
		m.tasksList.Select(len(items) - 1)
	}
}

func (m *appModel) selectedTask() *model.Task {
	if it, ok := m.tasksList.SelectedItem().(taskRowItem); ok {
		return it.row.task
	}
	return nil
}

func (m *appModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.isError = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

// persist writes the whole project back; mutation keys call it after every
// successful change so the files never lag the screen.
func (m *appModel) persist() {
	if err := m.save(m.project); err != nil {
		m.setError(fmt.Errorf("save failed: %w", err))
	}
}

func (m *appModel) applyStateKey(msg tea.KeyMsg) {
	task := m.selectedTask()
	if task == nil || task.ID == "" {
		return
	}
	now := time.Now()
	var change mutate.StateChange
	var err error
	var label string
	switch {
	case key.Matches(msg, keys.Cycle):
		change, err = mutate.CycleState(m.project, task.ID, now)
		label = "cycle " + task.ID
	case key.Matches(msg, keys.Block):
		change, err = mutate.ToggleBlocked(m.project, task.ID, now)
		label = "toggle blocked " + task.ID
	case key.Matches(msg, keys.Park):
		change, err = mutate.ToggleParked(m.project, task.ID, now)
		label = "toggle parked " + task.ID
	}
	if err != nil {
		m.setError(err)
		return
	}
	if !change.Changed {
		return
	}
	m.log.Push(label, undo.FromChange(change))
	m.persist()
	m.refreshTasks()
	m.setStatus("%s → %s", task.ID, statusutil.Name(change.To))
}

func (m *appModel) commitAdd() {
	text := strings.TrimSpace(m.input.Value())
	m.adding = false
	m.input.Reset()
	if text == "" {
		return
	}
	res, err := mutate.AddTask(m.project, m.selectedTrackID, text, mutate.Bottom, time.Now())
	if err != nil {
		m.setError(err)
		return
	}
	m.log.Push("add "+res.Task.ID, undo.NewAddOp(res.Task.ID))
	m.persist()
	m.refreshTasks()
	m.setStatus("added %s", res.Task.ID)
}

func (m *appModel) applyUndo() {
	label, ok, err := m.log.Undo(m.project)
	switch {
	case err != nil:
		m.setError(err)
	case ok:
		m.persist()
		m.refreshTasks()
		m.refreshTracks()
		m.setStatus("undid: %s", label)
	case label != "":
		m.setStatus("cannot undo past: %s", label)
	default:
		m.setStatus("nothing to undo")
	}
}

func (m *appModel) applyRedo() {
	label, ok, err := m.log.Redo(m.project)
	switch {
	case err != nil:
		m.setError(err)
	case ok:
		m.persist()
		m.refreshTasks()
		m.refreshTracks()
		m.setStatus("redid: %s", label)
	default:
		m.setStatus("nothing to redo")
	}
}

// reload rereads the project from disk and invalidates the undo history,
// since the in-memory log no longer knows the full prior state.
func (m *appModel) reload() {
	p, err := store.LoadProject(m.project.Root)
	if err != nil {
		m.setError(err)
		return
	}
	m.project = p
	m.log.PushSyncMarker("reloaded from disk")
	m.refreshTracks()
	m.refreshTasks()
	m.setStatus("reloaded")
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "enter":
				m.commitAdd()
				return m, nil
			case "esc":
				m.adding = false
				m.input.Reset()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m.updateKey(msg)
	}

	return m.updateList(msg)
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed, every key belongs to it.
	if m.activeList().FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		if m.view == viewTasks {
			m.view = viewTracks
			m.refreshTracks()
			return m, nil
		}

	case key.Matches(msg, keys.Open):
		if m.view == viewTracks {
			if it, ok := m.tracksList.SelectedItem().(trackItem); ok {
				m.selectedTrackID = it.cfg.ID
				m.view = viewTasks
				m.tasksList.Select(0)
				m.refreshTasks()
			}
			return m, nil
		}

	case key.Matches(msg, keys.Reload):
		m.reload()
		return m, nil

	case key.Matches(msg, keys.Undo):
		m.applyUndo()
		return m, nil

	case key.Matches(msg, keys.Redo):
		m.applyRedo()
		return m, nil
	}

	if m.view == viewTasks {
		switch {
		case key.Matches(msg, keys.Cycle), key.Matches(msg, keys.Block), key.Matches(msg, keys.Park):
			m.applyStateKey(msg)
			return m, nil
		case key.Matches(msg, keys.Add):
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.Preview):
			m.preview = !m.preview
			m.resize()
			return m, nil
		}
	}

	return m.updateList(msg)
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == viewTracks {
		m.tracksList, cmd = m.tracksList.Update(msg)
	} else {
		m.tasksList, cmd = m.tasksList.Update(msg)
	}
	return m, cmd
}

func (m *appModel) activeList() *list.Model {
	if m.view == viewTracks {
		return &m.tracksList
	}
	return &m.tasksList
}

func (m *appModel) resize() {
	h := m.height - 2 // breadcrumb + status bar
	if h < 0 {
		h = 0
	}
	m.tracksList.SetSize(m.width, h)
	m.tasksList.SetSize(m.listWidth(), h)
}

func (m *appModel) listWidth() int {
	if m.preview && m.view == viewTasks {
		return m.width * 3 / 5
	}
	return m.width
}

func (m appModel) View() string {
	crumb := m.project.Config.Project.Name
	if m.view == viewTasks {
		if tc := m.project.Config.TrackByID(m.selectedTrackID); tc != nil {
			crumb += " › " + tc.Name
		}
	}
	header := truncateLine(styleBreadcrumb.Render(crumb), m.width)

	body := m.activeList().View()
	if m.preview && m.view == viewTasks {
		h := m.height - 2
		pw := m.width - m.listWidth() - 1
		panel := m.previewPanel(pw)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(body, m.listWidth(), h),
			normalizePane(" ", 1, h),
			normalizePane(panel, pw, h),
		)
	}

	return header + "\n" + body + "\n" + m.statusLine()
}

// previewPanel renders the selected task's detail: header line, metadata,
// then the note through glamour.
func (m appModel) previewPanel(width int) string {
	task := m.selectedTask()
	if task == nil {
		return styleMuted().Render("nothing selected")
	}

	var b strings.Builder
	title := task.Title
	if task.ID != "" {
		title = task.ID + " " + title
	}
	b.WriteString(styleTitle.Render(truncateLine(title, width)))
	b.WriteString("\n")
	b.WriteString(stateStyle(task.State).Render(statusutil.Name(task.State)))
	if len(task.Tags) > 0 {
		b.WriteString("  " + styleMuted().Render("#"+strings.Join(task.Tags, " #")))
	}
	b.WriteString("\n")

	for _, meta := range task.Metadata {
		switch meta.Kind {
		case model.MetaDep:
			b.WriteString(stylePanelLine.Render("dep: "+strings.Join(meta.List, ", ")) + "\n")
		case model.MetaRef:
			b.WriteString(stylePanelLine.Render("ref: "+strings.Join(meta.List, ", ")) + "\n")
		case model.MetaSpec, model.MetaAdded, model.MetaResolved:
			b.WriteString(stylePanelLine.Render(string(meta.Kind)+": "+meta.Text) + "\n")
		}
	}

	if note, ok := task.Note(); ok {
		b.WriteString("\n")
		b.WriteString(RenderMarkdown(note, width))
	}
	return b.String()
}

func (m appModel) statusLine() string {
	if m.adding {
		return "add: " + m.input.View()
	}
	if m.status != "" {
		st := styleStatusBar
		if m.isError {
			st = styleError
		}
		return truncateLine(st.Render(m.status), m.width)
	}
	help := "c cycle · b block · p park · a add · enter preview · u undo · U redo · esc back · q quit"
	if m.view == viewTracks {
		help = "enter open · r reload · u undo · U redo · q quit"
	}
	return truncateLine(styleStatusBar.Render(help), m.width)
}
