package cli

import (
	"fmt"
	"strings"

	"trail-cli/internal/model"
	"trail-cli/internal/statusutil"

	"github.com/spf13/cobra"
)

type listTrackView struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Tasks  []taskView `json:"tasks"`
	Parked []taskView `json:"parked,omitempty"`
	Done   []taskView `json:"done,omitempty"`
}

type listResult struct {
	Tracks []listTrackView `json:"tracks"`
}

func (r listResult) Text() string {
	if len(r.Tracks) == 0 {
		return "no matching tasks"
	}
	var b strings.Builder
	for i, track := range r.Tracks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "== %s (%s) ==\n", track.Name, track.ID)
		for _, task := range track.Tasks {
			b.WriteString(formatViewTree(task, 0))
		}
		if len(track.Parked) > 0 {
			b.WriteString("-- Parked --\n")
			for _, task := range track.Parked {
				b.WriteString(formatViewTree(task, 0))
			}
		}
		if len(track.Done) > 0 {
			b.WriteString("-- Done --\n")
			for _, task := range track.Done {
				b.WriteString(formatViewTree(task, 0))
			}
		}
	}
	return b.String()
}

// taskFilter keeps a task when it matches, or when any descendant does;
// matching ancestors keep their whole subtree for context.
type taskFilter struct {
	state    model.State
	hasState bool
	tag      string
}

func (f taskFilter) empty() bool { return !f.hasState && f.tag == "" }

func (f taskFilter) matches(task *model.Task) bool {
	if f.hasState && task.State != f.state {
		return false
	}
	if f.tag != "" && !task.HasTag(f.tag) {
		return false
	}
	return true
}

func (f taskFilter) apply(tasks []*model.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		if v, ok := f.viewOf(task); ok {
			views = append(views, v)
		}
	}
	return views
}

func (f taskFilter) viewOf(task *model.Task) (taskView, bool) {
	if f.empty() || f.matches(task) {
		return viewOf(task), true
	}
	var kept []taskView
	for _, sub := range task.Subtasks {
		if v, ok := f.viewOf(sub); ok {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return taskView{}, false
	}
	v := viewOf(task)
	v.Subtasks = kept
	return v, true
}

func newListCmd(app *App) *cobra.Command {
	var stateName string
	var tag string
	var all bool

	cmd := &cobra.Command{
		Use:   "list [track-id]",
		Short: "List tasks by track",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			filter := taskFilter{tag: strings.TrimPrefix(tag, "#")}
			if stateName != "" {
				state, err := statusutil.Parse(stateName)
				if err != nil {
					return writeErr(cmd, err)
				}
				filter.state = state
				filter.hasState = true
			}

			var ids []string
			if len(args) == 1 {
				if _, ok := p.Track(args[0]); !ok {
					return writeErr(cmd, errNotFound("track", args[0]))
				}
				ids = []string{args[0]}
			} else {
				for _, tc := range p.Config.ActiveTracks() {
					ids = append(ids, tc.ID)
				}
			}

			res := listResult{Tracks: []listTrackView{}}
			for _, id := range ids {
				track, ok := p.Track(id)
				if !ok {
					continue
				}
				view := listTrackView{
					ID:    id,
					Name:  track.Title,
					Tasks: filter.apply(track.Backlog()),
				}
				view.Parked = filter.apply(track.Parked())
				if all {
					view.Done = filter.apply(track.Done())
				}
				if len(args) == 0 && !filter.empty() &&
					len(view.Tasks) == 0 && len(view.Parked) == 0 && len(view.Done) == 0 {
					continue
				}
				res.Tracks = append(res.Tracks, view)
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&stateName, "state", "", "Only tasks in this state (todo, active, blocked, parked, done)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only tasks carrying this tag")
	cmd.Flags().BoolVar(&all, "all", false, "Include the done section")

	return cmd
}
