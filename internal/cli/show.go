package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

type showResult struct {
	TrackID string   `json:"trackId"`
	Task    taskView `json:"task"`
}

func (r showResult) Text() string {
	task := r.Task
	lines := []string{formatViewLine(task), "track: " + r.TrackID}
	if task.Added != "" {
		lines = append(lines, "added: "+task.Added)
	}
	if task.Resolved != "" {
		lines = append(lines, "resolved: "+task.Resolved)
	}
	if len(task.Deps) > 0 {
		lines = append(lines, "dep: "+strings.Join(task.Deps, ", "))
	}
	for _, ref := range task.Refs {
		lines = append(lines, "ref: "+ref)
	}
	if task.Spec != "" {
		lines = append(lines, "spec: "+task.Spec)
	}
	if task.Note != "" {
		lines = append(lines, "note:")
		for _, l := range strings.Split(task.Note, "\n") {
			lines = append(lines, "  "+l)
		}
	}
	if len(task.Subtasks) > 0 {
		lines = append(lines, "subtasks:")
		for _, sub := range task.Subtasks {
			lines = append(lines, strings.TrimRight(formatViewTree(sub, 1), "\n"))
		}
	}
	return strings.Join(lines, "\n")
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, trackID, ok := p.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, showResult{TrackID: trackID, Task: viewOf(task)})
		},
	}
}
