package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

// positionFlags registers the shared insertion flags on cmd.
func positionFlags(cmd *cobra.Command, top *bool, after *string) {
	cmd.Flags().BoolVar(top, "top", false, "Insert at the top instead of the bottom")
	cmd.Flags().StringVar(after, "after", "", "Insert after this task ID")
}

func positionOf(top bool, after string) (mutate.Position, error) {
	if top && after != "" {
		return mutate.Position{}, errors.New("provide at most one of --top or --after")
	}
	switch {
	case top:
		return mutate.Top, nil
	case after != "":
		return mutate.After(after), nil
	}
	return mutate.Bottom, nil
}

type addResult struct {
	Task    taskView `json:"task"`
	TrackID string   `json:"trackId"`
	Index   int      `json:"index"`
}

func (r addResult) Text() string {
	return fmt.Sprintf("added %s to %s at %d", r.Task.ID, r.TrackID, r.Index)
}

func newAddCmd(app *App) *cobra.Command {
	var top bool
	var after string

	cmd := &cobra.Command{
		Use:   "add <track-id> <text>...",
		Short: "Add a task to a track's backlog",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := positionOf(top, after)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.AddResult
			err = withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.AddTask(p, args[0], strings.Join(args[1:], " "), pos, time.Now())
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, addResult{Task: viewOf(res.Task), TrackID: res.TrackID, Index: res.Index})
		},
	}

	positionFlags(cmd, &top, &after)

	return cmd
}

func newSubCmd(app *App) *cobra.Command {
	var top bool
	var after string

	cmd := &cobra.Command{
		Use:   "sub <parent-id> <text>...",
		Short: "Add a subtask under a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := positionOf(top, after)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.AddResult
			err = withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.AddSubtask(p, args[0], strings.Join(args[1:], " "), pos, time.Now())
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, addResult{Task: viewOf(res.Task), TrackID: res.TrackID, Index: res.Index})
		},
	}

	positionFlags(cmd, &top, &after)

	return cmd
}
