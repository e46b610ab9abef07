package cli

import (
	"fmt"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/statusutil"

	"github.com/spf13/cobra"
)

type stateResult struct {
	ID      string `json:"id"`
	TrackID string `json:"trackId"`
	From    string `json:"from"`
	To      string `json:"to"`
	Changed bool   `json:"changed"`
}

func (r stateResult) Text() string {
	if !r.Changed {
		return fmt.Sprintf("%s already %s", r.ID, statusutil.Name(model.State(r.To)))
	}
	return fmt.Sprintf("%s: %s -> %s", r.ID, r.From, r.To)
}

func stateResultOf(id string, change mutate.StateChange) stateResult {
	return stateResult{
		ID:      id,
		TrackID: change.TrackID,
		From:    string(change.From),
		To:      string(change.To),
		Changed: change.Changed,
	}
}

// stateCmd builds one of the single-ID state commands; apply runs inside the
// write lock.
func stateCmd(app *App, use, short string, apply func(p *model.Project, id string) (mutate.StateChange, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var change mutate.StateChange
			err := withProject(app, func(p *model.Project) error {
				var err error
				change, err = apply(p, args[0])
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, stateResultOf(args[0], change))
		},
	}
}

func newCycleCmd(app *App) *cobra.Command {
	return stateCmd(app, "cycle", "Cycle a task: todo -> active -> done -> todo",
		func(p *model.Project, id string) (mutate.StateChange, error) {
			return mutate.CycleState(p, id, time.Now())
		})
}

func newBlockCmd(app *App) *cobra.Command {
	return stateCmd(app, "block", "Toggle a task between blocked and todo",
		func(p *model.Project, id string) (mutate.StateChange, error) {
			return mutate.ToggleBlocked(p, id, time.Now())
		})
}

func newParkCmd(app *App) *cobra.Command {
	return stateCmd(app, "park", "Toggle a task between parked and todo",
		func(p *model.Project, id string) (mutate.StateChange, error) {
			return mutate.ToggleParked(p, id, time.Now())
		})
}

func newDoneCmd(app *App) *cobra.Command {
	return stateCmd(app, "done", "Mark a task done",
		func(p *model.Project, id string) (mutate.StateChange, error) {
			return mutate.SetState(p, id, model.StateDone, time.Now())
		})
}

func newSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <task-id> <state>",
		Short: "Set a task's state (todo|active|blocked|done|parked)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := statusutil.Parse(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}

			var change mutate.StateChange
			err = withProject(app, func(p *model.Project) error {
				var err error
				change, err = mutate.SetState(p, args[0], state, time.Now())
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, stateResultOf(args[0], change))
		},
	}
}
