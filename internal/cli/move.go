package cli

import (
	"errors"
	"fmt"
	"strconv"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type moveResult struct {
	ID       string `json:"id"`
	TrackID  string `json:"trackId"`
	OldIndex int    `json:"oldIndex"`
	NewIndex int    `json:"newIndex"`
	Changed  bool   `json:"changed"`
}

func (r moveResult) Text() string {
	if !r.Changed {
		return fmt.Sprintf("%s stays at %d", r.ID, r.NewIndex)
	}
	return fmt.Sprintf("%s: %d -> %d", r.ID, r.OldIndex, r.NewIndex)
}

type sectionMoveResult struct {
	ID      string `json:"id"`
	TrackID string `json:"trackId"`
	From    string `json:"from"`
	To      string `json:"to"`
	Index   int    `json:"index"`
	Changed bool   `json:"changed"`
}

func (r sectionMoveResult) Text() string {
	if !r.Changed {
		return fmt.Sprintf("%s already in %s", r.ID, r.To)
	}
	return fmt.Sprintf("%s: %s -> %s", r.ID, r.From, r.To)
}

type trackMoveOut struct {
	OldID       string `json:"oldId"`
	NewID       string `json:"newId"`
	FromTrack   string `json:"fromTrack"`
	ToTrack     string `json:"toTrack"`
	DepRewrites int    `json:"depRewrites"`
}

func (r trackMoveOut) Text() string {
	return fmt.Sprintf("%s moved to %s as %s (%d dep references updated)",
		r.OldID, r.ToTrack, r.NewID, r.DepRewrites)
}

type reparentOut struct {
	OldID       string `json:"oldId"`
	NewID       string `json:"newId"`
	ParentID    string `json:"parentId,omitempty"`
	DepRewrites int    `json:"depRewrites"`
}

func (r reparentOut) Text() string {
	if r.ParentID == "" {
		return fmt.Sprintf("%s promoted to top level as %s", r.OldID, r.NewID)
	}
	return fmt.Sprintf("%s moved under %s as %s", r.OldID, r.ParentID, r.NewID)
}

func newMoveCmd(app *App) *cobra.Command {
	var top bool
	var after string
	var section string
	var track string
	var parent string
	var promote bool

	cmd := &cobra.Command{
		Use:   "move <task-id> [position]",
		Short: "Move a task: within the backlog, between sections, across tracks, or under a parent",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			positional := len(args) == 2
			posFlags := top || after != ""

			// --top/--after modify a backlog or cross-track move; the other
			// modes are exclusive.
			modes := 0
			for _, on := range []bool{section != "", track != "", parent != "" || promote} {
				if on {
					modes++
				}
			}
			if modes > 1 || (modes == 1 && positional) || (posFlags && (positional || section != "" || parent != "" || promote)) {
				return writeErr(cmd, errors.New("provide one of: a position (--top/--after/index), --section, --track, or --parent/--promote"))
			}

			switch {
			case track != "":
				pos, err := positionOf(top, after)
				if err != nil {
					return writeErr(cmd, err)
				}
				var res mutate.TrackMoveResult
				err = withProject(app, func(p *model.Project) error {
					var err error
					res, err = mutate.MoveTaskToTrack(p, id, track, pos)
					return err
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, trackMoveOut{
					OldID: res.OldID, NewID: res.NewID,
					FromTrack: res.FromTrack, ToTrack: res.ToTrack,
					DepRewrites: res.DepRewrites,
				})

			case section != "":
				kind, err := parseSectionKind(section)
				if err != nil {
					return writeErr(cmd, err)
				}
				var res mutate.SectionMoveResult
				err = withProject(app, func(p *model.Project) error {
					var err error
					res, err = mutate.MoveTaskBetweenSections(p, id, kind)
					return err
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, sectionMoveResult{
					ID: id, TrackID: res.TrackID,
					From: string(res.From), To: string(res.To),
					Index: res.Index, Changed: res.Changed,
				})

			case parent != "" || promote:
				var res mutate.ReparentResult
				err := withProject(app, func(p *model.Project) error {
					var err error
					res, err = mutate.Reparent(p, id, parent)
					return err
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, reparentOut{
					OldID: res.OldID, NewID: res.NewID,
					ParentID: res.NewParentID, DepRewrites: res.DepRewrites,
				})

			case len(args) == 2:
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return writeErr(cmd, fmt.Errorf("position must be a number: %q", args[1]))
				}
				var res mutate.MoveResult
				err = withProject(app, func(p *model.Project) error {
					var err error
					res, err = mutate.MoveTaskToIndex(p, id, index)
					return err
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, moveResult{
					ID: id, TrackID: res.TrackID,
					OldIndex: res.OldIndex, NewIndex: res.NewIndex, Changed: res.Changed,
				})

			default:
				pos, err := positionOf(top, after)
				if err != nil {
					return writeErr(cmd, err)
				}
				var res mutate.MoveResult
				err = withProject(app, func(p *model.Project) error {
					var err error
					res, err = mutate.MoveTask(p, id, pos)
					return err
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, moveResult{
					ID: id, TrackID: res.TrackID,
					OldIndex: res.OldIndex, NewIndex: res.NewIndex, Changed: res.Changed,
				})
			}
		},
	}

	positionFlags(cmd, &top, &after)
	cmd.Flags().StringVar(&section, "section", "", "Move to a section (backlog|parked|done)")
	cmd.Flags().StringVar(&track, "track", "", "Move to another track (a new ID is minted)")
	cmd.Flags().StringVar(&parent, "parent", "", "Reparent under this task")
	cmd.Flags().BoolVar(&promote, "promote", false, "Promote a subtask to the top level")

	return cmd
}

func parseSectionKind(s string) (model.SectionKind, error) {
	switch s {
	case "backlog":
		return model.SectionBacklog, nil
	case "parked":
		return model.SectionParked, nil
	case "done":
		return model.SectionDone, nil
	}
	return "", fmt.Errorf("unknown section: %q (expected backlog, parked, or done)", s)
}
