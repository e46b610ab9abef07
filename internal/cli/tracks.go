package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"trail-cli/internal/ident"
	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/store"

	"github.com/spf13/cobra"
)

type trackRow struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	State  string            `json:"state"`
	Prefix string            `json:"prefix,omitempty"`
	File   string            `json:"file"`
	Stats  mutate.TrackStats `json:"stats"`
}

type trackListResult struct {
	Tracks []trackRow `json:"tracks"`
}

func (r trackListResult) Text() string {
	if len(r.Tracks) == 0 {
		return "no tracks"
	}
	var b strings.Builder
	for _, t := range r.Tracks {
		s := t.Stats
		fmt.Fprintf(&b, "%s (%s) [%s]  %d> %d- %do %d~ %dx\n",
			t.Name, t.ID, t.State, s.Active, s.Blocked, s.Todo, s.Parked, s.Done)
	}
	return b.String()
}

func newTracksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List and manage tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			rows := make([]trackRow, 0, len(p.Config.Tracks))
			for _, tc := range p.Config.Tracks {
				row := trackRow{ID: tc.ID, Name: tc.Name, State: string(tc.State), File: tc.File}
				row.Prefix, _ = p.Config.Prefix(tc.ID)
				if track, ok := p.Track(tc.ID); ok {
					row.Stats = mutate.Stats(track)
				}
				rows = append(rows, row)
			}
			return writeOut(cmd, app, trackListResult{Tracks: rows})
		},
	}

	cmd.AddCommand(newTracksNewCmd(app))
	cmd.AddCommand(newTracksStateCmd(app, "shelve", model.TrackStateShelved, "Shelve a track (hidden from active views)"))
	cmd.AddCommand(newTracksStateCmd(app, "activate", model.TrackStateActive, "Activate a track"))
	cmd.AddCommand(newTracksStateCmd(app, "archive", model.TrackStateArchived, "Archive a track (terminal)"))
	cmd.AddCommand(newTracksRenameCmd(app))
	cmd.AddCommand(newTracksMoveCmd(app))
	cmd.AddCommand(newTracksRenamePrefixCmd(app))

	return cmd
}

type trackNewResult struct {
	mutate.NewTrackResult
}

func (r trackNewResult) Text() string {
	return fmt.Sprintf("created track %s (%s) with prefix %s", r.ID, r.Name, r.Prefix)
}

func newTracksNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a track",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.NewTrackResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.NewTrack(p, strings.Join(args, " "))
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, trackNewResult{res})
		},
	}
}

type trackStateResult struct {
	ID      string `json:"id"`
	State   string `json:"state"`
	Changed bool   `json:"changed"`
}

func (r trackStateResult) Text() string {
	if !r.Changed {
		return fmt.Sprintf("track %s already %s", r.ID, r.State)
	}
	return fmt.Sprintf("track %s is now %s", r.ID, r.State)
}

func newTracksStateCmd(app *App, use string, state model.TrackState, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <track-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changed bool
			err := withProject(app, func(p *model.Project) error {
				var err error
				changed, err = mutate.SetTrackState(p, args[0], state)
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, trackStateResult{ID: args[0], State: string(state), Changed: changed})
		},
	}
}

type trackRenameResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r trackRenameResult) Text() string {
	return fmt.Sprintf("track %s renamed to %q", r.ID, r.Name)
}

func newTracksRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <track-id> <name>",
		Short: "Change a track's display name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			err := withProject(app, func(p *model.Project) error {
				return mutate.RenameTrack(p, args[0], name)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, trackRenameResult{ID: args[0], Name: name})
		},
	}
}

type trackMoveResult struct {
	ID    string   `json:"id"`
	Order []string `json:"order"`
}

func (r trackMoveResult) Text() string {
	return "active track order: " + strings.Join(r.Order, ", ")
}

func newTracksMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <track-id> <position>",
		Short: "Reorder a track among the active tracks (0-indexed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("position must be a number: %q", args[1]))
			}

			var order []string
			err = withProject(app, func(p *model.Project) error {
				order = activeOrderWith(p, args[0], pos)
				if order == nil {
					return errNotFound("track", args[0])
				}
				return mutate.ReorderTracks(p, order)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, trackMoveResult{ID: args[0], Order: order})
		},
	}
}

// activeOrderWith returns the active-track IDs with id moved to pos, clamped
// to the list. Nil when id is not an active track.
func activeOrderWith(p *model.Project, id string, pos int) []string {
	var ids []string
	found := false
	for _, tc := range p.Config.ActiveTracks() {
		if tc.ID == id {
			found = true
			continue
		}
		ids = append(ids, tc.ID)
	}
	if !found {
		return nil
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(ids) {
		pos = len(ids)
	}
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:pos]...)
	out = append(out, id)
	return append(out, ids[pos:]...)
}

type renamePrefixResult struct {
	ID     string             `json:"id"`
	Old    string             `json:"oldPrefix"`
	New    string             `json:"newPrefix"`
	Result ident.RenameResult `json:"result"`
}

func (r renamePrefixResult) Text() string {
	return fmt.Sprintf("renamed %s- to %s-: %d tasks, %d dep references, %d other tracks touched",
		r.Old, r.New, r.Result.TasksRenamed, r.Result.DepsUpdated, r.Result.OtherTracks)
}

type renameImpactResult struct {
	ID     string       `json:"id"`
	Old    string       `json:"oldPrefix"`
	New    string       `json:"newPrefix"`
	Impact ident.Impact `json:"impact"`
}

func (r renameImpactResult) Text() string {
	return fmt.Sprintf("would rename %s- to %s-: %d task ids (%d in the archive), %d dep references, %d other tracks",
		r.Old, r.New, r.Impact.TasksRenamed, r.Impact.ArchivedIDs, r.Impact.DepsUpdated, r.Impact.OtherTracks)
}

func newTracksRenamePrefixCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename-prefix <track-id> <new-prefix>",
		Short: "Rewrite a track's task ID prefix everywhere",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackID := args[0]
			newPrefix := strings.ToUpper(strings.TrimSpace(args[1]))

			if dryRun {
				p, err := loadProject(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				oldPrefix, ok := p.Config.Prefix(trackID)
				if !ok {
					return writeErr(cmd, errNotFound("track", trackID))
				}
				archive, _ := os.ReadFile(store.ArchivePath(p.Root, p.Config.Clean, trackID))
				impact, err := ident.RenameImpact(p, trackID, oldPrefix, newPrefix, string(archive))
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, renameImpactResult{ID: trackID, Old: oldPrefix, New: newPrefix, Impact: impact})
			}

			var res ident.RenameResult
			var oldPrefix string
			err := withProject(app, func(p *model.Project) error {
				var ok bool
				oldPrefix, ok = p.Config.Prefix(trackID)
				if !ok {
					return errNotFound("track", trackID)
				}
				var err error
				res, err = ident.RenamePrefix(p, trackID, oldPrefix, newPrefix)
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, renamePrefixResult{ID: trackID, Old: oldPrefix, New: newPrefix, Result: res})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the impact without changing anything")

	return cmd
}
