package cli

import (
	"fmt"
	"strings"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type editResult struct {
	Task    taskView `json:"task"`
	TrackID string   `json:"trackId"`
	Changed bool     `json:"changed"`
}

func (r editResult) Text() string {
	if !r.Changed {
		return r.Task.ID + " unchanged"
	}
	return "updated " + r.Task.ID
}

func editResultOf(res mutate.EditResult) editResult {
	return editResult{Task: viewOf(res.Task), TrackID: res.TrackID, Changed: res.Changed}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <title>...",
		Short: "Change a task's title (trailing #tags are added)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.EditTitle(p, args[0], strings.Join(args[1:], " "))
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}
}

func newTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <task-id> add|rm <tag>",
		Short: "Add or remove a tag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				switch args[1] {
				case "add":
					res, err = mutate.AddTag(p, args[0], args[2])
				case "rm":
					res, err = mutate.RemoveTag(p, args[0], args[2])
				default:
					err = fmt.Errorf("unknown tag action: %q (expected add or rm)", args[1])
				}
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}
}

func newDepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dep <task-id> add|rm <dep-id>",
		Short: "Add or remove a dependency",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				switch args[1] {
				case "add":
					res, err = mutate.AddDep(p, args[0], args[2])
				case "rm":
					res, err = mutate.RemoveDep(p, args[0], args[2])
				default:
					err = fmt.Errorf("unknown dep action: %q (expected add or rm)", args[1])
				}
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}
}

func newRefCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ref <task-id> <path>",
		Short: "Add a file reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.AddRef(p, args[0], args[1])
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}
}

func newSpecCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "spec <task-id> <path>",
		Short: "Set the spec reference (path, optionally path#fragment)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.SetSpec(p, args[0], args[1])
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}
}

func newNoteCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "note <task-id> <text>...",
		Short: "Append to a task's note (--replace to overwrite)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			var res mutate.EditResult
			err := withProject(app, func(p *model.Project) error {
				var err error
				if replace {
					res, err = mutate.SetNote(p, args[0], text)
				} else {
					res, err = mutate.AppendNote(p, args[0], text)
				}
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, editResultOf(res))
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the existing note instead of appending")

	return cmd
}
