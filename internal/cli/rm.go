package cli

import (
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type rmResult struct {
	IDs []string `json:"ids"`
}

func (r rmResult) Text() string {
	return "closed as wontdo: " + strings.Join(r.IDs, ", ")
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>...",
		Short: "Soft-delete tasks (done + #wontdo; the record stays in the file)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withProject(app, func(p *model.Project) error {
				for _, id := range args {
					if _, err := mutate.SoftDelete(p, id, time.Now()); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, rmResult{IDs: args})
		},
	}
}
