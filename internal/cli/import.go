package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type importOut struct {
	TrackID string   `json:"trackId"`
	IDs     []string `json:"ids"`
}

func (r importOut) Text() string {
	if len(r.IDs) == 0 {
		return "no task lines found"
	}
	return fmt.Sprintf("imported %d tasks into %s: %s", len(r.IDs), r.TrackID, strings.Join(r.IDs, ", "))
}

func newImportCmd(app *App) *cobra.Command {
	var track string
	var top bool
	var after string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import task lines from a markdown file into a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if track == "" {
				return writeErr(cmd, fmt.Errorf("missing --track"))
			}
			pos, err := positionOf(top, after)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.ImportResult
			err = withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.ImportMarkdown(p, track, string(src), pos, time.Now())
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, importOut{TrackID: res.TrackID, IDs: res.IDs})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Target track")
	positionFlags(cmd, &top, &after)

	return cmd
}
