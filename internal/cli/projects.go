package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trail-cli/internal/store"

	"github.com/spf13/cobra"
)

type projectsResult struct {
	Projects []store.RegistryEntry `json:"projects"`
}

func (r projectsResult) Text() string {
	if len(r.Projects) == 0 {
		return "no known projects"
	}
	var b strings.Builder
	for _, e := range r.Projects {
		fmt.Fprintf(&b, "%s  %s  (last opened %s)\n",
			e.Name, e.Path, e.LastOpened.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List trail projects opened on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()
			entries, err := store.ListRegistry(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, projectsResult{Projects: entries})
		},
	}
}
