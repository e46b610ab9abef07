package cli

import (
	"os"

	"trail-cli/internal/store"

	"github.com/spf13/cobra"
)

type initResult struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

func (r initResult) Text() string {
	return "Initialized trail project " + r.Name + " in " + store.TrailDir(r.Root)
}

func newInitCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a trail project in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = wd
			}

			p, err := store.InitProject(dir, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			touchRegistry(p)
			return writeOut(cmd, app, initResult{Name: p.Config.Project.Name, Root: p.Root})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default: the directory name)")

	return cmd
}
