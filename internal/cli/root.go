package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"trail-cli/internal/diag"
	"trail-cli/internal/format"
	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/publish"
	"trail-cli/internal/store"
	"trail-cli/internal/tui"

	"github.com/spf13/cobra"
)

// lockTimeout bounds how long a mutating command waits for another trail
// process to release the project.
const lockTimeout = 5 * time.Second

type App struct {
	Dir    string
	Format string
	Pretty bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "trail",
		Short:        "trail - your backlog is plain text",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  trail

  # Scriptable commands
  trail list
  trail add effects-engine "Design the relay pipeline #core"

  # Direct task lookup (shortcut for: trail show <task-id>)
  trail EFF-002
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applyGlobalDefaults(cmd, app)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TRAIL_DIR", ""), "Project directory (default: walk up from the working directory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TRAIL_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTracksCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newSubCmd(app))
	cmd.AddCommand(newCycleCmd(app))
	cmd.AddCommand(newBlockCmd(app))
	cmd.AddCommand(newParkCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newTagCmd(app))
	cmd.AddCommand(newDepCmd(app))
	cmd.AddCommand(newRefCmd(app))
	cmd.AddCommand(newSpecCmd(app))
	cmd.AddCommand(newNoteCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newInboxCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newCleanCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newProjectsCmd(app))

	return cmd
}

// applyGlobalDefaults lets ~/.trail/config.toml supply output defaults
// without overriding an explicit flag or environment value.
func applyGlobalDefaults(cmd *cobra.Command, app *App) {
	cfg, err := store.LoadGlobalConfig()
	if err != nil {
		diag.Debug("global config unreadable", "err", err)
		return
	}
	flags := cmd.Root().PersistentFlags()
	if cfg.Defaults.Format != "" && !flags.Changed("format") && os.Getenv("TRAIL_FORMAT") == "" {
		app.Format = cfg.Defaults.Format
	}
	if cfg.Defaults.Pretty && !flags.Changed("pretty") {
		app.Pretty = true
	}
}

func runTUI(app *App) error {
	p, err := loadProject(app)
	if err != nil {
		return err
	}
	return tui.Run(p)
}

// loadProject resolves the project root and loads everything. Read-only
// commands use it directly; mutating commands go through withProject.
func loadProject(app *App) (*model.Project, error) {
	root, err := store.ResolveRoot(app.Dir)
	if err != nil {
		return nil, err
	}
	p, err := store.LoadProject(root)
	if err != nil {
		return nil, err
	}
	touchRegistry(p)
	return p, nil
}

// withProject runs fn against the loaded project under the write lock and
// persists the result. fn returning an error leaves the files untouched.
func withProject(app *App, fn func(p *model.Project) error) error {
	root, err := store.ResolveRoot(app.Dir)
	if err != nil {
		return err
	}
	lock, err := store.AcquireLock(root, lockTimeout)
	if err != nil {
		return err
	}
	defer lock.Release()

	p, err := store.LoadProject(root)
	if err != nil {
		return err
	}
	touchRegistry(p)
	if err := fn(p); err != nil {
		return err
	}
	return persistProject(p)
}

// persistProject writes the project back, running the auto-clean pass first
// when the config asks for it. Archive appends happen before the track
// rewrite so a failed append leaves the overflow tasks in their files on the
// next load.
func persistProject(p *model.Project) error {
	if p.Config.Clean.AutoClean {
		report := mutate.Clean(p, time.Now())
		if err := appendArchives(p, report); err != nil {
			return err
		}
		if err := store.SaveProject(p); err != nil {
			return err
		}
		return store.SaveSummary(p.Root, publish.ActiveSummary(p))
	}
	return store.SaveProject(p)
}

func appendArchives(p *model.Project, report mutate.CleanReport) error {
	for trackID, tasks := range report.Archived {
		name := trackID
		if tc := p.Config.TrackByID(trackID); tc != nil {
			name = tc.Name
		}
		if err := store.AppendArchive(p.Root, p.Config.Clean, trackID, name, tasks); err != nil {
			return err
		}
	}
	return nil
}

// touchRegistry records the project in the cross-project registry. Registry
// problems never block a command.
func touchRegistry(p *model.Project) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := store.TouchRegistry(ctx, p.Config.Project.Name, p.Root, time.Now()); err != nil {
		diag.Debug("registry touch failed", "err", err)
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v}, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
