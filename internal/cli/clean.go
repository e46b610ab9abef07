package cli

import (
	"fmt"
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"
	"trail-cli/internal/publish"
	"trail-cli/internal/store"

	"github.com/spf13/cobra"
)

type cleanResult struct {
	mutate.CleanReport
	DryRun bool `json:"dryRun,omitempty"`
}

func (r cleanResult) Text() string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString("dry run, nothing written\n")
	}
	if len(r.AssignedIDs) > 0 {
		b.WriteString("assigned ids: " + strings.Join(r.AssignedIDs, ", ") + "\n")
	}
	if len(r.AssignedDates) > 0 {
		b.WriteString("assigned added dates: " + strings.Join(r.AssignedDates, ", ") + "\n")
	}
	for _, fix := range r.Duplicates {
		fmt.Fprintf(&b, "duplicate id %s reassigned to %s (%s)\n", fix.OldID, fix.NewID, fix.TrackID)
	}
	for track, n := range r.ArchivedCounts {
		fmt.Fprintf(&b, "archived %d done tasks from %s\n", n, track)
	}
	for _, s := range r.Suggestions {
		b.WriteString("suggest: " + s + "\n")
	}
	if !r.Changed() {
		b.WriteString("nothing to clean\n")
	}
	fmt.Fprintf(&b, "check: %d errors, %d warnings", len(r.Check.Errors), len(r.Check.Warnings))
	return b.String()
}

func newCleanCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Run the hygiene pass (assign IDs/dates, fix duplicates, archive overflow)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				p, err := loadProject(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				report := mutate.Clean(p, time.Now())
				return writeOut(cmd, app, cleanResult{CleanReport: report, DryRun: true})
			}

			var report mutate.CleanReport
			err := withProjectNoAutoClean(app, func(p *model.Project) error {
				report = mutate.Clean(p, time.Now())
				if err := appendArchives(p, report); err != nil {
					return err
				}
				return store.SaveSummary(p.Root, publish.ActiveSummary(p))
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cleanResult{CleanReport: report})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what a clean pass would do without writing anything")

	return cmd
}

// withProjectNoAutoClean is withProject minus the config-driven auto-clean,
// for the explicit clean command (which already ran the pass itself).
func withProjectNoAutoClean(app *App, fn func(p *model.Project) error) error {
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
	if err := fn(p); err != nil {
		return err
	}
	return store.SaveProject(p)
}
