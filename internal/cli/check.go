package cli

import (
	"fmt"
	"strings"

	"trail-cli/internal/check"

	"github.com/spf13/cobra"
)

type checkResult struct {
	check.Report
}

func (r checkResult) Text() string {
	if r.Valid && len(r.Warnings) == 0 {
		return "project is clean"
	}
	var b strings.Builder
	for _, issue := range r.Errors {
		b.WriteString("error: " + formatIssue(issue) + "\n")
	}
	for _, issue := range r.Warnings {
		b.WriteString("warning: " + formatIssue(issue) + "\n")
	}
	fmt.Fprintf(&b, "%d errors, %d warnings", len(r.Errors), len(r.Warnings))
	return b.String()
}

func formatIssue(issue check.Issue) string {
	var b strings.Builder
	b.WriteString(issue.Kind)
	if issue.TaskID != "" {
		b.WriteString(" " + issue.TaskID)
	}
	if issue.TrackID != "" {
		b.WriteString(" (" + issue.TrackID + ")")
	}
	if issue.Detail != "" {
		b.WriteString(": " + issue.Detail)
	}
	if len(issue.Tracks) > 0 {
		b.WriteString(" [" + strings.Join(issue.Tracks, ", ") + "]")
	}
	return b.String()
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project (dangling deps, broken paths, duplicate IDs)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, checkResult{check.CheckProject(p)})
		},
	}
}
