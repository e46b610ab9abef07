package cli

import (
	"fmt"
	"strings"

	"trail-cli/internal/docs"
	"trail-cli/internal/tui"

	"github.com/spf13/cobra"
)

type docsTopicsResult struct {
	Topics []string `json:"topics"`
}

func (r docsTopicsResult) Text() string {
	return "topics: " + strings.Join(r.Topics, ", ")
}

type docsBodyResult struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (r docsBodyResult) Text() string {
	return tui.RenderMarkdown(r.Markdown, 80)
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docsTopicsResult{Topics: docs.Topics()})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `trail docs` to list topics)", args[0]))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, docsBodyResult{Topic: args[0], Markdown: body})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw markdown, no rendering or envelope")

	return cmd
}
