package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/mutate"

	"github.com/spf13/cobra"
)

type inboxItemView struct {
	Index int      `json:"index"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
	Body  string   `json:"body,omitempty"`
}

type inboxListResult struct {
	Items []inboxItemView `json:"items"`
}

func (r inboxListResult) Text() string {
	if len(r.Items) == 0 {
		return "inbox is empty"
	}
	var b strings.Builder
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%d. %s", item.Index, item.Title)
		for _, tag := range item.Tags {
			b.WriteString(" #")
			b.WriteString(tag)
		}
		b.WriteByte('\n')
		for _, line := range bodyLines(item.Body) {
			b.WriteString("   ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func bodyLines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func newInboxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List inbox items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			res := inboxListResult{Items: []inboxItemView{}}
			if p.Inbox != nil {
				for i, item := range p.Inbox.Items {
					res.Items = append(res.Items, inboxItemView{
						Index: i + 1,
						Title: item.Title,
						Tags:  item.Tags,
						Body:  item.Body,
					})
				}
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.AddCommand(newInboxAddCmd(app))
	cmd.AddCommand(newInboxTriageCmd(app))
	cmd.AddCommand(newInboxRmCmd(app))

	return cmd
}

type inboxAddResult struct {
	Item  inboxItemView `json:"item"`
	Index int           `json:"index"`
}

func (r inboxAddResult) Text() string {
	return fmt.Sprintf("captured as inbox item %d", r.Index)
}

func newInboxAddCmd(app *App) *cobra.Command {
	var tags []string
	var note string

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Capture an inbox item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res mutate.InboxAddResult
			err := withProject(app, func(p *model.Project) error {
				res = mutate.AddInboxItem(p, strings.Join(args, " "))
				for _, tag := range tags {
					tag = strings.TrimPrefix(tag, "#")
					if tag != "" && !hasString(res.Item.Tags, tag) {
						res.Item.Tags = append(res.Item.Tags, tag)
					}
				}
				if note != "" {
					res.Item.Body = note
				}
				return nil
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			view := inboxItemView{Index: res.Index, Title: res.Item.Title, Tags: res.Item.Tags, Body: res.Item.Body}
			return writeOut(cmd, app, inboxAddResult{Item: view, Index: res.Index})
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag the item (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Body kept with the item; becomes the task note on triage")

	return cmd
}

func hasString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

type triageOut struct {
	Task    taskView `json:"task"`
	TrackID string   `json:"trackId"`
	Index   int      `json:"index"`
	Item    int      `json:"item"`
}

func (r triageOut) Text() string {
	return fmt.Sprintf("inbox item %d is now %s in %s", r.Item, r.Task.ID, r.TrackID)
}

func newInboxTriageCmd(app *App) *cobra.Command {
	var track string
	var top bool
	var after string

	cmd := &cobra.Command{
		Use:   "triage <n>",
		Short: "Turn inbox item n into a backlog task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("item number must be a number: %q", args[0]))
			}
			if track == "" {
				return writeErr(cmd, fmt.Errorf("missing --track"))
			}
			pos, err := positionOf(top, after)
			if err != nil {
				return writeErr(cmd, err)
			}

			var res mutate.TriageResult
			err = withProject(app, func(p *model.Project) error {
				var err error
				res, err = mutate.TriageInboxItem(p, n, track, pos, time.Now())
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, triageOut{Task: viewOf(res.Task), TrackID: res.TrackID, Index: res.Index, Item: n})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Target track")
	positionFlags(cmd, &top, &after)

	return cmd
}

type inboxRmResult struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

func (r inboxRmResult) Text() string {
	return fmt.Sprintf("removed inbox item %d: %s", r.Index, r.Title)
}

func newInboxRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n>",
		Short: "Drop inbox item n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("item number must be a number: %q", args[0]))
			}

			var item *model.InboxItem
			err = withProject(app, func(p *model.Project) error {
				var err error
				item, err = mutate.RemoveInboxItem(p, n)
				return err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, inboxRmResult{Index: n, Title: item.Title})
		},
	}
}
