package mutate

import (
	"strconv"
	"time"

	"trail-cli/internal/model"
	"trail-cli/internal/parse"
)

// InboxAddResult reports an appended inbox item.
type InboxAddResult struct {
	Item  *model.InboxItem `json:"item"`
	Index int              `json:"index"`
}

// AddInboxItem appends a capture to the inbox. Tags are split out of text;
// body stays empty (captures are one-liners, bodies come from hand edits).
func AddInboxItem(project *model.Project, text string) InboxAddResult {
	if project.Inbox == nil {
		project.Inbox = &model.Inbox{Header: []string{"# Inbox", ""}}
	}
	title, tags := parse.TitleAndTags(text)
	item := model.NewInboxItem(title)
	item.Tags = tags
	project.Inbox.Items = append(project.Inbox.Items, item)
	return InboxAddResult{Item: item, Index: len(project.Inbox.Items)}
}

// RemoveInboxItem deletes item n (1-based) and returns it.
func RemoveInboxItem(project *model.Project, n int) (*model.InboxItem, error) {
	if project.Inbox == nil || n < 1 || n > len(project.Inbox.Items) {
		return nil, NotFoundError{Kind: "inbox item", ID: strconv.Itoa(n)}
	}
	item := project.Inbox.Items[n-1]
	items := make([]*model.InboxItem, 0, len(project.Inbox.Items)-1)
	items = append(items, project.Inbox.Items[:n-1]...)
	project.Inbox.Items = append(items, project.Inbox.Items[n:]...)
	return item, nil
}

// ReinsertInboxItem puts a removed item back at position n (1-based).
func ReinsertInboxItem(project *model.Project, item *model.InboxItem, n int) {
	if project.Inbox == nil {
		project.Inbox = &model.Inbox{Header: []string{"# Inbox", ""}}
	}
	i := n - 1
	if i < 0 {
		i = 0
	}
	if i > len(project.Inbox.Items) {
		i = len(project.Inbox.Items)
	}
	items := make([]*model.InboxItem, 0, len(project.Inbox.Items)+1)
	items = append(items, project.Inbox.Items[:i]...)
	items = append(items, item)
	project.Inbox.Items = append(items, project.Inbox.Items[i:]...)
}

// TriageResult reports an inbox item turned into a task.
type TriageResult struct {
	Task    *model.Task      `json:"task"`
	TrackID string           `json:"trackId"`
	Index   int              `json:"index"`
	Item    *model.InboxItem `json:"-"`
	ItemPos int              `json:"-"`
}

// TriageInboxItem turns item n (1-based) into a Backlog task on the given
// track. The item's tags carry over and its body becomes the task's note.
// The track, prefix, and position are validated before the item is removed,
// so a failed triage never loses the capture.
func TriageInboxItem(project *model.Project, n int, trackID string, pos Position, now time.Time) (TriageResult, error) {
	if project.Inbox == nil || n < 1 || n > len(project.Inbox.Items) {
		return TriageResult{}, NotFoundError{Kind: "inbox item", ID: strconv.Itoa(n)}
	}
	track, ok := project.Track(trackID)
	if !ok {
		return TriageResult{}, NotFoundError{Kind: "track", ID: trackID}
	}
	prefix, ok := project.Config.Prefix(trackID)
	if !ok {
		return TriageResult{}, NoPrefixError{TrackID: trackID}
	}

	backlog := track.EnsureSection(model.SectionBacklog)
	if err := siblingPresent(backlog.Tasks, pos); err != nil {
		return TriageResult{}, err
	}

	item := project.Inbox.Items[n-1]
	task := model.NewTask(model.StateTodo, mintID(project, prefix), item.Title)
	task.Tags = append([]string(nil), item.Tags...)
	task.Metadata = []model.Metadata{model.Added(now.Format(dateLayout))}
	if item.Body != "" {
		task.Metadata = append(task.Metadata, model.Note(item.Body))
	}

	list, idx, err := insertTask(backlog.Tasks, task, pos)
	if err != nil {
		return TriageResult{}, err
	}
	backlog.Tasks = list
	if _, err := RemoveInboxItem(project, n); err != nil {
		return TriageResult{}, err
	}
	return TriageResult{Task: task, TrackID: trackID, Index: idx, Item: item, ItemPos: n}, nil
}
