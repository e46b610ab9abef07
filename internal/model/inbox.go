package model

// InboxItem is one capture in the inbox file.
type InboxItem struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
	Body  string   `json:"body,omitempty"`

	SourceText []string `json:"-"`
	Dirty      bool     `json:"-"`
}

// NewInboxItem builds a fresh item with no source text, marked dirty.
func NewInboxItem(title string) *InboxItem {
	return &InboxItem{Title: title, Dirty: true}
}

// DroppedLine records an inbox line the parser could not attach to any item,
// so hand-edited content is reported instead of silently lost.
type DroppedLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// Inbox is the parsed inbox file.
type Inbox struct {
	// Header holds everything before the first item.
	Header  []string
	Items   []*InboxItem
	Dropped []DroppedLine

	SourceLines []string
}
