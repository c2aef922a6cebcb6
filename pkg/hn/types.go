package hn

// ItemType discriminates the kind of an item.
type ItemType string

const (
	// TypeStory is a submitted story.
	TypeStory ItemType = "story"

	// TypeComment is a comment on a story, poll, or another comment.
	TypeComment ItemType = "comment"

	// TypeJob is a job posting.
	TypeJob ItemType = "job"

	// TypePoll is a poll.
	TypePoll ItemType = "poll"

	// TypePollOpt is a poll option belonging to a poll.
	TypePollOpt ItemType = "pollopt"
)

// Item is a single unit of content: a story, comment, job, poll, or poll
// option. Fields that do not apply to an item's type are left at their zero
// value. Items are transient values produced per request; the client keeps
// no reference to them.
type Item struct {
	ID          int      `json:"id"`
	Deleted     bool     `json:"deleted,omitempty"`
	Type        ItemType `json:"type"`
	By          string   `json:"by,omitempty"`
	Time        int64    `json:"time"`
	Text        string   `json:"text,omitempty"`
	Dead        bool     `json:"dead,omitempty"`
	Parent      int      `json:"parent,omitempty"`
	Poll        int      `json:"poll,omitempty"`
	Kids        []int    `json:"kids,omitempty"`
	URL         string   `json:"url,omitempty"`
	Score       int      `json:"score,omitempty"`
	Title       string   `json:"title,omitempty"`
	Parts       []int    `json:"parts,omitempty"`
	Descendants int      `json:"descendants,omitempty"`
}

// Author returns the item's author username. The second return is false when
// the item carries no author: deleted items lose their by field, and some job
// postings never had one. A nil item has no author.
func (i *Item) Author() (string, bool) {
	if i == nil || i.By == "" {
		return "", false
	}
	return i.By, true
}

// User is an account resource keyed by username. Only users that have public
// activity (submitted items or comments) exist in the store.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Karma     int    `json:"karma"`
	About     string `json:"about,omitempty"`
	Submitted []int  `json:"submitted,omitempty"`
}

// Updates lists recently changed item ids and recently changed usernames.
// The store guarantees neither ordering nor uniqueness.
type Updates struct {
	Items    []int    `json:"items"`
	Profiles []string `json:"profiles"`
}

// Endpoint names one of the fixed aggregate endpoints.
type Endpoint string

const (
	// EndpointMaxItem returns the largest item id currently assigned.
	EndpointMaxItem Endpoint = "maxitem"

	// EndpointTopStories returns up to 500 top story ids in ranking order.
	EndpointTopStories Endpoint = "topstories"

	// EndpointNewStories returns up to 500 newest story ids.
	EndpointNewStories Endpoint = "newstories"

	// EndpointBestStories returns up to 500 best story ids in ranking order.
	EndpointBestStories Endpoint = "beststories"

	// EndpointAskStories returns up to 200 latest Ask HN story ids.
	EndpointAskStories Endpoint = "askstories"

	// EndpointShowStories returns up to 200 latest Show HN story ids.
	EndpointShowStories Endpoint = "showstories"

	// EndpointJobStories returns up to 200 latest job story ids.
	EndpointJobStories Endpoint = "jobstories"

	// EndpointUpdates returns the combined recent-changes feed.
	EndpointUpdates Endpoint = "updates"
)
