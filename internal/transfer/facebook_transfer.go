package transfer

import "time"

// PublishResult is the outcome of a Graph API write. Exactly one of ID or
// ErrorMessage is set: a rejected post is a payload, not a Go error.
type PublishResult struct {
	ID           string `json:"id,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

func (r PublishResult) OK() bool {
	return r.ID != "" && r.ErrorMessage == ""
}

type FacebookPost struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	CreatedTime  time.Time `json:"created_time"`
	PermalinkURL string    `json:"permalink_url"`
	CommentCount int       `json:"comment_count"`
}

type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	Message     string    `json:"message"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	CreatedTime time.Time `json:"created_time"`
}

// AuthorKey identifies a comment author for cooldown tracking. Pages sometimes
// omit the numeric id for privacy-scoped users, so fall back to the name.
func (c Comment) AuthorKey() string {
	if c.AuthorID != "" {
		return c.AuthorID
	}
	return c.AuthorName
}

type PostMetrics struct {
	PostID      string `json:"post_id"`
	Impressions int64  `json:"impressions"`
	Engagements int64  `json:"engagements"`
}

type FacebookPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	AccessToken string `json:"access_token"`
}
