package models

import "time"

// ReplyLog records every auto-reply that was sent. It backs the daily quota and
// per-author cooldown checks and marks a comment as already handled.
type ReplyLog struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	CommentID     string    `db:"comment_id" json:"comment_id"`
	CommentAuthor string    `db:"comment_author" json:"comment_author"`
	ReplyText     string    `db:"reply_text" json:"reply_text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
