package models

import "time"

type AutoReplySettings struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	Enabled          bool      `db:"enabled" json:"enabled"`
	ReplyToAll       bool      `db:"reply_to_all" json:"reply_to_all"`
	ReplyToNegative  bool      `db:"reply_to_negative" json:"reply_to_negative"`
	ReplyTemplate    string    `db:"reply_template" json:"reply_template"`
	MaxRepliesPerDay int       `db:"max_replies_per_day" json:"max_replies_per_day"`
	CooldownMinutes  int       `db:"cooldown_minutes" json:"cooldown_minutes"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultAutoReplySettings is what a user gets on first access, before any update.
// Auto-reply starts disabled; the negative-only policy is pre-selected so enabling
// the feature alone does not reply to every comment.
func DefaultAutoReplySettings(userID int64) *AutoReplySettings {
	return &AutoReplySettings{
		UserID:           userID,
		Enabled:          false,
		ReplyToAll:       false,
		ReplyToNegative:  true,
		MaxRepliesPerDay: 50,
		CooldownMinutes:  5,
	}
}
