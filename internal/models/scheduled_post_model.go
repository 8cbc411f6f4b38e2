package models

import "time"

type ScheduledPost struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Content        string    `db:"content" json:"content"`
	MediaURL       string    `db:"media_url" json:"media_url,omitempty"`
	ScheduledTime  time.Time `db:"scheduled_time" json:"scheduled_time"`
	Status         string    `db:"status" json:"status"`
	PlatformPostID string    `db:"platform_post_id" json:"platform_post_id,omitempty"`
	ErrorDetail    string    `db:"error_detail" json:"error_detail,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Status transitions: pending -> publishing -> published | failed.
// Published and failed are terminal; pending posts may also be deleted by cancel.
const (
	PostStatusPending    = "pending"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
