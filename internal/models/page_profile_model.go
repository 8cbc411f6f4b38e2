package models

import "time"

// PageProfile describes the Facebook page a user manages. AccessToken is stored
// AES-GCM encrypted and decrypted only when building a Graph API client.
type PageProfile struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	PageID          string    `db:"page_id" json:"page_id"`
	PageName        string    `db:"page_name" json:"page_name"`
	Category        string    `db:"category" json:"category"`
	TargetAudience  string    `db:"target_audience" json:"target_audience"`
	ContentLanguage string    `db:"content_language" json:"content_language"`
	AccessToken     string    `db:"access_token" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
