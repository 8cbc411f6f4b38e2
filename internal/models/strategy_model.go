package models

import "time"

// Strategy holds the content-strategy context injected into generated text.
// At most one strategy per user is active at a time.
type Strategy struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	Name              string    `db:"name" json:"name"`
	Description       string    `db:"description" json:"description"`
	BusinessType      string    `db:"business_type" json:"business_type"`
	TargetAudience    string    `db:"target_audience" json:"target_audience"`
	KeyObjectives     string    `db:"key_objectives" json:"key_objectives"`
	ToneOfVoice       string    `db:"tone_of_voice" json:"tone_of_voice"`
	KeyTopics         string    `db:"key_topics" json:"key_topics"`
	ValuePropositions string    `db:"value_propositions" json:"value_propositions"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
