package transfer

type AutoReplyUpdate struct {
	Enabled          bool   `json:"enabled"`
	ReplyToAll       bool   `json:"reply_to_all"`
	ReplyToNegative  bool   `json:"reply_to_negative"`
	ReplyTemplate    string `json:"reply_template"`
	MaxRepliesPerDay int    `json:"max_replies_per_day"`
	CooldownMinutes  int    `json:"cooldown_minutes"`
}

type PageProfileUpdate struct {
	PageName        string `json:"page_name"`
	Category        string `json:"category"`
	TargetAudience  string `json:"target_audience"`
	ContentLanguage string `json:"content_language"`
}

type StrategyCreation struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	BusinessType      string `json:"business_type"`
	TargetAudience    string `json:"target_audience"`
	KeyObjectives     string `json:"key_objectives"`
	ToneOfVoice       string `json:"tone_of_voice"`
	KeyTopics         string `json:"key_topics"`
	ValuePropositions string `json:"value_propositions"`
	IsActive          bool   `json:"is_active"`
}
