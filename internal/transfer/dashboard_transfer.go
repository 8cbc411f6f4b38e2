package transfer

// AnalyzedComment pairs a page comment with its classified sentiment.
type AnalyzedComment struct {
	Comment   *Comment  `json:"comment"`
	Sentiment Sentiment `json:"sentiment"`
}

type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

type DashboardOverview struct {
	PageName        string             `json:"page_name"`
	Posts           []*FacebookPost    `json:"posts"`
	RecentComments  []*AnalyzedComment `json:"recent_comments"`
	Sentiment       SentimentCounts    `json:"sentiment"`
	ActivitySummary string             `json:"activity_summary"`
}

type ReplyRequest struct {
	CommentID string `json:"comment_id"`
	Message   string `json:"message"`
}

type QuickReplyRequest struct {
	Comment string `json:"comment"`
}
