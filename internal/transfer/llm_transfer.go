package transfer

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type Sentiment struct {
	Label      string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type PostSuggestion struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// ReplyDecision is the outcome of the auto-reply policy chain. When Reply is
// false, SkipReason says which rule stopped it.
type ReplyDecision struct {
	Reply      bool      `json:"reply"`
	Text       string    `json:"text,omitempty"`
	SkipReason string    `json:"skip_reason,omitempty"`
	Sentiment  Sentiment `json:"sentiment"`
}

func SkipDecision(reason string, sentiment Sentiment) ReplyDecision {
	return ReplyDecision{Reply: false, SkipReason: reason, Sentiment: sentiment}
}

func ReplyWith(text string, sentiment Sentiment) ReplyDecision {
	return ReplyDecision{Reply: true, Text: text, Sentiment: sentiment}
}
