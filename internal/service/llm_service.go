package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "pagepilot/configs"
	"pagepilot/internal/models"
	"pagepilot/internal/transfer"
)

const groqAPIBaseURL = "https://api.groq.com/openai/v1"

// LLMService is a fixed capability contract: every method is always present
// and degrades to a deterministic fallback inside its own error path, so
// callers never probe for missing behavior.
type LLMService interface {
	AnalyzeSentiment(ctx context.Context, text string) (transfer.Sentiment, error)
	GenerateReply(ctx context.Context, comment, replyContext string) string
	GenerateQuickReplies(ctx context.Context, comment, strategyContext string) []string
	GeneratePostSuggestions(ctx context.Context, prompt string) []transfer.PostSuggestion
	SummarizeActivity(ctx context.Context, posts []*transfer.FacebookPost) string
}

type groqService struct {
	cfg     config.Config
	baseURL string
	client  *http.Client
}

func NewLLMService(cfg config.Config) LLMService {
	return &groqService{
		cfg:     cfg,
		baseURL: groqAPIBaseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// StrategyContext renders the active content strategy as the business-context
// block injected into generation prompts. Empty when no strategy is active.
func StrategyContext(strategy *models.Strategy) string {
	if strategy == nil {
		return ""
	}
	return fmt.Sprintf(`Business Context:
- Type: %s
- Target Audience: %s
- Objectives: %s
- Tone: %s
- Value Props: %s
`, strategy.BusinessType, strategy.TargetAudience, strategy.KeyObjectives, strategy.ToneOfVoice, strategy.ValuePropositions)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *groqService) complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	payload := chatRequest{
		Model:       s.cfg.GroqModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.GroqAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if decoded.Error != nil {
		return "", errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return decoded.Choices[0].Message.Content, nil
}

func (s *groqService) AnalyzeSentiment(ctx context.Context, text string) (transfer.Sentiment, error) {
	prompt := fmt.Sprintf("Analyze the sentiment of this text and provide a JSON response with sentiment (positive/negative/neutral) and confidence score: '%s'", text)

	result, err := s.complete(ctx, prompt, 0.2, 0)
	if err != nil {
		slog.Info("sentiment classification failed, using keyword heuristic", "error", err.Error())
		return keywordSentiment(text), nil
	}

	return parseSentimentResult(result), nil
}

func parseSentimentResult(result string) transfer.Sentiment {
	// The model usually answers with a JSON object, sometimes wrapped in prose.
	start := strings.Index(result, "{")
	end := strings.LastIndex(result, "}")
	if start >= 0 && end > start {
		var parsed transfer.Sentiment
		if err := json.Unmarshal([]byte(result[start:end+1]), &parsed); err == nil {
			switch parsed.Label {
			case transfer.SentimentPositive, transfer.SentimentNegative, transfer.SentimentNeutral:
				if parsed.Confidence < 0 {
					parsed.Confidence = 0
				}
				if parsed.Confidence > 1 {
					parsed.Confidence = 1
				}
				return parsed
			}
		}
	}

	lower := strings.ToLower(result)
	if strings.Contains(lower, transfer.SentimentPositive) {
		return transfer.Sentiment{Label: transfer.SentimentPositive, Confidence: 0.5}
	}
	if strings.Contains(lower, transfer.SentimentNegative) {
		return transfer.Sentiment{Label: transfer.SentimentNegative, Confidence: 0.5}
	}
	return transfer.Sentiment{Label: transfer.SentimentNeutral, Confidence: 0.0}
}

var (
	positiveWords = []string{"great", "love", "amazing", "excellent", "good", "thank"}
	negativeWords = []string{"bad", "terrible", "awful", "poor", "disappointed"}
)

func keywordSentiment(text string) transfer.Sentiment {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return transfer.Sentiment{Label: transfer.SentimentPositive, Confidence: 0.85}
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return transfer.Sentiment{Label: transfer.SentimentNegative, Confidence: 0.78}
		}
	}
	return transfer.Sentiment{Label: transfer.SentimentNeutral, Confidence: 0.65}
}

const fallbackReply = "We appreciate your feedback and will get back to you soon."

func (s *groqService) GenerateReply(ctx context.Context, comment, replyContext string) string {
	prompt := fmt.Sprintf(`Context: %s

Please generate a professional response to this comment on our social media page: '%s'

The response should:
- Align with our business strategy and objectives
- Be conversational and personable
- Address the specific points in the comment
- Be around 2-3 sentences
- Match our defined tone of voice
`, replyContext, comment)

	result, err := s.complete(ctx, prompt, 0.6, 0)
	if err != nil {
		slog.Info("reply generation failed, using static fallback", "error", err.Error())
		return fallbackReply
	}
	return strings.TrimSpace(result)
}

func (s *groqService) GenerateQuickReplies(ctx context.Context, comment, strategyContext string) []string {
	prompt := fmt.Sprintf(`Context: %s

Generate 3 quick, professional, and friendly replies to this comment: '%s'
Each reply should:
- Be concise (1-2 sentences)
- Match our tone of voice
- Be relevant to the comment context
`, strategyContext, comment)

	result, err := s.complete(ctx, prompt, 0.7, 0)
	if err != nil {
		slog.Info("quick reply generation failed, using static fallback", "error", err.Error())
		return []string{
			"Thank you for your feedback!",
			"We appreciate your input!",
			"Thanks for sharing your thoughts with us!",
		}
	}

	var replies []string
	for _, line := range strings.Split(result, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			replies = append(replies, line)
		}
	}
	return replies
}

func (s *groqService) GeneratePostSuggestions(ctx context.Context, prompt string) []transfer.PostSuggestion {
	result, err := s.complete(ctx, prompt, 0.7, 0)
	if err != nil {
		slog.Info("suggestion generation failed, using defaults", "error", err.Error())
		return defaultSuggestions()
	}

	suggestions := parsePostSuggestions(result)
	if len(suggestions) == 0 {
		return defaultSuggestions()
	}
	return suggestions
}

func parsePostSuggestions(result string) []transfer.PostSuggestion {
	trimmed := strings.TrimSpace(result)
	if strings.HasPrefix(trimmed, "[") {
		var parsed []transfer.PostSuggestion
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
	}

	// Not JSON: read "Post:"/"Message:"/numbered lines with optional
	// "Why:"/"Reason:" follow-ups, the formats the model tends to produce.
	var suggestions []transfer.PostSuggestion
	var current *transfer.PostSuggestion
	for _, line := range strings.Split(result, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case hasAnyPrefix(line, "Post:", "Message:", "1.", "2.", "3."):
			if current != nil {
				suggestions = append(suggestions, *current)
			}
			current = &transfer.PostSuggestion{Message: afterColon(line)}
		case hasAnyPrefix(line, "Why:", "Reason:", "-"):
			if current != nil {
				current.Reason = afterColon(line)
			}
		}
	}
	if current != nil {
		suggestions = append(suggestions, *current)
	}
	return suggestions
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func afterColon(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(strings.TrimLeft(s, "-123. "))
}

func defaultSuggestions() []transfer.PostSuggestion {
	return []transfer.PostSuggestion{
		{
			Message: "Stay tuned for exciting updates from our team! #Innovation #StayConnected",
			Reason:  "Generic post to keep the audience engaged.",
		},
		{
			Message: "Did you know? Consistency is key to social media success. Share your thoughts below! #SocialMediaTips",
			Reason:  "Encourages audience interaction with a general tip.",
		},
		{
			Message: "We're here to help! Drop your questions in the comments, and we'll answer them. #CustomerSupport",
			Reason:  "Promotes engagement and builds trust with the audience.",
		},
	}
}

func (s *groqService) SummarizeActivity(ctx context.Context, posts []*transfer.FacebookPost) string {
	if len(posts) == 0 {
		return "No recent activity to summarize."
	}

	lines := make([]string, 0, 5)
	for i, post := range posts {
		if i == 5 {
			break
		}
		message := post.Message
		if len(message) > 50 {
			message = message[:50] + "..."
		}
		lines = append(lines, fmt.Sprintf("- Post: '%s' with %d comments", message, post.CommentCount))
	}

	prompt := fmt.Sprintf(`Provide a very concise summary (max 2-3 sentences) of the following social media activities:
%s

Focus on key engagement patterns and notable changes. Be brief but insightful.`, strings.Join(lines, "\n"))

	result, err := s.complete(ctx, prompt, 0.4, 100)
	if err != nil {
		slog.Info("activity summary failed, using computed fallback", "error", err.Error())
		commentCount := 0
		for _, post := range posts {
			commentCount += post.CommentCount
		}
		return fmt.Sprintf("Your page has %d recent posts generating %d comments.", len(posts), commentCount)
	}
	return strings.TrimSpace(result)
}
