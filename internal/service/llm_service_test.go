package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "pagepilot/configs"
	"pagepilot/internal/models"
	"pagepilot/internal/transfer"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testLLM(baseURL string) *groqService {
	return &groqService{
		cfg:     config.Config{GroqAPIKey: "test-key", GroqModel: "test-model"},
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestAnalyzeSentiment_ParsesJSONAnswer(t *testing.T) {
	srv := chatServer(t, `{"sentiment": "negative", "confidence": 0.92}`)
	svc := testLLM(srv.URL)

	s, err := svc.AnalyzeSentiment(context.Background(), "this is broken")
	require.NoError(t, err)
	assert.Equal(t, transfer.SentimentNegative, s.Label)
	assert.InDelta(t, 0.92, s.Confidence, 0.001)
}

func TestAnalyzeSentiment_ParsesWrappedJSON(t *testing.T) {
	srv := chatServer(t, `Sure! Here is the analysis: {"sentiment": "positive", "confidence": 0.8} Hope that helps.`)
	svc := testLLM(srv.URL)

	s, err := svc.AnalyzeSentiment(context.Background(), "love it")
	require.NoError(t, err)
	assert.Equal(t, transfer.SentimentPositive, s.Label)
}

func TestAnalyzeSentiment_ProseAnswerFallsBackToContains(t *testing.T) {
	srv := chatServer(t, "The sentiment of this text is clearly negative.")
	svc := testLLM(srv.URL)

	s, err := svc.AnalyzeSentiment(context.Background(), "meh")
	require.NoError(t, err)
	assert.Equal(t, transfer.SentimentNegative, s.Label)
	assert.InDelta(t, 0.5, s.Confidence, 0.001)
}

func TestAnalyzeSentiment_APIDownUsesKeywordHeuristic(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	s, err := svc.AnalyzeSentiment(context.Background(), "this is terrible")
	require.NoError(t, err, "classifier failure must not surface as an error")
	assert.Equal(t, transfer.SentimentNegative, s.Label)
	assert.InDelta(t, 0.78, s.Confidence, 0.001)

	s, err = svc.AnalyzeSentiment(context.Background(), "thank you so much")
	require.NoError(t, err)
	assert.Equal(t, transfer.SentimentPositive, s.Label)

	s, err = svc.AnalyzeSentiment(context.Background(), "okay")
	require.NoError(t, err)
	assert.Equal(t, transfer.SentimentNeutral, s.Label)
}

func TestAnalyzeSentiment_ConfidenceClamped(t *testing.T) {
	srv := chatServer(t, `{"sentiment": "positive", "confidence": 3.5}`)
	svc := testLLM(srv.URL)

	s, err := svc.AnalyzeSentiment(context.Background(), "great")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Confidence)
}

func TestGenerateReply_APIDownUsesStaticFallback(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	reply := svc.GenerateReply(context.Background(), "where is my order?", "")
	assert.Equal(t, fallbackReply, reply)
}

func TestGenerateReply_TrimsModelOutput(t *testing.T) {
	srv := chatServer(t, "  Thanks for reaching out, we'll check on that right away.  \n")
	svc := testLLM(srv.URL)

	reply := svc.GenerateReply(context.Background(), "where is my order?", "")
	assert.Equal(t, "Thanks for reaching out, we'll check on that right away.", reply)
}

func TestGenerateQuickReplies_SplitsLines(t *testing.T) {
	srv := chatServer(t, "Thanks so much!\n\nWe hear you.\nWe'll follow up shortly.")
	svc := testLLM(srv.URL)

	replies := svc.GenerateQuickReplies(context.Background(), "nice post", "")
	assert.Equal(t, []string{"Thanks so much!", "We hear you.", "We'll follow up shortly."}, replies)
}

func TestGenerateQuickReplies_APIDownReturnsThreeDefaults(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	replies := svc.GenerateQuickReplies(context.Background(), "nice post", "")
	assert.Len(t, replies, 3)
}

func TestGeneratePostSuggestions_ParsesJSONArray(t *testing.T) {
	srv := chatServer(t, `[{"message": "Try our new menu!", "reason": "Seasonal launch"}]`)
	svc := testLLM(srv.URL)

	suggestions := svc.GeneratePostSuggestions(context.Background(), "prompt")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Try our new menu!", suggestions[0].Message)
	assert.Equal(t, "Seasonal launch", suggestions[0].Reason)
}

func TestGeneratePostSuggestions_ParsesLineFormat(t *testing.T) {
	srv := chatServer(t, "Post: Try our new menu!\nWhy: Seasonal launch\nPost: Meet the team\nWhy: Builds trust")
	svc := testLLM(srv.URL)

	suggestions := svc.GeneratePostSuggestions(context.Background(), "prompt")
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Try our new menu!", suggestions[0].Message)
	assert.Equal(t, "Seasonal launch", suggestions[0].Reason)
	assert.Equal(t, "Meet the team", suggestions[1].Message)
}

func TestGeneratePostSuggestions_APIDownReturnsDefaults(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	suggestions := svc.GeneratePostSuggestions(context.Background(), "prompt")
	assert.Len(t, suggestions, 3)
}

func TestSummarizeActivity_NoPosts(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	summary := svc.SummarizeActivity(context.Background(), nil)
	assert.Equal(t, "No recent activity to summarize.", summary)
}

func TestSummarizeActivity_APIDownComputesFallback(t *testing.T) {
	svc := testLLM("http://127.0.0.1:0")

	posts := []*transfer.FacebookPost{
		{Message: "hello", CommentCount: 4},
		{Message: "world", CommentCount: 1},
	}
	summary := svc.SummarizeActivity(context.Background(), posts)
	assert.Equal(t, "Your page has 2 recent posts generating 5 comments.", summary)
}

func TestStrategyContext(t *testing.T) {
	assert.Empty(t, StrategyContext(nil))

	ctx := StrategyContext(&models.Strategy{
		BusinessType:   "Restaurant",
		TargetAudience: "Locals",
		ToneOfVoice:    "Friendly",
	})
	assert.Contains(t, ctx, "Business Context:")
	assert.Contains(t, ctx, "Restaurant")
	assert.Contains(t, ctx, "Friendly")
}
