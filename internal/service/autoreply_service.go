package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pagepilot/internal/cache"
	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

// Skip reasons surfaced in decisions and logs.
const (
	SkipDisabled     = "auto-reply disabled"
	SkipEmptyComment = "empty comment"
	SkipPolicy       = "comment does not match reply policy"
	SkipQuota        = "daily quota exceeded"
	SkipCooldown     = "cooldown active"
	SkipAlreadySeen  = "comment already handled"
	SkipNoPage       = "no page connected"
)

type AutoReplyService interface {
	Decide(ctx context.Context, userID int64, comment *transfer.Comment, settings *models.AutoReplySettings, strategy *models.Strategy) (transfer.ReplyDecision, error)
	HandleComment(ctx context.Context, userID int64, comment *transfer.Comment) error
}

type autoReplyService struct {
	sr  repository.SettingsRepository
	st  repository.StrategyRepository
	rl  repository.ReplyLogRepository
	pp  repository.PageProfileRepository
	fb  FacebookService
	llm LLMService
	sc  *cache.SentimentCache
}

func NewAutoReplyService(
	sr repository.SettingsRepository,
	st repository.StrategyRepository,
	rl repository.ReplyLogRepository,
	pp repository.PageProfileRepository,
	fb FacebookService,
	llm LLMService,
	sc *cache.SentimentCache) AutoReplyService {
	return &autoReplyService{
		sr:  sr,
		st:  st,
		rl:  rl,
		pp:  pp,
		fb:  fb,
		llm: llm,
		sc:  sc,
	}
}

// classify resolves a comment's sentiment through the shared cache. Skipped
// comments stay unseen and come back on every poll tick, so without the cache
// each tick would bill the model again for the same comment.
func (s *autoReplyService) classify(ctx context.Context, comment *transfer.Comment) (transfer.Sentiment, error) {
	if cached, err := s.sc.Get(ctx, comment.ID); err == nil && cached != nil {
		return *cached, nil
	}
	sentiment, err := s.llm.AnalyzeSentiment(ctx, comment.Message)
	if err != nil {
		return transfer.Sentiment{}, err
	}
	if err := s.sc.Set(ctx, comment.ID, sentiment); err != nil {
		slog.Info(err.Error())
	}
	return sentiment, nil
}

// Decide runs the reply policy chain for one comment. The first matching skip
// rule wins. Decide reads the reply log but never writes it; applying a Reply
// decision (sending and logging) is the caller's job, which keeps this
// independently testable.
func (s *autoReplyService) Decide(ctx context.Context, userID int64, comment *transfer.Comment, settings *models.AutoReplySettings, strategy *models.Strategy) (transfer.ReplyDecision, error) {
	var sentiment transfer.Sentiment

	if settings == nil || !settings.Enabled {
		return transfer.SkipDecision(SkipDisabled, sentiment), nil
	}

	if comment == nil || comment.Message == "" {
		return transfer.SkipDecision(SkipEmptyComment, sentiment), nil
	}

	sentiment, err := s.classify(ctx, comment)
	if err != nil {
		// Classification must not break the decision: degrade to neutral so
		// only reply_to_all can still match below.
		slog.Info(err.Error())
		sentiment = transfer.Sentiment{Label: transfer.SentimentNeutral, Confidence: 0}
	}

	matches := settings.ReplyToAll ||
		(settings.ReplyToNegative && sentiment.Label == transfer.SentimentNegative)
	if !matches {
		return transfer.SkipDecision(SkipPolicy, sentiment), nil
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sentToday, err := s.rl.CountForUserSince(ctx, userID, dayStart)
	if err != nil {
		return transfer.ReplyDecision{}, err
	}
	if sentToday >= settings.MaxRepliesPerDay {
		return transfer.SkipDecision(SkipQuota, sentiment), nil
	}

	if settings.CooldownMinutes > 0 {
		lastReply, err := s.rl.LastReplyToAuthor(ctx, userID, comment.AuthorKey())
		if err != nil {
			return transfer.ReplyDecision{}, err
		}
		if lastReply != nil && now.Sub(lastReply.UTC()) < time.Duration(settings.CooldownMinutes)*time.Minute {
			return transfer.SkipDecision(SkipCooldown, sentiment), nil
		}
	}

	if settings.ReplyTemplate != "" {
		return transfer.ReplyWith(settings.ReplyTemplate, sentiment), nil
	}

	text := s.llm.GenerateReply(ctx, comment.Message, StrategyContext(strategy))
	return transfer.ReplyWith(text, sentiment), nil
}

// HandleComment is the orchestration around Decide: load configuration, decide,
// and on a Reply decision send it and record the attempt for future quota and
// cooldown checks.
func (s *autoReplyService) HandleComment(ctx context.Context, userID int64, comment *transfer.Comment) error {
	seen, err := s.rl.Seen(ctx, userID, comment.ID)
	if err != nil {
		return err
	}
	if seen {
		slog.Info(SkipAlreadySeen, "comment_id", comment.ID)
		return nil
	}

	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		settings = models.DefaultAutoReplySettings(userID)
	}

	strategy, _, err := s.st.GetActive(ctx, userID)
	if err != nil {
		return err
	}

	decision, err := s.Decide(ctx, userID, comment, settings, strategy)
	if err != nil {
		return err
	}
	if !decision.Reply {
		slog.Info("auto-reply skipped", "comment_id", comment.ID, "reason", decision.SkipReason)
		return nil
	}

	page, isExist, err := s.pp.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		slog.Info(SkipNoPage, "user_id", userID)
		return nil
	}

	result, err := s.fb.ReplyToComment(ctx, page, comment.ID, decision.Text)
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("platform rejected reply: %s", result.ErrorMessage)
	}

	entry := &models.ReplyLog{
		UserID:        userID,
		CommentID:     comment.ID,
		CommentAuthor: comment.AuthorKey(),
		ReplyText:     decision.Text,
	}
	if _, err := s.rl.Create(ctx, entry); err != nil {
		return err
	}

	return nil
}
