package service

import (
	"context"
	"errors"
	"log/slog"

	"pagepilot/internal/cache"
	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

// monitorPostLimit caps how many recent posts comment monitoring walks per
// request to keep Graph API usage bounded.
const monitorPostLimit = 10

type CommentService interface {
	Monitor(ctx context.Context, userID int64) ([]*transfer.AnalyzedComment, error)
	ListForPost(ctx context.Context, userID int64, postID string) ([]*transfer.AnalyzedComment, error)
	Reply(ctx context.Context, userID int64, commentID, message string) (transfer.PublishResult, error)
	QuickReplies(ctx context.Context, userID int64, comment string) ([]string, error)
}

type commentService struct {
	pp  repository.PageProfileRepository
	sr  repository.StrategyRepository
	fb  FacebookService
	llm LLMService
	sc  *cache.SentimentCache
}

func NewCommentService(pp repository.PageProfileRepository, sr repository.StrategyRepository, fb FacebookService, llm LLMService, sc *cache.SentimentCache) CommentService {
	return &commentService{pp: pp, sr: sr, fb: fb, llm: llm, sc: sc}
}

func (s *commentService) page(ctx context.Context, userID int64) (*models.PageProfile, error) {
	page, found, err := s.pp.GetByUserID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if !found {
		return nil, errors.New("no connected page")
	}
	return page, nil
}

// classify resolves a comment's sentiment through the cache, falling back to
// the model on a miss.
func (s *commentService) classify(ctx context.Context, comment *transfer.Comment) transfer.Sentiment {
	if cached, err := s.sc.Get(ctx, comment.ID); err == nil && cached != nil {
		return *cached
	}
	sentiment, err := s.llm.AnalyzeSentiment(ctx, comment.Message)
	if err != nil {
		return transfer.Sentiment{Label: transfer.SentimentNeutral}
	}
	if err := s.sc.Set(ctx, comment.ID, sentiment); err != nil {
		slog.Info(err.Error())
	}
	return sentiment
}

func (s *commentService) analyze(ctx context.Context, comments []*transfer.Comment) []*transfer.AnalyzedComment {
	analyzed := make([]*transfer.AnalyzedComment, 0, len(comments))
	for _, c := range comments {
		analyzed = append(analyzed, &transfer.AnalyzedComment{
			Comment:   c,
			Sentiment: s.classify(ctx, c),
		})
	}
	return analyzed
}

func (s *commentService) Monitor(ctx context.Context, userID int64) ([]*transfer.AnalyzedComment, error) {
	page, err := s.page(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.fb.ListPosts(ctx, page)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(posts) > monitorPostLimit {
		posts = posts[:monitorPostLimit]
	}

	var all []*transfer.Comment
	for _, post := range posts {
		if post.CommentCount == 0 {
			continue
		}
		comments, err := s.fb.ListComments(ctx, page, post.ID)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		all = append(all, comments...)
	}
	return s.analyze(ctx, all), nil
}

func (s *commentService) ListForPost(ctx context.Context, userID int64, postID string) ([]*transfer.AnalyzedComment, error) {
	page, err := s.page(ctx, userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.fb.ListComments(ctx, page, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return s.analyze(ctx, comments), nil
}

func (s *commentService) Reply(ctx context.Context, userID int64, commentID, message string) (transfer.PublishResult, error) {
	if message == "" {
		return transfer.PublishResult{}, &ValidationError{Reason: "reply message is required"}
	}
	page, err := s.page(ctx, userID)
	if err != nil {
		return transfer.PublishResult{}, err
	}
	return s.fb.ReplyToComment(ctx, page, commentID, message)
}

func (s *commentService) QuickReplies(ctx context.Context, userID int64, comment string) ([]string, error) {
	if comment == "" {
		return nil, &ValidationError{Reason: "comment text is required"}
	}
	var strategyContext string
	if strategy, found, err := s.sr.GetActive(ctx, userID); err == nil && found {
		strategyContext = StrategyContext(strategy)
	}
	return s.llm.GenerateQuickReplies(ctx, comment, strategyContext), nil
}
