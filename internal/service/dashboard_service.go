package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

type DashboardService interface {
	Overview(ctx context.Context, userID int64) (*transfer.DashboardOverview, error)
	Suggestions(ctx context.Context, userID int64) ([]transfer.PostSuggestion, error)
}

type dashboardService struct {
	pp       repository.PageProfileRepository
	sr       repository.StrategyRepository
	fb       FacebookService
	llm      LLMService
	comments CommentService
}

func NewDashboardService(pp repository.PageProfileRepository, sr repository.StrategyRepository, fb FacebookService, llm LLMService, comments CommentService) DashboardService {
	return &dashboardService{pp: pp, sr: sr, fb: fb, llm: llm, comments: comments}
}

func (s *dashboardService) Overview(ctx context.Context, userID int64) (*transfer.DashboardOverview, error) {
	page, found, err := s.pp.GetByUserID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if !found {
		return nil, errors.New("no connected page")
	}

	posts, err := s.fb.ListPosts(ctx, page)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	recent, err := s.comments.Monitor(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		recent = nil
	}
	var counts transfer.SentimentCounts
	for _, c := range recent {
		switch c.Sentiment.Label {
		case transfer.SentimentPositive:
			counts.Positive++
		case transfer.SentimentNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}

	return &transfer.DashboardOverview{
		PageName:        page.PageName,
		Posts:           posts,
		RecentComments:  recent,
		Sentiment:       counts,
		ActivitySummary: s.llm.SummarizeActivity(ctx, posts),
	}, nil
}

func (s *dashboardService) Suggestions(ctx context.Context, userID int64) ([]transfer.PostSuggestion, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s.\n", time.Now().UTC().Format("Monday, January 2, 2006"))

	if page, found, err := s.pp.GetByUserID(ctx, userID); err == nil && found {
		fmt.Fprintf(&b, "Page: %s", page.PageName)
		if page.Category != "" {
			fmt.Fprintf(&b, " (%s)", page.Category)
		}
		b.WriteString("\n")
		if page.TargetAudience != "" {
			fmt.Fprintf(&b, "Target audience: %s\n", page.TargetAudience)
		}
		if page.ContentLanguage != "" {
			fmt.Fprintf(&b, "Write the posts in %s.\n", page.ContentLanguage)
		}
	}
	if strategy, found, err := s.sr.GetActive(ctx, userID); err == nil && found {
		b.WriteString(StrategyContext(strategy))
	}

	return s.llm.GeneratePostSuggestions(ctx, b.String()), nil
}
