package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"pagepilot/internal/models"
	"pagepilot/internal/queue"
	"pagepilot/internal/repository"
	"pagepilot/internal/service"
)

// CommentPollJob walks every connected page, pulls fresh comments from recent
// posts and queues the ones not handled yet for auto-reply evaluation.
type CommentPollJob struct {
	pp     repository.PageProfileRepository
	rl     repository.ReplyLogRepository
	fb     service.FacebookService
	client *asynq.Client
}

func NewCommentPollJob(
	pp repository.PageProfileRepository,
	rl repository.ReplyLogRepository,
	fb service.FacebookService,
	client *asynq.Client) *CommentPollJob {
	return &CommentPollJob{
		pp:     pp,
		rl:     rl,
		fb:     fb,
		client: client,
	}
}

func (c *CommentPollJob) PollComments() {
	ctx := context.Background()

	pages, err := c.pp.ListConnected(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, page := range pages {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(page *models.PageProfile) {
			defer wg.Done()
			defer func() { <-semaphore }()

			c.pollPage(ctx, page)
		}(page)
	}

	wg.Wait()
}

func (c *CommentPollJob) pollPage(ctx context.Context, page *models.PageProfile) {
	posts, err := c.fb.ListPosts(ctx, page)
	if err != nil {
		slog.Info("Unable to list posts", "page", page.PageID, "error", err)
		return
	}

	for _, post := range posts {
		if post.CommentCount == 0 {
			continue
		}
		comments, err := c.fb.ListComments(ctx, page, post.ID)
		if err != nil {
			slog.Info("Unable to list comments", "post", post.ID, "error", err)
			continue
		}

		for _, comment := range comments {
			seen, err := c.rl.Seen(ctx, page.UserID, comment.ID)
			if err != nil {
				slog.Info(err.Error())
				continue
			}
			if seen {
				continue
			}

			payload := queue.EvaluateCommentPayload{
				UserID:  page.UserID,
				Comment: *comment,
				SeenAt:  time.Now().UTC(),
			}
			if err := queue.EnqueueComment(c.client, payload); err != nil {
				slog.Info(err.Error())
			}
		}
	}
}
