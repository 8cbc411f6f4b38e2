package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

const scheduledTimeLayout = "2006-01-02T15:04"

type SchedulingService interface {
	Schedule(ctx context.Context, userID int64, sc *transfer.ScheduleCreation, file *multipart.FileHeader) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.ScheduledPost, error)
	ListPendingDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error)
	ProcessDuePosts(ctx context.Context, now time.Time)
	Cancel(ctx context.Context, postID, userID int64) (bool, error)
}

type schedulingService struct {
	sp    repository.ScheduledPostRepository
	pp    repository.PageProfileRepository
	fb    FacebookService
	media MediaService
}

func NewSchedulingService(
	sp repository.ScheduledPostRepository,
	pp repository.PageProfileRepository,
	fb FacebookService,
	media MediaService) SchedulingService {
	return &schedulingService{
		sp:    sp,
		pp:    pp,
		fb:    fb,
		media: media,
	}
}

// Schedule validates and persists a post as pending. It never touches the
// platform; publication happens on a later dispatch tick.
func (s *schedulingService) Schedule(ctx context.Context, userID int64, sc *transfer.ScheduleCreation, file *multipart.FileHeader) (int64, error) {
	if sc == nil || sc.Content == "" {
		err := &ValidationError{Reason: "content cannot be empty"}
		slog.Info(err.Error())
		return 0, err
	}

	scheduledTime, err := time.Parse(scheduledTimeLayout, sc.ScheduledTime)
	if err != nil {
		scheduledTime, err = time.Parse(time.RFC3339, sc.ScheduledTime)
	}
	if err != nil {
		verr := &ValidationError{Reason: fmt.Sprintf("invalid scheduled time format: %s", sc.ScheduledTime)}
		slog.Info(verr.Error())
		return 0, verr
	}

	if scheduledTime.Before(time.Now()) {
		err := &ValidationError{Reason: "scheduled time is in the past"}
		slog.Info(err.Error())
		return 0, err
	}

	var mediaURL string
	if file != nil {
		mediaURL, err = s.media.UploadImage(ctx, userID, file)
		if err != nil {
			return 0, fmt.Errorf("error uploading media: %w", err)
		}
	}

	post := models.ScheduledPost{
		UserID:        userID,
		Content:       sc.Content,
		MediaURL:      mediaURL,
		ScheduledTime: scheduledTime,
		Status:        models.PostStatusPending,
	}

	postID, err := s.sp.Create(ctx, nil, &post)
	if err != nil {
		return 0, fmt.Errorf("error creating scheduled post: %w", err)
	}

	return postID, nil
}

func (s *schedulingService) List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	posts, err := s.sp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting scheduled posts")
	}
	return posts, nil
}

func (s *schedulingService) PostInfo(ctx context.Context, postID, userID int64) (*models.ScheduledPost, error) {
	if userID == 0 || postID == 0 {
		err := &ValidationError{Reason: "post id is not valid"}
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.sp.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = errors.New("Post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return s.sp.GetByID(ctx, postID)
}

func (s *schedulingService) ListPendingDue(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	return s.sp.ListDue(ctx, now)
}

// ProcessDuePosts dispatches every pending post whose time has passed. Each
// post is claimed first, attempted exactly once, and always moved to a
// terminal state after the attempt. Failed posts are not retried; rescheduling
// is a new user action.
func (s *schedulingService) ProcessDuePosts(ctx context.Context, now time.Time) {
	due, err := s.sp.ListDue(ctx, now)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range due {
		claimed, err := s.sp.ClaimPending(ctx, post.ID)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		if !claimed {
			// Another tick got there first, or the owner cancelled in between.
			continue
		}

		s.dispatch(ctx, post)
	}
}

func (s *schedulingService) dispatch(ctx context.Context, post *models.ScheduledPost) {
	page, isExist, err := s.pp.GetByUserID(ctx, post.UserID)
	if err != nil {
		s.markFailed(ctx, post.ID, fmt.Sprintf("page lookup failed: %v", err))
		return
	}
	if !isExist {
		s.markFailed(ctx, post.ID, "no page connected")
		return
	}

	result, err := s.fb.CreatePost(ctx, page, post.Content, post.MediaURL)
	if err != nil {
		s.markFailed(ctx, post.ID, err.Error())
		return
	}
	if !result.OK() {
		s.markFailed(ctx, post.ID, result.ErrorMessage)
		return
	}

	if err := s.sp.MarkPublished(ctx, post.ID, result.ID); err != nil {
		// The platform accepted the post but the status write failed. The post
		// stays claimed so the next tick will not publish it again; the
		// orphaned claim is logged for operator attention.
		slog.Error("published post left in publishing state",
			"post_id", post.ID, "platform_post_id", result.ID, "error", err.Error())
	}
}

func (s *schedulingService) markFailed(ctx context.Context, postID int64, detail string) {
	slog.Info("scheduled post dispatch failed", "post_id", postID, "error", detail)
	if err := s.sp.MarkFailed(ctx, postID, detail); err != nil {
		slog.Error("failed post left in publishing state", "post_id", postID, "error", err.Error())
	}
}

// Cancel deletes a post only while still pending and owned by the caller.
// It reports false for posts that are terminal, in flight, or not the caller's.
func (s *schedulingService) Cancel(ctx context.Context, postID, userID int64) (bool, error) {
	if userID == 0 || postID == 0 {
		err := &ValidationError{Reason: "post id is not valid"}
		slog.Info(err.Error())
		return false, err
	}

	return s.sp.CancelPending(ctx, postID, userID)
}
