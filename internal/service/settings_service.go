package service

import (
	"context"
	"errors"
	"log/slog"

	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

type SettingsService interface {
	AutoReplySettings(ctx context.Context, userID int64) (*models.AutoReplySettings, error)
	UpdateAutoReply(ctx context.Context, userID int64, update *transfer.AutoReplyUpdate) (*models.AutoReplySettings, error)
	PageProfile(ctx context.Context, userID int64) (*models.PageProfile, bool, error)
	UpdatePageProfile(ctx context.Context, userID int64, update *transfer.PageProfileUpdate) error
}

type settingsService struct {
	ar repository.SettingsRepository
	pp repository.PageProfileRepository
}

func NewSettingsService(ar repository.SettingsRepository, pp repository.PageProfileRepository) SettingsService {
	return &settingsService{ar: ar, pp: pp}
}

// AutoReplySettings returns the user's settings, creating the default row on
// first access.
func (s *settingsService) AutoReplySettings(ctx context.Context, userID int64) (*models.AutoReplySettings, error) {
	settings, found, err := s.ar.GetByUserID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if found {
		return settings, nil
	}

	settings = models.DefaultAutoReplySettings(userID)
	id, err := s.ar.Create(ctx, settings)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	settings.ID = id
	return settings, nil
}

func (s *settingsService) UpdateAutoReply(ctx context.Context, userID int64, update *transfer.AutoReplyUpdate) (*models.AutoReplySettings, error) {
	if update.MaxRepliesPerDay < 0 || update.CooldownMinutes < 0 {
		return nil, &ValidationError{Reason: "limits cannot be negative"}
	}

	settings, err := s.AutoReplySettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.Enabled = update.Enabled
	settings.ReplyToAll = update.ReplyToAll
	settings.ReplyToNegative = update.ReplyToNegative
	settings.ReplyTemplate = update.ReplyTemplate
	settings.MaxRepliesPerDay = update.MaxRepliesPerDay
	settings.CooldownMinutes = update.CooldownMinutes

	if err := s.ar.Update(ctx, settings, userID); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) PageProfile(ctx context.Context, userID int64) (*models.PageProfile, bool, error) {
	return s.pp.GetByUserID(ctx, userID)
}

func (s *settingsService) UpdatePageProfile(ctx context.Context, userID int64, update *transfer.PageProfileUpdate) error {
	_, found, err := s.pp.GetByUserID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if !found {
		return errors.New("no connected page")
	}

	profile := &models.PageProfile{
		PageName:        update.PageName,
		Category:        update.Category,
		TargetAudience:  update.TargetAudience,
		ContentLanguage: update.ContentLanguage,
	}
	return s.pp.UpdateDetails(ctx, userID, profile)
}
