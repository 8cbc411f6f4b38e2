package service

import (
	"context"
	"errors"
	"log/slog"

	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/internal/transfer"
)

type StrategyService interface {
	Create(ctx context.Context, userID int64, sc *transfer.StrategyCreation) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Strategy, error)
	Active(ctx context.Context, userID int64) (*models.Strategy, bool, error)
	Activate(ctx context.Context, userID, strategyID int64) error
	Remove(ctx context.Context, userID, strategyID int64) error
}

type strategyService struct {
	sr repository.StrategyRepository
}

func NewStrategyService(sr repository.StrategyRepository) StrategyService {
	return &strategyService{sr: sr}
}

func (s *strategyService) Create(ctx context.Context, userID int64, sc *transfer.StrategyCreation) (int64, error) {
	if sc.Name == "" {
		return 0, &ValidationError{Reason: "strategy name is required"}
	}
	strategy := &models.Strategy{
		UserID:            userID,
		Name:              sc.Name,
		Description:       sc.Description,
		BusinessType:      sc.BusinessType,
		TargetAudience:    sc.TargetAudience,
		KeyObjectives:     sc.KeyObjectives,
		ToneOfVoice:       sc.ToneOfVoice,
		KeyTopics:         sc.KeyTopics,
		ValuePropositions: sc.ValuePropositions,
	}
	id, err := s.sr.Create(ctx, strategy)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	if sc.IsActive {
		if err := s.sr.Activate(ctx, userID, id); err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	}
	return id, nil
}

func (s *strategyService) List(ctx context.Context, userID int64) ([]*models.Strategy, error) {
	return s.sr.GetByUserID(ctx, userID)
}

func (s *strategyService) Active(ctx context.Context, userID int64) (*models.Strategy, bool, error) {
	return s.sr.GetActive(ctx, userID)
}

func (s *strategyService) Activate(ctx context.Context, userID, strategyID int64) error {
	strategy, found, err := s.sr.GetByID(ctx, strategyID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if !found || strategy.UserID != userID {
		return errors.New("strategy doesn't exist")
	}
	return s.sr.Activate(ctx, userID, strategyID)
}

func (s *strategyService) Remove(ctx context.Context, userID, strategyID int64) error {
	strategy, found, err := s.sr.GetByID(ctx, strategyID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if !found || strategy.UserID != userID {
		return errors.New("strategy doesn't exist")
	}
	return s.sr.Remove(ctx, strategyID)
}
