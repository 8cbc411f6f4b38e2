package service

import (
	"context"
	"errors"
	"log/slog"

	"pagepilot/internal/models"
	"pagepilot/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("unable to get user info")
	}

	if !isExist {
		slog.Info("user not found", "user_id", id)
		return nil, errors.New("user doesn't exist")
	}

	return user, nil
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	return s.u.Remove(ctx, userID)
}
