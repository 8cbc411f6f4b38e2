package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pagepilot/internal/models"
	"pagepilot/internal/repository"
	"pagepilot/pkg/utils"
)

// maxApiKeys caps how many keys a single user can hold at once.
const maxApiKeys = 5

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64) error {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if len(keys) >= maxApiKeys {
		err = fmt.Errorf("api key limit of %d reached", maxApiKeys)
		slog.Info(err.Error())
		return err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return errors.New("unable to generate api key")
	}

	apiKey := &models.ApiKey{
		UserID: userID,
		Key:    key,
	}

	_, err = s.k.Create(ctx, apiKey)
	if err != nil {
		return errors.New("unable to save api key")
	}
	return nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	userID, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}

	if !isExist {
		return 0, errors.New("api key not found")
	}

	return *userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("unable to list api keys")
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	var err error

	if userID == 0 {
		err = errors.New("user id is not valid")
		slog.Info(err.Error())
		return err
	}

	if keyID == 0 {
		err = errors.New("key id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("api key not found")
		slog.Info(err.Error())
		return err
	}

	return s.k.Remove(ctx, keyID)
}
