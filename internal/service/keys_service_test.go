package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagepilot/internal/models"
)

type fakeApiKeyRepo struct {
	keys    []*models.ApiKey
	removed []int64
}

func (f *fakeApiKeyRepo) GetByKey(ctx context.Context, apiKey string) (*int64, bool, error) {
	for _, k := range f.keys {
		if k.Key == apiKey {
			return &k.UserID, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeApiKeyRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	return f.keys, nil
}

func (f *fakeApiKeyRepo) Create(ctx context.Context, apiKey *models.ApiKey) (int64, error) {
	apiKey.ID = int64(len(f.keys) + 1)
	f.keys = append(f.keys, apiKey)
	return apiKey.ID, nil
}

func (f *fakeApiKeyRepo) CheckByUserID(ctx context.Context, keyID, userID int64) (bool, error) {
	for _, k := range f.keys {
		if k.ID == keyID && k.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApiKeyRepo) Remove(ctx context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

func TestApiKeyCreate_EnforcesLimit(t *testing.T) {
	repo := &fakeApiKeyRepo{}
	svc := NewApiKeyService(repo)

	for i := 0; i < maxApiKeys; i++ {
		require.NoError(t, svc.Create(context.Background(), 7))
	}

	err := svc.Create(context.Background(), 7)
	require.Error(t, err)
	assert.Len(t, repo.keys, maxApiKeys)
}

func TestApiKeyRemove_RejectsForeignKey(t *testing.T) {
	repo := &fakeApiKeyRepo{keys: []*models.ApiKey{{ID: 1, UserID: 9, Key: "k"}}}
	svc := NewApiKeyService(repo)

	err := svc.RemoveAPIKey(context.Background(), 7, 1)
	require.Error(t, err)
	assert.Empty(t, repo.removed)
}
