package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pagepilot/internal/models"
)

func strategyRow(id, userID int64, name string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "description", "business_type", "target_audience",
		"key_objectives", "tone_of_voice", "key_topics", "value_propositions", "is_active", "created_at",
	}).AddRow(id, userID, name, "", "", "", "", "", "", "", active, time.Now())
}

func TestStrategyRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO strategies").
		WithArgs(int64(7), "Launch", "", "", "", "", "", "", "", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := repo.Create(ctx, &models.Strategy{UserID: 7, Name: "Launch"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStrategyRepository_Activate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE strategies SET is_active = false").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE strategies SET is_active = true").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Activate(ctx, 7, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStrategyRepository_Activate_UnknownStrategy(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE strategies SET is_active = false").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE strategies SET is_active = true").
		WithArgs(int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Activate(ctx, 7, 99)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStrategyRepository_GetActive_None(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStrategyRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM strategies WHERE user_id").
		WithArgs(int64(7)).
		WillReturnRows(strategyRow(1, 7, "Launch", true))

	s, found, err := repo.GetActive(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Launch", s.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
