package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pagepilot/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AutoReplySettings, bool, error)
	Create(ctx context.Context, settings *models.AutoReplySettings) (int64, error)
	Update(ctx context.Context, settings *models.AutoReplySettings, userID int64) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, user_id, enabled, reply_to_all, reply_to_negative, reply_template, max_replies_per_day, cooldown_minutes, created_at, updated_at`

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.AutoReplySettings, bool, error) {
	query := `SELECT ` + settingsColumns + ` FROM auto_reply_settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var s models.AutoReplySettings
	err := row.Scan(&s.ID, &s.UserID, &s.Enabled, &s.ReplyToAll, &s.ReplyToNegative,
		&s.ReplyTemplate, &s.MaxRepliesPerDay, &s.CooldownMinutes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}

func (r *settingsRepository) Create(ctx context.Context, settings *models.AutoReplySettings) (int64, error) {
	query := `
		INSERT INTO auto_reply_settings (user_id, enabled, reply_to_all, reply_to_negative, reply_template, max_replies_per_day, cooldown_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, settings.UserID, settings.Enabled, settings.ReplyToAll,
		settings.ReplyToNegative, settings.ReplyTemplate, settings.MaxRepliesPerDay, settings.CooldownMinutes).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.AutoReplySettings, userID int64) error {
	query := `
		UPDATE auto_reply_settings
		SET enabled = $1,
			reply_to_all = $2,
			reply_to_negative = $3,
			reply_template = $4,
			max_replies_per_day = $5,
			cooldown_minutes = $6,
			updated_at = $7
		WHERE user_id = $8
	`
	_, err := r.db.ExecContext(ctx, query, settings.Enabled, settings.ReplyToAll, settings.ReplyToNegative,
		settings.ReplyTemplate, settings.MaxRepliesPerDay, settings.CooldownMinutes, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
