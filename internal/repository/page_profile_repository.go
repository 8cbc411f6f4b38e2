package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pagepilot/internal/models"
)

type PageProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.PageProfile, bool, error)
	Upsert(ctx context.Context, profile *models.PageProfile) error
	UpdateDetails(ctx context.Context, userID int64, profile *models.PageProfile) error
	ListConnected(ctx context.Context) ([]*models.PageProfile, error)
}

type pageProfileRepository struct {
	db *sql.DB
}

func NewPageProfileRepository(db *sql.DB) PageProfileRepository {
	return &pageProfileRepository{db: db}
}

const pageProfileColumns = `id, user_id, page_id, page_name, category, target_audience, content_language, access_token, created_at, updated_at`

func scanPageProfile(row interface{ Scan(...any) error }) (*models.PageProfile, error) {
	var p models.PageProfile
	err := row.Scan(&p.ID, &p.UserID, &p.PageID, &p.PageName, &p.Category, &p.TargetAudience,
		&p.ContentLanguage, &p.AccessToken, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pageProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.PageProfile, bool, error) {
	query := `SELECT ` + pageProfileColumns + ` FROM page_profiles WHERE user_id = $1`
	p, err := scanPageProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return p, true, nil
}

// Upsert replaces the connected page for a user. One page per user.
func (r *pageProfileRepository) Upsert(ctx context.Context, profile *models.PageProfile) error {
	query := `
		INSERT INTO page_profiles (user_id, page_id, page_name, category, target_audience, content_language, access_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET page_id = EXCLUDED.page_id,
			page_name = EXCLUDED.page_name,
			category = EXCLUDED.category,
			access_token = EXCLUDED.access_token,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, profile.UserID, profile.PageID, profile.PageName,
		profile.Category, profile.TargetAudience, profile.ContentLanguage, profile.AccessToken)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *pageProfileRepository) UpdateDetails(ctx context.Context, userID int64, profile *models.PageProfile) error {
	query := `
		UPDATE page_profiles
		SET page_name = $1,
			category = $2,
			target_audience = $3,
			content_language = $4,
			updated_at = $5
		WHERE user_id = $6
	`
	_, err := r.db.ExecContext(ctx, query, profile.PageName, profile.Category, profile.TargetAudience,
		profile.ContentLanguage, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *pageProfileRepository) ListConnected(ctx context.Context) ([]*models.PageProfile, error) {
	query := `SELECT ` + pageProfileColumns + ` FROM page_profiles WHERE access_token <> ''`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.PageProfile
	for rows.Next() {
		p, err := scanPageProfile(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
