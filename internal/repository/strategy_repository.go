package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"pagepilot/internal/models"
)

type StrategyRepository interface {
	Create(ctx context.Context, strategy *models.Strategy) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Strategy, bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Strategy, error)
	GetActive(ctx context.Context, userID int64) (*models.Strategy, bool, error)
	Activate(ctx context.Context, userID, strategyID int64) error
	Remove(ctx context.Context, id int64) error
}

type strategyRepository struct {
	db *sql.DB
}

func NewStrategyRepository(db *sql.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

const strategyColumns = `id, user_id, name, description, business_type, target_audience, key_objectives, tone_of_voice, key_topics, value_propositions, is_active, created_at`

func scanStrategy(row interface{ Scan(...any) error }) (*models.Strategy, error) {
	var s models.Strategy
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.BusinessType, &s.TargetAudience,
		&s.KeyObjectives, &s.ToneOfVoice, &s.KeyTopics, &s.ValuePropositions, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *strategyRepository) Create(ctx context.Context, strategy *models.Strategy) (int64, error) {
	query := `
		INSERT INTO strategies (user_id, name, description, business_type, target_audience, key_objectives, tone_of_voice, key_topics, value_propositions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, strategy.UserID, strategy.Name, strategy.Description,
		strategy.BusinessType, strategy.TargetAudience, strategy.KeyObjectives, strategy.ToneOfVoice,
		strategy.KeyTopics, strategy.ValuePropositions, strategy.IsActive).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *strategyRepository) GetByID(ctx context.Context, id int64) (*models.Strategy, bool, error) {
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE id = $1`
	s, err := scanStrategy(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return s, true, nil
}

func (r *strategyRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Strategy, error) {
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE user_id = $1 ORDER BY is_active DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var strategies []*models.Strategy
	for rows.Next() {
		s, err := scanStrategy(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

func (r *strategyRepository) GetActive(ctx context.Context, userID int64) (*models.Strategy, bool, error) {
	query := `SELECT ` + strategyColumns + ` FROM strategies WHERE user_id = $1 AND is_active = true`
	s, err := scanStrategy(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return s, true, nil
}

// Activate deactivates every strategy of the user and activates the chosen one
// inside a single transaction, so readers never observe zero or two active rows.
func (r *strategyRepository) Activate(ctx context.Context, userID, strategyID int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE strategies SET is_active = false WHERE user_id = $1`, userID); err != nil {
		slog.Info(err.Error())
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE strategies SET is_active = true WHERE id = $1 AND user_id = $2`, strategyID, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected != 1 {
		return errors.New("strategy doesn't exist")
	}

	return tx.Commit()
}

func (r *strategyRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM strategies WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
