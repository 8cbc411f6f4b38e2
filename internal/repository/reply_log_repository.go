package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pagepilot/internal/models"
)

type ReplyLogRepository interface {
	Create(ctx context.Context, entry *models.ReplyLog) (int64, error)
	CountForUserSince(ctx context.Context, userID int64, since time.Time) (int, error)
	LastReplyToAuthor(ctx context.Context, userID int64, authorKey string) (*time.Time, error)
	Seen(ctx context.Context, userID int64, commentID string) (bool, error)
}

type replyLogRepository struct {
	db *sql.DB
}

func NewReplyLogRepository(db *sql.DB) ReplyLogRepository {
	return &replyLogRepository{db: db}
}

func (r *replyLogRepository) Create(ctx context.Context, entry *models.ReplyLog) (int64, error) {
	query := `
		INSERT INTO reply_logs (user_id, comment_id, comment_author, reply_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.CommentID, entry.CommentAuthor, entry.ReplyText).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *replyLogRepository) CountForUserSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM reply_logs WHERE user_id = $1 AND created_at >= $2`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// LastReplyToAuthor returns nil when the user never auto-replied to the author.
func (r *replyLogRepository) LastReplyToAuthor(ctx context.Context, userID int64, authorKey string) (*time.Time, error) {
	query := `SELECT created_at FROM reply_logs WHERE user_id = $1 AND comment_author = $2 ORDER BY created_at DESC LIMIT 1`

	var last time.Time
	err := r.db.QueryRowContext(ctx, query, userID, authorKey).Scan(&last)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &last, nil
}

func (r *replyLogRepository) Seen(ctx context.Context, userID int64, commentID string) (bool, error) {
	query := `SELECT 1 FROM reply_logs WHERE user_id = $1 AND comment_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, userID, commentID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}
