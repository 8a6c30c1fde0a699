package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/db"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/dberrors"
)

// IRatingRepository defines rating persistence operations
type IRatingRepository interface {
	ExistsForIssue(ctx context.Context, issueID int64) (bool, error)
	CreateWithNotifications(ctx context.Context, rating *models.Rating, notifications []*models.Notification) error
}

// RatingRepository handles database operations for complaint ratings
type RatingRepository struct {
	db *db.PostgresDB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(database *db.PostgresDB) *RatingRepository {
	return &RatingRepository{
		db: database,
	}
}

// ExistsForIssue checks whether a complaint has already been rated
func (r *RatingRepository) ExistsForIssue(ctx context.Context, issueID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ratings WHERE issue_id = $1)`, issueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking rating existence: %w", err)
	}
	return exists, nil
}

// CreateWithNotifications inserts a rating and the staff notifications in
// one transaction. The one-rating-per-complaint rule is enforced by the
// unique constraint on issue_id.
func (r *RatingRepository) CreateWithNotifications(ctx context.Context, rating *models.Rating, notifications []*models.Notification) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now()
		err := tx.QueryRow(ctx,
			`INSERT INTO ratings (issue_id, stars, comment, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			rating.IssueID, rating.Stars, rating.Comment, now,
		).Scan(&rating.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "ratings_issue_id_key") {
				return apperrors.ErrIssueAlreadyRated
			}
			return fmt.Errorf("error creating rating: %w", err)
		}
		rating.CreatedAt = now

		return insertNotificationsTx(ctx, tx, notifications)
	})
}
