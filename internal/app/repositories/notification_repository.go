package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

// notificationListLimit caps how many notifications a single listing returns
const notificationListLimit = 50

// INotificationRepository defines notification persistence operations
type INotificationRepository interface {
	List(ctx context.Context, recipientID int64) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, id, recipientID int64) error
	DeleteRead(ctx context.Context, recipientID int64) (int64, error)
}

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// insertNotificationsTx persists notification rows inside an existing
// transaction. An empty slice is a no-op.
func insertNotificationsTx(ctx context.Context, tx pgx.Tx, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	now := time.Now()
	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("notifications").
		Columns("recipient_id", "issue_id", "title", "message", "is_read", "created_at")
	for _, n := range notifications {
		builder = builder.Values(n.RecipientID, n.IssueID, n.Title, n.Message, false, now)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build notification insert: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting notifications: %w", err)
	}

	return nil
}

// List retrieves a user's most recent notifications
func (r *NotificationRepository) List(ctx context.Context, recipientID int64) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "recipient_id", "issue_id", "title", "message", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(notificationListLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build notification list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.IssueID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// UnreadCount returns how many unread notifications a user has
func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read. The recipient check keeps users from
// touching notifications that are not theirs.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`,
		recipientID,
	)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// Delete removes one notification belonging to the user
func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// DeleteRead removes all of a user's read notifications and reports how many
// were removed
func (r *NotificationRepository) DeleteRead(ctx context.Context, recipientID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE recipient_id = $1 AND is_read = true`,
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
