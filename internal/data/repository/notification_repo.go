package repository

import (
	"context"
	"fmt"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/pkg/database"

	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	FindByUserID(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountByUserID(ctx context.Context, userID int64, unreadOnly bool) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) (bool, error)
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

// Create always uses the pool, never the caller's transaction: a notification
// must not roll back with it nor abort it.
func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.IsRead,
		n.CreatedAt,
	).Scan(&n.ID)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.Int64("user_id", n.UserID),
			zap.String("type", string(n.Type)),
		)
		return fmt.Errorf("create notification for user %d: %w", n.UserID, err)
	}

	return nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, unreadOnly, limit, offset)
	if err != nil {
		r.log.Error("Failed to find notifications",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find notifications of user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			r.log.Error("Failed to scan notification row", zap.Error(err))
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		out = append(out, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return out, nil
}

func (r *notificationRepository) CountByUserID(ctx context.Context, userID int64, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND ($2 = false OR is_read = false)`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, unreadOnly).Scan(&count); err != nil {
		r.log.Error("Failed to count notifications", zap.Error(err))
		return 0, fmt.Errorf("count notifications of user %d: %w", userID, err)
	}

	return count, nil
}

// MarkAsRead returns false when the notification does not belong to userID
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) (bool, error) {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.Int64("notification_id", id),
		)
		return false, fmt.Errorf("mark notification %d read: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
