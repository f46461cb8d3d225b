package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Anjos2/oportuniapp/internal/apperrors"
	"github.com/Anjos2/oportuniapp/internal/core/domain"
	portsrepo "github.com/Anjos2/oportuniapp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository{Pool: db}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepository
var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

// insertNotificationTx writes a notification row inside a caller-owned
// transaction. Workflow repositories use it to bundle the notification with
// the status write.
func insertNotificationTx(ctx context.Context, tx pgx.Tx, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, title, message, category, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		n.NotificationID,
		n.UserID,
		n.Title,
		n.Message,
		n.Category,
		n.Link,
		n.Read,
		n.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification", err)
	}
	return nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, title, message, category, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Category,
		notification.Link,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var unread int
	if err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE;`, userID).Scan(&unread); err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	query := `
		SELECT notification_id, user_id, title, message, category, link, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.NotificationID, &n.UserID, &n.Title, &n.Message, &n.Category, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE notification_id = $1 AND user_id = $2;`,
		notificationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE;`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}
