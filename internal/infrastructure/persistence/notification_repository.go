package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, recipient_id, title, body, link, is_read, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, constants.TableNotification)

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.RecipientID, notification.Title, notification.Body,
		notification.Link, notification.IsRead, notification.CreatedDate,
	)
	return err
}

func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	query := fmt.Sprintf(`
		SELECT id, recipient_id, title, body, link, is_read, created_date
		FROM %s WHERE recipient_id = ? ORDER BY created_date DESC LIMIT ?`, constants.TableNotification)

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var (
			n    models.Notification
			link sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Body, &link, &n.IsRead, &n.CreatedDate); err != nil {
			return nil, err
		}
		n.Link = link.String
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_read = TRUE WHERE id = ?", constants.TableNotification)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
