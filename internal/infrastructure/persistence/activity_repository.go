package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	metadata, err := marshalMap(activity.Metadata)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_id, user_id, type, description, metadata, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, constants.TableActivity)

	_, err = r.db.ExecContext(ctx, query,
		activity.ID, activity.ClientID, activity.UserID, activity.Type,
		activity.Description, metadata, activity.CreatedDate,
	)
	return err
}
