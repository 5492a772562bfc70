package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type CommunicationRepository struct {
	db *sql.DB
}

func NewCommunicationRepository(db *sql.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

func (r *CommunicationRepository) Create(ctx context.Context, comm *models.Communication) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_id, channel, recipient, subject, body, status, template_id, created_by_id, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, constants.TableCommunication)

	_, err := r.db.ExecContext(ctx, query,
		comm.ID, comm.ClientID, comm.Channel, comm.Recipient, comm.Subject, comm.Body,
		comm.Status, comm.TemplateID, comm.CreatedByID, comm.CreatedDate,
	)
	return err
}
