package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindByID loads a client record. PII columns (name, email, phone) hold
// ciphertext; decryption is the caller's concern.
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, status, tags, assigned_to_id, created_date, last_modified_date
		FROM %s WHERE id = ?`, constants.TableClient)

	var (
		client       models.Client
		tags         sql.NullString
		assignedToID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.Email, &client.Phone, &client.Status,
		&tags, &assignedToID, &client.CreatedDate, &client.LastModifiedDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	client.Tags, err = unmarshalStringSlice(tags)
	if err != nil {
		return nil, fmt.Errorf("invalid tags for client %s: %w", id, err)
	}
	client.AssignedToID = assignedToID.String
	return &client, nil
}

// FindAllIDs returns every client ID, used by the scheduler to evaluate
// schedule-triggered workflows per client.
func (r *ClientRepository) FindAllIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s", constants.TableClient)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := fmt.Sprintf("UPDATE %s SET status = ?, last_modified_date = ? WHERE id = ?", constants.TableClient)
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *ClientRepository) UpdateTags(ctx context.Context, id string, tags []string) error {
	encoded, err := marshalStringSlice(tags)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET tags = ?, last_modified_date = ? WHERE id = ?", constants.TableClient)
	_, err = r.db.ExecContext(ctx, query, encoded, time.Now(), id)
	return err
}

func (r *ClientRepository) UpdateAssignee(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET assigned_to_id = ?, last_modified_date = ? WHERE id = ?", constants.TableClient)
	_, err := r.db.ExecContext(ctx, query, userID, time.Now(), id)
	return err
}
