package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = "id, client_id, name, category, status, file_name, file_path, due_date, message, created_date"

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", documentColumns, constants.TableDocument)

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return doc, err
}

func (r *DocumentRepository) FindByClientID(ctx context.Context, clientID string) ([]*models.Document, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE client_id = ? ORDER BY created_date",
		documentColumns, constants.TableDocument)

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_id, name, category, status, file_name, file_path, due_date, message, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, constants.TableDocument)

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ClientID, doc.Name, doc.Category, doc.Status,
		doc.FileName, doc.FilePath, nullableTime(doc.DueDate), doc.Message, doc.CreatedDate,
	)
	return err
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := fmt.Sprintf("UPDATE %s SET status = ? WHERE id = ?", constants.TableDocument)
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc      models.Document
		fileName sql.NullString
		filePath sql.NullString
		dueDate  sql.NullTime
		message  sql.NullString
	)
	err := row.Scan(
		&doc.ID, &doc.ClientID, &doc.Name, &doc.Category, &doc.Status,
		&fileName, &filePath, &dueDate, &message, &doc.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	doc.FileName = fileName.String
	doc.FilePath = filePath.String
	doc.DueDate = timePtr(dueDate)
	doc.Message = message.String
	return &doc, nil
}
