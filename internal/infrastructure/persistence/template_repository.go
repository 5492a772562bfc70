package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) FindCommunicationTemplate(ctx context.Context, id string) (*models.CommunicationTemplate, error) {
	query := fmt.Sprintf("SELECT id, name, type, subject, body FROM %s WHERE id = ?",
		constants.TableCommunicationTemplate)

	var (
		tpl     models.CommunicationTemplate
		subject sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tpl.ID, &tpl.Name, &tpl.Type, &subject, &tpl.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tpl.Subject = subject.String
	return &tpl, nil
}

func (r *TemplateRepository) FindNoteTemplate(ctx context.Context, id string) (*models.NoteTemplate, error) {
	query := fmt.Sprintf("SELECT id, name, content FROM %s WHERE id = ?", constants.TableNoteTemplate)

	var tpl models.NoteTemplate
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tpl.ID, &tpl.Name, &tpl.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
