package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	tags, err := marshalStringSlice(note.Tags)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_id, text, tags, is_pinned, created_by_id, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, constants.TableNote)

	_, err = r.db.ExecContext(ctx, query,
		note.ID, note.ClientID, note.Text, tags, note.IsPinned, note.CreatedByID, note.CreatedDate,
	)
	return err
}
