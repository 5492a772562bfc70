package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT id, client_id, text, description, status, priority, due_date,
		       assigned_to_id, completed_at, created_by_id, created_date
		FROM %s WHERE id = ?`, constants.TableTask)

	var (
		task         models.Task
		clientID     sql.NullString
		description  sql.NullString
		dueDate      sql.NullTime
		assignedToID sql.NullString
		completedAt  sql.NullTime
		createdByID  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &clientID, &task.Text, &description, &task.Status, &task.Priority,
		&dueDate, &assignedToID, &completedAt, &createdByID, &task.CreatedDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	task.ClientID = clientID.String
	task.Description = description.String
	task.DueDate = timePtr(dueDate)
	task.AssignedToID = assignedToID.String
	task.CompletedAt = timePtr(completedAt)
	task.CreatedByID = createdByID.String
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, client_id, text, description, status, priority, due_date,
		                assigned_to_id, created_by_id, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, constants.TableTask)

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.ClientID, task.Text, task.Description, task.Status, task.Priority,
		nullableTime(task.DueDate), task.AssignedToID, task.CreatedByID, task.CreatedDate,
	)
	return err
}

// CompleteIfPending marks a task COMPLETE only when it is not already, in a
// single conditional UPDATE so concurrent completions cannot double-apply.
func (r *TaskRepository) CompleteIfPending(ctx context.Context, id string, completedAt time.Time) (bool, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET status = ?, completed_at = ? WHERE id = ? AND status <> ?",
		constants.TableTask)

	result, err := r.db.ExecContext(ctx, query,
		constants.TaskStatusComplete, completedAt, id, constants.TaskStatusComplete)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *TaskRepository) UpdateAssignee(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET assigned_to_id = ? WHERE id = ?", constants.TableTask)
	_, err := r.db.ExecContext(ctx, query, userID, id)
	return err
}
