package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

type WorkflowRepository struct {
	db *sql.DB
}

func NewWorkflowRepository(db *sql.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

const workflowColumns = "id, name, status, trigger_type, trigger_condition, schedule, last_run_at, created_date"

func (r *WorkflowRepository) FindByID(ctx context.Context, id string) (*models.Workflow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", workflowColumns, constants.TableWorkflow)

	workflow, err := scanWorkflow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadActions(ctx, workflow); err != nil {
		return nil, err
	}
	return workflow, nil
}

// FindActiveByTrigger returns ACTIVE workflows registered for the trigger
// type, actions loaded and ordered by step.
func (r *WorkflowRepository) FindActiveByTrigger(ctx context.Context, triggerType string) ([]*models.Workflow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE status = ? AND trigger_type = ?",
		workflowColumns, constants.TableWorkflow)

	return r.queryWorkflows(ctx, query, constants.WorkflowStatusActive, triggerType)
}

// FindScheduled returns ACTIVE schedule-triggered workflows with a non-empty
// cron expression.
func (r *WorkflowRepository) FindScheduled(ctx context.Context) ([]*models.Workflow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE status = ? AND trigger_type = ? AND schedule <> ''",
		workflowColumns, constants.TableWorkflow)

	return r.queryWorkflows(ctx, query, constants.WorkflowStatusActive, constants.TriggerSchedule)
}

func (r *WorkflowRepository) UpdateLastRun(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf("UPDATE %s SET last_run_at = ? WHERE id = ?", constants.TableWorkflow)
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *WorkflowRepository) CreateExecution(ctx context.Context, execution *models.WorkflowExecution) error {
	results, err := json.Marshal(execution.Results)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, workflow_id, client_id, status, results, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, constants.TableWorkflowExecution)

	_, err = r.db.ExecContext(ctx, query,
		execution.ID, execution.WorkflowID, execution.ClientID, execution.Status,
		string(results), execution.StartedAt, execution.FinishedAt,
	)
	return err
}

func (r *WorkflowRepository) queryWorkflows(ctx context.Context, query string, args ...interface{}) ([]*models.Workflow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, workflow)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, workflow := range workflows {
		if err := r.loadActions(ctx, workflow); err != nil {
			return nil, err
		}
	}
	return workflows, nil
}

func (r *WorkflowRepository) loadActions(ctx context.Context, workflow *models.Workflow) error {
	query := fmt.Sprintf(`
		SELECT id, workflow_id, type, config, step_order
		FROM %s WHERE workflow_id = ? ORDER BY step_order`, constants.TableWorkflowAction)

	rows, err := r.db.QueryContext(ctx, query, workflow.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			action models.WorkflowAction
			config sql.NullString
		)
		if err := rows.Scan(&action.ID, &action.WorkflowID, &action.Type, &config, &action.StepOrder); err != nil {
			return err
		}
		action.Config, err = unmarshalMap(config)
		if err != nil {
			return fmt.Errorf("invalid config for action %s: %w", action.ID, err)
		}
		workflow.Actions = append(workflow.Actions, action)
	}
	return rows.Err()
}

func scanWorkflow(row rowScanner) (*models.Workflow, error) {
	var (
		workflow  models.Workflow
		condition sql.NullString
		schedule  sql.NullString
		lastRunAt sql.NullTime
	)
	err := row.Scan(
		&workflow.ID, &workflow.Name, &workflow.Status, &workflow.TriggerType,
		&condition, &schedule, &lastRunAt, &workflow.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	workflow.TriggerCondition = condition.String
	workflow.Schedule = schedule.String
	workflow.LastRunAt = timePtr(lastRunAt)
	return &workflow, nil
}
