package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindActiveByTrigger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWorkflowRepository(db)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, name, status, trigger_type").
		WithArgs(constants.WorkflowStatusActive, constants.TriggerClientStatusChanged).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "status", "trigger_type", "trigger_condition", "schedule", "last_run_at", "created_date",
		}).AddRow("wf-1", "Welcome sequence", constants.WorkflowStatusActive,
			constants.TriggerClientStatusChanged, `trigger.newStatus == "ACTIVE"`, nil, nil, created))

	mock.ExpectQuery("SELECT id, workflow_id, type, config, step_order").
		WithArgs("wf-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "workflow_id", "type", "config", "step_order"}).
			AddRow("a2", "wf-1", string(constants.ActionCreateTask), `{"text":"Follow up","dueDays":2}`, 1).
			AddRow("a1", "wf-1", string(constants.ActionSendEmail), `{"subject":"Hi","body":"Welcome"}`, 0))

	workflows, err := repo.FindActiveByTrigger(context.Background(), constants.TriggerClientStatusChanged)
	require.NoError(t, err)
	require.Len(t, workflows, 1)

	wf := workflows[0]
	assert.Equal(t, `trigger.newStatus == "ACTIVE"`, wf.TriggerCondition)
	require.Len(t, wf.Actions, 2)
	assert.Equal(t, "Follow up", wf.Actions[0].Config["text"])
	assert.Equal(t, float64(2), wf.Actions[0].Config["dueDays"])
}

func TestWorkflowFindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWorkflowRepository(db)

	mock.ExpectQuery("SELECT id, name, status, trigger_type").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "status", "trigger_type", "trigger_condition", "schedule", "last_run_at", "created_date",
		}))

	wf, err := repo.FindByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, wf)
}

func TestCreateExecution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWorkflowRepository(db)
	started := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO workflow_executions").
		WithArgs("ex-1", "wf-1", "client-1", constants.ExecutionStatusPartial,
			sqlmock.AnyArg(), started, started.Add(time.Second)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	execution := &models.WorkflowExecution{
		ID:         "ex-1",
		WorkflowID: "wf-1",
		ClientID:   "client-1",
		Status:     constants.ExecutionStatusPartial,
		Results: []models.ActionResult{
			{Success: true, Message: "Email sent"},
			{Success: false, Message: "Task text is required"},
		},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
	err = repo.CreateExecution(context.Background(), execution)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
