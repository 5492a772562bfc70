package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

// scriptedDispatcher records dispatched action types and returns scripted
// results (default success).
type scriptedDispatcher struct {
	calls   []string
	results map[string]models.ActionResult
}

func (d *scriptedDispatcher) dispatch(actionType string) models.ActionResult {
	d.calls = append(d.calls, actionType)
	if result, ok := d.results[actionType]; ok {
		return result
	}
	return models.Succeed("ok", nil)
}

func (d *scriptedDispatcher) ExecuteCommunicationAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteTaskAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteClientAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteDocumentAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteNotificationAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteNoteAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func (d *scriptedDispatcher) ExecuteWebhookAction(_ context.Context, actionType string, _ map[string]interface{}, _ *models.ExecutionContext) models.ActionResult {
	return d.dispatch(actionType)
}

func newExecutorEnv() (*WorkflowExecutor, *testEnv, *scriptedDispatcher) {
	env := newTestEnv()
	dispatcher := &scriptedDispatcher{results: map[string]models.ActionResult{}}
	executor := NewWorkflowExecutor(env.workflows, dispatcher, env.svc)
	return executor, env, dispatcher
}

func statusChangedWorkflow() *models.Workflow {
	return &models.Workflow{
		ID:          "wf-1",
		Name:        "Welcome sequence",
		Status:      constants.WorkflowStatusActive,
		TriggerType: constants.TriggerClientStatusChanged,
		Actions: []models.WorkflowAction{
			{ID: "a1", WorkflowID: "wf-1", Type: string(constants.ActionSendEmail), StepOrder: 0},
			{ID: "a2", WorkflowID: "wf-1", Type: string(constants.ActionCreateTask), StepOrder: 1},
		},
	}
}

func TestExecuteWorkflow_RunsActionsInStepOrder(t *testing.T) {
	executor, env, dispatcher := newExecutorEnv()

	wf := statusChangedWorkflow()
	// Stored out of order; execution must sort by step
	wf.Actions[0], wf.Actions[1] = wf.Actions[1], wf.Actions[0]

	execution := executor.ExecuteWorkflow(context.Background(), wf, testExecCtx())

	assert.Equal(t, []string{string(constants.ActionSendEmail), string(constants.ActionCreateTask)}, dispatcher.calls)
	assert.Equal(t, constants.ExecutionStatusCompleted, execution.Status)
	require.Len(t, execution.Results, 2)
	require.Len(t, env.workflows.executions, 1)
}

func TestExecuteWorkflow_PartialStatus(t *testing.T) {
	executor, _, dispatcher := newExecutorEnv()
	dispatcher.results[string(constants.ActionCreateTask)] = models.Fail("task text missing")

	execution := executor.ExecuteWorkflow(context.Background(), statusChangedWorkflow(), testExecCtx())

	assert.Equal(t, constants.ExecutionStatusPartial, execution.Status)
	assert.True(t, execution.Results[0].Success)
	assert.False(t, execution.Results[1].Success)
}

func TestExecuteWorkflow_FailedStatus(t *testing.T) {
	executor, _, dispatcher := newExecutorEnv()
	dispatcher.results[string(constants.ActionSendEmail)] = models.Fail("no body")
	dispatcher.results[string(constants.ActionCreateTask)] = models.Fail("no text")

	execution := executor.ExecuteWorkflow(context.Background(), statusChangedWorkflow(), testExecCtx())

	assert.Equal(t, constants.ExecutionStatusFailed, execution.Status)
}

func TestExecuteWorkflow_FailedActionDoesNotStopRest(t *testing.T) {
	executor, _, dispatcher := newExecutorEnv()
	dispatcher.results[string(constants.ActionSendEmail)] = models.Fail("boom")

	executor.ExecuteWorkflow(context.Background(), statusChangedWorkflow(), testExecCtx())

	assert.Len(t, dispatcher.calls, 2)
}

func TestExecuteWorkflow_UnknownActionType(t *testing.T) {
	executor, _, dispatcher := newExecutorEnv()
	wf := statusChangedWorkflow()
	wf.Actions = []models.WorkflowAction{{ID: "a1", Type: "TELEPORT_CLIENT", StepOrder: 0}}

	execution := executor.ExecuteWorkflow(context.Background(), wf, testExecCtx())

	assert.Equal(t, constants.ExecutionStatusFailed, execution.Status)
	assert.Contains(t, execution.Results[0].Message, "Unknown action type")
	assert.Empty(t, dispatcher.calls)
}

func TestHandleEvent_MatchesTriggerAndCondition(t *testing.T) {
	executor, env, dispatcher := newExecutorEnv()

	matching := statusChangedWorkflow()
	matching.TriggerCondition = `trigger.newStatus == "ACTIVE"`

	conditionMiss := statusChangedWorkflow()
	conditionMiss.ID = "wf-2"
	conditionMiss.TriggerCondition = `trigger.newStatus == "CLOSED"`

	wrongTrigger := statusChangedWorkflow()
	wrongTrigger.ID = "wf-3"
	wrongTrigger.TriggerType = constants.TriggerDocumentUploaded

	inactive := statusChangedWorkflow()
	inactive.ID = "wf-4"
	inactive.Status = constants.WorkflowStatusInactive

	for _, wf := range []*models.Workflow{matching, conditionMiss, wrongTrigger, inactive} {
		env.workflows.workflows[wf.ID] = wf
	}

	execCtx := &models.ExecutionContext{
		ClientID:    "client-1",
		TriggerType: constants.TriggerClientStatusChanged,
		TriggerData: map[string]interface{}{"newStatus": "ACTIVE", "oldStatus": "LEAD"},
		UserID:      "user-1",
	}

	executions, err := executor.HandleEvent(context.Background(), execCtx)
	require.NoError(t, err)
	require.Len(t, executions, 1)
	assert.Equal(t, "wf-1", executions[0].WorkflowID)
	assert.Len(t, dispatcher.calls, 2)
}

func TestHandleEvent_ConditionOnClientFields(t *testing.T) {
	executor, env, dispatcher := newExecutorEnv()

	wf := statusChangedWorkflow()
	wf.TriggerCondition = `client.status == "LEAD" and "referral" in client.tags`
	env.workflows.workflows[wf.ID] = wf

	executions, err := executor.HandleEvent(context.Background(), &models.ExecutionContext{
		ClientID:    "client-1",
		TriggerType: constants.TriggerClientStatusChanged,
		TriggerData: map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.Len(t, executions, 1)
	assert.NotEmpty(t, dispatcher.calls)
}

func TestHandleEvent_EmptyConditionAlwaysMatches(t *testing.T) {
	executor, env, _ := newExecutorEnv()
	env.workflows.workflows["wf-1"] = statusChangedWorkflow()

	executions, err := executor.HandleEvent(context.Background(), &models.ExecutionContext{
		ClientID:    "client-1",
		TriggerType: constants.TriggerClientStatusChanged,
	})
	require.NoError(t, err)
	assert.Len(t, executions, 1)
}

func TestHandleEvent_BadConditionSkipsWorkflow(t *testing.T) {
	executor, env, dispatcher := newExecutorEnv()

	broken := statusChangedWorkflow()
	broken.TriggerCondition = `trigger.newStatus ==` // unparsable
	env.workflows.workflows[broken.ID] = broken

	healthy := statusChangedWorkflow()
	healthy.ID = "wf-2"
	env.workflows.workflows[healthy.ID] = healthy

	executions, err := executor.HandleEvent(context.Background(), &models.ExecutionContext{
		ClientID:    "client-1",
		TriggerType: constants.TriggerClientStatusChanged,
		TriggerData: map[string]interface{}{"newStatus": "ACTIVE"},
	})
	require.NoError(t, err)
	assert.Len(t, executions, 1)
	assert.Equal(t, "wf-2", executions[0].WorkflowID)
	assert.Len(t, dispatcher.calls, 2)
}

func TestExecuteWorkflowByID_RunsDrafts(t *testing.T) {
	executor, env, _ := newExecutorEnv()

	draft := statusChangedWorkflow()
	draft.Status = constants.WorkflowStatusDraft
	env.workflows.workflows[draft.ID] = draft

	execution, err := executor.ExecuteWorkflowByID(context.Background(), draft.ID, testExecCtx())
	require.NoError(t, err)
	assert.Equal(t, constants.ExecutionStatusCompleted, execution.Status)
}

func TestExecuteWorkflowByID_NotFound(t *testing.T) {
	executor, _, _ := newExecutorEnv()

	_, err := executor.ExecuteWorkflowByID(context.Background(), "missing", testExecCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
