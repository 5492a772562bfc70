package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/internal/domain/ports"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
	"github.com/mlodash/backend/pkg/expression"
)

// ClientDataResolver fetches and decrypts the client snapshot used for
// condition evaluation. ActionService implements it.
type ClientDataResolver interface {
	ResolveClientData(ctx context.Context, clientID string) (*models.ClientData, error)
}

// WorkflowExecutor matches CRM events against active workflows, evaluates
// trigger conditions and runs each matched workflow's ordered action list
// through the category dispatchers, collecting one ActionResult per action.
type WorkflowExecutor struct {
	workflows  ports.WorkflowRepository
	dispatcher ports.ActionDispatcher
	resolver   ClientDataResolver
	expression *expression.Engine
	now        func() time.Time
}

// NewWorkflowExecutor creates a new WorkflowExecutor.
func NewWorkflowExecutor(workflows ports.WorkflowRepository, dispatcher ports.ActionDispatcher, resolver ClientDataResolver) *WorkflowExecutor {
	return &WorkflowExecutor{
		workflows:  workflows,
		dispatcher: dispatcher,
		resolver:   resolver,
		expression: expression.NewEngine(),
		now:        time.Now,
	}
}

// HandleEvent runs every active workflow whose trigger and condition match the
// event. One workflow failing never stops the others.
func (we *WorkflowExecutor) HandleEvent(ctx context.Context, execCtx *models.ExecutionContext) ([]*models.WorkflowExecution, error) {
	workflows, err := we.workflows.FindActiveByTrigger(ctx, execCtx.TriggerType)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows for trigger %s: %w", execCtx.TriggerType, err)
	}
	log.Printf("🔍 WorkflowExecutor: checking %d workflow(s) for trigger '%s' on client '%s'",
		len(workflows), execCtx.TriggerType, execCtx.ClientID)

	var executions []*models.WorkflowExecution
	for _, workflow := range workflows {
		matched, err := we.MatchesCondition(ctx, workflow, execCtx)
		if err != nil {
			log.Printf("⚠️ Workflow %s: condition evaluation failed: %v", workflow.Name, err)
			continue
		}
		if !matched {
			continue
		}
		executions = append(executions, we.ExecuteWorkflow(ctx, workflow, execCtx))
	}
	return executions, nil
}

// ExecuteWorkflowByID runs a single workflow directly, as the dashboard
// test-run endpoint does. Inactive workflows are runnable here on purpose so
// drafts can be exercised before activation.
func (we *WorkflowExecutor) ExecuteWorkflowByID(ctx context.Context, workflowID string, execCtx *models.ExecutionContext) (*models.WorkflowExecution, error) {
	workflow, err := we.workflows.FindByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow %s: %w", workflowID, err)
	}
	if workflow == nil {
		return nil, errors.NewNotFoundError("Workflow", workflowID)
	}
	return we.ExecuteWorkflow(ctx, workflow, execCtx), nil
}

// MatchesCondition evaluates a workflow's trigger condition against the
// {client, trigger} environment. An empty condition always matches.
func (we *WorkflowExecutor) MatchesCondition(ctx context.Context, workflow *models.Workflow, execCtx *models.ExecutionContext) (bool, error) {
	if workflow.TriggerCondition == "" {
		return true, nil
	}

	env := map[string]interface{}{
		"trigger": execCtx.TriggerData,
	}
	if execCtx.ClientID != "" {
		client, err := we.resolver.ResolveClientData(ctx, execCtx.ClientID)
		if err != nil {
			return false, err
		}
		env["client"] = map[string]interface{}{
			"id":     client.ID,
			"name":   client.Name,
			"email":  client.Email,
			"phone":  client.Phone,
			"status": client.Status,
			"tags":   client.Tags,
		}
	}

	return we.expression.EvaluateBool(workflow.TriggerCondition, env)
}

// ExecuteWorkflow runs the workflow's actions in step order. Every action
// produces exactly one result; a failed action does not stop the remaining
// actions — partial success is reported in the execution record.
func (we *WorkflowExecutor) ExecuteWorkflow(ctx context.Context, workflow *models.Workflow, execCtx *models.ExecutionContext) *models.WorkflowExecution {
	log.Printf("🔄 Workflow %s: executing %d action(s) for client '%s'", workflow.Name, len(workflow.Actions), execCtx.ClientID)

	actions := make([]models.WorkflowAction, len(workflow.Actions))
	copy(actions, workflow.Actions)
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].StepOrder < actions[j].StepOrder
	})

	execution := &models.WorkflowExecution{
		ID:         uuid.NewString(),
		WorkflowID: workflow.ID,
		ClientID:   execCtx.ClientID,
		StartedAt:  we.now(),
	}

	succeeded := 0
	for _, action := range actions {
		result := we.dispatchAction(ctx, &action, execCtx)
		if result.Success {
			succeeded++
		} else {
			log.Printf("❌ Workflow %s: action %s failed: %s", workflow.Name, action.Type, result.Message)
		}
		execution.Results = append(execution.Results, result)
	}
	execution.FinishedAt = we.now()

	switch {
	case len(actions) == 0 || succeeded == len(actions):
		execution.Status = constants.ExecutionStatusCompleted
	case succeeded > 0:
		execution.Status = constants.ExecutionStatusPartial
	default:
		execution.Status = constants.ExecutionStatusFailed
	}

	if err := we.workflows.CreateExecution(ctx, execution); err != nil {
		log.Printf("⚠️ Workflow %s: failed to record execution: %v", workflow.Name, err)
	}

	log.Printf("✅ Workflow %s: finished with status %s (%d/%d action(s) succeeded)",
		workflow.Name, execution.Status, succeeded, len(actions))
	return execution
}

// dispatchAction routes one action to its category dispatcher. Unknown action
// types become a failed result, matching the dispatcher contract.
func (we *WorkflowExecutor) dispatchAction(ctx context.Context, action *models.WorkflowAction, execCtx *models.ExecutionContext) models.ActionResult {
	category, ok := constants.CategoryOf(constants.ActionType(action.Type))
	if !ok {
		return models.Fail(fmt.Sprintf("Unknown action type: %s", action.Type))
	}

	switch category {
	case constants.CategoryCommunication:
		return we.dispatcher.ExecuteCommunicationAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryTask:
		return we.dispatcher.ExecuteTaskAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryClient:
		return we.dispatcher.ExecuteClientAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryDocument:
		return we.dispatcher.ExecuteDocumentAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryNote:
		return we.dispatcher.ExecuteNoteAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryNotification:
		return we.dispatcher.ExecuteNotificationAction(ctx, action.Type, action.Config, execCtx)
	case constants.CategoryWebhook:
		return we.dispatcher.ExecuteWebhookAction(ctx, action.Type, action.Config, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown action type: %s", action.Type))
	}
}
