package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteTaskAction dispatches CREATE_TASK, COMPLETE_TASK and ASSIGN_TASK.
func (as *ActionService) ExecuteTaskAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryTask, execCtx)

	var cfg models.TaskConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid task action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionCreateTask:
		return as.executeCreateTask(ctx, &cfg, execCtx)
	case constants.ActionCompleteTask:
		return as.executeCompleteTask(ctx, &cfg, execCtx)
	case constants.ActionAssignTask:
		return as.executeAssignTask(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown task action type: %s", actionType))
	}
}

// resolveAssignee picks a task/client assignee: explicit user ID first, then
// the first active user with the configured role. When strict is false an
// unresolvable role falls back to the workflow-triggering user; when strict is
// true it is a reported failure.
func (as *ActionService) resolveAssignee(ctx context.Context, assignedToID, role string, execCtx *models.ExecutionContext, strict bool) (string, error) {
	if assignedToID != "" {
		user, err := as.users.FindByID(ctx, assignedToID)
		if err != nil {
			return "", fmt.Errorf("failed to look up user %s: %w", assignedToID, err)
		}
		if user == nil {
			return "", errors.NewNotFoundError("User", assignedToID)
		}
		return user.ID, nil
	}

	if role != "" {
		candidates, err := as.users.FindActiveByRole(ctx, role)
		if err != nil {
			return "", fmt.Errorf("failed to look up users with role %s: %w", role, err)
		}
		if len(candidates) > 0 {
			return candidates[0].ID, nil
		}
		if strict {
			return "", errors.NewNotFoundError(fmt.Sprintf("Active user with role %s", role), "")
		}
	}

	return execCtx.UserID, nil
}

func (as *ActionService) executeCreateTask(ctx context.Context, cfg *models.TaskConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.Text == "" {
		return models.Fail("CREATE_TASK requires task text")
	}

	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}
	pctx := placeholderContext(execCtx, client)

	dueDate, err := resolveDueDate(as.now(), cfg.DueDays, cfg.DueDate)
	if err != nil {
		return models.Fail(err.Error())
	}

	assigneeID, err := as.resolveAssignee(ctx, cfg.AssignedToID, cfg.AssignedToRole, execCtx, false)
	if err != nil {
		return models.Fail(err.Error())
	}

	priority := cfg.Priority
	if priority == "" {
		priority = constants.TaskPriorityMedium
	}

	task := &models.Task{
		ID:           uuid.NewString(),
		ClientID:     execCtx.ClientID,
		Text:         RenderTemplate(cfg.Text, pctx),
		Description:  RenderTemplate(cfg.Description, pctx),
		Status:       constants.TaskStatusTodo,
		Priority:     priority,
		DueDate:      dueDate,
		AssignedToID: assigneeID,
		CreatedByID:  execCtx.UserID,
		CreatedDate:  as.now(),
	}
	if err := as.tasks.Create(ctx, task); err != nil {
		return models.Fail(fmt.Sprintf("Failed to create task: %v", err))
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeTaskCreated,
		fmt.Sprintf("Task created via workflow: %s", task.Text),
		map[string]interface{}{"taskId": task.ID, "assignedToId": assigneeID})

	data := map[string]interface{}{
		"taskId":       task.ID,
		"text":         task.Text,
		"assignedToId": assigneeID,
	}
	if dueDate != nil {
		data["dueDate"] = dueDate.Format(time.RFC3339)
	}
	return models.Succeed("Task created", data)
}

func (as *ActionService) executeCompleteTask(ctx context.Context, cfg *models.TaskConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.TaskID == "" {
		return models.Fail("COMPLETE_TASK requires a taskId")
	}

	task, err := as.tasks.FindByID(ctx, cfg.TaskID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load task %s: %v", cfg.TaskID, err))
	}
	if task == nil {
		return models.Fail(errors.NewNotFoundError("Task", cfg.TaskID).Error())
	}

	// Re-running against an already-complete task is a no-op success with no
	// duplicate audit entry.
	if task.Status == constants.TaskStatusComplete {
		return models.Succeed("Task already complete", map[string]interface{}{
			"taskId":          task.ID,
			"alreadyComplete": true,
		})
	}

	completedAt := as.now()
	updated, err := as.tasks.CompleteIfPending(ctx, cfg.TaskID, completedAt)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to complete task %s: %v", cfg.TaskID, err))
	}
	if !updated {
		// Lost the race against a concurrent completion; same idempotent shape.
		return models.Succeed("Task already complete", map[string]interface{}{
			"taskId":          task.ID,
			"alreadyComplete": true,
		})
	}

	if task.ClientID != "" {
		as.logActivity(ctx, task.ClientID, execCtx.UserID, constants.ActivityTypeTaskCompleted,
			fmt.Sprintf("Task completed via workflow: %s", task.Text),
			map[string]interface{}{"taskId": task.ID})
	}

	return models.Succeed("Task completed", map[string]interface{}{
		"taskId":      task.ID,
		"completedAt": completedAt.Format(time.RFC3339),
	})
}

func (as *ActionService) executeAssignTask(ctx context.Context, cfg *models.TaskConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.TaskID == "" {
		return models.Fail("ASSIGN_TASK requires a taskId")
	}
	if cfg.AssignedToID == "" && cfg.AssignedToRole == "" {
		return models.Fail("ASSIGN_TASK requires an assignedToId or assignedToRole")
	}

	task, err := as.tasks.FindByID(ctx, cfg.TaskID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load task %s: %v", cfg.TaskID, err))
	}
	if task == nil {
		return models.Fail(errors.NewNotFoundError("Task", cfg.TaskID).Error())
	}

	assigneeID, err := as.resolveAssignee(ctx, cfg.AssignedToID, cfg.AssignedToRole, execCtx, true)
	if err != nil {
		return models.Fail(err.Error())
	}

	if err := as.tasks.UpdateAssignee(ctx, task.ID, assigneeID); err != nil {
		return models.Fail(fmt.Sprintf("Failed to assign task %s: %v", task.ID, err))
	}

	if task.ClientID != "" {
		as.logActivity(ctx, task.ClientID, execCtx.UserID, constants.ActivityTypeTaskAssigned,
			fmt.Sprintf("Task assigned via workflow: %s", task.Text),
			map[string]interface{}{"taskId": task.ID, "assignedToId": assigneeID})
	}

	return models.Succeed("Task assigned", map[string]interface{}{
		"taskId":       task.ID,
		"assignedToId": assigneeID,
	})
}
