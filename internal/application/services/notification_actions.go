package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteNotificationAction dispatches SEND_NOTIFICATION and LOG_ACTIVITY.
func (as *ActionService) ExecuteNotificationAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryNotification, execCtx)

	switch constants.ActionType(actionType) {
	case constants.ActionSendNotification:
		var cfg models.NotificationConfig
		if err := decodeConfig(config, &cfg); err != nil {
			return models.Fail(fmt.Sprintf("Invalid notification action config: %v", err))
		}
		return as.executeSendNotification(ctx, &cfg, execCtx)
	case constants.ActionLogActivity:
		var cfg models.ActivityConfig
		if err := decodeConfig(config, &cfg); err != nil {
			return models.Fail(fmt.Sprintf("Invalid activity action config: %v", err))
		}
		return as.executeLogActivity(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown notification action type: %s", actionType))
	}
}

// executeSendNotification fans one notification out to every resolved
// recipient: an explicit user, all active users with a role, or the
// workflow-triggering user as the fallback.
func (as *ActionService) executeSendNotification(ctx context.Context, cfg *models.NotificationConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.Message == "" {
		return models.Fail("SEND_NOTIFICATION requires a message")
	}

	var recipients []string
	switch {
	case cfg.ToUserID != "":
		user, err := as.users.FindByID(ctx, cfg.ToUserID)
		if err != nil {
			return models.Fail(fmt.Sprintf("Failed to look up user %s: %v", cfg.ToUserID, err))
		}
		if user == nil {
			return models.Fail(errors.NewNotFoundError("User", cfg.ToUserID).Error())
		}
		recipients = []string{user.ID}
	case cfg.ToRole != "":
		users, err := as.users.FindActiveByRole(ctx, cfg.ToRole)
		if err != nil {
			return models.Fail(fmt.Sprintf("Failed to look up users with role %s: %v", cfg.ToRole, err))
		}
		for _, u := range users {
			recipients = append(recipients, u.ID)
		}
	case execCtx.UserID != "":
		recipients = []string{execCtx.UserID}
	}
	if len(recipients) == 0 {
		return models.Fail("No recipients resolved for notification")
	}

	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}
	pctx := placeholderContext(execCtx, client)

	title := cfg.Title
	if title == "" {
		title = constants.NotificationDefaultTitle
	}
	title = RenderTemplate(title, pctx)
	body := RenderTemplate(cfg.Message, pctx)

	link := cfg.Link
	if link == "" {
		link = fmt.Sprintf(constants.ClientDetailLinkFormat, execCtx.ClientID)
	}

	// Best-effort concurrent fan-out; one failed recipient does not abort
	// the rest.
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		created []string
		failed  = map[string]string{}
	)
	for _, recipientID := range recipients {
		wg.Add(1)
		go func(recipientID string) {
			defer wg.Done()
			notification := &models.Notification{
				ID:          uuid.NewString(),
				RecipientID: recipientID,
				Title:       title,
				Body:        body,
				Link:        link,
				CreatedDate: as.now(),
			}
			if err := as.notifications.Create(ctx, notification); err != nil {
				mu.Lock()
				failed[recipientID] = err.Error()
				mu.Unlock()
				return
			}
			mu.Lock()
			created = append(created, notification.ID)
			mu.Unlock()
		}(recipientID)
	}
	wg.Wait()

	if len(created) == 0 {
		return models.Fail(fmt.Sprintf("Failed to send notification to all %d recipient(s)", len(failed)))
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeNotificationSent,
		fmt.Sprintf("Notification sent to %d user(s) via workflow", len(created)),
		map[string]interface{}{"count": len(created), "notificationIds": created})

	data := map[string]interface{}{
		"count":           len(created),
		"notificationIds": created,
	}
	if len(failed) > 0 {
		data["failed"] = failed
	}
	return models.Succeed(fmt.Sprintf("Notification sent to %d user(s)", len(created)), data)
}

// executeLogActivity is the engine's escape hatch for custom audit entries.
// Unlike the fire-and-forget audit writes elsewhere, the activity here is the
// primary mutation, so its failure fails the action.
func (as *ActionService) executeLogActivity(ctx context.Context, cfg *models.ActivityConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.Description == "" {
		return models.Fail("LOG_ACTIVITY requires a description")
	}

	activityType := cfg.Type
	if activityType == "" {
		activityType = constants.ActivityTypeWorkflowAction
	}

	activity := &models.Activity{
		ID:          uuid.NewString(),
		ClientID:    execCtx.ClientID,
		UserID:      execCtx.UserID,
		Type:        activityType,
		Description: cfg.Description,
		Metadata:    cfg.Metadata,
		CreatedDate: as.now(),
	}
	if err := as.activities.Create(ctx, activity); err != nil {
		return models.Fail(fmt.Sprintf("Failed to log activity: %v", err))
	}

	return models.Succeed("Activity logged", map[string]interface{}{
		"activityId":  activity.ID,
		"type":        activityType,
		"description": cfg.Description,
	})
}
