package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteClientAction dispatches UPDATE_CLIENT_STATUS, ADD_TAG, REMOVE_TAG
// and ASSIGN_CLIENT.
func (as *ActionService) ExecuteClientAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryClient, execCtx)

	var cfg models.ClientConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid client action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionUpdateClientStatus:
		return as.executeUpdateClientStatus(ctx, &cfg, execCtx)
	case constants.ActionAddTag:
		return as.executeUpdateTags(ctx, cfg.AddTags, true, execCtx)
	case constants.ActionRemoveTag:
		return as.executeUpdateTags(ctx, cfg.RemoveTags, false, execCtx)
	case constants.ActionAssignClient:
		return as.executeAssignClient(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown client action type: %s", actionType))
	}
}

func (as *ActionService) executeUpdateClientStatus(ctx context.Context, cfg *models.ClientConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if !containsString(constants.ValidClientStatuses, cfg.Status) {
		return models.Fail(fmt.Sprintf("Invalid client status '%s'. Valid statuses: %s",
			cfg.Status, strings.Join(constants.ValidClientStatuses, ", ")))
	}

	client, err := as.clients.FindByID(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load client %s: %v", execCtx.ClientID, err))
	}
	if client == nil {
		return models.Fail(errors.NewNotFoundError("Client", execCtx.ClientID).Error())
	}

	fromStatus := client.Status
	if err := as.clients.UpdateStatus(ctx, client.ID, cfg.Status); err != nil {
		return models.Fail(fmt.Sprintf("Failed to update client status: %v", err))
	}

	as.logActivity(ctx, client.ID, execCtx.UserID, constants.ActivityTypeStatusChanged,
		fmt.Sprintf("Client status changed from %s to %s via workflow", fromStatus, cfg.Status),
		map[string]interface{}{"fromStatus": fromStatus, "toStatus": cfg.Status})

	return models.Succeed(fmt.Sprintf("Client status updated to %s", cfg.Status), map[string]interface{}{
		"fromStatus": fromStatus,
		"toStatus":   cfg.Status,
	})
}

// executeUpdateTags applies a set union (add=true) or set difference
// (add=false) to the client's tag set. Ordering is not guaranteed beyond
// keeping existing tags stable.
func (as *ActionService) executeUpdateTags(ctx context.Context, tags []string, add bool, execCtx *models.ExecutionContext) models.ActionResult {
	if len(tags) == 0 {
		if add {
			return models.Fail("ADD_TAG requires at least one tag in addTags")
		}
		return models.Fail("REMOVE_TAG requires at least one tag in removeTags")
	}

	client, err := as.clients.FindByID(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load client %s: %v", execCtx.ClientID, err))
	}
	if client == nil {
		return models.Fail(errors.NewNotFoundError("Client", execCtx.ClientID).Error())
	}

	var updated []string
	if add {
		updated = append(updated, client.Tags...)
		for _, tag := range tags {
			if !containsString(updated, tag) {
				updated = append(updated, tag)
			}
		}
	} else {
		for _, tag := range client.Tags {
			if !containsString(tags, tag) {
				updated = append(updated, tag)
			}
		}
	}

	if err := as.clients.UpdateTags(ctx, client.ID, updated); err != nil {
		return models.Fail(fmt.Sprintf("Failed to update client tags: %v", err))
	}

	verb := "added to"
	if !add {
		verb = "removed from"
	}
	as.logActivity(ctx, client.ID, execCtx.UserID, constants.ActivityTypeTagsUpdated,
		fmt.Sprintf("Tags %s client via workflow: %s", verb, strings.Join(tags, ", ")),
		map[string]interface{}{"changed": tags, "tags": updated})

	return models.Succeed("Client tags updated", map[string]interface{}{"tags": updated})
}

func (as *ActionService) executeAssignClient(ctx context.Context, cfg *models.ClientConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if cfg.AssignedToID == "" {
		return models.Fail("ASSIGN_CLIENT requires an assignedToId")
	}

	user, err := as.users.FindByID(ctx, cfg.AssignedToID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to look up user %s: %v", cfg.AssignedToID, err))
	}
	if user == nil {
		return models.Fail(errors.NewNotFoundError("User", cfg.AssignedToID).Error())
	}

	client, err := as.clients.FindByID(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load client %s: %v", execCtx.ClientID, err))
	}
	if client == nil {
		return models.Fail(errors.NewNotFoundError("Client", execCtx.ClientID).Error())
	}

	fromUserID := client.AssignedToID
	if err := as.clients.UpdateAssignee(ctx, client.ID, user.ID); err != nil {
		return models.Fail(fmt.Sprintf("Failed to assign client: %v", err))
	}

	as.logActivity(ctx, client.ID, execCtx.UserID, constants.ActivityTypeClientAssigned,
		fmt.Sprintf("Client assigned to %s via workflow", user.Name),
		map[string]interface{}{"fromUserId": fromUserID, "toUserId": user.ID})

	return models.Succeed(fmt.Sprintf("Client assigned to %s", user.Name), map[string]interface{}{
		"fromUserId":   fromUserID,
		"assignedToId": user.ID,
	})
}
