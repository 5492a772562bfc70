package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteCommunicationAction dispatches SEND_EMAIL, SEND_SMS and
// GENERATE_LETTER. Sending is simulated: the communication is recorded with
// status SENT; no delivery happens here.
func (as *ActionService) ExecuteCommunicationAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryCommunication, execCtx)

	var cfg models.CommunicationConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid communication action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionSendEmail:
		return as.executeSendCommunication(ctx, constants.ChannelEmail, &cfg, execCtx)
	case constants.ActionSendSMS:
		return as.executeSendCommunication(ctx, constants.ChannelSMS, &cfg, execCtx)
	case constants.ActionGenerateLetter:
		return as.executeSendCommunication(ctx, constants.ChannelLetter, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown communication action type: %s", actionType))
	}
}

// executeSendCommunication runs the shared email/SMS/letter pipeline: resolve
// template, resolve subject/body, substitute placeholders, resolve recipient,
// record the communication and the audit entry.
func (as *ActionService) executeSendCommunication(ctx context.Context, channel string, cfg *models.CommunicationConfig, execCtx *models.ExecutionContext) models.ActionResult {
	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}

	subject := cfg.Subject
	body := cfg.Body
	usedTemplate := false

	if cfg.TemplateID != "" {
		tpl, err := as.templates.FindCommunicationTemplate(ctx, cfg.TemplateID)
		if err != nil {
			return models.Fail(fmt.Sprintf("Failed to load template %s: %v", cfg.TemplateID, err))
		}
		if tpl == nil {
			return models.Fail(errors.NewNotFoundError("Communication template", cfg.TemplateID).Error())
		}
		if tpl.Type != channel {
			return models.Fail(fmt.Sprintf("Template '%s' is a %s template and cannot be used by a %s action", tpl.Name, tpl.Type, channel))
		}
		// Template fields win where defined; blank template fields fall back
		// to the config's own subject/body.
		if tpl.Subject != "" {
			subject = tpl.Subject
		}
		if tpl.Body != "" {
			body = tpl.Body
		}
		usedTemplate = true
	}

	if body == "" {
		return models.Fail("Communication action requires a message body")
	}

	pctx := placeholderContext(execCtx, client)
	subject = RenderTemplate(subject, pctx)
	body = RenderTemplate(body, pctx)

	recipient := cfg.To
	if recipient == "" {
		switch channel {
		case constants.ChannelEmail:
			recipient = client.Email
		case constants.ChannelSMS:
			recipient = client.Phone
		case constants.ChannelLetter:
			recipient = client.Name
		}
	}
	if recipient == "" {
		return models.Fail(fmt.Sprintf("No recipient available: client has no %s on file", strings.ToLower(channel)))
	}

	comm := &models.Communication{
		ID:          uuid.NewString(),
		ClientID:    execCtx.ClientID,
		Channel:     channel,
		Recipient:   recipient,
		Subject:     subject,
		Body:        body,
		Status:      constants.CommunicationStatusSent,
		TemplateID:  cfg.TemplateID,
		CreatedByID: execCtx.UserID,
		CreatedDate: as.now(),
	}
	if err := as.communications.Create(ctx, comm); err != nil {
		return models.Fail(fmt.Sprintf("Failed to record %s communication: %v", strings.ToLower(channel), err))
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeCommunicationSent,
		fmt.Sprintf("%s sent to %s via workflow", channel, recipient),
		map[string]interface{}{
			"communicationId": comm.ID,
			"channel":         channel,
			"usedTemplate":    usedTemplate,
		})

	return models.Succeed(fmt.Sprintf("%s sent to %s", channel, recipient), map[string]interface{}{
		"communicationId": comm.ID,
		"channel":         channel,
		"recipient":       recipient,
		"subject":         subject,
		"body":            body,
	})
}
