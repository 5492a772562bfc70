package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteNoteAction dispatches CREATE_NOTE.
func (as *ActionService) ExecuteNoteAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryNote, execCtx)

	var cfg models.NoteConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid note action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionCreateNote:
		return as.executeCreateNote(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown note action type: %s", actionType))
	}
}

func (as *ActionService) executeCreateNote(ctx context.Context, cfg *models.NoteConfig, execCtx *models.ExecutionContext) models.ActionResult {
	text := cfg.Text
	usedTemplate := false

	// Template content wins when no text is configured, falling back to the
	// config text if the template body is blank.
	if text == "" && cfg.TemplateID != "" {
		tpl, err := as.templates.FindNoteTemplate(ctx, cfg.TemplateID)
		if err != nil {
			return models.Fail(fmt.Sprintf("Failed to load note template %s: %v", cfg.TemplateID, err))
		}
		if tpl == nil {
			return models.Fail(errors.NewNotFoundError("Note template", cfg.TemplateID).Error())
		}
		if tpl.Content != "" {
			text = tpl.Content
			usedTemplate = true
		}
	}
	if text == "" {
		return models.Fail("CREATE_NOTE requires note text or a template with content")
	}

	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}
	text = RenderTemplate(text, placeholderContext(execCtx, client))

	tags := cfg.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &models.Note{
		ID:          uuid.NewString(),
		ClientID:    execCtx.ClientID,
		Text:        text,
		Tags:        tags,
		IsPinned:    cfg.IsPinned,
		CreatedByID: execCtx.UserID,
		CreatedDate: as.now(),
	}
	if err := as.notes.Create(ctx, note); err != nil {
		return models.Fail(fmt.Sprintf("Failed to create note: %v", err))
	}

	description := "Note created via workflow"
	if usedTemplate {
		description = fmt.Sprintf("Note created via workflow from template %s", cfg.TemplateID)
	}
	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeNoteCreated,
		description, map[string]interface{}{"noteId": note.ID, "usedTemplate": usedTemplate})

	return models.Succeed("Note created", map[string]interface{}{
		"noteId":   note.ID,
		"text":     text,
		"isPinned": note.IsPinned,
	})
}
