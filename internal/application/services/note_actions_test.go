package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

func TestCreateNote(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteNoteAction(context.Background(), string(constants.ActionCreateNote),
		map[string]interface{}{
			"text":     "Spoke with {{client_name}} about {{trigger_type}}",
			"tags":     []string{"call"},
			"isPinned": true,
		}, testExecCtx())

	require.True(t, result.Success, result.Message)
	require.Len(t, env.notes.notes, 1)

	note := env.notes.notes[0]
	assert.Equal(t, "Spoke with Jane Doe about CLIENT_CREATED", note.Text)
	assert.Equal(t, []string{"call"}, note.Tags)
	assert.True(t, note.IsPinned)
	assert.Equal(t, "user-1", note.CreatedByID)
	assert.Len(t, env.activities.ofType(constants.ActivityTypeNoteCreated), 1)
}

func TestCreateNote_FromTemplate(t *testing.T) {
	env := newTestEnv()
	env.templates.note["ntpl-1"] = &models.NoteTemplate{
		ID:      "ntpl-1",
		Name:    "Intro call",
		Content: "Intro call with {{client_name}}",
	}

	result := env.svc.ExecuteNoteAction(context.Background(), string(constants.ActionCreateNote),
		map[string]interface{}{"templateId": "ntpl-1"}, testExecCtx())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Intro call with Jane Doe", env.notes.notes[0].Text)
	// Tags default to an empty list, never nil
	assert.Equal(t, []string{}, env.notes.notes[0].Tags)
}

func TestCreateNote_ConfigTextWinsOverTemplate(t *testing.T) {
	env := newTestEnv()
	env.templates.note["ntpl-1"] = &models.NoteTemplate{ID: "ntpl-1", Content: "Template text"}

	result := env.svc.ExecuteNoteAction(context.Background(), string(constants.ActionCreateNote),
		map[string]interface{}{"text": "Config text", "templateId": "ntpl-1"}, testExecCtx())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Config text", env.notes.notes[0].Text)
}

func TestCreateNote_MissingText(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteNoteAction(context.Background(), string(constants.ActionCreateNote),
		map[string]interface{}{}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "requires note text")
}

func TestCreateNote_TemplateNotFound(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteNoteAction(context.Background(), string(constants.ActionCreateNote),
		map[string]interface{}{"templateId": "missing"}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
}
