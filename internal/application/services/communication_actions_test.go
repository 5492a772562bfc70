package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

func TestSendEmail(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{
			"subject": "Welcome {{client_name}}",
			"body":    "Hi {{client_name}}, your status is {{client_status}}.",
		}, testExecCtx())

	require.True(t, result.Success, result.Message)
	require.Len(t, env.communications.comms, 1)

	comm := env.communications.comms[0]
	assert.Equal(t, constants.ChannelEmail, comm.Channel)
	assert.Equal(t, "jane@example.com", comm.Recipient)
	assert.Equal(t, "Welcome Jane Doe", comm.Subject)
	assert.Equal(t, "Hi Jane Doe, your status is LEAD.", comm.Body)
	assert.Equal(t, constants.CommunicationStatusSent, comm.Status)

	assert.Len(t, env.activities.ofType(constants.ActivityTypeCommunicationSent), 1)
	assert.Equal(t, "jane@example.com", result.Data["recipient"])
}

func TestSendSMS_UsesPhoneRecipient(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendSMS),
		map[string]interface{}{"body": "Reminder for {{client_name}}"}, testExecCtx())

	require.True(t, result.Success, result.Message)
	require.Len(t, env.communications.comms, 1)
	assert.Equal(t, constants.ChannelSMS, env.communications.comms[0].Channel)
	assert.Equal(t, "555-0100", env.communications.comms[0].Recipient)
}

func TestGenerateLetter_UsesNameRecipient(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionGenerateLetter),
		map[string]interface{}{"body": "Dear {{client_name}}"}, testExecCtx())

	require.True(t, result.Success, result.Message)
	require.Len(t, env.communications.comms, 1)
	assert.Equal(t, "Jane Doe", env.communications.comms[0].Recipient)
}

func TestSendEmail_TemplateFieldsWin(t *testing.T) {
	env := newTestEnv()
	env.templates.communication["tpl-1"] = &models.CommunicationTemplate{
		ID:      "tpl-1",
		Name:    "Welcome",
		Type:    constants.ChannelEmail,
		Subject: "Template subject",
		Body:    "Template body for {{client_name}}",
	}

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{
			"templateId": "tpl-1",
			"subject":    "Config subject",
			"body":       "Config body",
		}, testExecCtx())

	require.True(t, result.Success, result.Message)
	comm := env.communications.comms[0]
	assert.Equal(t, "Template subject", comm.Subject)
	assert.Equal(t, "Template body for Jane Doe", comm.Body)
	assert.Equal(t, "tpl-1", comm.TemplateID)
}

func TestSendEmail_BlankTemplateSubjectFallsBack(t *testing.T) {
	env := newTestEnv()
	env.templates.communication["tpl-2"] = &models.CommunicationTemplate{
		ID:   "tpl-2",
		Name: "Body only",
		Type: constants.ChannelEmail,
		Body: "Template body",
	}

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{
			"templateId": "tpl-2",
			"subject":    "Config subject",
		}, testExecCtx())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Config subject", env.communications.comms[0].Subject)
	assert.Equal(t, "Template body", env.communications.comms[0].Body)
}

func TestSendSMS_TemplateTypeMismatch(t *testing.T) {
	env := newTestEnv()
	env.templates.communication["tpl-email"] = &models.CommunicationTemplate{
		ID:   "tpl-email",
		Name: "Welcome",
		Type: constants.ChannelEmail,
		Body: "Hello",
	}

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendSMS),
		map[string]interface{}{"templateId": "tpl-email"}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "cannot be used by a SMS action")
	// Nothing recorded on type mismatch
	assert.Empty(t, env.communications.comms)
	assert.Empty(t, env.activities.activities)
}

func TestSendEmail_MissingBody(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{"subject": "No body"}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "message body")
}

func TestSendEmail_TemplateNotFound(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{"templateId": "missing", "body": "fallback"}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
}

func TestSendEmail_ExplicitRecipientOverride(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{"to": "other@example.com", "body": "Hi"}, testExecCtx())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "other@example.com", env.communications.comms[0].Recipient)
}

func TestSendEmail_NoRecipientOnFile(t *testing.T) {
	env := newTestEnv()
	env.clients.clients["client-1"].Email = ""

	result := env.svc.ExecuteCommunicationAction(context.Background(), string(constants.ActionSendEmail),
		map[string]interface{}{"body": "Hi"}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No recipient available")
}

func TestCommunicationAction_UnknownType(t *testing.T) {
	env := newTestEnv()

	result := env.svc.ExecuteCommunicationAction(context.Background(), "SEND_FAX",
		map[string]interface{}{}, testExecCtx())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Unknown communication action type")
}
