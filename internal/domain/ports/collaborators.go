package ports

import (
	"context"
	"net/http"

	"github.com/mlodash/backend/internal/domain/models"
)

// Decryptor decrypts client PII fields stored encrypted at rest.
type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// HTTPDoer issues outbound webhook requests. *http.Client satisfies it; tests
// substitute a stub.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ActionDispatcher is the surface the workflow executor calls. One entry point
// per action category; every entry point returns an ActionResult and never
// panics past its boundary.
type ActionDispatcher interface {
	ExecuteCommunicationAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteTaskAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteClientAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteDocumentAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteNotificationAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteNoteAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
	ExecuteWebhookAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult
}
