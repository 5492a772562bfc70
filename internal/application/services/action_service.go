package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/internal/domain/ports"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ActionService executes workflow actions against the CRM data store. One
// dispatcher entry point per action category is exposed to the workflow
// executor; every entry point returns an ActionResult and never lets an error
// or panic escape its boundary.
type ActionService struct {
	clients        ports.ClientRepository
	tasks          ports.TaskRepository
	documents      ports.DocumentRepository
	notes          ports.NoteRepository
	communications ports.CommunicationRepository
	templates      ports.TemplateRepository
	activities     ports.ActivityRepository
	notifications  ports.NotificationRepository
	users          ports.UserRepository
	decryptor      ports.Decryptor
	httpClient     ports.HTTPDoer
	environment    string

	now func() time.Time

	// webhookDelayUnit scales retryDelaySeconds; tests shrink it to avoid
	// real sleeps in the retry loop.
	webhookDelayUnit time.Duration
}

// ActionServiceDeps bundles the collaborators an ActionService needs.
type ActionServiceDeps struct {
	Clients        ports.ClientRepository
	Tasks          ports.TaskRepository
	Documents      ports.DocumentRepository
	Notes          ports.NoteRepository
	Communications ports.CommunicationRepository
	Templates      ports.TemplateRepository
	Activities     ports.ActivityRepository
	Notifications  ports.NotificationRepository
	Users          ports.UserRepository
	Decryptor      ports.Decryptor
	HTTPClient     ports.HTTPDoer
	Environment    string
}

// NewActionService creates a new ActionService
func NewActionService(deps ActionServiceDeps) *ActionService {
	return &ActionService{
		clients:          deps.Clients,
		tasks:            deps.Tasks,
		documents:        deps.Documents,
		notes:            deps.Notes,
		communications:   deps.Communications,
		templates:        deps.Templates,
		activities:       deps.Activities,
		notifications:    deps.Notifications,
		users:            deps.Users,
		decryptor:        deps.Decryptor,
		httpClient:       deps.HTTPClient,
		environment:      deps.Environment,
		now:              time.Now,
		webhookDelayUnit: time.Second,
	}
}

// ResolveClientData fetches the trigger client and decrypts its PII fields
// into the snapshot used for placeholder substitution. Fetched fresh per
// action invocation; there is no cross-action cache.
func (as *ActionService) ResolveClientData(ctx context.Context, clientID string) (*models.ClientData, error) {
	if clientID == "" {
		return nil, errors.NewValidationError("clientId", "execution context has no client")
	}

	client, err := as.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	if client == nil {
		return nil, errors.NewNotFoundError("Client", clientID)
	}

	name, err := as.decryptor.Decrypt(client.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt client name: %w", err)
	}
	email, err := as.decryptor.Decrypt(client.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt client email: %w", err)
	}
	phone, err := as.decryptor.Decrypt(client.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt client phone: %w", err)
	}

	return &models.ClientData{
		ID:     client.ID,
		Name:   name,
		Email:  email,
		Phone:  phone,
		Status: client.Status,
		Tags:   client.Tags,
	}, nil
}

// placeholderContext combines an execution context with decrypted client data.
func placeholderContext(execCtx *models.ExecutionContext, client *models.ClientData) *models.PlaceholderContext {
	return &models.PlaceholderContext{
		ExecutionContext: *execCtx,
		Client:           *client,
	}
}

// logActivity appends an audit-trail entry. Audit failures never fail the
// primary action: errors are logged and swallowed.
func (as *ActionService) logActivity(ctx context.Context, clientID, userID, activityType, description string, metadata map[string]interface{}) {
	activity := &models.Activity{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		UserID:      userID,
		Type:        activityType,
		Description: description,
		Metadata:    metadata,
		CreatedDate: as.now(),
	}
	if err := as.activities.Create(ctx, activity); err != nil {
		log.Printf("⚠️ Failed to record activity for client %s: %v", clientID, err)
	}
}

// guard converts a panic inside an executor into a failed ActionResult, with a
// best-effort audit entry. Installed via defer at every dispatcher entry point.
func (as *ActionService) guard(result *models.ActionResult, category constants.ActionCategory, execCtx *models.ExecutionContext) {
	if r := recover(); r != nil {
		message := fmt.Sprintf("Unexpected %s action failure: %v", category, r)
		log.Printf("❌ %s", message)
		as.logActivity(context.Background(), execCtx.ClientID, execCtx.UserID,
			constants.ActivityTypeWorkflowAction, message, nil)
		*result = models.Fail(message)
	}
}

// DispatchFunc routes one category's action types to their executors.
type DispatchFunc func(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult

// Dispatchers returns the category → dispatcher lookup table the workflow
// executor routes through.
func (as *ActionService) Dispatchers() map[constants.ActionCategory]DispatchFunc {
	return map[constants.ActionCategory]DispatchFunc{
		constants.CategoryCommunication: as.ExecuteCommunicationAction,
		constants.CategoryTask:          as.ExecuteTaskAction,
		constants.CategoryClient:        as.ExecuteClientAction,
		constants.CategoryDocument:      as.ExecuteDocumentAction,
		constants.CategoryNote:          as.ExecuteNoteAction,
		constants.CategoryNotification:  as.ExecuteNotificationAction,
		constants.CategoryWebhook:       as.ExecuteWebhookAction,
	}
}

// Dispatch routes any action type to its category dispatcher. Types outside
// the closed set (e.g. a persisted workflow referencing a removed action)
// yield a failed result, not an error.
func (as *ActionService) Dispatch(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) models.ActionResult {
	category, ok := constants.CategoryOf(constants.ActionType(actionType))
	if !ok {
		return models.Fail(fmt.Sprintf("Unknown action type: %s", actionType))
	}
	return as.Dispatchers()[category](ctx, actionType, config, execCtx)
}
