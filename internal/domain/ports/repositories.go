package ports

import (
	"context"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
)

// Repository interfaces over the CRM data store. "Not found" is a nil result
// with a nil error, not an error value.

// ClientRepository provides access to client records. PII fields come back
// encrypted; callers decrypt via the Decryptor port.
type ClientRepository interface {
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindAllIDs(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateTags(ctx context.Context, id string, tags []string) error
	UpdateAssignee(ctx context.Context, id, userID string) error
}

// TaskRepository provides access to task records.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error

	// CompleteIfPending atomically marks a task COMPLETE with the given
	// timestamp, only if it is not already COMPLETE. Returns whether a row
	// was updated, closing the race between a status check and the update.
	CompleteIfPending(ctx context.Context, id string, completedAt time.Time) (bool, error)

	UpdateAssignee(ctx context.Context, id, userID string) error
}

// DocumentRepository provides access to document records.
type DocumentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Document, error)
	FindByClientID(ctx context.Context, clientID string) ([]*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// NoteRepository provides access to note records.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
}

// CommunicationRepository provides access to communication records.
type CommunicationRepository interface {
	Create(ctx context.Context, comm *models.Communication) error
}

// TemplateRepository loads communication and note templates.
type TemplateRepository interface {
	FindCommunicationTemplate(ctx context.Context, id string) (*models.CommunicationTemplate, error)
	FindNoteTemplate(ctx context.Context, id string) (*models.NoteTemplate, error)
}

// ActivityRepository appends audit-trail entries.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
}

// NotificationRepository provides access to in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// UserRepository provides access to CRM users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindActiveByRole(ctx context.Context, role string) ([]*models.User, error)
}

// WorkflowRepository provides access to workflow definitions and run records.
type WorkflowRepository interface {
	FindByID(ctx context.Context, id string) (*models.Workflow, error)
	FindActiveByTrigger(ctx context.Context, triggerType string) ([]*models.Workflow, error)
	FindScheduled(ctx context.Context) ([]*models.Workflow, error)
	UpdateLastRun(ctx context.Context, id string, at time.Time) error
	CreateExecution(ctx context.Context, execution *models.WorkflowExecution) error
}
