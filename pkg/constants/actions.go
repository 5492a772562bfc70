package constants

// ActionType identifies a single workflow action variant. The set is closed:
// dispatchers switch exhaustively over the constants below and report any other
// value (e.g. a persisted workflow referencing a removed type) as a failed result.
type ActionType string

// Communication actions
const (
	ActionSendEmail      ActionType = "SEND_EMAIL"
	ActionSendSMS        ActionType = "SEND_SMS"
	ActionGenerateLetter ActionType = "GENERATE_LETTER"
)

// Task actions
const (
	ActionCreateTask   ActionType = "CREATE_TASK"
	ActionCompleteTask ActionType = "COMPLETE_TASK"
	ActionAssignTask   ActionType = "ASSIGN_TASK"
)

// Client actions
const (
	ActionUpdateClientStatus ActionType = "UPDATE_CLIENT_STATUS"
	ActionAddTag             ActionType = "ADD_TAG"
	ActionRemoveTag          ActionType = "REMOVE_TAG"
	ActionAssignClient       ActionType = "ASSIGN_CLIENT"
)

// Document actions
const (
	ActionUpdateDocumentStatus ActionType = "UPDATE_DOCUMENT_STATUS"
	ActionRequestDocument      ActionType = "REQUEST_DOCUMENT"
)

// Note action
const (
	ActionCreateNote ActionType = "CREATE_NOTE"
)

// Notification actions
const (
	ActionSendNotification ActionType = "SEND_NOTIFICATION"
	ActionLogActivity      ActionType = "LOG_ACTIVITY"
)

// Webhook action
const (
	ActionCallWebhook ActionType = "CALL_WEBHOOK"
)

// ActionCategory groups action types by the dispatcher that executes them.
type ActionCategory string

const (
	CategoryCommunication ActionCategory = "communication"
	CategoryTask          ActionCategory = "task"
	CategoryClient        ActionCategory = "client"
	CategoryDocument      ActionCategory = "document"
	CategoryNote          ActionCategory = "note"
	CategoryNotification  ActionCategory = "notification"
	CategoryWebhook       ActionCategory = "webhook"
)

// actionCategories maps every known action type to its category.
var actionCategories = map[ActionType]ActionCategory{
	ActionSendEmail:            CategoryCommunication,
	ActionSendSMS:              CategoryCommunication,
	ActionGenerateLetter:       CategoryCommunication,
	ActionCreateTask:           CategoryTask,
	ActionCompleteTask:         CategoryTask,
	ActionAssignTask:           CategoryTask,
	ActionUpdateClientStatus:   CategoryClient,
	ActionAddTag:               CategoryClient,
	ActionRemoveTag:            CategoryClient,
	ActionAssignClient:         CategoryClient,
	ActionUpdateDocumentStatus: CategoryDocument,
	ActionRequestDocument:      CategoryDocument,
	ActionCreateNote:           CategoryNote,
	ActionSendNotification:     CategoryNotification,
	ActionLogActivity:          CategoryNotification,
	ActionCallWebhook:          CategoryWebhook,
}

// CategoryOf returns the dispatcher category for an action type.
// The second return is false for types outside the closed set.
func CategoryOf(actionType ActionType) (ActionCategory, bool) {
	cat, ok := actionCategories[actionType]
	return cat, ok
}

// AllActionTypes returns the closed set of supported action types.
func AllActionTypes() []ActionType {
	types := make([]ActionType, 0, len(actionCategories))
	for t := range actionCategories {
		types = append(types, t)
	}
	return types
}
