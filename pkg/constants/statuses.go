package constants

// Client pipeline statuses - closed set, validated by UPDATE_CLIENT_STATUS
const (
	ClientStatusLead         = "LEAD"
	ClientStatusPreQualified = "PRE_QUALIFIED"
	ClientStatusActive       = "ACTIVE"
	ClientStatusProcessing   = "PROCESSING"
	ClientStatusUnderwriting = "UNDERWRITING"
	ClientStatusClearToClose = "CLEAR_TO_CLOSE"
	ClientStatusClosed       = "CLOSED"
	ClientStatusDenied       = "DENIED"
	ClientStatusInactive     = "INACTIVE"
)

// ValidClientStatuses lists every accepted client status, in pipeline order.
var ValidClientStatuses = []string{
	ClientStatusLead,
	ClientStatusPreQualified,
	ClientStatusActive,
	ClientStatusProcessing,
	ClientStatusUnderwriting,
	ClientStatusClearToClose,
	ClientStatusClosed,
	ClientStatusDenied,
	ClientStatusInactive,
}

// Document statuses - closed set, validated by UPDATE_DOCUMENT_STATUS
const (
	DocumentStatusRequired    = "REQUIRED"
	DocumentStatusRequested   = "REQUESTED"
	DocumentStatusUploaded    = "UPLOADED"
	DocumentStatusUnderReview = "UNDER_REVIEW"
	DocumentStatusApproved    = "APPROVED"
	DocumentStatusRejected    = "REJECTED"
	DocumentStatusExpired     = "EXPIRED"
)

// ValidDocumentStatuses lists every accepted document status.
var ValidDocumentStatuses = []string{
	DocumentStatusRequired,
	DocumentStatusRequested,
	DocumentStatusUploaded,
	DocumentStatusUnderReview,
	DocumentStatusApproved,
	DocumentStatusRejected,
	DocumentStatusExpired,
}

// Document categories for REQUEST_DOCUMENT
const (
	DocumentCategoryIncome     = "INCOME"
	DocumentCategoryAssets     = "ASSETS"
	DocumentCategoryCredit     = "CREDIT"
	DocumentCategoryProperty   = "PROPERTY"
	DocumentCategoryIdentity   = "IDENTITY"
	DocumentCategoryInsurance  = "INSURANCE"
	DocumentCategoryEmployment = "EMPLOYMENT"
	DocumentCategoryOther      = "OTHER"
)

// ValidDocumentCategories lists every accepted document category.
var ValidDocumentCategories = []string{
	DocumentCategoryIncome,
	DocumentCategoryAssets,
	DocumentCategoryCredit,
	DocumentCategoryProperty,
	DocumentCategoryIdentity,
	DocumentCategoryInsurance,
	DocumentCategoryEmployment,
	DocumentCategoryOther,
}

// Task statuses
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusComplete   = "COMPLETE"
)

// Task priorities
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// Communication channels (also the template types they require)
const (
	ChannelEmail  = "EMAIL"
	ChannelSMS    = "SMS"
	ChannelLetter = "LETTER"
)

// Communication statuses. Delivery is not modelled here: workflow-created
// communications are recorded directly as SENT.
const (
	CommunicationStatusDraft = "DRAFT"
	CommunicationStatusSent  = "SENT"
)

// Activity types written by action executors
const (
	ActivityTypeWorkflowAction    = "WORKFLOW_ACTION"
	ActivityTypeCommunicationSent = "COMMUNICATION_SENT"
	ActivityTypeTaskCreated       = "TASK_CREATED"
	ActivityTypeTaskCompleted     = "TASK_COMPLETED"
	ActivityTypeTaskAssigned      = "TASK_ASSIGNED"
	ActivityTypeStatusChanged     = "STATUS_CHANGED"
	ActivityTypeTagsUpdated       = "TAGS_UPDATED"
	ActivityTypeClientAssigned    = "CLIENT_ASSIGNED"
	ActivityTypeDocumentUpdated   = "DOCUMENT_UPDATED"
	ActivityTypeDocumentRequested = "DOCUMENT_REQUESTED"
	ActivityTypeNoteCreated       = "NOTE_CREATED"
	ActivityTypeNotificationSent  = "NOTIFICATION_SENT"
	ActivityTypeWebhookCalled     = "WEBHOOK_CALLED"
	ActivityTypeWebhookFailed     = "WEBHOOK_FAILED"
)

// User roles used for role-based task/notification routing
const (
	RoleLoanOfficer = "LOAN_OFFICER"
	RoleProcessor   = "PROCESSOR"
	RoleAssistant   = "ASSISTANT"
	RoleAdmin       = "ADMIN"
)
