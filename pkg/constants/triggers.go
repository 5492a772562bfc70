package constants

// Workflow trigger type constants
const (
	TriggerClientCreated       = "CLIENT_CREATED"
	TriggerClientStatusChanged = "CLIENT_STATUS_CHANGED"
	TriggerDocumentUploaded    = "DOCUMENT_UPLOADED"
	TriggerTaskDue             = "TASK_DUE"
	TriggerSchedule            = "SCHEDULE"
	TriggerWebhookReceived     = "WEBHOOK_RECEIVED"
	TriggerManual              = "MANUAL"
)

// Workflow status constants
const (
	WorkflowStatusActive   = "ACTIVE"
	WorkflowStatusInactive = "INACTIVE"
	WorkflowStatusDraft    = "DRAFT"
)

// Workflow execution outcome constants
const (
	ExecutionStatusCompleted = "COMPLETED"
	ExecutionStatusPartial   = "PARTIAL"
	ExecutionStatusFailed    = "FAILED"
)

// ScheduleCheckInterval is how often the scheduler polls for due workflows, in seconds.
const ScheduleCheckInterval = 60
