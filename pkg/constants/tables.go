package constants

// Table names in the CRM schema
const (
	TableClient                = "clients"
	TableTask                  = "tasks"
	TableDocument              = "documents"
	TableNote                  = "notes"
	TableCommunication         = "communications"
	TableCommunicationTemplate = "communication_templates"
	TableNoteTemplate          = "note_templates"
	TableActivity              = "activities"
	TableNotification          = "notifications"
	TableUser                  = "users"
	TableWorkflow              = "workflows"
	TableWorkflowAction        = "workflow_actions"
	TableWorkflowExecution     = "workflow_executions"
)
