package models

// Typed action configurations, one per dispatcher category. Workflow actions
// persist their config as a JSON object; dispatchers decode it into the struct
// for their category before executing.

// CommunicationConfig configures SEND_EMAIL, SEND_SMS and GENERATE_LETTER.
// When TemplateID is set the template supplies subject/body, falling back to
// the config's own fields where the template leaves them blank.
type CommunicationConfig struct {
	TemplateID string `json:"templateId"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// TaskConfig configures CREATE_TASK, COMPLETE_TASK and ASSIGN_TASK.
type TaskConfig struct {
	Text           string `json:"text"`
	Description    string `json:"description"`
	Priority       string `json:"priority"`
	DueDays        *int   `json:"dueDays"`
	DueDate        string `json:"dueDate"`
	AssignedToID   string `json:"assignedToId"`
	AssignedToRole string `json:"assignedToRole"`
	TaskID         string `json:"taskId"`
}

// ClientConfig configures UPDATE_CLIENT_STATUS, ADD_TAG, REMOVE_TAG and
// ASSIGN_CLIENT.
type ClientConfig struct {
	Status       string   `json:"status"`
	AddTags      []string `json:"addTags"`
	RemoveTags   []string `json:"removeTags"`
	AssignedToID string   `json:"assignedToId"`
}

// DocumentConfig configures UPDATE_DOCUMENT_STATUS and REQUEST_DOCUMENT.
// For status updates, an empty DocumentID selects the bulk mode covering every
// document of the trigger client.
type DocumentConfig struct {
	Status     string `json:"status"`
	DocumentID string `json:"documentId"`
	Category   string `json:"category"`
	Name       string `json:"name"`
	DueDays    *int   `json:"dueDays"`
	DueDate    string `json:"dueDate"`
	Message    string `json:"message"`
}

// NoteConfig configures CREATE_NOTE.
type NoteConfig struct {
	Text       string   `json:"text"`
	TemplateID string   `json:"templateId"`
	Tags       []string `json:"tags"`
	IsPinned   bool     `json:"isPinned"`
}

// NotificationConfig configures SEND_NOTIFICATION.
type NotificationConfig struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	ToUserID string `json:"toUserId"`
	ToRole   string `json:"toRole"`
	Link     string `json:"link"`
}

// ActivityConfig configures LOG_ACTIVITY.
type ActivityConfig struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// WebhookConfig configures CALL_WEBHOOK. Placeholder substitution applies to
// header values and to BodyTemplate, which must remain valid JSON afterwards.
type WebhookConfig struct {
	URL               string            `json:"url"`
	Method            string            `json:"method"`
	Headers           map[string]string `json:"headers"`
	BodyTemplate      string            `json:"bodyTemplate"`
	RetryOnFailure    *bool             `json:"retryOnFailure"`
	MaxRetries        *int              `json:"maxRetries"`
	RetryDelaySeconds *int              `json:"retryDelaySeconds"`
	TimeoutSeconds    *int              `json:"timeoutSeconds"`
	SigningSecret     string            `json:"signingSecret"`
}
