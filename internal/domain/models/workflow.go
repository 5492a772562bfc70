package models

import "time"

// Workflow pairs a trigger, an optional condition expression and an ordered
// action list. Conditions are expr-lang expressions evaluated against a
// {client, trigger} environment.
type Workflow struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Status           string           `json:"status"`
	TriggerType      string           `json:"triggerType"`
	TriggerCondition string           `json:"triggerCondition"`
	Schedule         string           `json:"schedule"`
	LastRunAt        *time.Time       `json:"lastRunAt"`
	Actions          []WorkflowAction `json:"actions"`
	CreatedDate      time.Time        `json:"createdDate"`
}

// WorkflowAction is one ordered step of a workflow. Config is the raw
// persisted form; dispatchers decode it into the typed per-category config.
type WorkflowAction struct {
	ID         string                 `json:"id"`
	WorkflowID string                 `json:"workflowId"`
	Type       string                 `json:"type"`
	Config     map[string]interface{} `json:"config"`
	StepOrder  int                    `json:"stepOrder"`
}

// WorkflowExecution records one run of a workflow: which event triggered it
// and the per-action results.
type WorkflowExecution struct {
	ID         string         `json:"id"`
	WorkflowID string         `json:"workflowId"`
	ClientID   string         `json:"clientId"`
	Status     string         `json:"status"`
	Results    []ActionResult `json:"results"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}

// ExecutionContext is the immutable trigger-derived input threaded unchanged
// through every executor of a single workflow run.
type ExecutionContext struct {
	ClientID    string                 `json:"clientId"`
	TriggerType string                 `json:"triggerType"`
	TriggerData map[string]interface{} `json:"triggerData"`
	UserID      string                 `json:"userId"`
}

// PlaceholderContext combines the execution context with the freshly fetched,
// decrypted client snapshot for placeholder substitution.
type PlaceholderContext struct {
	ExecutionContext
	Client ClientData
}

// ActionResult is the uniform return contract of every executor. Executors
// never propagate errors past their boundary; internal failures become
// Success=false with a human-readable message.
type ActionResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Succeed builds a successful ActionResult.
func Succeed(message string, data map[string]interface{}) ActionResult {
	return ActionResult{Success: true, Message: message, Data: data}
}

// Fail builds a failed ActionResult.
func Fail(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
