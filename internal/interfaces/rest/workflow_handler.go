package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlodash/backend/internal/application/services"
	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

type WorkflowHandler struct {
	executor *services.WorkflowExecutor
}

func NewWorkflowHandler(executor *services.WorkflowExecutor) *WorkflowHandler {
	return &WorkflowHandler{executor: executor}
}

type executeWorkflowRequest struct {
	ClientID    string                 `json:"clientId"`
	TriggerData map[string]interface{} `json:"triggerData"`
}

// ExecuteWorkflow handles POST /api/workflows/:workflowId/execute — the
// dashboard test-run. The workflow runs regardless of its ACTIVE/INACTIVE
// status so drafts can be exercised before activation.
func (h *WorkflowHandler) ExecuteWorkflow(c *gin.Context) {
	workflowID := c.Param("workflowId")

	var req executeWorkflowRequest
	if !BindJSON(c, &req) {
		return
	}
	if req.ClientID == "" {
		RespondAppError(c, errors.NewValidationError("clientId", "clientId is required"))
		return
	}

	execCtx := &models.ExecutionContext{
		ClientID:    req.ClientID,
		TriggerType: constants.TriggerManual,
		TriggerData: req.TriggerData,
		UserID:      UserIDFromContext(c),
	}

	execution, err := h.executor.ExecuteWorkflowByID(c.Request.Context(), workflowID, execCtx)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"execution": execution})
}

type triggerEventRequest struct {
	TriggerType string                 `json:"triggerType"`
	ClientID    string                 `json:"clientId"`
	TriggerData map[string]interface{} `json:"triggerData"`
}

// TriggerEvent handles POST /api/events — an incoming CRM event (including
// WEBHOOK_RECEIVED payloads relayed by the gateway). Every active workflow
// registered for the trigger type is matched and run.
func (h *WorkflowHandler) TriggerEvent(c *gin.Context) {
	var req triggerEventRequest
	if !BindJSON(c, &req) {
		return
	}
	if req.TriggerType == "" {
		RespondAppError(c, errors.NewValidationError("triggerType", "triggerType is required"))
		return
	}

	execCtx := &models.ExecutionContext{
		ClientID:    req.ClientID,
		TriggerType: req.TriggerType,
		TriggerData: req.TriggerData,
		UserID:      UserIDFromContext(c),
	}

	executions, err := h.executor.HandleEvent(c.Request.Context(), execCtx)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"executions": executions})
}
