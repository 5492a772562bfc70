package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/errors"
)

// ExecuteDocumentAction dispatches UPDATE_DOCUMENT_STATUS and REQUEST_DOCUMENT.
func (as *ActionService) ExecuteDocumentAction(ctx context.Context, actionType string, config map[string]interface{}, execCtx *models.ExecutionContext) (result models.ActionResult) {
	defer as.guard(&result, constants.CategoryDocument, execCtx)

	var cfg models.DocumentConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return models.Fail(fmt.Sprintf("Invalid document action config: %v", err))
	}

	switch constants.ActionType(actionType) {
	case constants.ActionUpdateDocumentStatus:
		return as.executeUpdateDocumentStatus(ctx, &cfg, execCtx)
	case constants.ActionRequestDocument:
		return as.executeRequestDocument(ctx, &cfg, execCtx)
	default:
		return models.Fail(fmt.Sprintf("Unknown document action type: %s", actionType))
	}
}

// executeUpdateDocumentStatus runs in one of two modes: with a documentId it
// updates exactly that document after an ownership check; without one it bulk
// updates every document of the trigger client.
func (as *ActionService) executeUpdateDocumentStatus(ctx context.Context, cfg *models.DocumentConfig, execCtx *models.ExecutionContext) models.ActionResult {
	if !containsString(constants.ValidDocumentStatuses, cfg.Status) {
		return models.Fail(fmt.Sprintf("Invalid document status '%s'. Valid statuses: %s",
			cfg.Status, strings.Join(constants.ValidDocumentStatuses, ", ")))
	}

	if cfg.DocumentID != "" {
		return as.updateSingleDocumentStatus(ctx, cfg, execCtx)
	}
	return as.updateAllDocumentStatuses(ctx, cfg, execCtx)
}

func (as *ActionService) updateSingleDocumentStatus(ctx context.Context, cfg *models.DocumentConfig, execCtx *models.ExecutionContext) models.ActionResult {
	doc, err := as.documents.FindByID(ctx, cfg.DocumentID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load document %s: %v", cfg.DocumentID, err))
	}
	if doc == nil {
		return models.Fail(errors.NewNotFoundError("Document", cfg.DocumentID).Error())
	}
	if doc.ClientID != execCtx.ClientID {
		return models.Fail(errors.NewOwnershipError("Document", doc.ID, execCtx.ClientID).Error())
	}

	if err := as.documents.UpdateStatus(ctx, doc.ID, cfg.Status); err != nil {
		return models.Fail(fmt.Sprintf("Failed to update document status: %v", err))
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeDocumentUpdated,
		fmt.Sprintf("Document '%s' status set to %s via workflow", doc.Name, cfg.Status),
		map[string]interface{}{"documentId": doc.ID, "status": cfg.Status})

	return models.Succeed(fmt.Sprintf("Document status updated to %s", cfg.Status), map[string]interface{}{
		"documentId": doc.ID,
		"status":     cfg.Status,
	})
}

// updateAllDocumentStatuses is a best-effort concurrent fan-out: every
// per-document update runs independently and failures are reported per item
// rather than aborting the batch.
func (as *ActionService) updateAllDocumentStatuses(ctx context.Context, cfg *models.DocumentConfig, execCtx *models.ExecutionContext) models.ActionResult {
	docs, err := as.documents.FindByClientID(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(fmt.Sprintf("Failed to load documents for client %s: %v", execCtx.ClientID, err))
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		updated []string
		failed  = map[string]string{}
	)
	for _, doc := range docs {
		wg.Add(1)
		go func(doc *models.Document) {
			defer wg.Done()
			if err := as.documents.UpdateStatus(ctx, doc.ID, cfg.Status); err != nil {
				mu.Lock()
				failed[doc.ID] = err.Error()
				mu.Unlock()
				return
			}
			mu.Lock()
			updated = append(updated, doc.ID)
			mu.Unlock()
		}(doc)
	}
	wg.Wait()

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeDocumentUpdated,
		fmt.Sprintf("%d document(s) set to %s via workflow", len(updated), cfg.Status),
		map[string]interface{}{"count": len(updated), "documentIds": updated, "status": cfg.Status})

	data := map[string]interface{}{
		"count":       len(updated),
		"documentIds": updated,
		"status":      cfg.Status,
	}
	if len(failed) > 0 {
		data["failed"] = failed
		if len(updated) == 0 {
			return models.ActionResult{
				Success: false,
				Message: fmt.Sprintf("Failed to update all %d document(s)", len(failed)),
				Data:    data,
			}
		}
		return models.Succeed(fmt.Sprintf("Updated %d document(s) to %s (%d failed)", len(updated), cfg.Status, len(failed)), data)
	}
	return models.Succeed(fmt.Sprintf("Updated %d document(s) to %s", len(updated), cfg.Status), data)
}

func (as *ActionService) executeRequestDocument(ctx context.Context, cfg *models.DocumentConfig, execCtx *models.ExecutionContext) models.ActionResult {
	category := strings.ToUpper(cfg.Category)
	if !containsString(constants.ValidDocumentCategories, category) {
		return models.Fail(fmt.Sprintf("Invalid document category '%s'. Valid categories: %s",
			cfg.Category, strings.Join(constants.ValidDocumentCategories, ", ")))
	}

	client, err := as.ResolveClientData(ctx, execCtx.ClientID)
	if err != nil {
		return models.Fail(err.Error())
	}
	pctx := placeholderContext(execCtx, client)

	name := cfg.Name
	if name == "" {
		name = documentNameForCategory(category)
	}

	dueDate, err := resolveDueDate(as.now(), cfg.DueDays, cfg.DueDate)
	if err != nil {
		return models.Fail(err.Error())
	}

	message := cfg.Message
	if message == "" {
		message = fmt.Sprintf("Please upload your %s.", name)
	}
	message = RenderTemplate(message, pctx)

	doc := &models.Document{
		ID:          uuid.NewString(),
		ClientID:    execCtx.ClientID,
		Name:        name,
		Category:    category,
		Status:      constants.DocumentStatusRequested,
		DueDate:     dueDate,
		Message:     message,
		CreatedDate: as.now(),
	}
	if err := as.documents.Create(ctx, doc); err != nil {
		return models.Fail(fmt.Sprintf("Failed to create document request: %v", err))
	}

	// Outside production the request email is not sent; it surfaces as an
	// in-band notification so the dashboard shows what would have gone out.
	simulated := as.environment != constants.EnvProduction
	if simulated {
		notification := &models.Notification{
			ID:          uuid.NewString(),
			RecipientID: execCtx.UserID,
			Title:       fmt.Sprintf("Document requested: %s", name),
			Body:        message,
			Link:        fmt.Sprintf(constants.ClientDetailLinkFormat, execCtx.ClientID),
			CreatedDate: as.now(),
		}
		if err := as.notifications.Create(ctx, notification); err != nil {
			log.Printf("⚠️ Failed to surface document request notification: %v", err)
		}
	} else if client.Email != "" {
		comm := &models.Communication{
			ID:          uuid.NewString(),
			ClientID:    execCtx.ClientID,
			Channel:     constants.ChannelEmail,
			Recipient:   client.Email,
			Subject:     fmt.Sprintf("Document needed: %s", name),
			Body:        message,
			Status:      constants.CommunicationStatusSent,
			CreatedByID: execCtx.UserID,
			CreatedDate: as.now(),
		}
		if err := as.communications.Create(ctx, comm); err != nil {
			log.Printf("⚠️ Failed to record document request email: %v", err)
		}
	}

	as.logActivity(ctx, execCtx.ClientID, execCtx.UserID, constants.ActivityTypeDocumentRequested,
		fmt.Sprintf("Document requested via workflow: %s", name),
		map[string]interface{}{"documentId": doc.ID, "category": category})

	data := map[string]interface{}{
		"documentId": doc.ID,
		"name":       name,
		"category":   category,
		"simulated":  simulated,
	}
	if dueDate != nil {
		data["dueDate"] = dueDate.Format(time.RFC3339)
	}
	return models.Succeed(fmt.Sprintf("Document requested: %s", name), data)
}

// documentNameForCategory derives the default placeholder-document name,
// e.g. INCOME -> "Income Document".
func documentNameForCategory(category string) string {
	if category == "" {
		return "Document"
	}
	return strings.ToUpper(category[:1]) + strings.ToLower(category[1:]) + " Document"
}
