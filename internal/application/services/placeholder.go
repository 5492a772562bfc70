package services

import (
	"strings"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

// RenderTemplate substitutes the fixed placeholder set into a text template.
// Every occurrence is replaced; placeholders whose context value is absent
// render as empty string; tokens outside the fixed set are left verbatim.
func RenderTemplate(template string, pctx *models.PlaceholderContext) string {
	if template == "" || !strings.Contains(template, "{{") {
		return template
	}

	now := time.Now()
	replacer := strings.NewReplacer(
		constants.PlaceholderDate, now.Format(constants.PlaceholderDateFormat),
		constants.PlaceholderTime, now.Format(constants.PlaceholderTimeFormat),
		constants.PlaceholderTriggerType, pctx.TriggerType,
		constants.PlaceholderClientName, pctx.Client.Name,
		constants.PlaceholderClientEmail, pctx.Client.Email,
		constants.PlaceholderClientPhone, pctx.Client.Phone,
		constants.PlaceholderClientStatus, pctx.Client.Status,
	)
	return replacer.Replace(template)
}
