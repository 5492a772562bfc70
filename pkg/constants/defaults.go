package constants

import "time"

// Webhook execution defaults
const (
	WebhookDefaultMethod     = "POST"
	WebhookDefaultTimeout    = 30 * time.Second
	WebhookDefaultRetryDelay = 5 * time.Second
	WebhookDefaultMaxRetries = 3
	WebhookUserAgent         = "MLODash-Workflow/1.0"

	// WebhookBodyLimit bounds response bodies stored in results and activities.
	WebhookBodyLimit = 1000
)

// Notification defaults
const (
	NotificationDefaultTitle = "Workflow notification"
	ClientDetailLinkFormat   = "/clients/%s"
)

// Environment names
const (
	EnvProduction = "production"
)
