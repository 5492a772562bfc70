package constants

// Placeholder tokens substituted by the template renderer. Tokens outside this
// set are left verbatim in the rendered text.
const (
	PlaceholderDate         = "{{date}}"
	PlaceholderTime         = "{{time}}"
	PlaceholderTriggerType  = "{{trigger_type}}"
	PlaceholderClientName   = "{{client_name}}"
	PlaceholderClientEmail  = "{{client_email}}"
	PlaceholderClientPhone  = "{{client_phone}}"
	PlaceholderClientStatus = "{{client_status}}"
)

// Display formats for the date/time placeholders
const (
	PlaceholderDateFormat = "January 2, 2006"
	PlaceholderTimeFormat = "3:04 PM"
)
