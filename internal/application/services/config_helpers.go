package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mlodash/backend/pkg/errors"
)

// decodeConfig converts the raw persisted action config (a JSON object) into
// the typed config struct for the dispatcher's category. Unknown keys are
// ignored so that configs written by newer builder versions still decode.
func decodeConfig(raw map[string]interface{}, out interface{}) error {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config is not serializable: %w", err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("config does not match expected shape: %w", err)
	}
	return nil
}

// dueDateLayouts are the accepted formats for literal due dates in configs.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// resolveDueDate computes a due date from either a relative day offset or a
// literal date string. dueDays wins when both are present. A nil result with a
// nil error means no due date was configured.
func resolveDueDate(now time.Time, dueDays *int, dueDate string) (*time.Time, error) {
	if dueDays != nil {
		t := now.AddDate(0, 0, *dueDays)
		return &t, nil
	}
	if dueDate != "" {
		for _, layout := range dueDateLayouts {
			if t, err := time.Parse(layout, dueDate); err == nil {
				return &t, nil
			}
		}
		return nil, errors.NewValidationError("dueDate", fmt.Sprintf("unrecognized date format: %s", dueDate))
	}
	return nil, nil
}

// containsString reports whether value is present in list.
func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// truncate bounds a string to limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
