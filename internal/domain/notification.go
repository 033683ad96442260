package domain

import (
	"errors"
	"fmt"
)

// Severity grades a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Message  string
	Severity Severity
}

// NotificationFor turns a load or query failure into a message for the user.
func NotificationFor(err error) Notification {
	var loadErr *LoadError
	switch {
	case err == nil:
		return Notification{}
	case errors.Is(err, ErrNoBatches) && errors.As(err, &loadErr):
		return Notification{
			Message:  fmt.Sprintf("No data files are configured for %s.", loadErr.Language),
			Severity: SeverityWarning,
		}
	case errors.As(err, &loadErr):
		return Notification{
			Message:  fmt.Sprintf("Could not load articles for %s: %v", loadErr.Language, loadErr.Err),
			Severity: SeverityError,
		}
	default:
		return Notification{Message: err.Error(), Severity: SeverityError}
	}
}
