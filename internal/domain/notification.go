package domain

// Severity of a user-facing notification; values match the dialog icons
// used by the page.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Modal notification shown to the user.
type Notification struct {
	Severity Severity
	Title    string
	Message  string
}

func Warning(title, message string) Notification {
	return Notification{Severity: SeverityWarning, Title: title, Message: message}
}

func Error(title, message string) Notification {
	return Notification{Severity: SeverityError, Title: title, Message: message}
}

func Info(title, message string) Notification {
	return Notification{Severity: SeverityInfo, Title: title, Message: message}
}
