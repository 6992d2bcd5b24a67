package domain

import "time"

type CommandContext struct {
	SessionID string
	Locale    Locale
	Message   string
	Timestamp time.Time
}

func NewCommandContext(sessionID string, locale Locale, message string) *CommandContext {
	return &CommandContext{
		SessionID: sessionID,
		Locale:    locale,
		Message:   message,
		Timestamp: time.Now(),
	}
}
