package models

import "strings"

// ValidationError collects field-level rule violations for a payload.
type ValidationError struct {
	Fields   []string `json:"fields"`
	Messages []string `json:"messages"`
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, field)
	e.Messages = append(e.Messages, message)
}

// Err returns nil when no violation was recorded so callers can `return v.Err()`.
func (e *ValidationError) Err() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
