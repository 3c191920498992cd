// internal/errors/errors.go
package appErrors

import "fmt"

// ErrReminderNotFound is a sentinel error
type ErrReminderNotFound struct {
	ReminderID string
}

func (e *ErrReminderNotFound) Error() string {
	return fmt.Sprintf("reminder with ID %s not found", e.ReminderID)
}

// Helper constructor
func NewReminderNotFound(id string) error {
	return &ErrReminderNotFound{ReminderID: id}
}
