// internal/model/reminder.go
package model

import "time"

// Reminder status lifecycle. A reminder is created active, briefly claimed
// as processing by the dispatcher, and ends up sent or failed. Sent and
// failed are terminal: the scheduler never picks them up again.
const (
	StatusActive     = "active"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusFailed     = "failed"
)

type Reminder struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Title        string     `db:"title" json:"title"`
	Message      string     `db:"message" json:"message"`
	ConnectionID string     `db:"connection_id" json:"connection_id"`
	ChannelID    string     `db:"channel_id" json:"channel_id"`
	ChannelName  string     `db:"channel_name" json:"channel_name,omitempty"`
	ScheduledFor time.Time  `db:"scheduled_for" json:"scheduled_for"`
	Timezone     string     `db:"timezone" json:"timezone,omitempty"`
	Recurrence   string     `db:"recurrence" json:"recurrence"`
	Status       string     `db:"status" json:"status"`
	LastError    string     `db:"last_error" json:"last_error,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// DueReminder is one row of the due-item scan: the reminder joined with its
// connection. Connection is nil when the referenced connection has been
// deleted or deactivated; the dispatcher fails such rows explicitly instead
// of skipping them forever.
type DueReminder struct {
	Reminder
	Connection *SlackConnection
}
