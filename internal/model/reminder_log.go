// internal/model/reminder_log.go
package model

import "time"

// ReminderLog is the append-only audit record: exactly one row per dispatch
// attempt, success or failure. The scheduler never updates or deletes these.
type ReminderLog struct {
	ID             string    `db:"id" json:"id"`
	ReminderID     string    `db:"reminder_id" json:"reminder_id"`
	UserID         string    `db:"user_id" json:"user_id"`
	ChannelID      string    `db:"channel_id" json:"channel_id"`
	Status         string    `db:"status" json:"status"` // sent, failed
	SlackMessageTS string    `db:"slack_message_ts" json:"slack_message_ts,omitempty"`
	ErrorMessage   string    `db:"error_message" json:"error_message,omitempty"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}
