package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/slackping/slackping-backend/internal/model"
)

type LogRepositoryInterface interface {
	Create(entry *model.ReminderLog) error
	ListByReminder(reminderID string) ([]model.ReminderLog, error)
}

// LogRepository owns the reminder_logs table. Rows are append-only: the
// scheduler writes exactly one per dispatch attempt and never updates or
// deletes them.
type LogRepository struct {
	DB *sql.DB
}

func (r *LogRepository) Create(entry *model.ReminderLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now().UTC()
	}

	query := `
        INSERT INTO reminder_logs
        (id, reminder_id, user_id, channel_id, status, slack_message_ts, error_message, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.DB.Exec(query,
		entry.ID, entry.ReminderID, entry.UserID, entry.ChannelID,
		entry.Status, entry.SlackMessageTS, entry.ErrorMessage, entry.SentAt,
	)
	return err
}

// ListByReminder returns the attempt history for one reminder, newest first.
func (r *LogRepository) ListByReminder(reminderID string) ([]model.ReminderLog, error) {
	query := `
        SELECT id, reminder_id, user_id, channel_id, status, slack_message_ts, error_message, sent_at
        FROM reminder_logs
        WHERE reminder_id = $1
        ORDER BY sent_at DESC
    `
	rows, err := r.DB.Query(query, reminderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.ReminderLog{}
	for rows.Next() {
		var entry model.ReminderLog
		var ts, errMsg sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.ReminderID, &entry.UserID, &entry.ChannelID,
			&entry.Status, &ts, &errMsg, &entry.SentAt,
		); err != nil {
			return nil, err
		}
		entry.SlackMessageTS = ts.String
		entry.ErrorMessage = errMsg.String
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

var _ LogRepositoryInterface = (*LogRepository)(nil)
