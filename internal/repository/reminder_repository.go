package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/slackping/slackping-backend/internal/errors"
	"github.com/slackping/slackping-backend/internal/model"
)

type ReminderRepositoryInterface interface {
	// Due-item scan
	ListDue(now time.Time) ([]*model.DueReminder, error)

	// Dispatch lifecycle
	Claim(id string) (bool, error)
	UpdateStatus(id, status, lastError string) error

	// Recurrence clone + lookups
	Create(r *model.Reminder) error
	GetByID(id string) (*model.Reminder, error)
}

type ReminderRepository struct {
	DB *sql.DB
}

// ListDue returns every active reminder whose scheduled time has been
// reached, each joined with its Slack connection. The join is a LEFT JOIN on
// purpose: a reminder whose connection row is gone still comes back, with
// Connection nil, so the dispatcher can fail it explicitly instead of losing
// it silently. Inactive connections are returned with IsActive=false for the
// same reason.
func (r *ReminderRepository) ListDue(now time.Time) ([]*model.DueReminder, error) {
	query := `
        SELECT rem.id, rem.user_id, rem.title, rem.message,
               rem.connection_id, rem.channel_id, rem.channel_name,
               rem.scheduled_for, rem.timezone, rem.recurrence,
               rem.status, rem.last_error, rem.created_at, rem.updated_at,
               conn.id, conn.user_id, conn.team_id, conn.team_name,
               conn.bot_token, conn.is_active, conn.created_at
        FROM reminders rem
        LEFT JOIN slack_connections conn ON conn.id = rem.connection_id
        WHERE rem.status = 'active' AND rem.scheduled_for <= $1
        ORDER BY rem.scheduled_for ASC
    `
	rows, err := r.DB.Query(query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := []*model.DueReminder{}
	for rows.Next() {
		d := &model.DueReminder{}
		var channelName, timezone, lastError sql.NullString
		var updatedAt sql.NullTime
		var connID, connUserID, teamID, teamName, botToken sql.NullString
		var connActive sql.NullBool
		var connCreatedAt sql.NullTime

		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Message,
			&d.ConnectionID, &d.ChannelID, &channelName,
			&d.ScheduledFor, &timezone, &d.Recurrence,
			&d.Status, &lastError, &d.CreatedAt, &updatedAt,
			&connID, &connUserID, &teamID, &teamName,
			&botToken, &connActive, &connCreatedAt,
		); err != nil {
			return nil, err
		}

		d.ChannelName = channelName.String
		d.Timezone = timezone.String
		d.LastError = lastError.String
		if updatedAt.Valid {
			d.UpdatedAt = &updatedAt.Time
		}
		if connID.Valid {
			d.Connection = &model.SlackConnection{
				ID:        connID.String,
				UserID:    connUserID.String,
				TeamID:    teamID.String,
				TeamName:  teamName.String,
				BotToken:  botToken.String,
				IsActive:  connActive.Bool,
				CreatedAt: connCreatedAt.Time,
			}
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// Claim flips a reminder from active to processing, but only if it is still
// active. A false return means another scheduler instance got there first
// and this one must skip the item. This is the lease that keeps overlapping
// runs from double-sending.
func (r *ReminderRepository) Claim(id string) (bool, error) {
	query := `UPDATE reminders SET status='processing', updated_at=NOW() WHERE id=$1 AND status='active'`
	res, err := r.DB.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *ReminderRepository) UpdateStatus(id, status, lastError string) error {
	query := `UPDATE reminders SET status=$1, last_error=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

// Create inserts a new reminder. Used by the dispatcher to clone the next
// occurrence of a recurring reminder: the finished row stays terminal and a
// fresh active row carries the schedule forward.
func (r *ReminderRepository) Create(rem *model.Reminder) error {
	if rem.ID == "" {
		rem.ID = uuid.New().String()
	}
	if rem.Status == "" {
		rem.Status = model.StatusActive
	}
	rem.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO reminders
        (id, user_id, title, message, connection_id, channel_id, channel_name,
         scheduled_for, timezone, recurrence, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.DB.Exec(query,
		rem.ID, rem.UserID, rem.Title, rem.Message,
		rem.ConnectionID, rem.ChannelID, rem.ChannelName,
		rem.ScheduledFor, rem.Timezone, rem.Recurrence,
		rem.Status, rem.CreatedAt,
	)
	return err
}

func (r *ReminderRepository) GetByID(id string) (*model.Reminder, error) {
	query := `
        SELECT id, user_id, title, message, connection_id, channel_id, channel_name,
               scheduled_for, timezone, recurrence, status, last_error, created_at, updated_at
        FROM reminders WHERE id=$1
    `
	var rem model.Reminder
	var channelName, timezone, lastError sql.NullString
	var updatedAt sql.NullTime
	err := r.DB.QueryRow(query, id).Scan(
		&rem.ID, &rem.UserID, &rem.Title, &rem.Message,
		&rem.ConnectionID, &rem.ChannelID, &channelName,
		&rem.ScheduledFor, &timezone, &rem.Recurrence,
		&rem.Status, &lastError, &rem.CreatedAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewReminderNotFound(id)
		}
		return nil, err
	}
	rem.ChannelName = channelName.String
	rem.Timezone = timezone.String
	rem.LastError = lastError.String
	if updatedAt.Valid {
		rem.UpdatedAt = &updatedAt.Time
	}
	return &rem, nil
}

var _ ReminderRepositoryInterface = (*ReminderRepository)(nil)
