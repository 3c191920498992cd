// internal/service/recorder.go
package service

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/model"
	"github.com/slackping/slackping-backend/internal/slack"
)

// OutcomeRecorderInterface persists the result of one dispatch attempt:
// one status transition on the reminder plus one append-only log row.
type OutcomeRecorderInterface interface {
	Record(rem *model.Reminder, outcome slack.Outcome, at time.Time) error
}

// Recorder writes both sides in a single transaction so the audit log and
// the reminder status cannot drift apart. If the transaction fails, the
// status update is retried on its own: the status field is what decides
// whether the reminder is eligible for the next scan, so it must be
// attempted even when logging is broken.
type Recorder struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func (r *Recorder) Record(rem *model.Reminder, outcome slack.Outcome, at time.Time) error {
	status := model.StatusFailed
	if outcome.Sent {
		status = model.StatusSent
	}

	err := r.recordTx(rem, outcome, status, at)
	if err == nil {
		return nil
	}

	// Authoritative fallback: get the reminder out of 'processing' even if
	// the log insert is failing, and surface the log gap separately.
	r.Log.Error().Err(err).
		Str("reminder_id", rem.ID).
		Msg("outcome transaction failed, retrying status update alone")

	if _, updErr := r.DB.Exec(
		`UPDATE reminders SET status=$1, last_error=$2, updated_at=NOW() WHERE id=$3`,
		status, outcome.Reason, rem.ID,
	); updErr != nil {
		r.Log.Error().Err(updErr).
			Str("reminder_id", rem.ID).
			Msg("fallback status update failed")
	}

	return err
}

func (r *Recorder) recordTx(rem *model.Reminder, outcome slack.Outcome, status string, at time.Time) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE reminders SET status=$1, last_error=$2, updated_at=$3 WHERE id=$4`,
		status, outcome.Reason, at, rem.ID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO reminder_logs
         (id, reminder_id, user_id, channel_id, status, slack_message_ts, error_message, sent_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(), rem.ID, rem.UserID, rem.ChannelID,
		status, outcome.MessageTS, outcome.Reason, at,
	); err != nil {
		return err
	}

	return tx.Commit()
}

var _ OutcomeRecorderInterface = (*Recorder)(nil)
