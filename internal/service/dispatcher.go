// internal/service/dispatcher.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/events"
	"github.com/slackping/slackping-backend/internal/model"
	"github.com/slackping/slackping-backend/internal/recurrence"
	"github.com/slackping/slackping-backend/internal/repository"
	"github.com/slackping/slackping-backend/internal/slack"
)

const (
	defaultConcurrency     = 5
	defaultDeliveryTimeout = 10 * time.Second
)

// ReasonConnectionUnavailable is recorded when a reminder's connection is
// missing or deactivated and the delivery adapter is never invoked.
const ReasonConnectionUnavailable = "connection unavailable"

// ItemResult is one reminder's outcome within a run.
type ItemResult struct {
	ReminderID string `json:"reminderId"`
	Status     string `json:"status"`
	Channel    string `json:"channel,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RunSummary is the result of one full dispatch pass. Per-item failures do
// not make the run unsuccessful; only a failed due-item scan does, and that
// surfaces as an error from Run instead.
type RunSummary struct {
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// Dispatcher runs one dispatch pass over all due reminders. All
// collaborators are injected so tests can substitute fakes.
type Dispatcher struct {
	ReminderRepo repository.ReminderRepositoryInterface
	Deliverer    slack.Deliverer
	Recorder     OutcomeRecorderInterface
	Events       events.Publisher
	Log          zerolog.Logger

	Concurrency     int
	DeliveryTimeout time.Duration

	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

// Run executes one pass: scan due reminders, dispatch each through a bounded
// worker pool, and return the aggregate summary. A storage error during the
// scan aborts the run and is returned; everything after the scan is isolated
// per item — one bad reminder never stops the batch.
func (d *Dispatcher) Run(ctx context.Context) (*RunSummary, error) {
	now := d.now().UTC()

	due, err := d.ReminderRepo.ListDue(now)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{Results: []ItemResult{}}
	if len(due) == 0 {
		return summary, nil
	}

	d.Log.Info().Int("due", len(due)).Msg("dispatching due reminders")

	workers := d.Concurrency
	if workers < 1 {
		workers = defaultConcurrency
	}
	if workers > len(due) {
		workers = len(due)
	}

	jobs := make(chan *model.DueReminder)
	results := make(chan *ItemResult, len(due))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- d.processItem(ctx, item, now)
			}
		}()
	}

	for _, item := range due {
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	close(results)

	for res := range results {
		if res == nil {
			continue // claimed by another instance, or claim errored
		}
		summary.Results = append(summary.Results, *res)
		if res.Status == model.StatusSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	d.Log.Info().
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("dispatch run completed")

	return summary, nil
}

// processItem drives one reminder through its status transition. Returns
// nil when the item was skipped without being touched (lost the claim race).
// Panics are contained here so a single broken item cannot take down the
// worker pool.
func (d *Dispatcher) processItem(ctx context.Context, item *model.DueReminder, now time.Time) (res *ItemResult) {
	log := d.Log.With().
		Str("reminder_id", item.ID).
		Str("channel", item.ChannelID).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("panic while processing reminder")
			res = &ItemResult{
				ReminderID: item.ID,
				Status:     model.StatusFailed,
				Error:      "internal error",
			}
		}
	}()

	claimed, err := d.ReminderRepo.Claim(item.ID)
	if err != nil {
		log.Error().Err(err).Msg("claim failed, reminder stays active for next run")
		return nil
	}
	if !claimed {
		log.Debug().Msg("reminder already claimed by another run")
		return nil
	}

	outcome := d.deliver(ctx, item, log)

	if err := d.Recorder.Record(&item.Reminder, outcome, now); err != nil {
		// Outcome still counts in the summary even when persistence is
		// partially broken; the recorder has already logged the details.
		log.Error().Err(err).Msg("failed to record outcome")
	}

	d.publishOutcome(item, outcome, now, log)

	if outcome.Sent {
		d.scheduleNext(item, log)
		return &ItemResult{
			ReminderID: item.ID,
			Status:     model.StatusSent,
			Channel:    item.ChannelID,
		}
	}

	log.Warn().Str("reason", outcome.Reason).Msg("reminder failed")
	return &ItemResult{
		ReminderID: item.ID,
		Status:     model.StatusFailed,
		Error:      outcome.Reason,
	}
}

func (d *Dispatcher) deliver(ctx context.Context, item *model.DueReminder, log zerolog.Logger) slack.Outcome {
	if item.Connection == nil || !item.Connection.IsActive {
		// Never invoke the adapter without a usable credential.
		return slack.Failure(ReasonConnectionUnavailable)
	}

	timeout := d.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info().Msg("sending reminder")
	return d.Deliverer.Deliver(callCtx, item.Connection.BotToken, item.ChannelID, item.Title, item.Message)
}

// scheduleNext clones a recurring reminder into its next occurrence. The
// finished row stays terminal; a fresh active row keeps the full audit
// history per occurrence. Best-effort: an insert failure never rolls back
// the already-recorded send.
func (d *Dispatcher) scheduleNext(item *model.DueReminder, log zerolog.Logger) {
	if !recurrence.IsRecurring(item.Recurrence) {
		return
	}

	next := recurrence.Next(item.ScheduledFor, item.Recurrence, item.Timezone)
	if next == nil {
		return
	}

	clone := &model.Reminder{
		UserID:       item.UserID,
		Title:        item.Title,
		Message:      item.Message,
		ConnectionID: item.ConnectionID,
		ChannelID:    item.ChannelID,
		ChannelName:  item.ChannelName,
		ScheduledFor: *next,
		Timezone:     item.Timezone,
		Recurrence:   item.Recurrence,
		Status:       model.StatusActive,
	}
	if err := d.ReminderRepo.Create(clone); err != nil {
		log.Error().Err(err).
			Time("next_occurrence", *next).
			Msg("failed to create next occurrence")
		return
	}

	log.Info().
		Str("next_id", clone.ID).
		Time("next_occurrence", *next).
		Msg("scheduled next occurrence")
}

func (d *Dispatcher) publishOutcome(item *model.DueReminder, outcome slack.Outcome, now time.Time, log zerolog.Logger) {
	if d.Events == nil {
		return
	}

	status := model.StatusFailed
	if outcome.Sent {
		status = model.StatusSent
	}
	event := events.OutcomeEvent{
		ReminderID:     item.ID,
		UserID:         item.UserID,
		ChannelID:      item.ChannelID,
		Status:         status,
		SlackMessageTS: outcome.MessageTS,
		Error:          outcome.Reason,
		OccurredAt:     now,
	}
	if err := d.Events.Publish(event); err != nil {
		log.Warn().Err(err).Msg("failed to publish outcome event")
	}
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
