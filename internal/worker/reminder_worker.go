package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/service"
)

// ReminderWorker triggers the daily fee-reminder pass once per day at
// the configured local hour.
type ReminderWorker struct {
	reminders *service.ReminderService
	hour      int
	log       zerolog.Logger
}

// NewReminderWorker creates a ReminderWorker firing at the given hour
// (0-23, local time).
func NewReminderWorker(reminders *service.ReminderService, hour int, log zerolog.Logger) *ReminderWorker {
	return &ReminderWorker{
		reminders: reminders,
		hour:      hour,
		log:       log.With().Str("component", "reminder_worker").Logger(),
	}
}

// Start runs the scheduling loop until the context is canceled.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.log.Info().Int("hour", w.hour).Msg("ReminderWorker started")

	for {
		next := w.nextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info().Msg("ReminderWorker stopped")
			return

		case now := <-timer.C:
			sent, err := w.reminders.SendFeeReminders(ctx, now)
			if err != nil && ctx.Err() == nil {
				w.log.Error().Err(err).Msg("Reminder pass failed")
				continue
			}
			w.log.Info().Int("sent", sent).Msg("Reminder pass done")
		}
	}
}

// nextRun returns the next occurrence of the configured hour after now.
func (w *ReminderWorker) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
