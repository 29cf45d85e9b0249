package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ReminderService runs the daily fee-reminder pass: every past-due
// statement with a positive balance produces one notification (and
// email) to the responsible parent.
type ReminderService struct {
	fees   *FeeService
	notify *NotificationService
	log    zerolog.Logger
}

// NewReminderService creates a new ReminderService.
func NewReminderService(fees *FeeService, notify *NotificationService, log zerolog.Logger) *ReminderService {
	return &ReminderService{
		fees:   fees,
		notify: notify,
		log:    log.With().Str("component", "fee_reminders").Logger(),
	}
}

// SendFeeReminders notifies parents of all overdue statements as of now.
// Returns the number of reminders sent. One failed reminder does not
// stop the rest.
func (s *ReminderService) SendFeeReminders(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.fees.ListOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list overdue statements: %w", err)
	}

	sent := 0
	for _, o := range overdue {
		title := fmt.Sprintf("Fee reminder: %s %s %d", o.FeeType, o.Term, o.Year)
		body := fmt.Sprintf(
			"Dear %s, the %s fee for %s (%s), %s %d is overdue. Outstanding balance: %.2f. Please clear the balance at your earliest convenience.",
			o.ParentName, o.FeeType, o.StudentName, o.AdmissionNo, o.Term, o.Year, o.Balance,
		)

		if _, err := s.notify.Notify(ctx, o.ParentID, "fee_reminder", title, body, true); err != nil {
			s.log.Warn().Err(err).Int("statement_id", o.StatementID).Msg("Reminder failed")
			continue
		}
		sent++
	}

	s.log.Info().Int("overdue", len(overdue)).Int("sent", sent).Msg("Fee reminder pass complete")
	return sent, nil
}
