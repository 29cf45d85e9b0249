package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/mailer"
)

const (
	emailPollTimeout = 1 * time.Second
	emailSendTimeout = 15 * time.Second
	emailMaxAttempts = 3
)

// NotifyWorker drains the outbound email queue and delivers each message
// through the configured Sender. Failed sends are requeued with an
// attempt counter; after emailMaxAttempts the message is dropped.
type NotifyWorker struct {
	rdb    *redis.Client
	sender mailer.Sender
	log    zerolog.Logger
}

// NewNotifyWorker creates a NotifyWorker.
func NewNotifyWorker(rdb *redis.Client, sender mailer.Sender, log zerolog.Logger) *NotifyWorker {
	return &NotifyWorker{
		rdb:    rdb,
		sender: sender,
		log:    log.With().Str("component", "notify_worker").Logger(),
	}
}

type emailEnvelope struct {
	mailer.Email
	Attempts int `json:"attempts,omitempty"`
}

// Start runs the worker loop until the context is canceled.
func (w *NotifyWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotifyWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("NotifyWorker stopped")
			return

		default:
			item, err := w.rdb.BLPop(ctx, emailPollTimeout, config.WorkerKey.OutboundEmailQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			var env emailEnvelope
			if err := json.Unmarshal([]byte(item[1]), &env); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.deliver(ctx, env)
		}
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, env emailEnvelope) {
	sendCtx, cancel := context.WithTimeout(ctx, emailSendTimeout)
	defer cancel()

	if err := w.sender.Send(sendCtx, env.Email); err != nil {
		env.Attempts++
		if env.Attempts >= emailMaxAttempts {
			w.log.Error().Err(err).Str("to", env.ToEmail).Msg("Email dropped after max attempts")
			return
		}

		w.log.Warn().Err(err).Str("to", env.ToEmail).Int("attempts", env.Attempts).Msg("Send failed, requeueing")
		raw, _ := json.Marshal(env)
		w.rdb.RPush(ctx, config.WorkerKey.OutboundEmailQueue, raw)
		return
	}

	w.log.Info().Str("to", env.ToEmail).Str("subject", env.Subject).Msg("Email delivered")
}
