package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/mailer"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// NotificationService fans a notification out three ways: it persists
// the in-app record, publishes it on the user's Redis channel for live
// WebSocket delivery, and enqueues an email for the outbound worker.
type NotificationService struct {
	messages *repository.MessageRepository
	users    *repository.UserRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(messages *repository.MessageRepository, users *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		messages: messages,
		users:    users,
		rdb:      rdb,
		log:      log.With().Str("component", "notification_service").Logger(),
	}
}

// Notify creates a notification for one user. Persistence is the only
// hard requirement; live publish and email enqueue are best effort.
func (s *NotificationService) Notify(ctx context.Context, userID int, category, title, body string, email bool) (*model.Notification, error) {
	n := &model.Notification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Category: category,
	}
	if err := s.messages.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}

	s.publish(ctx, n)

	if email {
		if err := s.enqueueEmail(ctx, userID, title, body); err != nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("Email enqueue failed")
		}
	}

	return n, nil
}

// publish pushes the notification on the user's channel so a connected
// WebSocket client sees it immediately.
func (s *NotificationService) publish(ctx context.Context, n *model.Notification) {
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.UserNotifyChannel(n.UserID), raw).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", n.UserID).Msg("Live publish failed")
	}
}

// enqueueEmail pushes an outbound email onto the worker queue.
func (s *NotificationService) enqueueEmail(ctx context.Context, userID int, subject, body string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup recipient: %w", err)
	}

	raw, err := json.Marshal(mailer.Email{
		ToEmail: user.Email,
		ToName:  user.FullName,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.WorkerKey.OutboundEmailQueue, raw).Err()
}

// List retrieves a user's recent notifications.
func (s *NotificationService) List(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.messages.ListNotifications(ctx, userID, limit)
}

// MarkAllRead stamps all of a user's unread notifications.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.messages.MarkNotificationsRead(ctx, userID)
}
