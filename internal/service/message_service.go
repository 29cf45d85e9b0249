package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/repository"
)

// Messaging errors surfaced to handlers.
var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// MessageService handles user-to-user messaging. Sending a message also
// raises a notification for the recipient.
type MessageService struct {
	messages *repository.MessageRepository
	users    *repository.UserRepository
	notify   *NotificationService
}

// NewMessageService creates a new MessageService.
func NewMessageService(messages *repository.MessageRepository, users *repository.UserRepository, notify *NotificationService) *MessageService {
	return &MessageService{messages: messages, users: users, notify: notify}
}

// Send stores a message and notifies the recipient.
func (s *MessageService) Send(ctx context.Context, senderID int, req *model.SendMessageRequest) (*model.Message, error) {
	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("lookup sender: %w", err)
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecipientNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup recipient: %w", err)
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	_, _ = s.notify.Notify(ctx, req.ReceiverID, "message",
		"New message from "+sender.FullName, req.Subject, false)

	return msg, nil
}

// Inbox retrieves a user's received messages.
func (s *MessageService) Inbox(ctx context.Context, userID int) ([]model.Message, error) {
	return s.messages.ListInbox(ctx, userID)
}

// UnreadCount returns the number of unread messages in a user's inbox.
func (s *MessageService) UnreadCount(ctx context.Context, userID int) (int, error) {
	return s.messages.CountUnread(ctx, userID)
}

// Sent retrieves a user's sent messages.
func (s *MessageService) Sent(ctx context.Context, userID int) ([]model.Message, error) {
	return s.messages.ListSent(ctx, userID)
}

// Read fetches one message and, when the reader is the receiver, stamps
// it read. Only the sender and receiver may read a message.
func (s *MessageService) Read(ctx context.Context, id, readerID int) (*model.Message, error) {
	msg, err := s.messages.GetMessageByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMessageNotFound
	} else if err != nil {
		return nil, err
	}

	if msg.SenderID != readerID && msg.ReceiverID != readerID {
		return nil, ErrMessageNotFound
	}

	if msg.ReceiverID == readerID && msg.ReadAt == nil {
		if err := s.messages.MarkMessageRead(ctx, id, readerID); err != nil {
			return nil, err
		}
	}
	return msg, nil
}
