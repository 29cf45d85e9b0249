package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shulehub/shule-backend/internal/model"
)

// MessageRepository handles user messages and in-app notifications.
type MessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// CreateMessage stores a new message.
func (r *MessageRepository) CreateMessage(ctx context.Context, m *model.Message) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, subject, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.SenderID, m.ReceiverID, m.Subject, m.Body,
	).Scan(&m.ID, &m.CreatedAt)
}

// GetMessageByID retrieves one message.
func (r *MessageRepository) GetMessageByID(ctx context.Context, id int) (*model.Message, error) {
	m := &model.Message{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, sender_id, receiver_id, subject, body, read_at, created_at
		 FROM messages WHERE id = $1`, id,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Body, &m.ReadAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListInbox retrieves a user's received messages, newest first.
func (r *MessageRepository) ListInbox(ctx context.Context, userID int) ([]model.Message, error) {
	return r.listMessages(ctx,
		`SELECT id, sender_id, receiver_id, subject, body, read_at, created_at
		 FROM messages WHERE receiver_id = $1 ORDER BY created_at DESC`, userID)
}

// ListSent retrieves a user's sent messages, newest first.
func (r *MessageRepository) ListSent(ctx context.Context, userID int) ([]model.Message, error) {
	return r.listMessages(ctx,
		`SELECT id, sender_id, receiver_id, subject, body, read_at, created_at
		 FROM messages WHERE sender_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *MessageRepository) listMessages(ctx context.Context, query string, arg any) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject,
			&m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountUnread returns how many received messages are still unread.
func (r *MessageRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read_at IS NULL`, userID,
	).Scan(&n)
	return n, err
}

// MarkMessageRead stamps a message as read by its receiver.
func (r *MessageRepository) MarkMessageRead(ctx context.Context, id, receiverID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET read_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND receiver_id = $2 AND read_at IS NULL`, id, receiverID)
	return err
}

// CreateNotification stores an in-app notification.
func (r *MessageRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, body, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.UserID, n.Title, n.Body, n.Category,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListNotifications retrieves a user's notifications, newest first.
func (r *MessageRepository) ListNotifications(ctx context.Context, userID int, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, body, category, read_at, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body,
			&n.Category, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationsRead stamps all of a user's unread notifications.
func (r *MessageRepository) MarkNotificationsRead(ctx context.Context, userID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP
		 WHERE user_id = $1 AND read_at IS NULL`, userID)
	return err
}
