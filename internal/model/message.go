package model

import "time"

// Message is a user-to-user message.
type Message struct {
	ID         int        `json:"id"`
	SenderID   int        `json:"sender_id"`
	ReceiverID int        `json:"receiver_id"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SendMessageRequest is the payload for sending a message.
type SendMessageRequest struct {
	ReceiverID int    `json:"receiver_id" binding:"required"`
	Subject    string `json:"subject" binding:"required,min=1,max=255"`
	Body       string `json:"body" binding:"required,min=1"`
}

// Notification is an in-app notification for one user.
type Notification struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Category  string     `json:"category"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
