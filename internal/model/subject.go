package model

import "time"

// Subject represents an academic subject. Level distinguishes primary
// from junior/senior secondary offerings of the same subject name.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Code  string `json:"code" binding:"required,min=2,max=50"`
	Level string `json:"level" binding:"required,min=2,max=50"`
}
