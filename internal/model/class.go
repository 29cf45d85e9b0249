package model

import "time"

// Class represents a class group, e.g. "Grade 7 Blue".
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	TeacherID *int      `json:"teacher_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=50"`
	Level     string `json:"level" binding:"required,min=1,max=50"`
	TeacherID *int   `json:"teacher_id"`
}
