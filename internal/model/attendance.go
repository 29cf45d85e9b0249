package model

import "time"

// AttendanceStatus enumerates daily attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance is one student's attendance record for one day.
// (StudentID, Date) is unique.
type Attendance struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// MarkAttendanceRequest marks one class for one day in a single call.
type MarkAttendanceRequest struct {
	ClassID int               `json:"class_id" binding:"required"`
	Date    string            `json:"date" binding:"required,datetime=2006-01-02"`
	Entries []AttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// AttendanceEntry is one student's status within a class-day marking.
type AttendanceEntry struct {
	StudentID int              `json:"student_id" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
}
