package model

// DashboardSummary is the admin dashboard headline view.
type DashboardSummary struct {
	ActiveStudents  int     `json:"active_students"`
	Teachers        int     `json:"teachers"`
	Parents         int     `json:"parents"`
	Classes         int     `json:"classes"`
	Subjects        int     `json:"subjects"`
	FeesBilled      float64 `json:"fees_billed"`
	FeesCollected   float64 `json:"fees_collected"`
	FeesOutstanding float64 `json:"fees_outstanding"`

	AttendanceToday map[AttendanceStatus]int `json:"attendance_today"`
}
