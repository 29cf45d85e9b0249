// Package cbc maps numeric marks to Competency-Based Curriculum
// achievement bands using the KICD thresholds. This is the single
// canonical threshold table; every grade write goes through Classify.
package cbc

// Band is a CBC achievement band.
type Band string

const (
	ExceedingExpectations   Band = "Exceeding Expectations"
	MeetingExpectations     Band = "Meeting Expectations"
	ApproachingExpectations Band = "Approaching Expectations"
	BelowExpectations       Band = "Below Expectations"
)

// Classify returns the achievement band for marks in [0,100].
// The bands partition the range: >=80 EE, >=60 ME, >=40 AE, else BE.
func Classify(marks float64) Band {
	switch {
	case marks >= 80:
		return ExceedingExpectations
	case marks >= 60:
		return MeetingExpectations
	case marks >= 40:
		return ApproachingExpectations
	default:
		return BelowExpectations
	}
}
