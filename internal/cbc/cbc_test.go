package cbc

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		marks float64
		want  Band
	}{
		{100, ExceedingExpectations},
		{85, ExceedingExpectations},
		{80, ExceedingExpectations},
		{79.9, MeetingExpectations},
		{60, MeetingExpectations},
		{59.9, ApproachingExpectations},
		{40, ApproachingExpectations},
		{39.9, BelowExpectations},
		{0, BelowExpectations},
	}
	for _, tt := range tests {
		if got := Classify(tt.marks); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.marks, got, tt.want)
		}
	}
}

// Every value in [0,100] must map to exactly one band: the table is
// exhaustive and contiguous with no gaps.
func TestClassifyExhaustive(t *testing.T) {
	for m := 0.0; m <= 100.0; m += 0.25 {
		switch Classify(m) {
		case ExceedingExpectations, MeetingExpectations, ApproachingExpectations, BelowExpectations:
		default:
			t.Fatalf("Classify(%v) returned unknown band", m)
		}
	}
}
