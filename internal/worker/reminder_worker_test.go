package worker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestReminderWorkerNextRun(t *testing.T) {
	w := NewReminderWorker(nil, 7, zerolog.Nop())

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"before the hour fires today",
			time.Date(2026, 3, 10, 5, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		},
		{
			"exactly at the hour fires tomorrow",
			time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC),
		},
		{
			"after the hour fires tomorrow",
			time.Date(2026, 3, 10, 19, 45, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC),
		},
		{
			"month rollover",
			time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.nextRun(tt.now); !got.Equal(tt.want) {
				t.Errorf("nextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
