package handler

import (
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("parseDateRange: %v", err)
	}
	if !from.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v", to)
	}

	if _, _, err := parseDateRange("01/01/2026", ""); err == nil {
		t.Error("expected error for malformed from")
	}
	if _, _, err := parseDateRange("", "soon"); err == nil {
		t.Error("expected error for malformed to")
	}

	// Defaults span the last 30 days.
	from, to, err = parseDateRange("", "")
	if err != nil {
		t.Fatalf("parseDateRange defaults: %v", err)
	}
	if span := to.Sub(from); span < 29*24*time.Hour || span > 31*24*time.Hour {
		t.Errorf("default span = %v, want ~30 days", span)
	}
}
