package service

import (
	"regexp"
	"testing"
)

func TestNewReceiptNo(t *testing.T) {
	pattern := regexp.MustCompile(`^RCPT-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := NewReceiptNo()
		if !pattern.MatchString(no) {
			t.Fatalf("receipt %q does not match RCPT-XXXXXXXX", no)
		}
		if seen[no] {
			t.Fatalf("receipt %q generated twice", no)
		}
		seen[no] = true
	}
}
