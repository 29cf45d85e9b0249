package finance

import (
	"testing"

	"github.com/shulehub/shule-backend/internal/model"
)

func TestPAYE(t *testing.T) {
	tests := []struct {
		gross float64
		want  float64
	}{
		{20000, 2000},
		{24000, 2400},
		{30000, 7500},
		{32333, 8083.25},
		{50000, 15000},
	}
	for _, tt := range tests {
		if got := PAYE(tt.gross); got != tt.want {
			t.Errorf("PAYE(%v) = %v, want %v", tt.gross, got, tt.want)
		}
	}
}

func TestNSSF(t *testing.T) {
	if got := NSSF(10000); got != 600 {
		t.Errorf("NSSF(10000) = %v, want 600", got)
	}
	// 6% of 18000 exactly hits the cap.
	if got := NSSF(18000); got != 1080 {
		t.Errorf("NSSF(18000) = %v, want 1080", got)
	}
	if got := NSSF(100000); got != 1080 {
		t.Errorf("NSSF(100000) = %v, want capped 1080", got)
	}
}

func TestNHIF(t *testing.T) {
	tests := []struct {
		basic float64
		want  float64
	}{
		{4000, 150},
		{5999, 150},
		{6000, 300},
		{12000, 500},
		{25000, 850},
		{44999, 1000},
		{45000, 1700},
		{120000, 1700},
	}
	for _, tt := range tests {
		if got := NHIF(tt.basic); got != tt.want {
			t.Errorf("NHIF(%v) = %v, want %v", tt.basic, got, tt.want)
		}
	}
}

func TestNetPayAndStatutoryDeductions(t *testing.T) {
	s := model.StaffSalary{BasicPay: 30000, Allowances: 5000}
	s.Deductions = StatutoryDeductions(s)

	// PAYE on 35000 gross at 30%, NSSF capped, NHIF band for 30000.
	want := 35000*0.30 + 1080 + 900
	if s.Deductions != want {
		t.Fatalf("StatutoryDeductions = %v, want %v", s.Deductions, want)
	}
	if got := GrossPay(s); got != 35000 {
		t.Errorf("GrossPay = %v, want 35000", got)
	}
	if got := NetPay(s); got != 35000-want {
		t.Errorf("NetPay = %v, want %v", got, 35000-want)
	}
}
