package finance

import "github.com/shulehub/shule-backend/internal/model"

// NetPay is basic pay plus allowances minus deductions.
func NetPay(s model.StaffSalary) float64 {
	return s.BasicPay + s.Allowances - s.Deductions
}

// GrossPay is basic pay plus allowances, the base for statutory deductions.
func GrossPay(s model.StaffSalary) float64 {
	return s.BasicPay + s.Allowances
}

// PAYE computes income tax on gross monthly pay (KRA brackets).
func PAYE(gross float64) float64 {
	switch {
	case gross <= 24000:
		return gross * 0.10
	case gross <= 32333:
		return gross * 0.25
	default:
		return gross * 0.30
	}
}

// NSSF is 6% of basic pay capped at 1080.
func NSSF(basic float64) float64 {
	if contrib := basic * 0.06; contrib < 1080 {
		return contrib
	}
	return 1080
}

// nhifBands maps upper bounds of basic pay to the NHIF contribution.
var nhifBands = []struct {
	upTo    float64
	contrib float64
}{
	{5999, 150},
	{7999, 300},
	{11999, 400},
	{14999, 500},
	{19999, 600},
	{24999, 750},
	{29999, 850},
	{34999, 900},
	{39999, 950},
	{44999, 1000},
}

// NHIF returns the health insurance contribution for a basic pay.
func NHIF(basic float64) float64 {
	for _, b := range nhifBands {
		if basic <= b.upTo {
			return b.contrib
		}
	}
	return 1700
}

// StatutoryDeductions is the sum of PAYE, NSSF and NHIF for a salary.
func StatutoryDeductions(s model.StaffSalary) float64 {
	return PAYE(GrossPay(s)) + NSSF(s.BasicPay) + NHIF(s.BasicPay)
}
