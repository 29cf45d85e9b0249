// Package bulkimport implements the CSV/XLSX bulk-import pipeline for
// parents, students and grades: header normalization, schema detection,
// entity resolution and per-row processing with row-level error isolation.
package bulkimport

import "fmt"

// BatchResult aggregates the outcome of one upload. Errors keep the input
// row order; row numbers are 1-based over the data rows (header excluded).
type BatchResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

func (r *BatchResult) addSuccess() {
	r.Success++
}

func (r *BatchResult) addRowError(line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", line, msg))
}

func (r *BatchResult) addSubjectError(line int, subject, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d, subject '%s': %s", line, subject, msg))
}
