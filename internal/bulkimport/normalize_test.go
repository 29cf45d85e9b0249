package bulkimport

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Admission Number", "admission_number"},
		{"  Full  Name ", "full_name"},
		{"EMAIL", "email"},
		{"date_of_birth", "date_of_birth"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Normalization is idempotent: a second pass changes nothing.
func TestNormalizeHeaderIdempotent(t *testing.T) {
	inputs := []string{"Admission Number", " Marks ", "parent EMAIL", "year"}
	for _, in := range inputs {
		once := NormalizeHeader(in)
		if twice := NormalizeHeader(once); twice != once {
			t.Errorf("NormalizeHeader not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestRecordRows(t *testing.T) {
	headers := []string{"Admission Number", "Full Name", "Marks"}
	rows := [][]string{
		{" ADM001 ", "Jane Doe", "85"},
		{"ADM002", "John"}, // short row
		{"ADM003", "Mary", "70", "extra ignored"},
	}

	records := RecordRows(headers, rows)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[0].Line != 1 || records[2].Line != 3 {
		t.Errorf("line numbers should be 1-based over data rows, got %d and %d", records[0].Line, records[2].Line)
	}
	if got := records[0].Get("admission_number"); got != "ADM001" {
		t.Errorf("cell not trimmed: %q", got)
	}
	if got := records[1].Get("marks"); got != "" {
		t.Errorf("missing cell should be empty string, got %q", got)
	}

	want := map[string]string{"admission_number": "ADM003", "full_name": "Mary", "marks": "70"}
	if !reflect.DeepEqual(records[2].Values, want) {
		t.Errorf("Values = %v, want %v", records[2].Values, want)
	}
}

func TestParseCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFusername,email\n\n alice ,alice@example.com\n,,\nbob,bob@example.com\n")
	headers, rows, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if headers[0] != "username" {
		t.Errorf("BOM not stripped: %q", headers[0])
	}
	if len(rows) != 2 {
		t.Errorf("blank rows should be dropped, got %d rows", len(rows))
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, _, err := ParseCSV([]byte("username,email\n")); err != ErrEmptyFile {
		t.Errorf("header-only file: got %v, want ErrEmptyFile", err)
	}
	if _, _, err := ParseCSV(nil); err != ErrEmptyFile {
		t.Errorf("empty file: got %v, want ErrEmptyFile", err)
	}
}

func TestParseUploadUnsupported(t *testing.T) {
	if _, _, err := ParseUpload("grades.pdf", []byte("x")); err != ErrUnsupportedFile {
		t.Errorf("got %v, want ErrUnsupportedFile", err)
	}
}

func TestParseClassGrade(t *testing.T) {
	tests := []struct {
		name  string
		grade int
		ok    bool
	}{
		{"Grade 7 Blue", 7, true},
		{"Grade 6", 6, true},
		{"7A", 7, true},
		{"Eagles", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		grade, ok := ParseClassGrade(tt.name)
		if grade != tt.grade || ok != tt.ok {
			t.Errorf("ParseClassGrade(%q) = (%d, %v), want (%d, %v)", tt.name, grade, ok, tt.grade, tt.ok)
		}
	}
}
