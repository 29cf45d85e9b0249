package bulkimport

import (
	"reflect"
	"testing"
)

func TestDetectSchemaParents(t *testing.T) {
	if _, err := DetectSchema(KindParents, []string{"username", "email", "full_name", "phone"}); err != nil {
		t.Errorf("valid parent headers rejected: %v", err)
	}
	if _, err := DetectSchema(KindParents, []string{"username", "email"}); err == nil {
		t.Error("incomplete parent headers should be rejected")
	}
}

func TestDetectSchemaStudents(t *testing.T) {
	headers := []string{"admission_number", "full_name", "parent_email", "class_name", "date_of_birth", "extra_col"}
	if _, err := DetectSchema(KindStudents, headers); err != nil {
		t.Errorf("superset of student headers rejected: %v", err)
	}
}

// Long format takes priority even when wide's base headers are present.
func TestDetectSchemaGradeLongPriority(t *testing.T) {
	headers := []string{"admission_number", "subject_name", "exam_type", "marks", "term", "year"}
	schema, err := DetectSchema(KindGrades, headers)
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.Format != FormatLong {
		t.Errorf("Format = %q, want long", schema.Format)
	}
}

func TestDetectSchemaGradeWide(t *testing.T) {
	headers := []string{"admission_number", "term", "year", "exam_type", "mathematics", "english"}
	schema, err := DetectSchema(KindGrades, headers)
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.Format != FormatWide {
		t.Errorf("Format = %q, want wide", schema.Format)
	}
	if !reflect.DeepEqual(schema.SubjectColumns, []string{"mathematics", "english"}) {
		t.Errorf("SubjectColumns = %v", schema.SubjectColumns)
	}
}

func TestDetectSchemaGradeWideNoSubjects(t *testing.T) {
	if _, err := DetectSchema(KindGrades, []string{"admission_number", "term", "year", "exam_type"}); err == nil {
		t.Error("wide format without subject columns should be rejected")
	}
}

func TestDetectSchemaGradeUnrecognized(t *testing.T) {
	if _, err := DetectSchema(KindGrades, []string{"admission_number", "marks"}); err == nil {
		t.Error("unrecognized grade headers should be batch-fatal")
	}
}
