package bulkimport

import (
	"fmt"
	"strings"
)

// Kind selects which import pipeline an upload targets.
type Kind string

const (
	KindParents  Kind = "parents"
	KindStudents Kind = "students"
	KindGrades   Kind = "grades"
)

// GradeFormat distinguishes the two accepted grade layouts.
type GradeFormat string

const (
	// FormatLong has one grade per row.
	FormatLong GradeFormat = "long"
	// FormatWide has one row per student with one column per subject.
	FormatWide GradeFormat = "wide"
)

// Schema is the classification of an upload's header row. For wide grade
// uploads, SubjectColumns lists the subject-name columns in header order.
type Schema struct {
	Kind           Kind
	Format         GradeFormat
	SubjectColumns []string
}

var (
	parentHeaders   = []string{"username", "email", "full_name", "phone"}
	studentHeaders  = []string{"admission_number", "full_name", "parent_email", "class_name", "date_of_birth"}
	gradeLongHdrs   = []string{"admission_number", "subject_name", "exam_type", "marks", "term", "year"}
	gradeWideHdrs   = []string{"admission_number", "term", "year", "exam_type"}
	gradeWideHdrSet = toSet(gradeWideHdrs)
)

// DetectSchema classifies a normalized header row for the given kind.
// Long format is checked before wide for grade uploads. A mismatch is
// batch-fatal: the error describes the expected headers and no rows are
// processed.
func DetectSchema(kind Kind, headers []string) (Schema, error) {
	set := toSet(headers)

	switch kind {
	case KindParents:
		if !containsAll(set, parentHeaders) {
			return Schema{}, fmt.Errorf("invalid parent headers, expected: %s", strings.Join(parentHeaders, ", "))
		}
		return Schema{Kind: KindParents}, nil

	case KindStudents:
		if !containsAll(set, studentHeaders) {
			return Schema{}, fmt.Errorf("invalid student headers, expected: %s", strings.Join(studentHeaders, ", "))
		}
		return Schema{Kind: KindStudents}, nil

	case KindGrades:
		if containsAll(set, gradeLongHdrs) {
			return Schema{Kind: KindGrades, Format: FormatLong}, nil
		}
		if containsAll(set, gradeWideHdrs) {
			var subjects []string
			for _, h := range headers {
				if !gradeWideHdrSet[h] {
					subjects = append(subjects, h)
				}
			}
			if len(subjects) == 0 {
				return Schema{}, fmt.Errorf("no subject columns found in wide-format upload")
			}
			return Schema{Kind: KindGrades, Format: FormatWide, SubjectColumns: subjects}, nil
		}
		return Schema{}, fmt.Errorf(
			"headers do not match long format (%s) or wide format (%s plus subject columns)",
			strings.Join(gradeLongHdrs, ", "), strings.Join(gradeWideHdrs, ", "),
		)

	default:
		return Schema{}, fmt.Errorf("unknown import kind %q", kind)
	}
}

func toSet(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}

func containsAll(set map[string]bool, required []string) bool {
	for _, r := range required {
		if !set[r] {
			return false
		}
	}
	return true
}
