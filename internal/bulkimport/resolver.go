package bulkimport

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/shulehub/shule-backend/internal/model"
)

// ErrNotFound is returned by Resolver lookups when no entity matches.
var ErrNotFound = errors.New("not found")

// Resolver looks up the persisted entities referenced by import rows.
// Implementations return ErrNotFound for a clean miss; any other error is
// treated as an unexpected row failure.
type Resolver interface {
	// ParentByEmail matches exactly on email with role=parent. No fuzzy
	// fallback: a missing parent forces the parents file to be imported
	// first.
	ParentByEmail(ctx context.Context, email string) (*model.User, error)

	// ClassByName matches case-insensitively on the trimmed class name.
	ClassByName(ctx context.Context, name string) (*model.Class, error)

	// ClassByID fetches a class by id; used to derive the grade-level
	// hint for subject resolution from the student's class name.
	ClassByID(ctx context.Context, id int) (*model.Class, error)

	// StudentByAdmission matches exactly on admission number.
	StudentByAdmission(ctx context.Context, admissionNo string) (*model.Student, error)

	// SubjectByName resolves a subject in three tiers: exact
	// case-insensitive name match; then, when classGrade is known, a
	// level-keyword filter (primary below grade 7, secondary otherwise)
	// combined with a name substring match; finally a loose substring
	// match. Ties within a fuzzy tier break deterministically: shortest
	// name first, then alphabetical.
	SubjectByName(ctx context.Context, name string, classGrade *int) (*model.Subject, error)
}

// Store persists the records the pipeline creates and answers
// duplicate-checking lookups against natural keys.
type Store interface {
	ParentExists(ctx context.Context, username, email string) (bool, error)
	CreateParent(ctx context.Context, u *model.User) error

	StudentExists(ctx context.Context, admissionNo string) (bool, error)
	CreateStudent(ctx context.Context, s *model.Student) error

	GradeExists(ctx context.Context, studentID, subjectID int, examType model.ExamType, term string, year int) (bool, error)
	CreateGrade(ctx context.Context, g *model.Grade) error

	// CreateGrades persists a wide-format row's grades atomically: either
	// every grade in the slice is committed or none are.
	CreateGrades(ctx context.Context, gs []*model.Grade) error
}

// ParseClassGrade extracts the numeric grade from a class name, e.g.
// "Grade 7 Blue" -> 7 and "6A" -> 6. The second return is false when the
// name carries no digits.
func ParseClassGrade(className string) (int, bool) {
	for _, part := range strings.Fields(className) {
		n := 0
		found := false
		for _, r := range part {
			if unicode.IsDigit(r) {
				n = n*10 + int(r-'0')
				found = true
			}
		}
		if found {
			return n, true
		}
	}
	return 0, false
}

// LevelKeyword maps a class grade to the subject-level search keyword
// used by the tier-2 subject lookup.
func LevelKeyword(classGrade int) string {
	if classGrade < 7 {
		return "primary"
	}
	return "secondary"
}
