package bulkimport

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/cbc"
	"github.com/shulehub/shule-backend/internal/model"
)

// Processor runs one import batch. Rows are processed strictly in input
// order; a failed row is recorded and never aborts the rows after it.
// Only a malformed file or an unrecognized header schema rejects the
// whole batch.
type Processor struct {
	resolver Resolver
	store    Store
	log      zerolog.Logger

	// defaultPasswordHash is assigned to parent accounts created by the
	// parents pipeline.
	defaultPasswordHash string
}

// NewProcessor creates a Processor.
func NewProcessor(resolver Resolver, store Store, defaultPasswordHash string, log zerolog.Logger) *Processor {
	return &Processor{
		resolver:            resolver,
		store:               store,
		log:                 log.With().Str("component", "bulk_import").Logger(),
		defaultPasswordHash: defaultPasswordHash,
	}
}

// Run parses nothing and persists everything: it classifies the already
// parsed header row, then feeds each data row through the per-kind
// pipeline. The returned error is batch-fatal only; row-level failures
// land in the BatchResult.
func (p *Processor) Run(ctx context.Context, kind Kind, headers []string, rows [][]string) (*BatchResult, error) {
	schema, err := DetectSchema(kind, NormalizeHeaders(headers))
	if err != nil {
		return nil, err
	}

	records := RecordRows(headers, rows)
	res := &BatchResult{}

	switch {
	case schema.Kind == KindParents:
		p.processParents(ctx, records, res)
	case schema.Kind == KindStudents:
		p.processStudents(ctx, records, res)
	case schema.Format == FormatLong:
		p.processGradesLong(ctx, records, res)
	default:
		p.processGradesWide(ctx, schema.SubjectColumns, records, res)
	}

	p.log.Info().
		Str("kind", string(kind)).
		Int("rows", len(records)).
		Int("success", res.Success).
		Int("errors", len(res.Errors)).
		Msg("Import batch complete")

	return res, nil
}

func (p *Processor) processParents(ctx context.Context, rows []Row, res *BatchResult) {
	for _, row := range rows {
		username := row.Get("username")
		email := row.Get("email")

		if username == "" || email == "" {
			res.addRowError(row.Line, "Missing username or email.")
			continue
		}

		exists, err := p.store.ParentExists(ctx, username, email)
		if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		if exists {
			res.addRowError(row.Line, "User with username/email already exists (%s/%s).", username, email)
			continue
		}

		parent := &model.User{
			Username:     username,
			Email:        email,
			FullName:     row.Get("full_name"),
			Phone:        row.Get("phone"),
			Role:         model.RoleParent,
			PasswordHash: p.defaultPasswordHash,
			IsActive:     true,
		}
		if err := p.store.CreateParent(ctx, parent); err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		res.addSuccess()
	}
}

func (p *Processor) processStudents(ctx context.Context, rows []Row, res *BatchResult) {
	for _, row := range rows {
		admissionNo := row.Get("admission_number")
		fullName := row.Get("full_name")
		parentEmail := row.Get("parent_email")
		className := row.Get("class_name")
		dobRaw := row.Get("date_of_birth")

		if admissionNo == "" || fullName == "" || parentEmail == "" || className == "" || dobRaw == "" {
			res.addRowError(row.Line, "Missing one of required fields: admission_number, full_name, parent_email, class_name, date_of_birth.")
			continue
		}

		parent, err := p.resolver.ParentByEmail(ctx, parentEmail)
		if errors.Is(err, ErrNotFound) {
			res.addRowError(row.Line, "Parent with email %s not found. Upload parents first.", parentEmail)
			continue
		} else if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}

		class, err := p.resolver.ClassByName(ctx, className)
		if errors.Is(err, ErrNotFound) {
			res.addRowError(row.Line, "Class '%s' not found. Create class first.", className)
			continue
		} else if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}

		dob, err := time.Parse("2006-01-02", dobRaw)
		if err != nil {
			res.addRowError(row.Line, "date_of_birth must be YYYY-MM-DD.")
			continue
		}

		exists, err := p.store.StudentExists(ctx, admissionNo)
		if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		if exists {
			res.addRowError(row.Line, "Student with admission number %s already exists.", admissionNo)
			continue
		}

		student := &model.Student{
			AdmissionNo: admissionNo,
			FullName:    fullName,
			ParentID:    parent.ID,
			ClassID:     class.ID,
			DateOfBirth: dob,
			Status:      model.StudentActive,
		}
		if err := p.store.CreateStudent(ctx, student); err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		res.addSuccess()
	}
}

func (p *Processor) processGradesLong(ctx context.Context, rows []Row, res *BatchResult) {
	for _, row := range rows {
		admissionNo := row.Get("admission_number")
		subjectName := row.Get("subject_name")
		examType := row.Get("exam_type")
		marksRaw := row.Get("marks")
		term := row.Get("term")
		yearRaw := row.Get("year")

		if admissionNo == "" || subjectName == "" || examType == "" || marksRaw == "" || term == "" || yearRaw == "" {
			res.addRowError(row.Line, "Missing required grade fields.")
			continue
		}

		if !model.ValidExamType(examType) {
			res.addRowError(row.Line, "exam_type must be one of: Exam 1, Exam 2, Exam 3, Summative (got '%s').", examType)
			continue
		}

		student, err := p.resolver.StudentByAdmission(ctx, admissionNo)
		if errors.Is(err, ErrNotFound) {
			res.addRowError(row.Line, "Student with admission number %s not found.", admissionNo)
			continue
		} else if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}

		marks, err := strconv.ParseFloat(marksRaw, 64)
		if err != nil {
			res.addRowError(row.Line, "Marks must be a number.")
			continue
		}
		if marks < 0 || marks > 100 {
			res.addRowError(row.Line, "Marks must be between 0 and 100.")
			continue
		}

		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			res.addRowError(row.Line, "Year must be an integer.")
			continue
		}

		subject, err := p.resolver.SubjectByName(ctx, subjectName, p.classGradeHint(ctx, student.ClassID))
		if errors.Is(err, ErrNotFound) {
			res.addRowError(row.Line, "Subject '%s' not found.", subjectName)
			continue
		} else if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}

		exists, err := p.store.GradeExists(ctx, student.ID, subject.ID, model.ExamType(examType), term, year)
		if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		if exists {
			res.addRowError(row.Line, "A grade for this student, subject, exam_type, term, year already exists.")
			continue
		}

		grade := &model.Grade{
			StudentID: student.ID,
			SubjectID: subject.ID,
			ExamType:  model.ExamType(examType),
			Term:      term,
			Year:      year,
			Marks:     marks,
			CBCBand:   string(cbc.Classify(marks)),
		}
		if err := p.store.CreateGrade(ctx, grade); err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}
		res.addSuccess()
	}
}

// processGradesWide handles one-row-per-student uploads. Each row is
// all-or-nothing: if any subject cell fails validation or resolution,
// none of the row's grades are persisted, while other rows proceed
// unaffected. Empty subject cells are skipped.
func (p *Processor) processGradesWide(ctx context.Context, subjectCols []string, rows []Row, res *BatchResult) {
	for _, row := range rows {
		admissionNo := row.Get("admission_number")
		term := row.Get("term")
		yearRaw := row.Get("year")
		examType := row.Get("exam_type")

		if admissionNo == "" || term == "" || yearRaw == "" || examType == "" {
			res.addRowError(row.Line, "Missing admission_number, term, year, or exam_type.")
			continue
		}

		if !model.ValidExamType(examType) {
			res.addRowError(row.Line, "Invalid exam_type: %s", examType)
			continue
		}

		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			res.addRowError(row.Line, "Year must be an integer.")
			continue
		}

		student, err := p.resolver.StudentByAdmission(ctx, admissionNo)
		if errors.Is(err, ErrNotFound) {
			res.addRowError(row.Line, "Student with admission number %s not found.", admissionNo)
			continue
		} else if err != nil {
			p.rowFailure(row.Line, err, res)
			continue
		}

		hint := p.classGradeHint(ctx, student.ClassID)

		var pending []*model.Grade
		rowOK := true

		for _, col := range subjectCols {
			marksRaw := row.Get(col)
			if marksRaw == "" {
				continue
			}

			subject, err := p.resolver.SubjectByName(ctx, col, hint)
			if errors.Is(err, ErrNotFound) {
				res.addSubjectError(row.Line, col, "Subject not found.")
				rowOK = false
				continue
			} else if err != nil {
				res.addSubjectError(row.Line, col, "%v", err)
				rowOK = false
				continue
			}

			marks, err := strconv.ParseFloat(marksRaw, 64)
			if err != nil {
				res.addSubjectError(row.Line, col, "Marks must be a number.")
				rowOK = false
				continue
			}
			if marks < 0 || marks > 100 {
				res.addSubjectError(row.Line, col, "Marks must be 0-100.")
				rowOK = false
				continue
			}

			exists, err := p.store.GradeExists(ctx, student.ID, subject.ID, model.ExamType(examType), term, year)
			if err != nil {
				res.addSubjectError(row.Line, col, "%v", err)
				rowOK = false
				continue
			}
			if exists {
				res.addSubjectError(row.Line, col, "Duplicate grade exists.")
				rowOK = false
				continue
			}

			pending = append(pending, &model.Grade{
				StudentID: student.ID,
				SubjectID: subject.ID,
				ExamType:  model.ExamType(examType),
				Term:      term,
				Year:      year,
				Marks:     marks,
				CBCBand:   string(cbc.Classify(marks)),
			})
		}

		if !rowOK {
			continue
		}
		if len(pending) > 0 {
			if err := p.store.CreateGrades(ctx, pending); err != nil {
				p.rowFailure(row.Line, err, res)
				continue
			}
		}
		res.addSuccess()
	}
}

// classGradeHint derives the numeric grade from the student's class name.
// A lookup failure just drops the hint; it never fails the row.
func (p *Processor) classGradeHint(ctx context.Context, classID int) *int {
	if classID == 0 {
		return nil
	}
	class, err := p.resolver.ClassByID(ctx, classID)
	if err != nil {
		return nil
	}
	if grade, ok := ParseClassGrade(class.Name); ok {
		return &grade
	}
	return nil
}

// rowFailure records an unexpected (storage/resolver) error as a row
// failure so the batch keeps going.
func (p *Processor) rowFailure(line int, err error, res *BatchResult) {
	p.log.Warn().Int("row", line).Err(err).Msg("Row failed unexpectedly")
	res.addRowError(line, "%v", err)
}
