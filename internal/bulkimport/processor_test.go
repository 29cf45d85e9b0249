package bulkimport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/model"
)

// fakeBackend is an in-memory Resolver + Store.
type fakeBackend struct {
	parents  map[string]*model.User // keyed by email
	classes  []*model.Class
	subjects []*model.Subject
	students map[string]*model.Student // keyed by admission number
	grades   map[string]bool

	createGradeErr error
	nextID         int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		parents:  make(map[string]*model.User),
		students: make(map[string]*model.Student),
		grades:   make(map[string]bool),
		nextID:   100,
	}
}

func (f *fakeBackend) id() int {
	f.nextID++
	return f.nextID
}

func gradeKey(studentID, subjectID int, examType model.ExamType, term string, year int) string {
	return fmt.Sprintf("%d|%d|%s|%s|%d", studentID, subjectID, examType, term, year)
}

func (f *fakeBackend) ParentByEmail(_ context.Context, email string) (*model.User, error) {
	if p, ok := f.parents[email]; ok && p.Role == model.RoleParent {
		return p, nil
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) ClassByName(_ context.Context, name string) (*model.Class, error) {
	for _, c := range f.classes {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) ClassByID(_ context.Context, id int) (*model.Class, error) {
	for _, c := range f.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) StudentByAdmission(_ context.Context, admissionNo string) (*model.Student, error) {
	if s, ok := f.students[admissionNo]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// SubjectByName mirrors the production tiers: exact, level+substring,
// substring; fuzzy ties break by shortest then alphabetical name.
func (f *fakeBackend) SubjectByName(_ context.Context, name string, classGrade *int) (*model.Subject, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	for _, s := range f.subjects {
		if strings.ToLower(s.Name) == needle {
			return s, nil
		}
	}

	var tiers [][]*model.Subject
	if classGrade != nil {
		kw := LevelKeyword(*classGrade)
		var matched []*model.Subject
		for _, s := range f.subjects {
			if strings.Contains(strings.ToLower(s.Level), kw) && strings.Contains(strings.ToLower(s.Name), needle) {
				matched = append(matched, s)
			}
		}
		tiers = append(tiers, matched)
	}
	var loose []*model.Subject
	for _, s := range f.subjects {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			loose = append(loose, s)
		}
	}
	tiers = append(tiers, loose)

	for _, tier := range tiers {
		if len(tier) == 0 {
			continue
		}
		sort.Slice(tier, func(i, j int) bool {
			if len(tier[i].Name) != len(tier[j].Name) {
				return len(tier[i].Name) < len(tier[j].Name)
			}
			return tier[i].Name < tier[j].Name
		})
		return tier[0], nil
	}
	return nil, ErrNotFound
}

func (f *fakeBackend) ParentExists(_ context.Context, username, email string) (bool, error) {
	if _, ok := f.parents[email]; ok {
		return true, nil
	}
	for _, p := range f.parents {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) CreateParent(_ context.Context, u *model.User) error {
	u.ID = f.id()
	f.parents[u.Email] = u
	return nil
}

func (f *fakeBackend) StudentExists(_ context.Context, admissionNo string) (bool, error) {
	_, ok := f.students[admissionNo]
	return ok, nil
}

func (f *fakeBackend) CreateStudent(_ context.Context, s *model.Student) error {
	s.ID = f.id()
	f.students[s.AdmissionNo] = s
	return nil
}

func (f *fakeBackend) GradeExists(_ context.Context, studentID, subjectID int, examType model.ExamType, term string, year int) (bool, error) {
	return f.grades[gradeKey(studentID, subjectID, examType, term, year)], nil
}

func (f *fakeBackend) CreateGrade(_ context.Context, g *model.Grade) error {
	if f.createGradeErr != nil {
		return f.createGradeErr
	}
	g.ID = f.id()
	f.grades[gradeKey(g.StudentID, g.SubjectID, g.ExamType, g.Term, g.Year)] = true
	return nil
}

func (f *fakeBackend) CreateGrades(ctx context.Context, gs []*model.Grade) error {
	for _, g := range gs {
		if err := f.CreateGrade(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) gradeCount() int { return len(f.grades) }

func newTestProcessor(f *fakeBackend) *Processor {
	return NewProcessor(f, f, "$2a$10$fakehash", zerolog.Nop())
}

func seedSchool(f *fakeBackend) {
	f.parents["jane@example.com"] = &model.User{ID: 1, Username: "jane", Email: "jane@example.com", Role: model.RoleParent}
	f.classes = append(f.classes, &model.Class{ID: 10, Name: "Grade 7 Blue", Level: "Junior Secondary"})
	f.subjects = append(f.subjects,
		&model.Subject{ID: 20, Name: "Mathematics", Level: "Junior Secondary"},
		&model.Subject{ID: 21, Name: "English", Level: "Junior Secondary"},
		&model.Subject{ID: 22, Name: "Kiswahili", Level: "Primary"},
	)
	f.students["ADM001"] = &model.Student{ID: 30, AdmissionNo: "ADM001", FullName: "Asha K", ClassID: 10}
}

var parentHeadersRow = []string{"username", "email", "full_name", "phone"}

func TestImportParents(t *testing.T) {
	f := newFakeBackend()
	p := newTestProcessor(f)

	rows := [][]string{
		{"alice", "alice@example.com", "Alice W", "0700000001"},
		{"bob", "", "Bob M", "0700000002"},
		{"alice2", "alice@example.com", "Alice Again", ""},
	}

	res, err := p.Run(context.Background(), KindParents, parentHeadersRow, rows)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Success != 1 {
		t.Errorf("Success = %d, want 1", res.Success)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("Errors = %v, want 2", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0], "Row 2:") || !strings.HasPrefix(res.Errors[1], "Row 3:") {
		t.Errorf("errors out of order: %v", res.Errors)
	}

	created := f.parents["alice@example.com"]
	if created == nil || created.Role != model.RoleParent || !created.IsActive {
		t.Errorf("imported parent not created correctly: %+v", created)
	}
	if created.PasswordHash != "$2a$10$fakehash" {
		t.Errorf("imported parent should get the default password hash")
	}
}

func TestImportStudents(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	p := newTestProcessor(f)

	headers := []string{"admission_number", "full_name", "parent_email", "class_name", "date_of_birth"}
	rows := [][]string{
		{"ADM100", "New Kid", "jane@example.com", "grade 7 blue", "2013-05-01"}, // class match is case-insensitive
		{"ADM101", "No Parent", "ghost@example.com", "Grade 7 Blue", "2013-05-01"},
		{"ADM102", "No Class", "jane@example.com", "Grade 99", "2013-05-01"},
		{"ADM103", "Bad DOB", "jane@example.com", "Grade 7 Blue", "01/05/2013"},
		{"", "Blank Adm", "jane@example.com", "Grade 7 Blue", "2013-05-01"},
		{"ADM001", "Dup", "jane@example.com", "Grade 7 Blue", "2013-05-01"},
	}

	res, err := p.Run(context.Background(), KindStudents, headers, rows)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Success != 1 {
		t.Errorf("Success = %d, want 1", res.Success)
	}
	if len(res.Errors) != 5 {
		t.Errorf("Errors = %d, want 5: %v", len(res.Errors), res.Errors)
	}
	if _, ok := f.students["ADM100"]; !ok {
		t.Error("valid row should have created a student")
	}
	if _, ok := f.students["ADM101"]; ok {
		t.Error("failed row must not create a student")
	}
	if !strings.Contains(res.Errors[0], "Parent with email ghost@example.com not found") {
		t.Errorf("unexpected error text: %q", res.Errors[0])
	}
}

var gradeLongHeaders = []string{"admission_number", "subject_name", "exam_type", "marks", "term", "year"}

// End-to-end long-format scenario: one good row, one unknown student.
func TestImportGradesLong(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	p := newTestProcessor(f)

	rows := [][]string{
		{"ADM001", "Mathematics", "Exam 1", "85", "Term 1", "2026"},
		{"ADM404", "Mathematics", "Exam 1", "70", "Term 1", "2026"},
	}

	res, err := p.Run(context.Background(), KindGrades, gradeLongHeaders, rows)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Success != 1 || len(res.Errors) != 1 {
		t.Fatalf("got success=%d errors=%v, want 1/1", res.Success, res.Errors)
	}
	if !strings.Contains(res.Errors[0], "Student with admission number ADM404 not found") {
		t.Errorf("unexpected error: %q", res.Errors[0])
	}
	if f.gradeCount() != 1 {
		t.Errorf("gradeCount = %d, want 1", f.gradeCount())
	}
}

func TestImportGradesLongValidation(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	p := newTestProcessor(f)

	rows := [][]string{
		{"ADM001", "Mathematics", "Midterm", "85", "Term 1", "2026"},   // bad exam type
		{"ADM001", "Mathematics", "Exam 1", "abc", "Term 1", "2026"},   // non-numeric marks
		{"ADM001", "Mathematics", "Exam 1", "120", "Term 1", "2026"},   // out of range
		{"ADM001", "Mathematics", "Exam 1", "50", "Term 1", "twenty"},  // bad year
		{"ADM001", "Quantum Mechanics", "Exam 1", "50", "Term 1", "2026"}, // unknown subject
		{"ADM001", "", "Exam 1", "50", "Term 1", "2026"},               // blank required field
	}

	res, err := p.Run(context.Background(), KindGrades, gradeLongHeaders, rows)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Success != 0 || len(res.Errors) != 6 {
		t.Errorf("got success=%d errors=%d, want 0/6: %v", res.Success, len(res.Errors), res.Errors)
	}
	if f.gradeCount() != 0 {
		t.Errorf("no grades should be created, got %d", f.gradeCount())
	}
}

// Importing the same row in two batches: first succeeds, second is a
// duplicate failure and no second record appears.
func TestImportGradesDuplicateAcrossBatches(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	p := newTestProcessor(f)

	rows := [][]string{{"ADM001", "Mathematics", "Exam 1", "85", "Term 1", "2026"}}

	res1, err := p.Run(context.Background(), KindGrades, gradeLongHeaders, rows)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if res1.Success != 1 {
		t.Fatalf("first run success = %d, want 1", res1.Success)
	}

	res2, err := p.Run(context.Background(), KindGrades, gradeLongHeaders, rows)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res2.Success != 0 || len(res2.Errors) != 1 {
		t.Fatalf("second run: success=%d errors=%v", res2.Success, res2.Errors)
	}
	if !strings.Contains(res2.Errors[0], "already exists") {
		t.Errorf("unexpected error: %q", res2.Errors[0])
	}
	if f.gradeCount() != 1 {
		t.Errorf("gradeCount = %d, want 1", f.gradeCount())
	}
}

// A wide row is all-or-nothing: one bad subject cell voids the whole
// row's grades while the next row still succeeds.
func TestImportGradesWideAllOrNothing(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	f.students["ADM002"] = &model.Student{ID: 31, AdmissionNo: "ADM002", FullName: "Brian O", ClassID: 10}
	p := newTestProcessor(f)

	headers := []string{"admission_number", "term", "year", "exam_type", "mathematics", "english", "chemistry"}
	rows := [][]string{
		{"ADM001", "Term 1", "2026", "Exam 1", "80", "75", "60"}, // chemistry unknown
		{"ADM002", "Term 1", "2026", "Exam 1", "90", "85", ""},   // empty cell skipped
	}

	res, err := p.Run(context.Background(), KindGrades, headers, rows)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Success != 1 {
		t.Errorf("Success = %d, want 1", res.Success)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "subject 'chemistry'") {
		t.Errorf("Errors = %v", res.Errors)
	}
	// Row 1 contributes zero grades (not 2 of 3); row 2 contributes two.
	if f.gradeCount() != 2 {
		t.Errorf("gradeCount = %d, want 2", f.gradeCount())
	}
}

func TestImportBatchFatalHeaders(t *testing.T) {
	f := newFakeBackend()
	p := newTestProcessor(f)

	_, err := p.Run(context.Background(), KindGrades, []string{"admission_number", "marks"}, [][]string{{"ADM001", "50"}})
	if err == nil {
		t.Fatal("unrecognized headers must reject the batch")
	}
	if f.gradeCount() != 0 {
		t.Error("no rows may be processed after a batch-fatal error")
	}
}

// A storage failure on one row is recorded and the batch continues.
func TestImportStorageErrorIsRowLevel(t *testing.T) {
	f := newFakeBackend()
	seedSchool(f)
	p := newTestProcessor(f)

	f.createGradeErr = errors.New("connection reset")
	rows := [][]string{
		{"ADM001", "Mathematics", "Exam 1", "85", "Term 1", "2026"},
		{"ADM001", "English", "Exam 1", "70", "Term 1", "2026"},
	}

	res, err := p.Run(context.Background(), KindGrades, gradeLongHeaders, rows)
	if err != nil {
		t.Fatalf("storage errors must not be batch-fatal: %v", err)
	}
	if res.Success != 0 || len(res.Errors) != 2 {
		t.Errorf("success=%d errors=%v", res.Success, res.Errors)
	}
}

// The grade-level hint steers fuzzy subject resolution to the right level.
func TestSubjectResolutionLevelHint(t *testing.T) {
	f := newFakeBackend()
	f.subjects = append(f.subjects,
		&model.Subject{ID: 1, Name: "Primary Science", Level: "Primary"},
		&model.Subject{ID: 2, Name: "Secondary Science", Level: "Junior Secondary"},
	)

	lower := 4
	upper := 8

	got, err := f.SubjectByName(context.Background(), "science", &lower)
	if err != nil || got.ID != 1 {
		t.Errorf("grade 4 'science' resolved to %+v, err %v; want Primary Science", got, err)
	}
	got, err = f.SubjectByName(context.Background(), "science", &upper)
	if err != nil || got.ID != 2 {
		t.Errorf("grade 8 'science' resolved to %+v, err %v; want Secondary Science", got, err)
	}
}
