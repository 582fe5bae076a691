package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// ExamRepository manages the exams, subjects and exam-results documents.
// Deleting an exam cascades into its results; deleting a subject does not,
// results for a removed subject keep their subject ID key.
type ExamRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamRepository creates a new instance of ExamRepository.
func NewExamRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *ExamRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamRepository{store: st, validator: validate, logger: logger}
}

// CreateExamRequest is the payload for scheduling an exam.
type CreateExamRequest struct {
	ExamName string `json:"exam_name" validate:"required"`
	ExamType string `json:"exam_type" validate:"required"`
	Semester int    `json:"semester" validate:"required,gte=1"`
	Date     string `json:"date" validate:"required"`
	MaxMarks int    `json:"max_marks" validate:"required,gt=0"`
}

// UpdateExamRequest carries partial fields for an exam update.
type UpdateExamRequest struct {
	ExamName *string `json:"exam_name"`
	ExamType *string `json:"exam_type"`
	Semester *int    `json:"semester"`
	Date     *string `json:"date"`
	MaxMarks *int    `json:"max_marks"`
}

// CreateSubjectRequest is the payload for registering a subject.
type CreateSubjectRequest struct {
	SubjectName string `json:"subject_name" validate:"required"`
	Semester    int    `json:"semester" validate:"required,gte=1"`
	Department  string `json:"department"`
}

// UpdateSubjectRequest carries partial fields for a subject update.
type UpdateSubjectRequest struct {
	SubjectName *string `json:"subject_name"`
	Semester    *int    `json:"semester"`
	Department  *string `json:"department"`
}

// AddResultRequest is the payload for recording one (exam, student, subject)
// result. Re-submitting the same triple overwrites the earlier entry.
type AddResultRequest struct {
	StudentEmail string  `json:"student_email" validate:"required,email"`
	SubjectID    string  `json:"subject_id" validate:"required"`
	Marks        float64 `json:"marks" validate:"gte=0"`
	Remarks      *string `json:"remarks"`
}

// AddExam schedules an exam and returns the generated ID of the form
// exam_{n}_{unix}. The counter restarts from the map size, so the timestamp
// keeps IDs unique after deletions.
func (r *ExamRepository) AddExam(ctx context.Context, req CreateExamRequest) (string, error) {
	if err := r.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}

	defer r.store.Lock(store.EntityExams)()

	exams := map[string]models.Exam{}
	if err := r.store.Load(store.EntityExams, &exams); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	examID := fmt.Sprintf("exam_%d_%d", len(exams)+1, now.Unix())

	exams[examID] = models.Exam{
		ExamID:    examID,
		ExamName:  req.ExamName,
		ExamType:  req.ExamType,
		Semester:  req.Semester,
		Date:      req.Date,
		MaxMarks:  req.MaxMarks,
		CreatedAt: now,
	}

	if err := r.store.Save(store.EntityExams, exams); err != nil {
		return "", err
	}
	return examID, nil
}

// GetExam returns a single exam by ID.
func (r *ExamRepository) GetExam(ctx context.Context, examID string) (models.Exam, error) {
	exams := map[string]models.Exam{}
	if err := r.store.Load(store.EntityExams, &exams); err != nil {
		return models.Exam{}, err
	}
	exam, ok := exams[examID]
	if !ok {
		return models.Exam{}, appErrors.NotFound("Exam not found")
	}
	return exam, nil
}

// UpdateExam applies partial fields to one exam.
func (r *ExamRepository) UpdateExam(ctx context.Context, examID string, req UpdateExamRequest) error {
	defer r.store.Lock(store.EntityExams)()

	exams := map[string]models.Exam{}
	if err := r.store.Load(store.EntityExams, &exams); err != nil {
		return err
	}
	exam, ok := exams[examID]
	if !ok {
		return appErrors.NotFound("Exam not found")
	}

	if req.ExamName != nil {
		exam.ExamName = *req.ExamName
	}
	if req.ExamType != nil {
		exam.ExamType = *req.ExamType
	}
	if req.Semester != nil {
		exam.Semester = *req.Semester
	}
	if req.Date != nil {
		exam.Date = *req.Date
	}
	if req.MaxMarks != nil {
		exam.MaxMarks = *req.MaxMarks
	}

	exams[examID] = exam
	return r.store.Save(store.EntityExams, exams)
}

// DeleteExam removes an exam and cascades into the exam-results document, so
// no result can reference a missing exam.
func (r *ExamRepository) DeleteExam(ctx context.Context, examID string) error {
	unlockExams := r.store.Lock(store.EntityExams)

	exams := map[string]models.Exam{}
	if err := r.store.Load(store.EntityExams, &exams); err != nil {
		unlockExams()
		return err
	}
	if _, ok := exams[examID]; !ok {
		unlockExams()
		return appErrors.NotFound("Exam not found")
	}
	delete(exams, examID)
	if err := r.store.Save(store.EntityExams, exams); err != nil {
		unlockExams()
		return err
	}
	unlockExams()

	return r.DeleteExamResults(ctx, examID)
}

// AllExams returns every exam keyed by ID.
func (r *ExamRepository) AllExams(ctx context.Context) (map[string]models.Exam, error) {
	exams := map[string]models.Exam{}
	if err := r.store.Load(store.EntityExams, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// AddSubject registers a subject and returns the generated ID of the form
// subject_{n}_{unix}.
func (r *ExamRepository) AddSubject(ctx context.Context, req CreateSubjectRequest) (string, error) {
	if err := r.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	defer r.store.Lock(store.EntitySubjects)()

	subjects := map[string]models.Subject{}
	if err := r.store.Load(store.EntitySubjects, &subjects); err != nil {
		return "", err
	}

	subjectID := fmt.Sprintf("subject_%d_%d", len(subjects)+1, time.Now().UTC().Unix())

	subjects[subjectID] = models.Subject{
		SubjectID:   subjectID,
		SubjectName: req.SubjectName,
		Semester:    req.Semester,
		Department:  req.Department,
	}

	if err := r.store.Save(store.EntitySubjects, subjects); err != nil {
		return "", err
	}
	return subjectID, nil
}

// GetSubject returns a single subject by ID.
func (r *ExamRepository) GetSubject(ctx context.Context, subjectID string) (models.Subject, error) {
	subjects := map[string]models.Subject{}
	if err := r.store.Load(store.EntitySubjects, &subjects); err != nil {
		return models.Subject{}, err
	}
	subject, ok := subjects[subjectID]
	if !ok {
		return models.Subject{}, appErrors.NotFound("Subject not found")
	}
	return subject, nil
}

// UpdateSubject applies partial fields to one subject.
func (r *ExamRepository) UpdateSubject(ctx context.Context, subjectID string, req UpdateSubjectRequest) error {
	defer r.store.Lock(store.EntitySubjects)()

	subjects := map[string]models.Subject{}
	if err := r.store.Load(store.EntitySubjects, &subjects); err != nil {
		return err
	}
	subject, ok := subjects[subjectID]
	if !ok {
		return appErrors.NotFound("Subject not found")
	}

	if req.SubjectName != nil {
		subject.SubjectName = *req.SubjectName
	}
	if req.Semester != nil {
		subject.Semester = *req.Semester
	}
	if req.Department != nil {
		subject.Department = *req.Department
	}

	subjects[subjectID] = subject
	return r.store.Save(store.EntitySubjects, subjects)
}

// DeleteSubject removes a subject. Existing results keep their subject key.
func (r *ExamRepository) DeleteSubject(ctx context.Context, subjectID string) error {
	defer r.store.Lock(store.EntitySubjects)()

	subjects := map[string]models.Subject{}
	if err := r.store.Load(store.EntitySubjects, &subjects); err != nil {
		return err
	}
	if _, ok := subjects[subjectID]; !ok {
		return appErrors.NotFound("Subject not found")
	}
	delete(subjects, subjectID)
	return r.store.Save(store.EntitySubjects, subjects)
}

// AllSubjects returns every subject keyed by ID.
func (r *ExamRepository) AllSubjects(ctx context.Context) (map[string]models.Subject, error) {
	subjects := map[string]models.Subject{}
	if err := r.store.Load(store.EntitySubjects, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// AddResult upserts one (exam, student, subject) result. The exam must exist;
// the student email and subject ID are trusted as given.
func (r *ExamRepository) AddResult(ctx context.Context, examID string, req AddResultRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}

	if _, err := r.GetExam(ctx, examID); err != nil {
		return err
	}

	defer r.store.Lock(store.EntityExamResults)()

	var results models.ExamResultDocument
	if err := r.store.Load(store.EntityExamResults, &results); err != nil {
		return err
	}
	if results == nil {
		results = models.ExamResultDocument{}
	}
	if results[examID] == nil {
		results[examID] = map[string]models.StudentExamResults{}
	}
	if results[examID][req.StudentEmail] == nil {
		results[examID][req.StudentEmail] = models.StudentExamResults{}
	}

	results[examID][req.StudentEmail][req.SubjectID] = models.ExamResultEntry{
		Marks:     req.Marks,
		Remarks:   req.Remarks,
		UpdatedAt: time.Now().UTC(),
	}

	return r.store.Save(store.EntityExamResults, results)
}

// StudentResults returns one student's results across every exam, keyed by
// exam ID. Exams where the student has no entry are omitted.
func (r *ExamRepository) StudentResults(ctx context.Context, studentEmail string) (map[string]models.StudentExamResults, error) {
	var results models.ExamResultDocument
	if err := r.store.Load(store.EntityExamResults, &results); err != nil {
		return nil, err
	}

	out := map[string]models.StudentExamResults{}
	for examID, students := range results {
		if entries, ok := students[studentEmail]; ok {
			out[examID] = entries
		}
	}
	return out, nil
}

// ExamResults returns every student's results for one exam.
func (r *ExamRepository) ExamResults(ctx context.Context, examID string) (map[string]models.StudentExamResults, error) {
	var results models.ExamResultDocument
	if err := r.store.Load(store.EntityExamResults, &results); err != nil {
		return nil, err
	}
	students, ok := results[examID]
	if !ok {
		return map[string]models.StudentExamResults{}, nil
	}
	return students, nil
}

// DeleteResult removes one (exam, student, subject) entry, pruning the
// student and exam levels when they become empty.
func (r *ExamRepository) DeleteResult(ctx context.Context, examID, studentEmail, subjectID string) error {
	defer r.store.Lock(store.EntityExamResults)()

	var results models.ExamResultDocument
	if err := r.store.Load(store.EntityExamResults, &results); err != nil {
		return err
	}
	students, ok := results[examID]
	if !ok {
		return appErrors.NotFound("Exam not found")
	}
	entries, ok := students[studentEmail]
	if !ok {
		return appErrors.NotFound("Student not found")
	}
	if _, ok := entries[subjectID]; !ok {
		return appErrors.NotFound("Result not found")
	}

	delete(entries, subjectID)
	if len(entries) == 0 {
		delete(students, studentEmail)
	}
	if len(students) == 0 {
		delete(results, examID)
	}

	return r.store.Save(store.EntityExamResults, results)
}

// DeleteExamResults drops every result for one exam. Missing exams are a
// no-op so the exam-delete cascade stays idempotent.
func (r *ExamRepository) DeleteExamResults(ctx context.Context, examID string) error {
	defer r.store.Lock(store.EntityExamResults)()

	var results models.ExamResultDocument
	if err := r.store.Load(store.EntityExamResults, &results); err != nil {
		return err
	}
	if _, ok := results[examID]; !ok {
		return nil
	}
	delete(results, examID)
	return r.store.Save(store.EntityExamResults, results)
}
