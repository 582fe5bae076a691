package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// AttendanceRepository manages the nested attendance document. There is no
// separate enrollment record: a student is "in" a course when an attendance
// entry (or a submission) exists for them.
type AttendanceRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *AttendanceRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceRepository{store: st, validator: validate, logger: logger}
}

// MarkAttendanceRequest is the payload for marking one student on one date.
type MarkAttendanceRequest struct {
	CourseID     string                  `json:"course_id" validate:"required"`
	Date         string                  `json:"date" validate:"required"`
	StudentEmail string                  `json:"student_email" validate:"required,email"`
	Status       models.AttendanceStatus `json:"status" validate:"required"`
}

// Mark records attendance for a (course, date, student) triple. Re-marking
// overwrites the previous entry; last write wins.
func (r *AttendanceRepository) Mark(ctx context.Context, req MarkAttendanceRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "date must be an ISO date (YYYY-MM-DD)")
	}

	defer r.store.Lock(store.EntityAttendance)()

	var attendance models.AttendanceDocument
	if err := r.store.Load(store.EntityAttendance, &attendance); err != nil {
		return err
	}

	if attendance[req.CourseID] == nil {
		attendance[req.CourseID] = models.CourseAttendance{}
	}
	if attendance[req.CourseID][req.Date] == nil {
		attendance[req.CourseID][req.Date] = models.DayAttendance{}
	}
	attendance[req.CourseID][req.Date][req.StudentEmail] = models.AttendanceEntry{
		Status:   req.Status,
		MarkedAt: time.Now().UTC(),
	}

	return r.store.Save(store.EntityAttendance, attendance)
}

// StudentAttendance reshapes the nested document to the subset touching one
// student: course ID to date to that student's entry.
func (r *AttendanceRepository) StudentAttendance(ctx context.Context, studentEmail string) (models.StudentAttendance, error) {
	var attendance models.AttendanceDocument
	if err := r.store.Load(store.EntityAttendance, &attendance); err != nil {
		return nil, err
	}

	result := models.StudentAttendance{}
	for courseID, dates := range attendance {
		for date, students := range dates {
			entry, ok := students[studentEmail]
			if !ok {
				continue
			}
			if result[courseID] == nil {
				result[courseID] = map[string]models.AttendanceEntry{}
			}
			result[courseID][date] = entry
		}
	}
	return result, nil
}

// CourseAttendance returns the full attendance map for one course.
func (r *AttendanceRepository) CourseAttendance(ctx context.Context, courseID string) (models.CourseAttendance, error) {
	var attendance models.AttendanceDocument
	if err := r.store.Load(store.EntityAttendance, &attendance); err != nil {
		return nil, err
	}
	records, ok := attendance[courseID]
	if !ok {
		return models.CourseAttendance{}, nil
	}
	return records, nil
}

// RemoveStudent drops a student from a course by deleting their attendance
// entries, then removes their submissions for the course's assignments and
// projects. Fails when the student has no attendance in the course at all.
func (r *AttendanceRepository) RemoveStudent(ctx context.Context, courseID, studentEmail string) error {
	unlockAttendance := r.store.Lock(store.EntityAttendance)

	var attendance models.AttendanceDocument
	if err := r.store.Load(store.EntityAttendance, &attendance); err != nil {
		unlockAttendance()
		return err
	}
	dates, ok := attendance[courseID]
	if !ok {
		unlockAttendance()
		return appErrors.NotFound("Course not found")
	}

	removed := false
	for date, students := range dates {
		if _, present := students[studentEmail]; present {
			delete(students, studentEmail)
			dates[date] = students
			removed = true
		}
	}
	if !removed {
		unlockAttendance()
		return appErrors.NotFound("Student not found in course")
	}
	if err := r.store.Save(store.EntityAttendance, attendance); err != nil {
		unlockAttendance()
		return err
	}
	unlockAttendance()

	workIDs, err := r.courseWorkIDs(courseID)
	if err != nil {
		return err
	}

	defer r.store.Lock(store.EntitySubmissions)()

	var submissions models.SubmissionDocument
	if err := r.store.Load(store.EntitySubmissions, &submissions); err != nil {
		return err
	}
	for _, workID := range workIDs {
		entries, ok := submissions[workID]
		if !ok {
			continue
		}
		kept := entries[:0]
		for _, sub := range entries {
			if sub.StudentEmail != studentEmail {
				kept = append(kept, sub)
			}
		}
		submissions[workID] = kept
	}
	return r.store.Save(store.EntitySubmissions, submissions)
}

// courseWorkIDs gathers the assignment and project IDs belonging to a course.
func (r *AttendanceRepository) courseWorkIDs(courseID string) ([]string, error) {
	var assignments models.AssignmentDocument
	if err := r.store.Load(store.EntityAssignments, &assignments); err != nil {
		return nil, err
	}
	var projects models.ProjectDocument
	if err := r.store.Load(store.EntityProjects, &projects); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments[courseID])+len(projects[courseID]))
	for _, a := range assignments[courseID] {
		ids = append(ids, a.AssignmentID)
	}
	for _, p := range projects[courseID] {
		ids = append(ids, p.ProjectID)
	}
	return ids, nil
}
