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

// SubmissionRepository manages the submissions document, which holds both
// assignment and project submissions keyed by work-item ID. The invariant is
// exactly one submission per (work ID, student); a second submit is rejected,
// never overwritten.
type SubmissionRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *SubmissionRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionRepository{store: st, validator: validate, logger: logger}
}

// SubmitRequest is the payload for submitting an assignment or project.
// GroupMembers is only meaningful for project submissions.
type SubmitRequest struct {
	StudentEmail   string   `json:"student_email" validate:"required,email"`
	SubmissionText string   `json:"submission_text" validate:"required"`
	FilePath       *string  `json:"file_path"`
	GroupMembers   []string `json:"group_members"`
}

// GradeRequest is the payload for grading a submission. Re-grading is
// idempotent: grade, feedback and graded_at are overwritten.
type GradeRequest struct {
	StudentEmail string   `json:"student_email" validate:"required,email"`
	Grade        *float64 `json:"grade" validate:"required"`
	Feedback     *string  `json:"feedback"`
}

// SubmitAssignment records a student's assignment submission.
func (r *SubmissionRepository) SubmitAssignment(ctx context.Context, assignmentID string, req SubmitRequest) error {
	return r.submit(assignmentID, req, false, "You have already submitted this assignment")
}

// SubmitProject records a student's project submission, including the group
// member list when present.
func (r *SubmissionRepository) SubmitProject(ctx context.Context, projectID string, req SubmitRequest) error {
	return r.submit(projectID, req, true, "You have already submitted this project")
}

func (r *SubmissionRepository) submit(workID string, req SubmitRequest, keepGroup bool, duplicateMsg string) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	defer r.store.Lock(store.EntitySubmissions)()

	var submissions models.SubmissionDocument
	if err := r.store.Load(store.EntitySubmissions, &submissions); err != nil {
		return err
	}

	for _, sub := range submissions[workID] {
		if sub.StudentEmail == req.StudentEmail {
			return appErrors.Conflict(duplicateMsg)
		}
	}

	entry := models.Submission{
		StudentEmail:   req.StudentEmail,
		SubmissionText: req.SubmissionText,
		FilePath:       req.FilePath,
		SubmittedAt:    time.Now().UTC(),
	}
	if keepGroup {
		entry.GroupMembers = req.GroupMembers
	}
	submissions[workID] = append(submissions[workID], entry)

	return r.store.Save(store.EntitySubmissions, submissions)
}

// Grade records a grade on an existing submission. It fails when the work
// item has no submissions or the student never submitted; it never creates a
// submission as a side effect.
func (r *SubmissionRepository) Grade(ctx context.Context, workID string, req GradeRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	defer r.store.Lock(store.EntitySubmissions)()

	var submissions models.SubmissionDocument
	if err := r.store.Load(store.EntitySubmissions, &submissions); err != nil {
		return err
	}
	entries, ok := submissions[workID]
	if !ok {
		return appErrors.NotFound("Assignment not found")
	}

	for i := range entries {
		if entries[i].StudentEmail != req.StudentEmail {
			continue
		}
		now := time.Now().UTC()
		entries[i].Grade = req.Grade
		entries[i].Feedback = req.Feedback
		entries[i].GradedAt = &now
		submissions[workID] = entries
		return r.store.Save(store.EntitySubmissions, submissions)
	}
	return appErrors.NotFound("Submission not found")
}

// StudentSubmissions scans every work item for one student's submissions,
// joining the work-item ID onto each.
func (r *SubmissionRepository) StudentSubmissions(ctx context.Context, studentEmail string) ([]models.StudentSubmission, error) {
	var submissions models.SubmissionDocument
	if err := r.store.Load(store.EntitySubmissions, &submissions); err != nil {
		return nil, err
	}

	result := make([]models.StudentSubmission, 0)
	for workID, entries := range submissions {
		for _, sub := range entries {
			if sub.StudentEmail == studentEmail {
				result = append(result, models.StudentSubmission{AssignmentID: workID, Submission: sub})
			}
		}
	}
	return result, nil
}

// WorkSubmissions returns every submission for one assignment or project.
func (r *SubmissionRepository) WorkSubmissions(ctx context.Context, workID string) ([]models.Submission, error) {
	var submissions models.SubmissionDocument
	if err := r.store.Load(store.EntitySubmissions, &submissions); err != nil {
		return nil, err
	}
	entries, ok := submissions[workID]
	if !ok {
		return []models.Submission{}, nil
	}
	return entries, nil
}
