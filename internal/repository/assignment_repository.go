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

const defaultMaxPoints = 100

// AssignmentRepository manages the per-course assignment lists.
type AssignmentRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *AssignmentRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentRepository{store: st, validator: validate, logger: logger}
}

// CreateAssignmentRequest is the payload for creating an assignment in a
// course. A zero max-points value defaults to 100.
type CreateAssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"`
	MaxPoints   int    `json:"max_points" validate:"gte=0"`
}

// UpdateAssignmentRequest carries partial fields for an assignment update.
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	MaxPoints   *int    `json:"max_points"`
}

// Create appends an assignment to a course's list and returns the generated
// ID of the form {course_id}_{n}.
func (r *AssignmentRepository) Create(ctx context.Context, courseID string, req CreateAssignmentRequest) (string, error) {
	if err := r.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	defer r.store.Lock(store.EntityAssignments)()

	var assignments models.AssignmentDocument
	if err := r.store.Load(store.EntityAssignments, &assignments); err != nil {
		return "", err
	}

	ids := make([]string, 0, len(assignments[courseID]))
	for _, a := range assignments[courseID] {
		ids = append(ids, a.AssignmentID)
	}
	assignmentID := fmt.Sprintf("%s_%d", courseID, nextSuffix(ids, courseID+"_"))

	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = defaultMaxPoints
	}

	assignments[courseID] = append(assignments[courseID], models.Assignment{
		AssignmentID: assignmentID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		MaxPoints:    maxPoints,
		CreatedAt:    time.Now().UTC(),
	})

	if err := r.store.Save(store.EntityAssignments, assignments); err != nil {
		return "", err
	}
	return assignmentID, nil
}

// Update applies partial fields to one assignment in a course.
func (r *AssignmentRepository) Update(ctx context.Context, courseID, assignmentID string, req UpdateAssignmentRequest) error {
	defer r.store.Lock(store.EntityAssignments)()

	var assignments models.AssignmentDocument
	if err := r.store.Load(store.EntityAssignments, &assignments); err != nil {
		return err
	}
	entries, ok := assignments[courseID]
	if !ok {
		return appErrors.NotFound("Course not found")
	}

	for i := range entries {
		if entries[i].AssignmentID != assignmentID {
			continue
		}
		if req.Title != nil {
			entries[i].Title = *req.Title
		}
		if req.Description != nil {
			entries[i].Description = *req.Description
		}
		if req.DueDate != nil {
			entries[i].DueDate = *req.DueDate
		}
		if req.MaxPoints != nil {
			entries[i].MaxPoints = *req.MaxPoints
		}
		assignments[courseID] = entries
		return r.store.Save(store.EntityAssignments, assignments)
	}
	return appErrors.NotFound("Assignment not found")
}

// Delete removes one assignment from a course.
func (r *AssignmentRepository) Delete(ctx context.Context, courseID, assignmentID string) error {
	defer r.store.Lock(store.EntityAssignments)()

	var assignments models.AssignmentDocument
	if err := r.store.Load(store.EntityAssignments, &assignments); err != nil {
		return err
	}
	entries, ok := assignments[courseID]
	if !ok {
		return appErrors.NotFound("Course not found")
	}

	for i := range entries {
		if entries[i].AssignmentID == assignmentID {
			assignments[courseID] = append(entries[:i], entries[i+1:]...)
			return r.store.Save(store.EntityAssignments, assignments)
		}
	}
	return appErrors.NotFound("Assignment not found")
}

// CourseAssignments returns all assignments for a course, empty when none.
func (r *AssignmentRepository) CourseAssignments(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var assignments models.AssignmentDocument
	if err := r.store.Load(store.EntityAssignments, &assignments); err != nil {
		return nil, err
	}
	entries, ok := assignments[courseID]
	if !ok {
		return []models.Assignment{}, nil
	}
	return entries, nil
}
