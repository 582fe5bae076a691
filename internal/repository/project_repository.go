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

// ProjectRepository manages the per-course project lists.
type ProjectRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *ProjectRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectRepository{store: st, validator: validate, logger: logger}
}

// CreateProjectRequest is the payload for creating a project in a course.
type CreateProjectRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date" validate:"required"`
	MaxPoints    int    `json:"max_points" validate:"gte=0"`
	GroupProject bool   `json:"group_project"`
}

// UpdateProjectRequest carries partial fields for a project update.
type UpdateProjectRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	MaxPoints    *int    `json:"max_points"`
	GroupProject *bool   `json:"group_project"`
}

// Create appends a project to a course's list and returns the generated ID of
// the form {course_id}_project_{n}.
func (r *ProjectRepository) Create(ctx context.Context, courseID string, req CreateProjectRequest) (string, error) {
	if err := r.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}

	defer r.store.Lock(store.EntityProjects)()

	var projects models.ProjectDocument
	if err := r.store.Load(store.EntityProjects, &projects); err != nil {
		return "", err
	}

	prefix := courseID + "_project_"
	ids := make([]string, 0, len(projects[courseID]))
	for _, p := range projects[courseID] {
		ids = append(ids, p.ProjectID)
	}
	projectID := fmt.Sprintf("%s%d", prefix, nextSuffix(ids, prefix))

	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = defaultMaxPoints
	}

	projects[courseID] = append(projects[courseID], models.Project{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		MaxPoints:    maxPoints,
		GroupProject: req.GroupProject,
		CreatedAt:    time.Now().UTC(),
	})

	if err := r.store.Save(store.EntityProjects, projects); err != nil {
		return "", err
	}
	return projectID, nil
}

// Update applies partial fields to one project in a course.
func (r *ProjectRepository) Update(ctx context.Context, courseID, projectID string, req UpdateProjectRequest) error {
	defer r.store.Lock(store.EntityProjects)()

	var projects models.ProjectDocument
	if err := r.store.Load(store.EntityProjects, &projects); err != nil {
		return err
	}
	entries, ok := projects[courseID]
	if !ok {
		return appErrors.NotFound("Course not found")
	}

	for i := range entries {
		if entries[i].ProjectID != projectID {
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
		if req.GroupProject != nil {
			entries[i].GroupProject = *req.GroupProject
		}
		projects[courseID] = entries
		return r.store.Save(store.EntityProjects, projects)
	}
	return appErrors.NotFound("Project not found")
}

// Delete removes one project from a course.
func (r *ProjectRepository) Delete(ctx context.Context, courseID, projectID string) error {
	defer r.store.Lock(store.EntityProjects)()

	var projects models.ProjectDocument
	if err := r.store.Load(store.EntityProjects, &projects); err != nil {
		return err
	}
	entries, ok := projects[courseID]
	if !ok {
		return appErrors.NotFound("Course not found")
	}

	for i := range entries {
		if entries[i].ProjectID == projectID {
			projects[courseID] = append(entries[:i], entries[i+1:]...)
			return r.store.Save(store.EntityProjects, projects)
		}
	}
	return appErrors.NotFound("Project not found")
}

// CourseProjects returns all projects for a course, empty when none.
func (r *ProjectRepository) CourseProjects(ctx context.Context, courseID string) ([]models.Project, error) {
	var projects models.ProjectDocument
	if err := r.store.Load(store.EntityProjects, &projects); err != nil {
		return nil, err
	}
	entries, ok := projects[courseID]
	if !ok {
		return []models.Project{}, nil
	}
	return entries, nil
}
