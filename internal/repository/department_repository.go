package repository

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// DepartmentRepository provides CRUD over the departments document. Deletion
// enforces the one cross-entity invariant in the system: a department cannot
// be removed while any course's free-text department field equals its name.
type DepartmentRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *DepartmentRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentRepository{store: st, validator: validate, logger: logger}
}

// CreateDepartmentRequest is the payload for adding a department.
type CreateDepartmentRequest struct {
	DeptID      string `json:"dept_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	HODEmail    string `json:"hod_email" validate:"required,email"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest carries partial fields for a department update.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	HODEmail    *string `json:"hod_email"`
	Description *string `json:"description"`
}

// All returns every department, sorted by ID.
func (r *DepartmentRepository) All(ctx context.Context) ([]models.DepartmentInfo, error) {
	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return nil, err
	}
	infos := make([]models.DepartmentInfo, 0, len(departments))
	for id, d := range departments {
		infos = append(infos, models.DepartmentInfo{DeptID: id, Department: d})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].DeptID < infos[j].DeptID })
	return infos, nil
}

// Get returns a department by ID.
func (r *DepartmentRepository) Get(ctx context.Context, deptID string) (*models.Department, error) {
	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return nil, err
	}
	dept, ok := departments[deptID]
	if !ok {
		return nil, appErrors.NotFound("Department not found")
	}
	return &dept, nil
}

// Add creates a department, failing when the ID is already taken.
func (r *DepartmentRepository) Add(ctx context.Context, req CreateDepartmentRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	defer r.store.Lock(store.EntityDepartments)()

	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return err
	}
	if _, exists := departments[req.DeptID]; exists {
		return appErrors.Conflict("Department ID already exists")
	}

	departments[req.DeptID] = models.Department{
		Name:        req.Name,
		HODEmail:    req.HODEmail,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	return r.store.Save(store.EntityDepartments, departments)
}

// Update applies partial fields to an existing department.
func (r *DepartmentRepository) Update(ctx context.Context, deptID string, req UpdateDepartmentRequest) error {
	defer r.store.Lock(store.EntityDepartments)()

	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return err
	}
	dept, ok := departments[deptID]
	if !ok {
		return appErrors.NotFound("Department not found")
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.HODEmail != nil {
		dept.HODEmail = *req.HODEmail
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}

	departments[deptID] = dept
	return r.store.Save(store.EntityDepartments, departments)
}

// Delete removes a department unless a course still references its name.
func (r *DepartmentRepository) Delete(ctx context.Context, deptID string) error {
	defer r.store.Lock(store.EntityDepartments)()

	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return err
	}
	dept, ok := departments[deptID]
	if !ok {
		return appErrors.NotFound("Department not found")
	}

	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return err
	}
	for _, course := range courses {
		if course.Department == dept.Name {
			return appErrors.Conflict("Cannot delete department that is in use by courses")
		}
	}

	delete(departments, deptID)
	return r.store.Save(store.EntityDepartments, departments)
}

// Seed creates the default departments when the document is empty, matching
// the original first-run behavior.
func (r *DepartmentRepository) Seed(ctx context.Context) error {
	defer r.store.Lock(store.EntityDepartments)()

	var departments map[string]models.Department
	if err := r.store.Load(store.EntityDepartments, &departments); err != nil {
		return err
	}
	if len(departments) > 0 {
		return nil
	}

	now := time.Now().UTC()
	departments["CS"] = models.Department{Name: "Computer Science", HODEmail: "teacher@college.edu", Description: "Department of Computer Science", CreatedAt: now}
	departments["MATH"] = models.Department{Name: "Mathematics", HODEmail: "teacher@college.edu", Description: "Department of Mathematics", CreatedAt: now}
	departments["PHY"] = models.Department{Name: "Physics", HODEmail: "teacher@college.edu", Description: "Department of Physics", CreatedAt: now}

	r.logger.Info("seeded default departments", zap.Int("count", len(departments)))
	return r.store.Save(store.EntityDepartments, departments)
}
