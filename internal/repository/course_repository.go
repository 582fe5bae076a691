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

const defaultCredits = 3

// CourseRepository provides CRUD over the courses document. Deletion is
// unconditional: no cascade check runs against assignments or attendance.
type CourseRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *CourseRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseRepository{store: st, validator: validate, logger: logger}
}

// CreateCourseRequest is the payload for adding a course. The course ID is
// caller-supplied and must be unique at creation.
type CreateCourseRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	CourseName   string `json:"course_name" validate:"required"`
	Department   string `json:"department"`
	TeacherEmail string `json:"teacher_email" validate:"required,email"`
	Description  string `json:"description"`
	Credits      int    `json:"credits" validate:"gte=0"`
}

// UpdateCourseRequest carries partial fields for a course update.
type UpdateCourseRequest struct {
	CourseName   *string `json:"course_name"`
	Department   *string `json:"department"`
	TeacherEmail *string `json:"teacher_email"`
	Description  *string `json:"description"`
	Credits      *int    `json:"credits"`
}

// All returns every course, sorted by course ID.
func (r *CourseRepository) All(ctx context.Context) ([]models.CourseInfo, error) {
	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return nil, err
	}
	return sortCourses(courses), nil
}

// Get returns a course by ID.
func (r *CourseRepository) Get(ctx context.Context, courseID string) (*models.Course, error) {
	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return nil, err
	}
	course, ok := courses[courseID]
	if !ok {
		return nil, appErrors.NotFound("Course not found")
	}
	return &course, nil
}

// Add creates a course, failing when the ID is already taken. A zero credits
// value defaults to 3 here rather than at call sites.
func (r *CourseRepository) Add(ctx context.Context, req CreateCourseRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	defer r.store.Lock(store.EntityCourses)()

	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return err
	}
	if _, exists := courses[req.CourseID]; exists {
		return appErrors.Conflict("Course ID already exists")
	}

	credits := req.Credits
	if credits == 0 {
		credits = defaultCredits
	}

	courses[req.CourseID] = models.Course{
		CourseName:   req.CourseName,
		Department:   req.Department,
		TeacherEmail: req.TeacherEmail,
		Description:  req.Description,
		Credits:      credits,
		CreatedAt:    time.Now().UTC(),
	}
	return r.store.Save(store.EntityCourses, courses)
}

// Update applies partial fields to an existing course.
func (r *CourseRepository) Update(ctx context.Context, courseID string, req UpdateCourseRequest) error {
	defer r.store.Lock(store.EntityCourses)()

	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return err
	}
	course, ok := courses[courseID]
	if !ok {
		return appErrors.NotFound("Course not found")
	}

	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.TeacherEmail != nil {
		course.TeacherEmail = *req.TeacherEmail
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}

	courses[courseID] = course
	return r.store.Save(store.EntityCourses, courses)
}

// Delete removes a course unconditionally.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	defer r.store.Lock(store.EntityCourses)()

	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return err
	}
	if _, ok := courses[courseID]; !ok {
		return appErrors.NotFound("Course not found")
	}
	delete(courses, courseID)
	return r.store.Save(store.EntityCourses, courses)
}

// TeacherCourses filters the course map by teacher email. A linear scan of
// the whole document, acceptable at this data scale.
func (r *CourseRepository) TeacherCourses(ctx context.Context, teacherEmail string) ([]models.CourseInfo, error) {
	var courses map[string]models.Course
	if err := r.store.Load(store.EntityCourses, &courses); err != nil {
		return nil, err
	}
	filtered := make(map[string]models.Course)
	for id, c := range courses {
		if c.TeacherEmail == teacherEmail {
			filtered[id] = c
		}
	}
	return sortCourses(filtered), nil
}

func sortCourses(courses map[string]models.Course) []models.CourseInfo {
	infos := make([]models.CourseInfo, 0, len(courses))
	for id, c := range courses {
		infos = append(infos, models.CourseInfo{CourseID: id, Course: c})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CourseID < infos[j].CourseID })
	return infos
}
