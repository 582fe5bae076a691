package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// CourseHandler handles course CRUD and the student-removal cascade.
type CourseHandler struct {
	repo       *repository.CourseRepository
	attendance *repository.AttendanceRepository
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(repo *repository.CourseRepository, attendance *repository.AttendanceRepository) *CourseHandler {
	return &CourseHandler{repo: repo, attendance: attendance}
}

// List godoc
// @Summary List courses
// @Description List every course sorted by ID
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.repo.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses, "")
}

// Get godoc
// @Summary Get course
// @Description Get one course by ID
// @Tags Courses
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.repo.Get(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course, "")
}

// Teaching godoc
// @Summary List courses taught by the caller
// @Description List courses whose teacher email matches the authenticated user
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/teaching [get]
func (h *CourseHandler) Teaching(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.repo.TeacherCourses(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses, "")
}

// Create godoc
// @Summary Add course
// @Description Create a course with a caller-supplied ID
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body repository.CreateCourseRequest true "Create course payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req repository.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Add(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"course_id": req.CourseID}, "Course added successfully")
}

// Update godoc
// @Summary Update course
// @Description Apply partial fields to a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param payload body repository.UpdateCourseRequest true "Update course payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req repository.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("course_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Course updated successfully")
}

// Delete godoc
// @Summary Delete course
// @Description Remove a course unconditionally
// @Tags Courses
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("course_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Course deleted successfully")
}

// RemoveStudent godoc
// @Summary Remove student from course
// @Description Remove a student's attendance records and their submissions for the course's work items
// @Tags Courses
// @Produce json
// @Param course_id path string true "Course ID"
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id}/students/{email} [delete]
func (h *CourseHandler) RemoveStudent(c *gin.Context) {
	if err := h.attendance.RemoveStudent(c.Request.Context(), c.Param("course_id"), c.Param("email")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Student removed from course successfully")
}
