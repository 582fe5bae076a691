package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// AssignmentHandler handles per-course assignment endpoints.
type AssignmentHandler struct {
	repo *repository.AssignmentRepository
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(repo *repository.AssignmentRepository) *AssignmentHandler {
	return &AssignmentHandler{repo: repo}
}

// List godoc
// @Summary List course assignments
// @Tags Assignments
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{course_id}/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.repo.CourseAssignments(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignments, "")
}

// Create godoc
// @Summary Create assignment
// @Description Append an assignment to a course; the ID is generated
// @Tags Assignments
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param payload body repository.CreateAssignmentRequest true "Create assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{course_id}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req repository.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	assignmentID, err := h.repo.Create(c.Request.Context(), c.Param("course_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"assignment_id": assignmentID}, "Assignment created successfully")
}

// Update godoc
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param assignment_id path string true "Assignment ID"
// @Param payload body repository.UpdateAssignmentRequest true "Update assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id}/assignments/{assignment_id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req repository.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("course_id"), c.Param("assignment_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Assignment updated successfully")
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Produce json
// @Param course_id path string true "Course ID"
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id}/assignments/{assignment_id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("course_id"), c.Param("assignment_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Assignment deleted successfully")
}
