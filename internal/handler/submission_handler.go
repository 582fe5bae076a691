package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// SubmissionHandler handles assignment and project submissions plus grading.
type SubmissionHandler struct {
	repo *repository.SubmissionRepository
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(repo *repository.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{repo: repo}
}

// SubmitAssignment godoc
// @Summary Submit assignment
// @Description Record the caller's submission; a second submit is rejected
// @Tags Submissions
// @Accept json
// @Produce json
// @Param assignment_id path string true "Assignment ID"
// @Param payload body repository.SubmitRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assignments/{assignment_id}/submissions [post]
func (h *SubmissionHandler) SubmitAssignment(c *gin.Context) {
	req, ok := h.bindSubmit(c)
	if !ok {
		return
	}

	if err := h.repo.SubmitAssignment(c.Request.Context(), c.Param("assignment_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil, "Assignment submitted successfully")
}

// SubmitProject godoc
// @Summary Submit project
// @Description Record the caller's project submission, group members included
// @Tags Submissions
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param payload body repository.SubmitRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /projects/{project_id}/submissions [post]
func (h *SubmissionHandler) SubmitProject(c *gin.Context) {
	req, ok := h.bindSubmit(c)
	if !ok {
		return
	}

	if err := h.repo.SubmitProject(c.Request.Context(), c.Param("project_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil, "Project submitted successfully")
}

// Grade godoc
// @Summary Grade submission
// @Description Set grade and feedback on an existing submission; re-grading overwrites
// @Tags Submissions
// @Accept json
// @Produce json
// @Param assignment_id path string true "Assignment or project ID"
// @Param payload body repository.GradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{assignment_id}/grade [post]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	var req repository.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Grade(c.Request.Context(), c.Param("assignment_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Grade submitted successfully")
}

// ListWork godoc
// @Summary List submissions for a work item
// @Tags Submissions
// @Produce json
// @Param assignment_id path string true "Assignment or project ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{assignment_id}/submissions [get]
func (h *SubmissionHandler) ListWork(c *gin.Context) {
	submissions, err := h.repo.WorkSubmissions(c.Request.Context(), c.Param("assignment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, submissions, "")
}

// Student godoc
// @Summary List a student's submissions
// @Description Every submission across work items, with the work ID joined on
// @Tags Submissions
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /students/{email}/submissions [get]
func (h *SubmissionHandler) Student(c *gin.Context) {
	submissions, err := h.repo.StudentSubmissions(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, submissions, "")
}

// bindSubmit decodes the payload and forces the student email to the caller's
// identity so a student cannot submit on another's behalf.
func (h *SubmissionHandler) bindSubmit(c *gin.Context) (repository.SubmitRequest, bool) {
	var req repository.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return req, false
	}

	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return req, false
	}
	req.StudentEmail = claims.Email
	return req, true
}
